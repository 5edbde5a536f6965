package handler

import (
	"time"

	"github.com/chuk05/myy-signature-myy-style/internal/availability"
	"github.com/chuk05/myy-signature-myy-style/internal/config"
	"github.com/chuk05/myy-signature-myy-style/internal/domain"
	"github.com/chuk05/myy-signature-myy-style/internal/repository"
	"github.com/chuk05/myy-signature-myy-style/internal/salon"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type MailPublisher interface {
	Publish(msg domain.MailMessage) error
}

// BookingStore holds the lookups and writes a public booking goes through.
type BookingStore interface {
	GetServiceByID(id uuid.UUID) (*domain.Service, error)
	GetStaffByID(id uuid.UUID) (*domain.Staff, error)
	GetCustomerByEmail(email string) (*domain.Customer, error)
	CreateCustomer(customer *domain.Customer) error
	CreateAppointment(appointment *domain.Appointment) error
}

type Handler struct {
	validate      *validator.Validate
	config        *config.Config
	repository    *repository.Repository
	bookings      BookingStore
	translator    ut.Translator
	mailPublisher MailPublisher
	redisClient   *redis.Client
	calculator    *availability.Calculator
	location      *time.Location
	hours         salon.WeeklyHours
	now           func() time.Time

	Mux *chi.Mux
}

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	en := en.New()
	uni := ut.New(en, en)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, err
	}

	return validate, trans, nil
}

func NewHandler(cfg *config.Config, repo *repository.Repository, publisher MailPublisher, rdb *redis.Client) (*Handler, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(cfg.Salon.Timezone)
	if err != nil {
		return nil, err
	}

	return &Handler{
		validate:      validate,
		config:        cfg,
		repository:    repo,
		bookings:      repo,
		translator:    trans,
		mailPublisher: publisher,
		redisClient:   rdb,
		calculator:    availability.New(repo),
		location:      loc,
		hours:         salon.DefaultHours,
		now:           time.Now,

		Mux: chi.NewRouter(),
	}, nil
}

// today returns the current salon-local date as YYYY-MM-DD.
func (h *Handler) today() string {
	return h.now().In(h.location).Format(time.DateOnly)
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.requestID)
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	adminOnly := h.RequiredRole([]domain.Role{domain.RoleAdmin})
	staffOrAdmin := h.RequiredRole([]domain.Role{domain.RoleStaff, domain.RoleAdmin})

	h.Mux.Get("/healthz", h.HealthCheck)
	h.Mux.Get("/salon", h.GetSalonInfo)
	h.Mux.Get("/availability", h.GetAvailability)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.With(h.rateLimit("login", h.config.RateLimit.Login)).Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Route("/reset-password", func(r chi.Router) {
			r.Use(h.rateLimit("reset_password", h.config.RateLimit.Reset))
			r.Post("/require", h.RequireResetPassword)
			r.Post("/confirm", h.ConfirmResetPassword)
		})
	})

	h.Mux.Route("/categories", func(r chi.Router) {
		r.Get("/", h.GetCategories)
		r.With(h.auth, adminOnly).Post("/", h.CreateCategory)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.auth, adminOnly, h.categoryInfo)
			r.Patch("/", h.UpdateCategory)
			r.Delete("/", h.DeleteCategory)
		})
	})

	h.Mux.Route("/services", func(r chi.Router) {
		r.Get("/", h.GetServices)
		r.With(h.auth, adminOnly).Post("/", h.CreateService)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.serviceInfo)
			r.Get("/", h.GetService)
			r.With(h.auth, adminOnly).Patch("/", h.UpdateService)
			r.With(h.auth, adminOnly).Delete("/", h.DeleteService)
		})
	})

	h.Mux.Route("/staff", func(r chi.Router) {
		r.Get("/", h.GetAllStaff)
		r.With(h.auth, adminOnly).Post("/", h.CreateStaff)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.staffInfo)
			r.Get("/", h.GetStaff)
			r.With(h.auth, adminOnly).Patch("/", h.UpdateStaff)
			r.With(h.auth, adminOnly).Delete("/", h.DeleteStaff)
			r.With(h.auth, adminOnly).Put("/services", h.UpdateStaffServices)
			r.Get("/working-hours", h.GetWorkingHours)
			r.With(h.auth, adminOnly).Put("/working-hours", h.UpdateWorkingHours)
		})
	})

	h.Mux.Route("/appointments", func(r chi.Router) {
		r.With(h.rateLimit("booking", h.config.RateLimit.Booking)).Post("/", h.CreateAppointment)
		r.With(h.auth, adminOnly).Get("/", h.GetAppointments)
		r.Route("/{id}", func(r chi.Router) {
			r.Use(h.auth, staffOrAdmin, h.appointmentInfo)
			r.Get("/", h.GetAppointment)
			r.Patch("/status", h.UpdateAppointmentStatus)
		})
	})

	// everything below requires a signed-in user
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Route("/my-info", func(r chi.Router) {
			r.Use(h.myInfo)
			r.Get("/", h.GetMyInfo)
			r.Patch("/password", h.UpdateMyPassword)
		})

		r.With(staffOrAdmin).Get("/my-appointments", h.GetMyAppointments)
		r.With(adminOnly).Get("/dashboard/stats", h.GetDashboardStats)
	})
}
