package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/chuk05/myy-signature-myy-style/internal/availability"
	"github.com/chuk05/myy-signature-myy-style/internal/domain"
	"github.com/chuk05/myy-signature-myy-style/internal/repository"
	"github.com/chuk05/myy-signature-myy-style/internal/utils"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// findOrCreateCustomer inserts the customer and falls back to the existing
// row when the e-mail is already known.
func (h *Handler) findOrCreateCustomer(customer *domain.Customer) error {
	err := h.bookings.CreateCustomer(customer)
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.ConstraintName != "customers_email_key" {
		return err
	}

	existing, err := h.bookings.GetCustomerByEmail(customer.Email)
	if err != nil {
		return err
	}
	*customer = *existing
	return nil
}

func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Customer struct {
			Email    string `json:"email" validate:"required,email"`
			Phone    string `json:"phone" validate:"required,max=30"`
			FullName string `json:"fullName" validate:"required,max=100"`
		} `json:"customer"`
		Appointment struct {
			StaffID   uuid.UUID `json:"staffId" validate:"required"`
			ServiceID uuid.UUID `json:"serviceId" validate:"required"`
			Date      string    `json:"date" validate:"required"`
			Time      string    `json:"time" validate:"required"`
			Notes     *string   `json:"notes" validate:"omitempty,max=1000"`
		} `json:"appointment"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	now := h.now().In(h.location)
	if err := utils.ValidateAppointmentSlot(req.Appointment.Date, req.Appointment.Time, now); err != nil {
		h.badRequest(w, r, err)
		return
	}

	service, err := h.bookings.GetServiceByID(req.Appointment.ServiceID)
	if err != nil || !service.IsActive {
		switch {
		case err == nil, errors.Is(err, sql.ErrNoRows):
			h.badRequest(w, r, errors.New("service is not available"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	staff, err := h.bookings.GetStaffByID(req.Appointment.StaffID)
	if err != nil || !staff.IsActive {
		switch {
		case err == nil, errors.Is(err, sql.ErrNoRows):
			h.badRequest(w, r, errors.New("staff member is not available"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	slots, err := h.calculator.AvailableSlots(staff.ID.String(), req.Appointment.Date)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrStaffUnavailable):
			h.conflict(w, r, err.Error())
		case errors.Is(err, availability.ErrInvalidRequest):
			h.badRequest(w, r, err)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}
	clock := req.Appointment.Time
	if len(clock) > 5 {
		clock = clock[:5]
	}
	if !slices.Contains(slots, clock) {
		h.conflict(w, r, "the selected time is no longer available")
		return
	}

	customer := &domain.Customer{
		Email:    strings.ToLower(req.Customer.Email),
		Phone:    req.Customer.Phone,
		FullName: req.Customer.FullName,
	}
	if err := h.findOrCreateCustomer(customer); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	appointment := &domain.Appointment{
		CustomerID: &customer.ID,
		StaffID:    &staff.ID,
		ServiceID:  &service.ID,
		Date:       req.Appointment.Date,
		Time:       clock,
		Status:     domain.AppointmentConfirmed,
		Notes:      req.Appointment.Notes,
	}

	if err := h.bookings.CreateAppointment(appointment); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	mailMessage := domain.MailMessage{
		Type: domain.MailBookingConfirmation,
		To:   customer.Email,
		Data: domain.AppointmentMailData{
			FullName:     customer.FullName,
			ServiceName:  service.Name,
			StaffName:    staff.FullName,
			Date:         appointment.Date,
			Time:         appointment.Time,
			Duration:     service.Duration,
			Price:        service.Price,
			SalonName:    h.config.Salon.Name,
			SalonAddress: h.config.Salon.Address,
			SalonPhone:   h.config.Salon.Phone,
		},
	}

	// the booking stands even when the confirmation cannot be queued
	if err := h.mailPublisher.Publish(mailMessage); err != nil {
		slog.Error("failed to queue booking confirmation",
			"request_id", requestIDFromContext(r.Context()),
			"appointment_id", appointment.ID,
			"error", err,
		)
	}

	h.createdResponse(w, r, "appointment booked successfully", map[string]any{
		"appointment": appointment,
		"customer":    customer,
	})
}

func (h *Handler) GetAppointments(w http.ResponseWriter, r *http.Request) {
	filter := repository.AppointmentFilter{}

	if date := r.URL.Query().Get("date"); date != "" {
		if _, err := time.Parse(time.DateOnly, date); err != nil {
			h.badRequest(w, r, errors.New("date must be YYYY-MM-DD"))
			return
		}
		filter.Date = &date
	}

	if status := r.URL.Query().Get("status"); status != "" {
		if err := h.validate.Var(status, "oneof=pending confirmed completed cancelled no_show"); err != nil {
			h.badRequest(w, r, errors.New("unknown appointment status"))
			return
		}
		s := domain.AppointmentStatus(status)
		filter.Status = &s
	}

	appointments, err := h.repository.GetAppointments(filter)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "appointments loaded", appointments)
}

func (h *Handler) GetMyAppointments(w http.ResponseWriter, r *http.Request) {
	sub, err := subject(r)
	if err != nil {
		h.unauthorized(w, r, "invalid token")
		return
	}

	appointments, err := h.repository.GetAppointmentsByStaff(sub)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "appointments loaded", appointments)
}

func (h *Handler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	appointment := r.Context().Value(AppointmentCtx).(*domain.Appointment)
	h.successResponse(w, r, "appointment loaded", appointment)
}

func (h *Handler) UpdateAppointmentStatus(w http.ResponseWriter, r *http.Request) {
	appointment := r.Context().Value(AppointmentCtx).(*domain.Appointment)

	var req struct {
		Status string `json:"status" validate:"required,oneof=pending confirmed completed cancelled no_show"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	next := domain.AppointmentStatus(req.Status)
	if err := utils.ValidateStatusTransition(appointment.Status, next); err != nil {
		h.conflict(w, r, err.Error())
		return
	}

	appointment.Status = next
	if err := h.repository.UpdateAppointmentStatus(appointment); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.conflict(w, r, "the appointment was modified concurrently, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "appointment status updated", appointment)
}
