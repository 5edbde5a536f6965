package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/chuk05/myy-signature-myy-style/internal/domain"
	"github.com/chuk05/myy-signature-myy-style/internal/utils"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

func (h *Handler) GetAllStaff(w http.ResponseWriter, r *http.Request) {
	staff, err := h.repository.GetActiveStaff()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "staff loaded", staff)
}

func (h *Handler) GetStaff(w http.ResponseWriter, r *http.Request) {
	staff := r.Context().Value(StaffCtx).(*domain.Staff)
	h.successResponse(w, r, "staff member loaded", staff)
}

func validHireDate(date *string) bool {
	if date == nil {
		return true
	}
	_, err := time.Parse(time.DateOnly, *date)
	return err == nil
}

func (h *Handler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email           string   `json:"email" validate:"required,email"`
		FullName        string   `json:"fullName" validate:"required,max=100"`
		Phone           *string  `json:"phone" validate:"omitempty,max=30"`
		Position        string   `json:"position" validate:"required,max=100"`
		Bio             string   `json:"bio" validate:"max=2000"`
		Specialization  []string `json:"specialization" validate:"dive,required,max=100"`
		ExperienceYears int32    `json:"experienceYears" validate:"gte=0,lte=80"`
		HireDate        *string  `json:"hireDate"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if !validHireDate(req.HireDate) {
		h.badRequest(w, r, errors.New("hireDate must be YYYY-MM-DD"))
		return
	}

	password := utils.GenerateRandomPassword(h.config.NewUser.PasswordLength)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	profile := &domain.Profile{
		Email:        strings.ToLower(req.Email),
		PasswordHash: string(hashedPassword),
		FullName:     req.FullName,
		Phone:        req.Phone,
		Role:         domain.RoleStaff,
	}
	staff := &domain.Staff{
		Position:        req.Position,
		Bio:             req.Bio,
		Specialization:  req.Specialization,
		ExperienceYears: req.ExperienceYears,
		IsActive:        true,
		HireDate:        req.HireDate,
		Phone:           req.Phone,
	}

	if err := h.repository.CreateStaff(profile, staff); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "profiles_email_key":
			h.conflict(w, r, "email is already registered")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	mailMessage := domain.MailMessage{
		Type: domain.MailNewStaffAccount,
		To:   profile.Email,
		Data: domain.NewStaffAccountMailData{
			FullName:  profile.FullName,
			Email:     profile.Email,
			Password:  password,
			SalonName: h.config.Salon.Name,
		},
	}

	if err := h.mailPublisher.Publish(mailMessage); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.createdResponse(w, r, "staff member created", staff)
}

func (h *Handler) UpdateStaff(w http.ResponseWriter, r *http.Request) {
	staff := r.Context().Value(StaffCtx).(*domain.Staff)

	var req struct {
		FullName        *string  `json:"fullName" validate:"omitempty,max=100"`
		AvatarURL       *string  `json:"avatarURL" validate:"omitempty,url"`
		Phone           *string  `json:"phone" validate:"omitempty,max=30"`
		Position        *string  `json:"position" validate:"omitempty,max=100"`
		Bio             *string  `json:"bio" validate:"omitempty,max=2000"`
		Specialization  []string `json:"specialization" validate:"omitempty,dive,required,max=100"`
		ExperienceYears *int32   `json:"experienceYears" validate:"omitempty,gte=0,lte=80"`
		IsActive        *bool    `json:"isActive"`
		HireDate        *string  `json:"hireDate"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if !validHireDate(req.HireDate) {
		h.badRequest(w, r, errors.New("hireDate must be YYYY-MM-DD"))
		return
	}

	if req.FullName != nil {
		staff.FullName = *req.FullName
	}
	if req.AvatarURL != nil {
		staff.AvatarURL = req.AvatarURL
	}
	if req.Phone != nil {
		staff.Phone = req.Phone
	}
	if req.Position != nil {
		staff.Position = *req.Position
	}
	if req.Bio != nil {
		staff.Bio = *req.Bio
	}
	if req.Specialization != nil {
		staff.Specialization = req.Specialization
	}
	if req.ExperienceYears != nil {
		staff.ExperienceYears = *req.ExperienceYears
	}
	if req.IsActive != nil {
		staff.IsActive = *req.IsActive
	}
	if req.HireDate != nil {
		staff.HireDate = req.HireDate
	}

	if err := h.repository.UpdateStaff(staff); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.conflict(w, r, "the staff member was modified concurrently, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "staff member updated", staff)
}

func (h *Handler) DeleteStaff(w http.ResponseWriter, r *http.Request) {
	staff := r.Context().Value(StaffCtx).(*domain.Staff)

	if err := h.repository.DeleteStaff(staff.ID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "staff member not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "staff member deleted", nil)
}

func (h *Handler) UpdateStaffServices(w http.ResponseWriter, r *http.Request) {
	staff := r.Context().Value(StaffCtx).(*domain.Staff)

	var req struct {
		ServiceIDs []uuid.UUID `json:"serviceIDs" validate:"required,unique"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.ReplaceStaffServices(staff.ID, req.ServiceIDs); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "staff_services_service_id_fkey":
			h.badRequest(w, r, errors.New("one of the services does not exist"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	updated, err := h.repository.GetStaffByID(staff.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "services assigned", updated)
}
