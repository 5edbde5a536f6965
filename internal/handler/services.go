package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/chuk05/myy-signature-myy-style/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// categoryAliases maps the short names used by the booking pages to
// category slugs. Full slugs map to themselves.
var categoryAliases = map[string]string{
	"women":              "womens-hair",
	"womens-hair":        "womens-hair",
	"color":              "color-services",
	"color-services":     "color-services",
	"treatment":          "treatment-services",
	"treatment-services": "treatment-services",
	"men":                "mens-grooming",
	"mens-grooming":      "mens-grooming",
	"special":            "specialty-services",
	"specialty-services": "specialty-services",
	"texture":            "texture-services",
	"texture-services":   "texture-services",
	"kids":               "kids-services",
	"kids-services":      "kids-services",
	"addon":              "add-on-services",
	"add-on-services":    "add-on-services",
}

// resolveCategorySlug reports the slug a ?category= value refers to. An empty
// slug with ok set means no filtering.
func resolveCategorySlug(param string) (slug string, ok bool) {
	param = strings.ToLower(strings.TrimSpace(param))
	if param == "" || param == "all" {
		return "", true
	}
	slug, ok = categoryAliases[param]
	return slug, ok
}

// GetServices lists active services. An unknown category yields an empty
// list; a known category missing from the database yields every service.
func (h *Handler) GetServices(w http.ResponseWriter, r *http.Request) {
	slug, ok := resolveCategorySlug(r.URL.Query().Get("category"))
	if !ok {
		h.successResponse(w, r, "services loaded", []*domain.Service{})
		return
	}

	var categoryID *uuid.UUID
	if slug != "" {
		category, err := h.repository.GetActiveCategoryBySlug(slug)
		switch {
		case err == nil:
			categoryID = &category.ID
		case errors.Is(err, sql.ErrNoRows):
			// not created yet, fall back to every service
		default:
			h.internalServerError(w, r, err)
			return
		}
	}

	services, err := h.repository.GetActiveServices(categoryID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "services loaded", services)
}

func (h *Handler) GetService(w http.ResponseWriter, r *http.Request) {
	service := r.Context().Value(ServiceCtx).(*domain.Service)
	h.successResponse(w, r, "service loaded", service)
}

func (h *Handler) serviceConstraintError(w http.ResponseWriter, r *http.Request, err error) {
	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, sql.ErrNoRows):
		h.conflict(w, r, "the service was modified concurrently, please retry")
	case errors.As(err, &pgErr) && pgErr.ConstraintName == "services_category_id_fkey":
		h.badRequest(w, r, errors.New("category does not exist"))
	default:
		h.internalServerError(w, r, err)
	}
}

func (h *Handler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CategoryID   *uuid.UUID `json:"categoryId"`
		Name         string     `json:"name" validate:"required,max=100"`
		Description  *string    `json:"description" validate:"omitempty,max=1000"`
		Duration     int32      `json:"duration" validate:"required,gt=0,lte=720"`
		Price        float64    `json:"price" validate:"gte=0"`
		Image        *string    `json:"image" validate:"omitempty,url"`
		DisplayOrder int32      `json:"displayOrder" validate:"gte=0"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	service := &domain.Service{
		CategoryID:   req.CategoryID,
		Name:         req.Name,
		Description:  req.Description,
		Duration:     req.Duration,
		Price:        req.Price,
		Image:        req.Image,
		IsActive:     true,
		DisplayOrder: req.DisplayOrder,
	}

	if err := h.repository.CreateService(service); err != nil {
		h.serviceConstraintError(w, r, err)
		return
	}

	h.createdResponse(w, r, "service created", service)
}

func (h *Handler) UpdateService(w http.ResponseWriter, r *http.Request) {
	service := r.Context().Value(ServiceCtx).(*domain.Service)

	var req struct {
		CategoryID   *uuid.UUID `json:"categoryId"`
		Name         *string    `json:"name" validate:"omitempty,max=100"`
		Description  *string    `json:"description" validate:"omitempty,max=1000"`
		Duration     *int32     `json:"duration" validate:"omitempty,gt=0,lte=720"`
		Price        *float64   `json:"price" validate:"omitempty,gte=0"`
		Image        *string    `json:"image" validate:"omitempty,url"`
		IsActive     *bool      `json:"isActive"`
		DisplayOrder *int32     `json:"displayOrder" validate:"omitempty,gte=0"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.CategoryID != nil {
		service.CategoryID = req.CategoryID
	}
	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Description != nil {
		service.Description = req.Description
	}
	if req.Duration != nil {
		service.Duration = *req.Duration
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.Image != nil {
		service.Image = req.Image
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}
	if req.DisplayOrder != nil {
		service.DisplayOrder = *req.DisplayOrder
	}

	if err := h.repository.UpdateService(service); err != nil {
		h.serviceConstraintError(w, r, err)
		return
	}

	h.successResponse(w, r, "service updated", service)
}

func (h *Handler) DeleteService(w http.ResponseWriter, r *http.Request) {
	service := r.Context().Value(ServiceCtx).(*domain.Service)

	if err := h.repository.DeleteService(service.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "service deleted", nil)
}
