package handler

import (
	"errors"
	"net/http"

	"github.com/chuk05/myy-signature-myy-style/internal/domain"
	"github.com/chuk05/myy-signature-myy-style/internal/seed"
	"github.com/chuk05/myy-signature-myy-style/internal/utils"
	"github.com/jackc/pgx/v5/pgconn"
)

func (h *Handler) categoryConstraintError(w http.ResponseWriter, r *http.Request, err error) {
	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &pgErr) && pgErr.ConstraintName == "categories_name_key":
		h.conflict(w, r, "a category with this name already exists")
	case errors.As(err, &pgErr) && pgErr.ConstraintName == "categories_slug_key":
		h.conflict(w, r, "a category with this slug already exists")
	default:
		h.internalServerError(w, r, err)
	}
}

// GetCategories lists active categories. An empty table is filled with the
// default catalogue first.
func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repository.GetActiveCategories()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if len(categories) == 0 {
		if err := h.repository.UpsertCategories(seed.DefaultCategories()); err != nil {
			h.internalServerError(w, r, err)
			return
		}

		categories, err = h.repository.GetActiveCategories()
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
	}

	h.successResponse(w, r, "categories loaded", categories)
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name" validate:"required,max=100"`
		Description string `json:"description" validate:"max=500"`
		Color       string `json:"color" validate:"omitempty,hexcolor"`
		IconName    string `json:"iconName" validate:"max=50"`
		SortOrder   int32  `json:"sortOrder" validate:"gte=0"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	slug := utils.Slugify(req.Name)
	if slug == "" {
		h.badRequest(w, r, errors.New("name must contain at least one letter or digit"))
		return
	}

	category := &domain.Category{
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		Color:       req.Color,
		IconName:    req.IconName,
		SortOrder:   req.SortOrder,
		IsActive:    true,
	}
	if category.Color == "" {
		category.Color = "#6B7280"
	}
	if category.IconName == "" {
		category.IconName = "scissors"
	}

	if err := h.repository.CreateCategory(category); err != nil {
		h.categoryConstraintError(w, r, err)
		return
	}

	h.createdResponse(w, r, "category created", category)
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	category := r.Context().Value(CategoryCtx).(*domain.Category)

	var req struct {
		Name        *string `json:"name" validate:"omitempty,max=100"`
		Description *string `json:"description" validate:"omitempty,max=500"`
		Color       *string `json:"color" validate:"omitempty,hexcolor"`
		IconName    *string `json:"iconName" validate:"omitempty,max=50"`
		SortOrder   *int32  `json:"sortOrder" validate:"omitempty,gte=0"`
		IsActive    *bool   `json:"isActive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Name != nil {
		slug := utils.Slugify(*req.Name)
		if slug == "" {
			h.badRequest(w, r, errors.New("name must contain at least one letter or digit"))
			return
		}
		category.Name = *req.Name
		category.Slug = slug
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.Color != nil {
		category.Color = *req.Color
	}
	if req.IconName != nil {
		category.IconName = *req.IconName
	}
	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := h.repository.UpdateCategory(category); err != nil {
		h.categoryConstraintError(w, r, err)
		return
	}

	h.successResponse(w, r, "category updated", category)
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	category := r.Context().Value(CategoryCtx).(*domain.Category)

	if err := h.repository.DeleteCategory(category.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "category deleted", nil)
}
