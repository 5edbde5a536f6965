package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/chuk05/myy-signature-myy-style/internal/salon"
)

type salonInfo struct {
	Name        string             `json:"name"`
	Address     string             `json:"address"`
	Phone       string             `json:"phone"`
	Email       string             `json:"email"`
	Timezone    string             `json:"timezone"`
	IsOpen      bool               `json:"isOpen"`
	NextOpening string             `json:"nextOpening"`
	Hours       []salon.DayDisplay `json:"hours"`
}

func (h *Handler) GetSalonInfo(w http.ResponseWriter, r *http.Request) {
	status := h.hours.Status(h.now().In(h.location))

	h.successResponse(w, r, "salon info loaded", salonInfo{
		Name:        h.config.Salon.Name,
		Address:     h.config.Salon.Address,
		Phone:       h.config.Salon.Phone,
		Email:       h.config.Salon.Email,
		Timezone:    h.location.String(),
		IsOpen:      status.IsOpen,
		NextOpening: status.NextOpening,
		Hours:       h.hours.Display(),
	})
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := h.repository.Ping(ctx); err != nil {
		h.logInternalServerError(r, err)
		h.errorResponse(w, r, http.StatusServiceUnavailable, "database unavailable")
		return
	}

	if err := h.redisClient.Ping(ctx).Err(); err != nil {
		h.logInternalServerError(r, err)
		h.errorResponse(w, r, http.StatusServiceUnavailable, "redis unavailable")
		return
	}

	h.successResponse(w, r, "ok", nil)
}
