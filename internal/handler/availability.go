package handler

import (
	"errors"
	"net/http"

	"github.com/chuk05/myy-signature-myy-style/internal/availability"
)

// GetAvailability answers with a bare JSON array of HH:MM start times, or
// {"error": "..."} on failure.
func (h *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	slots, err := h.calculator.AvailableSlots(q.Get("staffId"), q.Get("date"))
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidRequest):
			h.errorJSON(w, r, http.StatusBadRequest, availability.ErrInvalidRequest.Error())
		case errors.Is(err, availability.ErrStaffUnavailable):
			h.errorJSON(w, r, http.StatusBadRequest, availability.ErrStaffUnavailable.Error())
		default:
			h.logInternalServerError(r, err)
			h.errorJSON(w, r, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	h.writeJSON(w, r, http.StatusOK, slots)
}
