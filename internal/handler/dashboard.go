package handler

import "net/http"

func (h *Handler) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.repository.GetDashboardStats(h.today())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "dashboard stats loaded", stats)
}
