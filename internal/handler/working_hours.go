package handler

import (
	"net/http"

	"github.com/chuk05/myy-signature-myy-style/internal/domain"
	"github.com/chuk05/myy-signature-myy-style/internal/utils"
)

func (h *Handler) GetWorkingHours(w http.ResponseWriter, r *http.Request) {
	staff := r.Context().Value(StaffCtx).(*domain.Staff)

	hours, err := h.repository.GetWorkingHoursByStaff(staff.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "working hours loaded", hours)
}

// UpdateWorkingHours replaces the whole weekly template of a staff member.
// Days missing from the request become days off.
func (h *Handler) UpdateWorkingHours(w http.ResponseWriter, r *http.Request) {
	staff := r.Context().Value(StaffCtx).(*domain.Staff)

	type day struct {
		DayOfWeek int32  `json:"dayOfWeek" validate:"gte=0,lte=6"`
		StartTime string `json:"startTime" validate:"required"`
		EndTime   string `json:"endTime" validate:"required"`
		IsActive  *bool  `json:"isActive"`
	}
	var req struct {
		Hours []day `json:"hours" validate:"max=7,dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	hours := make([]domain.WorkingHours, 0, len(req.Hours))
	for _, d := range req.Hours {
		active := true
		if d.IsActive != nil {
			active = *d.IsActive
		}
		hours = append(hours, domain.WorkingHours{
			StaffID:   staff.ID,
			DayOfWeek: d.DayOfWeek,
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
			IsActive:  active,
		})
	}

	if err := utils.ValidateWorkingHours(hours); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := h.repository.ReplaceWorkingHours(staff.ID, hours); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "working hours updated", hours)
}
