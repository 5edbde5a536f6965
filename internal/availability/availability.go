// Package availability turns a staff member's weekly working hours and the
// bookings already made for a date into the list of start times a customer
// can still pick.
package availability

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/chuk05/myy-signature-myy-style/internal/domain"
	"github.com/google/uuid"
)

// SlotInterval is the distance between two consecutive candidate start times.
const SlotInterval = 30 * time.Minute

var (
	ErrInvalidRequest   = errors.New("staff ID and date are required")
	ErrStaffUnavailable = errors.New("staff not available on this day")
)

// Store is the data the calculator reads. GetActiveWorkingHours must return
// sql.ErrNoRows when the staff member has no active row for the weekday.
type Store interface {
	GetActiveWorkingHours(staffID uuid.UUID, weekday int32) (*domain.WorkingHours, error)
	GetConfirmedAppointmentTimes(staffID uuid.UUID, date string) ([]string, error)
}

type Calculator struct {
	store Store
}

func New(store Store) *Calculator {
	return &Calculator{store: store}
}

// AvailableSlots returns the open HH:MM start times for staffID on date
// (YYYY-MM-DD). Nothing is cached; every call reads the store again.
func (c *Calculator) AvailableSlots(staffID, date string) ([]string, error) {
	if staffID == "" || date == "" {
		return nil, ErrInvalidRequest
	}

	sid, err := uuid.Parse(staffID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid staff ID", ErrInvalidRequest)
	}

	day, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidRequest)
	}

	wh, err := c.store.GetActiveWorkingHours(sid, int32(day.Weekday()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStaffUnavailable
		}
		return nil, fmt.Errorf("get working hours: %w", err)
	}
	if !wh.IsActive {
		return nil, ErrStaffUnavailable
	}

	booked, err := c.store.GetConfirmedAppointmentTimes(sid, day.Format(time.DateOnly))
	if err != nil {
		return nil, fmt.Errorf("get confirmed appointments: %w", err)
	}

	slots, err := GenerateSlots(wh.StartTime, wh.EndTime, SlotInterval, booked)
	if err != nil {
		return nil, fmt.Errorf("working hours %s: %w", wh.ID, err)
	}

	return slots, nil
}

// GenerateSlots steps from start (inclusive) to end (exclusive) by interval and
// drops every candidate whose HH:MM equals the start of a booked appointment.
// Only exact start times are compared; a booking's duration does not block
// the slots that follow it.
func GenerateSlots(start, end string, interval time.Duration, booked []string) ([]string, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("invalid slot interval %s", interval)
	}

	startTime, err := parseClock(start)
	if err != nil {
		return nil, fmt.Errorf("start time: %w", err)
	}
	endTime, err := parseClock(end)
	if err != nil {
		return nil, fmt.Errorf("end time: %w", err)
	}

	taken := make(map[string]struct{}, len(booked))
	for _, b := range booked {
		taken[truncateClock(b)] = struct{}{}
	}

	slots := make([]string, 0)
	for t := startTime; t.Before(endTime); t = t.Add(interval) {
		slot := t.Format("15:04")
		if _, ok := taken[slot]; ok {
			continue
		}
		slots = append(slots, slot)
	}

	return slots, nil
}

// parseClock places a time of day on the zero date so that values can be
// compared and stepped.
func parseClock(s string) (time.Time, error) {
	for _, layout := range []string{time.TimeOnly, "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time of day %q", s)
}

// truncateClock drops the seconds of an HH:MM:SS value.
func truncateClock(s string) string {
	if len(s) > 5 {
		return s[:5]
	}
	return s
}
