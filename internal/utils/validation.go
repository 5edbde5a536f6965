package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/chuk05/myy-signature-myy-style/internal/domain"
)

// parseClock accepts zero-padded HH:MM or HH:MM:SS only.
func parseClock(s string) (time.Time, error) {
	layout := "15:04"
	if len(s) == len(time.TimeOnly) {
		layout = time.TimeOnly
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return time.Time{}, err
	}
	if t.Format(layout) != s {
		return time.Time{}, fmt.Errorf("clock %q is not zero-padded", s)
	}
	return t, nil
}

// ValidateWorkingHours checks a weekly template: days 0-6, at most one row per
// day, and an end time after the start time.
func ValidateWorkingHours(hours []domain.WorkingHours) error {
	seen := make(map[int32]bool, len(hours))

	for _, wh := range hours {
		if wh.DayOfWeek < 0 || wh.DayOfWeek > 6 {
			return fmt.Errorf("invalid day of week %d", wh.DayOfWeek)
		}
		day := time.Weekday(wh.DayOfWeek)
		if seen[wh.DayOfWeek] {
			return fmt.Errorf("%s appears more than once", day)
		}
		seen[wh.DayOfWeek] = true

		start, err := parseClock(wh.StartTime)
		if err != nil {
			return fmt.Errorf("%s has an invalid start time", day)
		}
		end, err := parseClock(wh.EndTime)
		if err != nil {
			return fmt.Errorf("%s has an invalid end time", day)
		}
		if !end.After(start) {
			return fmt.Errorf("%s must end after it starts", day)
		}
	}

	return nil
}

// ValidateAppointmentSlot checks the date and time of a booking request. A
// booking in the past is rejected.
func ValidateAppointmentSlot(date, clock string, now time.Time) error {
	day, err := time.ParseInLocation(time.DateOnly, date, now.Location())
	if err != nil {
		return errors.New("date must be YYYY-MM-DD")
	}
	t, err := parseClock(clock)
	if err != nil {
		return errors.New("time must be HH:MM")
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())
	if start.Before(now) {
		return errors.New("appointment time is in the past")
	}

	return nil
}

// ValidateStatusTransition rejects moves the appointment lifecycle does not allow.
func ValidateStatusTransition(from, to domain.AppointmentStatus) error {
	if from == to {
		return fmt.Errorf("appointment is already %s", to)
	}
	if !from.CanTransitionTo(to) {
		return fmt.Errorf("cannot change a %s appointment to %s", from, to)
	}
	return nil
}
