package utils

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/chuk05/myy-signature-myy-style/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateWorkingHours(t *testing.T) {
	valid := []domain.WorkingHours{
		{DayOfWeek: 0, StartTime: "11:00", EndTime: "19:00"},
		{DayOfWeek: 2, StartTime: "09:00:00", EndTime: "17:00:00"},
	}
	require.NoError(t, ValidateWorkingHours(valid))
	require.NoError(t, ValidateWorkingHours(nil))

	cases := map[string][]domain.WorkingHours{
		"day out of range": {{DayOfWeek: 7, StartTime: "09:00", EndTime: "17:00"}},
		"duplicate day": {
			{DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00"},
			{DayOfWeek: 1, StartTime: "13:00", EndTime: "17:00"},
		},
		"bad start":      {{DayOfWeek: 1, StartTime: "9am", EndTime: "17:00"}},
		"bad end":        {{DayOfWeek: 1, StartTime: "09:00", EndTime: "25:00"}},
		"end before":     {{DayOfWeek: 1, StartTime: "17:00", EndTime: "09:00"}},
		"empty interval": {{DayOfWeek: 1, StartTime: "09:00", EndTime: "09:00"}},
	}
	for name, hours := range cases {
		assert.Error(t, ValidateWorkingHours(hours), name)
	}
}

func TestValidateAppointmentSlot(t *testing.T) {
	now := time.Date(2026, time.October, 19, 10, 15, 0, 0, time.UTC)

	assert.NoError(t, ValidateAppointmentSlot("2026-10-19", "10:30", now))
	assert.NoError(t, ValidateAppointmentSlot("2026-10-20", "09:00:00", now))
	assert.Error(t, ValidateAppointmentSlot("2026-10-19", "10:00", now))
	assert.Error(t, ValidateAppointmentSlot("2026-10-18", "15:00", now))
	assert.Error(t, ValidateAppointmentSlot("10/20/2026", "09:00", now))
	assert.Error(t, ValidateAppointmentSlot("2026-10-20", "nine", now))
	assert.Error(t, ValidateAppointmentSlot("2026-10-20", "9:00", now))
	assert.Error(t, ValidateAppointmentSlot("2026-10-20", "09:0", now))
	assert.Error(t, ValidateAppointmentSlot("2026-10-20", "9:00:00", now))
}

func TestValidateAppointmentSlot_DaylightSaving(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// clocks jump from 02:00 to 03:00 on 2026-03-08
	now := time.Date(2026, time.March, 8, 10, 30, 0, 0, loc)

	assert.Error(t, ValidateAppointmentSlot("2026-03-08", "10:00", now))
	assert.NoError(t, ValidateAppointmentSlot("2026-03-08", "11:00", now))
}

func TestValidateStatusTransition(t *testing.T) {
	assert.NoError(t, ValidateStatusTransition(domain.AppointmentPending, domain.AppointmentConfirmed))
	assert.NoError(t, ValidateStatusTransition(domain.AppointmentConfirmed, domain.AppointmentCompleted))
	assert.NoError(t, ValidateStatusTransition(domain.AppointmentConfirmed, domain.AppointmentNoShow))

	assert.Error(t, ValidateStatusTransition(domain.AppointmentConfirmed, domain.AppointmentConfirmed))
	assert.Error(t, ValidateStatusTransition(domain.AppointmentCompleted, domain.AppointmentCancelled))
	assert.Error(t, ValidateStatusTransition(domain.AppointmentCancelled, domain.AppointmentConfirmed))
	assert.Error(t, ValidateStatusTransition(domain.AppointmentPending, domain.AppointmentCompleted))
}
