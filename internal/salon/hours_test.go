package salon

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(day, hour, minute int) time.Time {
	// October 2026: the 18th is a Sunday
	return time.Date(2026, time.October, day, hour, minute, 0, 0, time.UTC)
}

func TestStatus(t *testing.T) {
	cases := []struct {
		name string
		now  time.Time
		want Status
	}{
		{"monday closed", at(19, 12, 0), Status{false, "Opens Tuesday at 9:00 AM"}},
		{"tuesday before opening", at(20, 8, 59), Status{false, "Opens today at 9:00 AM"}},
		{"tuesday open", at(20, 9, 0), Status{true, "Opens Wednesday at 9:00 AM"}},
		{"tuesday closing time", at(20, 17, 0), Status{false, "Opens Wednesday at 9:00 AM"}},
		{"saturday evening", at(24, 18, 30), Status{false, "Opens Sunday at 11:00 AM"}},
		{"sunday late", at(18, 18, 45), Status{true, "Opens Tuesday at 9:00 AM"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, DefaultHours.Status(c.now))
		})
	}
}

func TestStatus_NeverOpen(t *testing.T) {
	var closed WeeklyHours
	assert.Equal(t, Status{false, "Closed temporarily"}, closed.Status(at(20, 10, 0)))
}

func TestDisplay(t *testing.T) {
	days := DefaultHours.Display()

	assert.Len(t, days, 7)
	assert.Equal(t, DayDisplay{Day: "Monday", Hours: "Closed"}, days[0])
	assert.Equal(t, DayDisplay{Day: "Tuesday", Hours: "9:00 AM - 5:00 PM", IsOpen: true}, days[1])
	assert.Equal(t, DayDisplay{Day: "Sunday", Hours: "11:00 AM - 7:00 PM", IsOpen: true}, days[6])
}
