package salon

import (
	"fmt"
	"time"
)

// DayHours is an opening window in whole hours of the salon's local day.
type DayHours struct {
	Open  int
	Close int
}

// WeeklyHours is indexed by time.Weekday; a nil entry means closed.
type WeeklyHours [7]*DayHours

var DefaultHours = WeeklyHours{
	time.Sunday:    {Open: 11, Close: 19},
	time.Monday:    nil,
	time.Tuesday:   {Open: 9, Close: 17},
	time.Wednesday: {Open: 9, Close: 17},
	time.Thursday:  {Open: 9, Close: 17},
	time.Friday:    {Open: 9, Close: 17},
	time.Saturday:  {Open: 9, Close: 17},
}

type Status struct {
	IsOpen      bool   `json:"isOpen"`
	NextOpening string `json:"nextOpening"`
}

type DayDisplay struct {
	Day    string `json:"day"`
	Hours  string `json:"hours"`
	IsOpen bool   `json:"isOpen"`
}

// Status reports whether the salon is open at now and when it opens next.
// now must already be in the salon's time zone.
func (w WeeklyHours) Status(now time.Time) Status {
	current := float64(now.Hour()) + float64(now.Minute())/60

	today := w[now.Weekday()]
	isOpen := today != nil && current >= float64(today.Open) && current < float64(today.Close)

	return Status{
		IsOpen:      isOpen,
		NextOpening: w.nextOpening(now.Weekday(), current),
	}
}

func (w WeeklyHours) nextOpening(day time.Weekday, current float64) string {
	if today := w[day]; today != nil && current < float64(today.Open) {
		return fmt.Sprintf("Opens today at %s", formatHour(today.Open))
	}

	for i := 1; i <= 7; i++ {
		next := time.Weekday((int(day) + i) % 7)
		if h := w[next]; h != nil {
			return fmt.Sprintf("Opens %s at %s", next, formatHour(h.Open))
		}
	}

	return "Closed temporarily"
}

// Display lists the week starting on Monday, the way it is printed on the site.
func (w WeeklyHours) Display() []DayDisplay {
	days := make([]DayDisplay, 0, 7)
	for i := 1; i <= 7; i++ {
		day := time.Weekday(i % 7)
		h := w[day]
		if h == nil {
			days = append(days, DayDisplay{Day: day.String(), Hours: "Closed"})
			continue
		}
		days = append(days, DayDisplay{
			Day:    day.String(),
			Hours:  fmt.Sprintf("%s - %s", formatHour(h.Open), formatHour(h.Close)),
			IsOpen: true,
		})
	}
	return days
}

func formatHour(hour int) string {
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:00 %s", display, period)
}
