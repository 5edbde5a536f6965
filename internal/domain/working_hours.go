package domain

import "github.com/google/uuid"

// WorkingHours is one weekday of a staff member's weekly template.
// DayOfWeek is Sunday-indexed (0 = Sunday ... 6 = Saturday).
type WorkingHours struct {
	ID        uuid.UUID `json:"id"`
	StaffID   uuid.UUID `json:"staffId"`
	DayOfWeek int32     `json:"dayOfWeek"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	IsActive  bool      `json:"isActive"`
}
