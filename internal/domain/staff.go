package domain

import (
	"time"

	"github.com/google/uuid"
)

// Staff is a staff profile joined with the owning account profile.
type Staff struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email"`
	FullName        string    `json:"fullName"`
	AvatarURL       *string   `json:"avatarURL"`
	Role            Role      `json:"role"`
	Position        string    `json:"position"`
	Bio             string    `json:"bio"`
	Specialization  []string  `json:"specialization"`
	ExperienceYears int32     `json:"experienceYears"`
	IsActive        bool      `json:"isActive"`
	HireDate        *string   `json:"hireDate"`
	Phone           *string   `json:"phone"`
	Services        []Service `json:"services"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
	Version         int32     `json:"-"`
}
