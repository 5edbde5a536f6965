package domain

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	IconName    string    `json:"iconName"`
	SortOrder   int32     `json:"sortOrder"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Service struct {
	ID           uuid.UUID  `json:"id"`
	CategoryID   *uuid.UUID `json:"categoryId"`
	Category     *Category  `json:"category,omitempty"`
	Name         string     `json:"name"`
	Description  *string    `json:"description"`
	Duration     int32      `json:"duration"` // minutes
	Price        float64    `json:"price"`
	Image        *string    `json:"image"`
	IsActive     bool       `json:"isActive"`
	DisplayOrder int32      `json:"displayOrder"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	Version      int32      `json:"-"`
}
