package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentNoShow    AppointmentStatus = "no_show"
)

var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentPending:   {AppointmentConfirmed, AppointmentCancelled},
	AppointmentConfirmed: {AppointmentCompleted, AppointmentCancelled, AppointmentNoShow},
}

// CanTransitionTo reports whether an appointment in status s may be moved to next.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	return slices.Contains(appointmentTransitions[s], next)
}

type Appointment struct {
	ID             uuid.UUID         `json:"id"`
	CustomerID     *uuid.UUID        `json:"customerId"`
	StaffID        *uuid.UUID        `json:"staffId"`
	ServiceID      *uuid.UUID        `json:"serviceId"`
	Date           string            `json:"date"` // YYYY-MM-DD
	Time           string            `json:"time"` // HH:MM
	Status         AppointmentStatus `json:"status"`
	Notes          *string           `json:"notes"`
	ReminderSentAt *time.Time        `json:"reminderSentAt"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
	Version        int32             `json:"-"`

	Customer *Customer         `json:"customer,omitempty"`
	Service  *Service          `json:"service,omitempty"`
	Staff    *AppointmentStaff `json:"staff,omitempty"`
}

type AppointmentStaff struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"fullName"`
	Email    string    `json:"email"`
}

type Customer struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	FullName  string    `json:"fullName"`
	CreatedAt time.Time `json:"createdAt"`
}

type DashboardStats struct {
	TotalStaff        int64 `json:"totalStaff"`
	TotalServices     int64 `json:"totalServices"`
	TodayAppointments int64 `json:"todayAppointments"`
	TotalAppointments int64 `json:"totalAppointments"`
}
