package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chuk05/myy-signature-myy-style/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBookings struct {
	services     map[uuid.UUID]*domain.Service
	staff        map[uuid.UUID]*domain.Staff
	customers    map[string]*domain.Customer
	appointments []*domain.Appointment
}

func newFakeBookings() *fakeBookings {
	return &fakeBookings{
		services:  map[uuid.UUID]*domain.Service{},
		staff:     map[uuid.UUID]*domain.Staff{},
		customers: map[string]*domain.Customer{},
	}
}

func (f *fakeBookings) GetServiceByID(id uuid.UUID) (*domain.Service, error) {
	s, ok := f.services[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return s, nil
}

func (f *fakeBookings) GetStaffByID(id uuid.UUID) (*domain.Staff, error) {
	s, ok := f.staff[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return s, nil
}

func (f *fakeBookings) GetCustomerByEmail(email string) (*domain.Customer, error) {
	c, ok := f.customers[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return c, nil
}

func (f *fakeBookings) CreateCustomer(customer *domain.Customer) error {
	if _, ok := f.customers[customer.Email]; ok {
		return &pgconn.PgError{Code: "23505", ConstraintName: "customers_email_key"}
	}
	customer.ID = uuid.New()
	stored := *customer
	f.customers[customer.Email] = &stored
	return nil
}

func (f *fakeBookings) CreateAppointment(appointment *domain.Appointment) error {
	appointment.ID = uuid.New()
	f.appointments = append(f.appointments, appointment)
	return nil
}

type recordingPublisher struct {
	sent []domain.MailMessage
	err  error
}

func (p *recordingPublisher) Publish(msg domain.MailMessage) error {
	if p.err != nil {
		return p.err
	}
	p.sent = append(p.sent, msg)
	return nil
}

type bookingFixture struct {
	h         *Handler
	bookings  *fakeBookings
	publisher *recordingPublisher
	serviceID uuid.UUID
	staffID   uuid.UUID
}

// newBookingFixture works Mondays 09:00-11:00 with 09:30 already taken.
func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	f := &bookingFixture{
		h:         newTestHandler(t, mondayStore()),
		bookings:  newFakeBookings(),
		publisher: &recordingPublisher{},
		serviceID: uuid.New(),
		staffID:   uuid.New(),
	}
	f.bookings.services[f.serviceID] = &domain.Service{ID: f.serviceID, Name: "Silk Press", Duration: 90, Price: 85, IsActive: true}
	f.bookings.staff[f.staffID] = &domain.Staff{ID: f.staffID, FullName: "Keisha Brown", IsActive: true}
	f.h.bookings = f.bookings
	f.h.mailPublisher = f.publisher
	return f
}

func (f *bookingFixture) book(t *testing.T, email, date, clock string) *httptest.ResponseRecorder {
	t.Helper()

	body := map[string]any{
		"customer": map[string]string{
			"email":    email,
			"phone":    "404-555-0100",
			"fullName": "Jane Doe",
		},
		"appointment": map[string]any{
			"staffId":   f.staffID,
			"serviceId": f.serviceID,
			"date":      date,
			"time":      clock,
		},
	}
	return serve(f.h, httptest.NewRequest(http.MethodPost, "/appointments", jsonBody(t, body)))
}

func TestCreateAppointment(t *testing.T) {
	f := newBookingFixture(t)

	rec := f.book(t, "Jane@Example.com", "2026-10-26", "10:00")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Appointment domain.Appointment `json:"appointment"`
			Customer    domain.Customer    `json:"customer"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, domain.AppointmentConfirmed, resp.Data.Appointment.Status)
	assert.Equal(t, "10:00", resp.Data.Appointment.Time)
	assert.Equal(t, "jane@example.com", resp.Data.Customer.Email)

	var raw struct {
		Data struct {
			Appointment map[string]any `json:"appointment"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	for _, key := range []string{"staffId", "serviceId", "customerId"} {
		assert.Contains(t, raw.Data.Appointment, key)
	}

	require.Len(t, f.bookings.appointments, 1)
	assert.Equal(t, f.staffID, *f.bookings.appointments[0].StaffID)

	require.Len(t, f.publisher.sent, 1)
	assert.Equal(t, domain.MailBookingConfirmation, f.publisher.sent[0].Type)
	assert.Equal(t, "jane@example.com", f.publisher.sent[0].To)
}

func TestCreateAppointment_ReusesKnownCustomer(t *testing.T) {
	f := newBookingFixture(t)
	known := &domain.Customer{ID: uuid.New(), Email: "jane@example.com", FullName: "Jane Doe"}
	f.bookings.customers[known.Email] = known

	rec := f.book(t, "jane@example.com", "2026-10-26", "09:00")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	require.Len(t, f.bookings.appointments, 1)
	assert.Equal(t, known.ID, *f.bookings.appointments[0].CustomerID)
	assert.Len(t, f.bookings.customers, 1)
}

func TestCreateAppointment_MailFailureKeepsBooking(t *testing.T) {
	f := newBookingFixture(t)
	f.publisher.err = errors.New("channel closed")

	rec := f.book(t, "jane@example.com", "2026-10-26", "10:30")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, f.bookings.appointments, 1)
}

func TestCreateAppointment_Rejected(t *testing.T) {
	cases := []struct {
		name    string
		prepare func(f *bookingFixture)
		date    string
		clock   string
		status  int
		message string
	}{
		{
			name:    "time already booked",
			date:    "2026-10-26",
			clock:   "09:30",
			status:  http.StatusConflict,
			message: "the selected time is no longer available",
		},
		{
			name:    "outside working hours",
			date:    "2026-10-26",
			clock:   "11:00",
			status:  http.StatusConflict,
			message: "the selected time is no longer available",
		},
		{
			name:    "staff does not work that day",
			date:    "2026-10-27",
			clock:   "10:00",
			status:  http.StatusConflict,
			message: "staff not available on this day",
		},
		{
			name:    "in the past",
			date:    "2026-10-19",
			clock:   "10:00",
			status:  http.StatusBadRequest,
			message: "appointment time is in the past",
		},
		{
			name:    "hour without leading zero",
			date:    "2026-10-26",
			clock:   "9:00",
			status:  http.StatusBadRequest,
			message: "time must be HH:MM",
		},
		{
			name: "inactive service",
			prepare: func(f *bookingFixture) {
				f.bookings.services[f.serviceID].IsActive = false
			},
			date:    "2026-10-26",
			clock:   "10:00",
			status:  http.StatusBadRequest,
			message: "service is not available",
		},
		{
			name: "unknown staff member",
			prepare: func(f *bookingFixture) {
				delete(f.bookings.staff, f.staffID)
			},
			date:    "2026-10-26",
			clock:   "10:00",
			status:  http.StatusBadRequest,
			message: "staff member is not available",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newBookingFixture(t)
			if c.prepare != nil {
				c.prepare(f)
			}

			rec := f.book(t, "jane@example.com", c.date, c.clock)

			assert.Equal(t, c.status, rec.Code)
			assert.Equal(t, c.message, decodeResponse(t, rec).Message)
			assert.Empty(t, f.bookings.appointments)
			assert.Empty(t, f.publisher.sent)
		})
	}
}
