package jobs

import (
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/chuk05/myy-signature-myy-style/internal/config"
	"github.com/chuk05/myy-signature-myy-style/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	appointments []*domain.Appointment
	getErr       error

	requestedDate string
	marked        []uuid.UUID

	completeDate  string
	completeClock string
	completed     int64
}

func (f *fakeStore) GetAppointmentsNeedingReminder(date string) ([]*domain.Appointment, error) {
	f.requestedDate = date
	return f.appointments, f.getErr
}

func (f *fakeStore) MarkReminderSent(id uuid.UUID, _ time.Time) error {
	f.marked = append(f.marked, id)
	return nil
}

func (f *fakeStore) CompleteAppointmentsBefore(date, clock string) (int64, error) {
	f.completeDate = date
	f.completeClock = clock
	return f.completed, nil
}

type fakePublisher struct {
	sent    []domain.MailMessage
	failFor string
}

func (f *fakePublisher) Publish(msg domain.MailMessage) error {
	if msg.To == f.failFor {
		return errors.New("channel closed")
	}
	f.sent = append(f.sent, msg)
	return nil
}

func newTestRunner(t *testing.T, store *fakeStore, pub *fakePublisher, now time.Time) *Runner {
	t.Helper()

	cfg := &config.Config{}
	cfg.Salon.Name = "Test Salon"
	cfg.Jobs.ReminderSpec = "0 * * * *"
	cfg.Jobs.CompletionSpec = "*/15 * * * *"
	cfg.Jobs.CompletionGrace = 120

	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	r, err := NewRunner(cfg, store, pub, loc)
	require.NoError(t, err)
	r.now = func() time.Time { return now }
	return r
}

func appointment(email string) *domain.Appointment {
	return &domain.Appointment{
		ID:       uuid.New(),
		Date:     "2026-10-20",
		Time:     "10:30",
		Status:   domain.AppointmentConfirmed,
		Customer: &domain.Customer{Email: email, FullName: "Jane Doe"},
		Service:  &domain.Service{Name: "Silk Press", Duration: 90, Price: 85},
		Staff:    &domain.AppointmentStaff{FullName: "Keisha Brown"},
	}
}

func TestSendReminders(t *testing.T) {
	ok := appointment("jane@example.com")
	failing := appointment("broken@example.com")
	orphan := &domain.Appointment{ID: uuid.New()}

	store := &fakeStore{appointments: []*domain.Appointment{ok, failing, orphan}}
	pub := &fakePublisher{failFor: "broken@example.com"}

	// 02:30 UTC on the 20th is still the 19th in New York
	r := newTestRunner(t, store, pub, time.Date(2026, time.October, 20, 2, 30, 0, 0, time.UTC))

	require.NoError(t, r.SendReminders())

	assert.Equal(t, "2026-10-20", store.requestedDate)
	assert.Equal(t, []uuid.UUID{ok.ID}, store.marked)

	require.Len(t, pub.sent, 1)
	msg := pub.sent[0]
	assert.Equal(t, domain.MailAppointmentReminder, msg.Type)
	assert.Equal(t, "jane@example.com", msg.To)

	data, isData := msg.Data.(domain.AppointmentMailData)
	require.True(t, isData)
	assert.Equal(t, "Silk Press", data.ServiceName)
	assert.Equal(t, "Keisha Brown", data.StaffName)
	assert.Equal(t, "Test Salon", data.SalonName)
}

func TestSendReminders_StoreError(t *testing.T) {
	store := &fakeStore{getErr: errors.New("timeout")}
	r := newTestRunner(t, store, &fakePublisher{}, time.Now())

	assert.Error(t, r.SendReminders())
}

func TestCompletePastAppointments(t *testing.T) {
	store := &fakeStore{completed: 3}

	// 13:10 UTC is 09:10 in New York (EDT); two hours of grace gives 07:10
	r := newTestRunner(t, store, &fakePublisher{}, time.Date(2026, time.October, 19, 13, 10, 0, 0, time.UTC))

	require.NoError(t, r.CompletePastAppointments())
	assert.Equal(t, "2026-10-19", store.completeDate)
	assert.Equal(t, "07:10", store.completeClock)
}

func TestCompletePastAppointments_CrossesMidnight(t *testing.T) {
	store := &fakeStore{}

	// 05:00 UTC is 01:00 in New York; the cutoff falls on the previous day
	r := newTestRunner(t, store, &fakePublisher{}, time.Date(2026, time.October, 19, 5, 0, 0, 0, time.UTC))

	require.NoError(t, r.CompletePastAppointments())
	assert.Equal(t, "2026-10-18", store.completeDate)
	assert.Equal(t, "23:00", store.completeClock)
}

func TestNewRunner_InvalidSpec(t *testing.T) {
	cfg := &config.Config{}
	cfg.Jobs.ReminderSpec = "every hour"
	cfg.Jobs.CompletionSpec = "*/15 * * * *"

	_, err := NewRunner(cfg, &fakeStore{}, &fakePublisher{}, time.UTC)
	assert.Error(t, err)
}
