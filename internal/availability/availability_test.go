package availability

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/chuk05/myy-signature-myy-style/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	hours        map[int32]*domain.WorkingHours
	appointments map[string][]string
	hoursErr     error
	apptErr      error

	hoursCalls int
	apptCalls  int
	lastDay    int32
}

func (f *fakeStore) GetActiveWorkingHours(_ uuid.UUID, weekday int32) (*domain.WorkingHours, error) {
	f.hoursCalls++
	f.lastDay = weekday
	if f.hoursErr != nil {
		return nil, f.hoursErr
	}
	wh, ok := f.hours[weekday]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return wh, nil
}

func (f *fakeStore) GetConfirmedAppointmentTimes(_ uuid.UUID, date string) ([]string, error) {
	f.apptCalls++
	if f.apptErr != nil {
		return nil, f.apptErr
	}
	return f.appointments[date], nil
}

// 2026-10-19 is a Monday.
const monday = "2026-10-19"

func newStore(start, end string, booked ...string) *fakeStore {
	return &fakeStore{
		hours: map[int32]*domain.WorkingHours{
			int32(time.Monday): {ID: uuid.New(), DayOfWeek: int32(time.Monday), StartTime: start, EndTime: end, IsActive: true},
		},
		appointments: map[string][]string{monday: booked},
	}
}

func TestAvailableSlots_ExcludesBookedStart(t *testing.T) {
	calc := New(newStore("09:00:00", "12:00:00", "10:00:00"))

	slots, err := calc.AvailableSlots(uuid.NewString(), monday)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30", "10:30", "11:00", "11:30"}, slots)
}

func TestAvailableSlots_NoAppointments(t *testing.T) {
	calc := New(newStore("09:00", "10:00"))

	slots, err := calc.AvailableSlots(uuid.NewString(), monday)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30"}, slots)
}

func TestAvailableSlots_FullyBooked(t *testing.T) {
	calc := New(newStore("09:00", "10:30", "09:00:00", "09:30:00", "10:00:00"))

	slots, err := calc.AvailableSlots(uuid.NewString(), monday)
	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestAvailableSlots_DurationDoesNotBlockFollowingSlots(t *testing.T) {
	// a 90 minute booking at 09:00 only removes 09:00
	calc := New(newStore("09:00", "11:00", "09:00:00"))

	slots, err := calc.AvailableSlots(uuid.NewString(), monday)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:30", "10:00", "10:30"}, slots)
}

func TestAvailableSlots_InvalidRequestSkipsStore(t *testing.T) {
	cases := map[string][2]string{
		"missing staff":   {"", monday},
		"missing date":    {uuid.NewString(), ""},
		"malformed staff": {"not-a-uuid", monday},
		"malformed date":  {uuid.NewString(), "19/10/2026"},
	}

	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			store := newStore("09:00", "10:00")
			slots, err := New(store).AvailableSlots(c[0], c[1])
			require.ErrorIs(t, err, ErrInvalidRequest)
			assert.Nil(t, slots)
			assert.Zero(t, store.hoursCalls)
			assert.Zero(t, store.apptCalls)
		})
	}
}

func TestAvailableSlots_StaffUnavailable(t *testing.T) {
	store := newStore("09:00", "10:00")

	// 2026-10-20 is a Tuesday, the store only knows Monday
	slots, err := New(store).AvailableSlots(uuid.NewString(), "2026-10-20")
	require.ErrorIs(t, err, ErrStaffUnavailable)
	assert.Nil(t, slots)
	assert.Equal(t, int32(time.Tuesday), store.lastDay)
	assert.Zero(t, store.apptCalls)
}

func TestAvailableSlots_InactiveHoursAreUnavailable(t *testing.T) {
	store := newStore("09:00", "10:00")
	store.hours[int32(time.Monday)].IsActive = false

	_, err := New(store).AvailableSlots(uuid.NewString(), monday)
	require.ErrorIs(t, err, ErrStaffUnavailable)
}

func TestAvailableSlots_SundayIsDayZero(t *testing.T) {
	store := &fakeStore{
		hours: map[int32]*domain.WorkingHours{
			0: {StartTime: "11:00", EndTime: "12:00", IsActive: true},
		},
	}

	slots, err := New(store).AvailableSlots(uuid.NewString(), "2026-10-18")
	require.NoError(t, err)
	assert.Equal(t, int32(0), store.lastDay)
	assert.Equal(t, []string{"11:00", "11:30"}, slots)
}

func TestAvailableSlots_StoreFailures(t *testing.T) {
	boom := errors.New("connection refused")

	store := newStore("09:00", "10:00")
	store.hoursErr = boom
	_, err := New(store).AvailableSlots(uuid.NewString(), monday)
	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrStaffUnavailable)
	assert.NotErrorIs(t, err, ErrInvalidRequest)

	store = newStore("09:00", "10:00")
	store.apptErr = boom
	_, err = New(store).AvailableSlots(uuid.NewString(), monday)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, store.apptCalls)
}

func TestAvailableSlots_Idempotent(t *testing.T) {
	calc := New(newStore("09:00", "17:00", "12:00:00", "15:30:00"))
	staffID := uuid.NewString()

	first, err := calc.AvailableSlots(staffID, monday)
	require.NoError(t, err)
	second, err := calc.AvailableSlots(staffID, monday)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerateSlots_Properties(t *testing.T) {
	cases := []struct {
		start, end string
		want       int
	}{
		{"09:00", "10:00", 2},
		{"09:00", "10:15", 3},
		{"09:00:00", "17:00:00", 16},
		{"11:00", "19:00", 16},
		{"09:10", "09:20", 1},
	}

	for _, c := range cases {
		slots, err := GenerateSlots(c.start, c.end, SlotInterval, nil)
		require.NoError(t, err)
		require.Len(t, slots, c.want, "%s-%s", c.start, c.end)

		start, _ := parseClock(c.start)
		end, _ := parseClock(c.end)
		for i, s := range slots {
			slot, err := parseClock(s)
			require.NoError(t, err)
			assert.False(t, slot.Before(start))
			assert.True(t, slot.Before(end))
			assert.Equal(t, time.Duration(i)*SlotInterval, slot.Sub(start))
		}
	}
}

func TestGenerateSlots_EmptyWindow(t *testing.T) {
	for _, window := range [][2]string{{"10:00", "10:00"}, {"12:00", "09:00"}} {
		slots, err := GenerateSlots(window[0], window[1], SlotInterval, nil)
		require.NoError(t, err)
		assert.Empty(t, slots)
	}
}

func TestGenerateSlots_InvalidInput(t *testing.T) {
	_, err := GenerateSlots("9am", "17:00", SlotInterval, nil)
	assert.Error(t, err)

	_, err = GenerateSlots("09:00", "17:00", 0, nil)
	assert.Error(t, err)
}
