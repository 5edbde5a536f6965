package mailer

import (
	"encoding/json"
	"testing"

	"github.com/chuk05/myy-signature-myy-style/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer("Test Salon")
	require.NoError(t, err)
	return r
}

func marshal(t *testing.T, v any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestRenderEveryType(t *testing.T) {
	r := newRenderer(t)

	appointment := domain.AppointmentMailData{
		FullName:    "Jane Doe",
		ServiceName: "Silk Press",
		StaffName:   "Keisha Brown",
		Date:        "2026-10-20",
		Time:        "10:30",
		Duration:    90,
		Price:       85,
		SalonName:   "Test Salon",
		SalonPhone:  "(404) 555-0123",
	}

	tests := []struct {
		name     string
		mailType domain.MailType
		data     any
		subject  string
		contains []string
	}{
		{
			name:     "new staff account",
			mailType: domain.MailNewStaffAccount,
			data:     domain.NewStaffAccountMailData{FullName: "Keisha Brown", Email: "keisha@example.com", Password: "s3cret", SalonName: "Test Salon"},
			subject:  "Test Salon - Your staff account",
			contains: []string{"Keisha Brown", "keisha@example.com", "s3cret"},
		},
		{
			name:     "reset password",
			mailType: domain.MailResetPassword,
			data:     domain.ResetPasswordMailData{FullName: "Jane Doe", OTP: "123456", Expiration: 15},
			subject:  "Test Salon - Password reset code",
			contains: []string{"Jane Doe", "123456", "15 minutes"},
		},
		{
			name:     "booking confirmation",
			mailType: domain.MailBookingConfirmation,
			data:     appointment,
			subject:  "Test Salon - Appointment confirmed",
			contains: []string{"Silk Press", "Keisha Brown", "2026-10-20", "10:30", "$85.00"},
		},
		{
			name:     "appointment reminder",
			mailType: domain.MailAppointmentReminder,
			data:     appointment,
			subject:  "Test Salon - Appointment reminder",
			contains: []string{"Silk Press", "10:30", "(404) 555-0123"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject, body, err := r.Render(tt.mailType, marshal(t, tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.subject, subject)
			for _, s := range tt.contains {
				assert.Contains(t, body, s)
			}
		})
	}
}

func TestRenderEscapesHTML(t *testing.T) {
	r := newRenderer(t)

	_, body, err := r.Render(domain.MailResetPassword, marshal(t, domain.ResetPasswordMailData{FullName: "<script>"}))
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestRenderUnknownType(t *testing.T) {
	r := newRenderer(t)

	_, _, err := r.Render("newsletter", json.RawMessage(`{}`))
	assert.ErrorIs(t, err, ErrUnknownMailType)
}

func TestRenderBadPayload(t *testing.T) {
	r := newRenderer(t)

	_, _, err := r.Render(domain.MailResetPassword, json.RawMessage(`"not an object"`))
	assert.Error(t, err)
}

func TestBuild(t *testing.T) {
	r := newRenderer(t)

	body := marshal(t, domain.MailMessage{
		Type: domain.MailResetPassword,
		To:   "jane@example.com",
		Data: domain.ResetPasswordMailData{FullName: "Jane Doe", OTP: "654321", Expiration: 15},
	})

	m, err := r.Build("salon@example.com", body)
	require.NoError(t, err)

	assert.Equal(t, []string{"Test Salon - Password reset code"}, m.GetGenHeader(mail.HeaderSubject))
	to := m.GetToString()
	require.Len(t, to, 1)
	assert.Contains(t, to[0], "jane@example.com")
}

func TestBuildInvalidRecipient(t *testing.T) {
	r := newRenderer(t)

	body := marshal(t, domain.MailMessage{
		Type: domain.MailResetPassword,
		To:   "not-an-address",
		Data: domain.ResetPasswordMailData{},
	})

	_, err := r.Build("salon@example.com", body)
	assert.Error(t, err)
}
