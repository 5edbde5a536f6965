// Package mailer turns queued mail messages into rendered HTML e-mails and
// sends them over SMTP.
package mailer

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"

	"github.com/chuk05/myy-signature-myy-style/internal/domain"
	"github.com/wneessen/go-mail"
)

//go:embed templates/*.html
var templateFS embed.FS

var ErrUnknownMailType = errors.New("unsupported mail type")

type entry struct {
	file    string
	subject string
	data    func() any
}

var catalogue = map[domain.MailType]entry{
	domain.MailNewStaffAccount: {
		file:    "new_staff_account.html",
		subject: "%s - Your staff account",
		data:    func() any { return &domain.NewStaffAccountMailData{} },
	},
	domain.MailResetPassword: {
		file:    "reset_password.html",
		subject: "%s - Password reset code",
		data:    func() any { return &domain.ResetPasswordMailData{} },
	},
	domain.MailBookingConfirmation: {
		file:    "booking_confirmation.html",
		subject: "%s - Appointment confirmed",
		data:    func() any { return &domain.AppointmentMailData{} },
	},
	domain.MailAppointmentReminder: {
		file:    "appointment_reminder.html",
		subject: "%s - Appointment reminder",
		data:    func() any { return &domain.AppointmentMailData{} },
	},
}

// Renderer renders the HTML body and subject of every known mail type.
type Renderer struct {
	salonName string
	templates map[domain.MailType]*template.Template
}

func NewRenderer(salonName string) (*Renderer, error) {
	templates := make(map[domain.MailType]*template.Template, len(catalogue))
	for t, e := range catalogue {
		tmpl, err := template.ParseFS(templateFS, "templates/"+e.file)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", e.file, err)
		}
		templates[t] = tmpl
	}

	return &Renderer{salonName: salonName, templates: templates}, nil
}

// Render decodes data into the payload type of mailType and executes its
// template.
func (r *Renderer) Render(mailType domain.MailType, data json.RawMessage) (subject, body string, err error) {
	e, ok := catalogue[mailType]
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrUnknownMailType, mailType)
	}

	payload := e.data()
	if err := json.Unmarshal(data, payload); err != nil {
		return "", "", fmt.Errorf("decode %s payload: %w", mailType, err)
	}

	buf := &bytes.Buffer{}
	if err := r.templates[mailType].Execute(buf, payload); err != nil {
		return "", "", err
	}

	return fmt.Sprintf(e.subject, r.salonName), buf.String(), nil
}

type queuedMessage struct {
	Type domain.MailType `json:"type"`
	To   string          `json:"to"`
	Data json.RawMessage `json:"data"`
}

// Build turns a raw queue message into a go-mail message ready to be sent.
func (r *Renderer) Build(from string, body []byte) (*mail.Msg, error) {
	qm := queuedMessage{}
	if err := json.Unmarshal(body, &qm); err != nil {
		return nil, err
	}

	subject, html, err := r.Render(qm.Type, qm.Data)
	if err != nil {
		return nil, err
	}

	m := mail.NewMsg()
	if err := m.From(from); err != nil {
		return nil, err
	}
	if err := m.To(qm.To); err != nil {
		return nil, err
	}
	m.Subject(subject)
	m.SetBodyString(mail.TypeTextHTML, html)

	return m, nil
}
