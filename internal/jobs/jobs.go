// Package jobs runs the periodic appointment housekeeping: reminder e-mails
// for the next day and automatic completion of past appointments.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chuk05/myy-signature-myy-style/internal/config"
	"github.com/chuk05/myy-signature-myy-style/internal/domain"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

type Store interface {
	GetAppointmentsNeedingReminder(date string) ([]*domain.Appointment, error)
	MarkReminderSent(id uuid.UUID, at time.Time) error
	CompleteAppointmentsBefore(date, clock string) (int64, error)
}

type Publisher interface {
	Publish(msg domain.MailMessage) error
}

type Runner struct {
	config    *config.Config
	store     Store
	publisher Publisher
	location  *time.Location
	now       func() time.Time
	cron      *cron.Cron
}

func NewRunner(cfg *config.Config, store Store, publisher Publisher, loc *time.Location) (*Runner, error) {
	r := &Runner{
		config:    cfg,
		store:     store,
		publisher: publisher,
		location:  loc,
		now:       time.Now,
		cron:      cron.New(cron.WithLocation(loc)),
	}

	if _, err := r.cron.AddFunc(cfg.Jobs.ReminderSpec, r.run("send reminders", r.SendReminders)); err != nil {
		return nil, fmt.Errorf("reminder schedule %q: %w", cfg.Jobs.ReminderSpec, err)
	}
	if _, err := r.cron.AddFunc(cfg.Jobs.CompletionSpec, r.run("complete appointments", r.CompletePastAppointments)); err != nil {
		return nil, fmt.Errorf("completion schedule %q: %w", cfg.Jobs.CompletionSpec, err)
	}

	return r, nil
}

func (r *Runner) run(name string, job func() error) func() {
	return func() {
		start := time.Now()
		if err := job(); err != nil {
			slog.Error("job failed", "job", name, "error", err)
			return
		}
		slog.Info("job finished", "job", name, "duration", time.Since(start))
	}
}

func (r *Runner) Start() {
	r.cron.Start()
}

// Stop stops scheduling and returns a context that is done once running
// jobs have returned.
func (r *Runner) Stop() context.Context {
	return r.cron.Stop()
}

// SendReminders queues a reminder for every confirmed appointment of the next
// salon-local day that has not had one yet. A failed publish leaves the
// appointment unmarked so the next run retries it.
func (r *Runner) SendReminders() error {
	tomorrow := r.now().In(r.location).AddDate(0, 0, 1).Format(time.DateOnly)

	appointments, err := r.store.GetAppointmentsNeedingReminder(tomorrow)
	if err != nil {
		return fmt.Errorf("get appointments for %s: %w", tomorrow, err)
	}

	sent := 0
	for _, a := range appointments {
		if a.Customer == nil {
			continue
		}

		msg := domain.MailMessage{
			Type: domain.MailAppointmentReminder,
			To:   a.Customer.Email,
			Data: r.reminderData(a),
		}
		if err := r.publisher.Publish(msg); err != nil {
			slog.Error("failed to queue reminder", "appointment_id", a.ID, "error", err)
			continue
		}

		if err := r.store.MarkReminderSent(a.ID, r.now()); err != nil {
			return fmt.Errorf("mark reminder sent for %s: %w", a.ID, err)
		}
		sent++
	}

	slog.Info("reminders queued", "date", tomorrow, "count", sent)
	return nil
}

func (r *Runner) reminderData(a *domain.Appointment) domain.AppointmentMailData {
	data := domain.AppointmentMailData{
		FullName:     a.Customer.FullName,
		Date:         a.Date,
		Time:         a.Time,
		SalonName:    r.config.Salon.Name,
		SalonAddress: r.config.Salon.Address,
		SalonPhone:   r.config.Salon.Phone,
	}
	if a.Service != nil {
		data.ServiceName = a.Service.Name
		data.Duration = a.Service.Duration
		data.Price = a.Service.Price
	}
	if a.Staff != nil {
		data.StaffName = a.Staff.FullName
	}
	return data
}

// CompletePastAppointments marks confirmed appointments that started more
// than the configured grace period ago as completed.
func (r *Runner) CompletePastAppointments() error {
	cutoff := r.now().In(r.location).Add(-time.Duration(r.config.Jobs.CompletionGrace) * time.Minute)

	n, err := r.store.CompleteAppointmentsBefore(cutoff.Format(time.DateOnly), cutoff.Format("15:04"))
	if err != nil {
		return fmt.Errorf("complete appointments before %s: %w", cutoff.Format(time.DateTime), err)
	}

	if n > 0 {
		slog.Info("appointments completed", "count", n)
	}
	return nil
}
