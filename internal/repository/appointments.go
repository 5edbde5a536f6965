package repository

import (
	"database/sql"
	"time"

	"github.com/chuk05/myy-signature-myy-style/internal/domain"
	"github.com/google/uuid"
)

// GetConfirmedAppointmentTimes returns the HH:MM start times of the confirmed
// appointments of a staff member on date.
func (r *Repository) GetConfirmedAppointmentTimes(staffID uuid.UUID, date string) ([]string, error) {
	query := `
		SELECT to_char(appointment_time, 'HH24:MI')
		FROM appointments
		WHERE staff_id = $1 AND appointment_date = $2 AND status = 'confirmed'
		ORDER BY appointment_time
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, staffID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	times := make([]string, 0)
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		times = append(times, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return times, nil
}

func (r *Repository) GetCustomerByEmail(email string) (*domain.Customer, error) {
	query := `SELECT id, email, phone, full_name, created_at FROM customers WHERE email = $1`

	ctx, cancel := r.queryContext()
	defer cancel()

	c := &domain.Customer{}
	if err := r.dbpool.QueryRowContext(ctx, query, email).Scan(&c.ID, &c.Email, &c.Phone, &c.FullName, &c.CreatedAt); err != nil {
		return nil, err
	}

	return c, nil
}

func (r *Repository) CreateCustomer(customer *domain.Customer) error {
	query := `
		INSERT INTO customers (email, phone, full_name)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{customer.Email, customer.Phone, customer.FullName}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&customer.ID, &customer.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) CreateAppointment(appointment *domain.Appointment) error {
	query := `
		INSERT INTO appointments (customer_id, staff_id, service_id, appointment_date, appointment_time, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{
		appointment.CustomerID,
		appointment.StaffID,
		appointment.ServiceID,
		appointment.Date,
		appointment.Time,
		appointment.Status,
		appointment.Notes,
	}
	dst := []any{&appointment.ID, &appointment.CreatedAt, &appointment.UpdatedAt, &appointment.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

const appointmentSelect = `
	SELECT
		a.id,
		a.customer_id,
		a.staff_id,
		a.service_id,
		to_char(a.appointment_date, 'YYYY-MM-DD'),
		to_char(a.appointment_time, 'HH24:MI'),
		a.status,
		a.notes,
		a.reminder_sent_at,
		a.created_at,
		a.updated_at,
		a.version,
		cu.id, cu.email, cu.phone, cu.full_name, cu.created_at,
		sv.id, sv.name, sv.duration, sv.price::float8,
		p.id, p.full_name, p.email
	FROM appointments a
	LEFT JOIN customers cu ON cu.id = a.customer_id
	LEFT JOIN services sv ON sv.id = a.service_id
	LEFT JOIN profiles p ON p.id = a.staff_id
`

type appointmentRow struct {
	a domain.Appointment

	customerID                                 sql.Null[uuid.UUID]
	customerEmail, customerPhone, customerName sql.NullString
	customerCreatedAt                          sql.NullTime
	serviceID                                  sql.Null[uuid.UUID]
	serviceName                                sql.NullString
	serviceDuration                            sql.NullInt32
	servicePrice                               sql.NullFloat64
	staffID                                    sql.Null[uuid.UUID]
	staffName, staffEmail                      sql.NullString
}

func (row *appointmentRow) dst() []any {
	a := &row.a
	return []any{
		&a.ID, &a.CustomerID, &a.StaffID, &a.ServiceID, &a.Date, &a.Time, &a.Status, &a.Notes,
		&a.ReminderSentAt, &a.CreatedAt, &a.UpdatedAt, &a.Version,
		&row.customerID, &row.customerEmail, &row.customerPhone, &row.customerName, &row.customerCreatedAt,
		&row.serviceID, &row.serviceName, &row.serviceDuration, &row.servicePrice,
		&row.staffID, &row.staffName, &row.staffEmail,
	}
}

func (row *appointmentRow) appointment() *domain.Appointment {
	a := row.a
	if row.customerID.Valid {
		a.Customer = &domain.Customer{
			ID:        row.customerID.V,
			Email:     row.customerEmail.String,
			Phone:     row.customerPhone.String,
			FullName:  row.customerName.String,
			CreatedAt: row.customerCreatedAt.Time,
		}
	}
	if row.serviceID.Valid {
		a.Service = &domain.Service{
			ID:       row.serviceID.V,
			Name:     row.serviceName.String,
			Duration: row.serviceDuration.Int32,
			Price:    row.servicePrice.Float64,
		}
	}
	if row.staffID.Valid {
		a.Staff = &domain.AppointmentStaff{
			ID:       row.staffID.V,
			FullName: row.staffName.String,
			Email:    row.staffEmail.String,
		}
	}
	return &a
}

func (r *Repository) queryAppointments(query string, args ...any) ([]*domain.Appointment, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		row := &appointmentRow{}
		if err := rows.Scan(row.dst()...); err != nil {
			return nil, err
		}
		appointments = append(appointments, row.appointment())
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return appointments, nil
}

type AppointmentFilter struct {
	Date   *string
	Status *domain.AppointmentStatus
}

func (r *Repository) GetAppointments(filter AppointmentFilter) ([]*domain.Appointment, error) {
	query := appointmentSelect + `
		WHERE ($1::date IS NULL OR a.appointment_date = $1::date)
		AND ($2::text IS NULL OR a.status = $2::text)
		ORDER BY a.appointment_date DESC, a.appointment_time DESC
	`

	return r.queryAppointments(query, filter.Date, filter.Status)
}

func (r *Repository) GetAppointmentsByStaff(staffID uuid.UUID) ([]*domain.Appointment, error) {
	query := appointmentSelect + `
		WHERE a.staff_id = $1
		ORDER BY a.appointment_date DESC, a.appointment_time DESC
	`

	return r.queryAppointments(query, staffID)
}

func (r *Repository) GetAppointmentByID(id uuid.UUID) (*domain.Appointment, error) {
	query := appointmentSelect + ` WHERE a.id = $1`

	ctx, cancel := r.queryContext()
	defer cancel()

	row := &appointmentRow{}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(row.dst()...); err != nil {
		return nil, err
	}

	return row.appointment(), nil
}

func (r *Repository) UpdateAppointmentStatus(appointment *domain.Appointment) error {
	query := `
		UPDATE appointments
		SET status = $1, updated_at = now(), version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING updated_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{appointment.Status, appointment.ID, appointment.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&appointment.UpdatedAt, &appointment.Version); err != nil {
		return err
	}

	return nil
}

// GetAppointmentsNeedingReminder returns confirmed appointments on date that
// have not had a reminder queued yet.
func (r *Repository) GetAppointmentsNeedingReminder(date string) ([]*domain.Appointment, error) {
	query := appointmentSelect + `
		WHERE a.appointment_date = $1 AND a.status = 'confirmed' AND a.reminder_sent_at IS NULL
		ORDER BY a.appointment_time
	`

	return r.queryAppointments(query, date)
}

func (r *Repository) MarkReminderSent(id uuid.UUID, at time.Time) error {
	query := `UPDATE appointments SET reminder_sent_at = $1, updated_at = now(), version = version + 1 WHERE id = $2`

	ctx, cancel := r.queryContext()
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, at, id)
	return err
}

// CompleteAppointmentsBefore marks every confirmed appointment starting at or
// before the given wall clock moment as completed. It returns how many rows
// changed.
func (r *Repository) CompleteAppointmentsBefore(date, clock string) (int64, error) {
	query := `
		UPDATE appointments
		SET status = 'completed', updated_at = now(), version = version + 1
		WHERE status = 'confirmed'
		AND (appointment_date < $1::date OR (appointment_date = $1::date AND appointment_time <= $2::time))
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	result, err := r.dbpool.ExecContext(ctx, query, date, clock)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

func (r *Repository) GetDashboardStats(today string) (*domain.DashboardStats, error) {
	query := `
		SELECT
			(SELECT count(*) FROM staff_profiles WHERE is_active),
			(SELECT count(*) FROM services WHERE is_active),
			(SELECT count(*) FROM appointments WHERE appointment_date = $1::date),
			(SELECT count(*) FROM appointments)
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	stats := &domain.DashboardStats{}
	dst := []any{&stats.TotalStaff, &stats.TotalServices, &stats.TodayAppointments, &stats.TotalAppointments}
	if err := r.dbpool.QueryRowContext(ctx, query, today).Scan(dst...); err != nil {
		return nil, err
	}

	return stats, nil
}
