package repository

import (
	"github.com/chuk05/myy-signature-myy-style/internal/domain"
	"github.com/google/uuid"
)

const workingHoursColumns = `id, staff_id, day_of_week, to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'), is_active`

func workingHoursDst(wh *domain.WorkingHours) []any {
	return []any{&wh.ID, &wh.StaffID, &wh.DayOfWeek, &wh.StartTime, &wh.EndTime, &wh.IsActive}
}

// GetActiveWorkingHours returns sql.ErrNoRows when the staff member has no
// active row for the weekday.
func (r *Repository) GetActiveWorkingHours(staffID uuid.UUID, weekday int32) (*domain.WorkingHours, error) {
	query := `
		SELECT ` + workingHoursColumns + `
		FROM working_hours
		WHERE staff_id = $1 AND day_of_week = $2 AND is_active
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	wh := &domain.WorkingHours{}
	if err := r.dbpool.QueryRowContext(ctx, query, staffID, weekday).Scan(workingHoursDst(wh)...); err != nil {
		return nil, err
	}

	return wh, nil
}

func (r *Repository) GetWorkingHoursByStaff(staffID uuid.UUID) ([]*domain.WorkingHours, error) {
	query := `SELECT ` + workingHoursColumns + ` FROM working_hours WHERE staff_id = $1 ORDER BY day_of_week`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, staffID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	hours := make([]*domain.WorkingHours, 0)
	for rows.Next() {
		wh := &domain.WorkingHours{}
		if err := rows.Scan(workingHoursDst(wh)...); err != nil {
			return nil, err
		}
		hours = append(hours, wh)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return hours, nil
}

// ReplaceWorkingHours swaps the whole weekly template of a staff member.
func (r *Repository) ReplaceWorkingHours(staffID uuid.UUID, hours []domain.WorkingHours) error {
	ctx, cancel := r.txContext()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM working_hours WHERE staff_id = $1`, staffID); err != nil {
		return err
	}

	insert := `
		INSERT INTO working_hours (staff_id, day_of_week, start_time, end_time, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	for i := range hours {
		wh := &hours[i]
		wh.StaffID = staffID
		args := []any{staffID, wh.DayOfWeek, wh.StartTime, wh.EndTime, wh.IsActive}
		if err := tx.QueryRowContext(ctx, insert, args...).Scan(&wh.ID); err != nil {
			return err
		}
	}

	return tx.Commit()
}
