package repository

import (
	"database/sql"

	"github.com/chuk05/myy-signature-myy-style/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const staffSelect = `
	SELECT
		p.id,
		p.email,
		p.full_name,
		p.avatar_url,
		p.role,
		s.position,
		s.bio,
		s.specialization,
		s.experience_years,
		s.is_active,
		to_char(s.hire_date, 'YYYY-MM-DD'),
		s.phone,
		s.created_at,
		s.updated_at,
		s.version
	FROM staff_profiles s
	INNER JOIN profiles p ON p.id = s.id
`

func staffDst(s *domain.Staff) []any {
	// pgtype.Map caches scan plans and is not safe for concurrent use
	m := pgtype.NewMap()
	return []any{
		&s.ID,
		&s.Email,
		&s.FullName,
		&s.AvatarURL,
		&s.Role,
		&s.Position,
		&s.Bio,
		m.SQLScanner(&s.Specialization),
		&s.ExperienceYears,
		&s.IsActive,
		&s.HireDate,
		&s.Phone,
		&s.CreatedAt,
		&s.UpdatedAt,
		&s.Version,
	}
}

// GetActiveStaff returns every active staff member together with the active
// services they are assigned to.
func (r *Repository) GetActiveStaff() ([]*domain.Staff, error) {
	query := staffSelect + ` WHERE s.is_active ORDER BY p.full_name`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	staff := make([]*domain.Staff, 0)
	byID := make(map[uuid.UUID]*domain.Staff)
	for rows.Next() {
		s := &domain.Staff{Services: make([]domain.Service, 0)}
		if err := rows.Scan(staffDst(s)...); err != nil {
			return nil, err
		}
		staff = append(staff, s)
		byID[s.ID] = s
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(staff) == 0 {
		return staff, nil
	}

	assignments, err := r.getStaffServices(nil)
	if err != nil {
		return nil, err
	}
	for staffID, services := range assignments {
		if s, ok := byID[staffID]; ok {
			s.Services = services
		}
	}

	return staff, nil
}

func (r *Repository) GetStaffByID(id uuid.UUID) (*domain.Staff, error) {
	query := staffSelect + ` WHERE s.id = $1`

	ctx, cancel := r.queryContext()
	defer cancel()

	s := &domain.Staff{Services: make([]domain.Service, 0)}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(staffDst(s)...); err != nil {
		return nil, err
	}

	assignments, err := r.getStaffServices(&id)
	if err != nil {
		return nil, err
	}
	if services, ok := assignments[id]; ok {
		s.Services = services
	}

	return s, nil
}

// getStaffServices groups active assigned services by staff ID. A nil staffID
// loads the assignments of every staff member.
func (r *Repository) getStaffServices(staffID *uuid.UUID) (map[uuid.UUID][]domain.Service, error) {
	query := `
		SELECT ss.staff_id, ` + serviceColumns + `
		FROM staff_services ss
		INNER JOIN services sv ON sv.id = ss.service_id
		WHERE sv.is_active AND ($1::uuid IS NULL OR ss.staff_id = $1)
		ORDER BY sv.display_order, sv.name
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, staffID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[uuid.UUID][]domain.Service)
	for rows.Next() {
		var id uuid.UUID
		service := domain.Service{}
		if err := rows.Scan(append([]any{&id}, serviceDst(&service)...)...); err != nil {
			return nil, err
		}
		result[id] = append(result[id], service)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// CreateStaff inserts the account profile and the staff profile in one
// transaction. profile.ID is filled in on success.
func (r *Repository) CreateStaff(profile *domain.Profile, staff *domain.Staff) error {
	ctx, cancel := r.txContext()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	insertProfile := `
		INSERT INTO profiles (email, password_hash, full_name, phone, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at, version
	`
	profileArgs := []any{profile.Email, profile.PasswordHash, profile.FullName, profile.Phone, profile.Role}
	profileFields := []any{&profile.ID, &profile.CreatedAt, &profile.UpdatedAt, &profile.Version}
	if err := tx.QueryRowContext(ctx, insertProfile, profileArgs...).Scan(profileFields...); err != nil {
		return err
	}

	insertStaff := `
		INSERT INTO staff_profiles (id, position, bio, specialization, experience_years, is_active, hire_date, phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at, version
	`
	if staff.Specialization == nil {
		staff.Specialization = []string{}
	}
	staffArgs := []any{profile.ID, staff.Position, staff.Bio, staff.Specialization, staff.ExperienceYears, staff.IsActive, staff.HireDate, staff.Phone}
	if err := tx.QueryRowContext(ctx, insertStaff, staffArgs...).Scan(&staff.CreatedAt, &staff.UpdatedAt, &staff.Version); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	staff.ID = profile.ID
	staff.Email = profile.Email
	staff.FullName = profile.FullName
	staff.Role = profile.Role
	if staff.Services == nil {
		staff.Services = make([]domain.Service, 0)
	}

	return nil
}

// UpdateStaff writes the staff profile and the profile name fields together.
func (r *Repository) UpdateStaff(staff *domain.Staff) error {
	ctx, cancel := r.txContext()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	updateProfile := `
		UPDATE profiles
		SET full_name = $1, avatar_url = $2, updated_at = now(), version = version + 1
		WHERE id = $3
	`
	if _, err := tx.ExecContext(ctx, updateProfile, staff.FullName, staff.AvatarURL, staff.ID); err != nil {
		return err
	}

	updateStaff := `
		UPDATE staff_profiles
		SET
			position = $1,
			bio = $2,
			specialization = $3,
			experience_years = $4,
			is_active = $5,
			hire_date = $6,
			phone = $7,
			updated_at = now(),
			version = version + 1
		WHERE id = $8 AND version = $9
		RETURNING updated_at, version
	`
	args := []any{staff.Position, staff.Bio, staff.Specialization, staff.ExperienceYears, staff.IsActive, staff.HireDate, staff.Phone, staff.ID, staff.Version}
	if err := tx.QueryRowContext(ctx, updateStaff, args...).Scan(&staff.UpdatedAt, &staff.Version); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteStaff removes the account; the staff profile, assignments and
// working hours follow through ON DELETE CASCADE.
func (r *Repository) DeleteStaff(id uuid.UUID) error {
	query := `DELETE FROM profiles WHERE id = $1 AND role = 'staff'`

	ctx, cancel := r.queryContext()
	defer cancel()

	result, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *Repository) ReplaceStaffServices(staffID uuid.UUID, serviceIDs []uuid.UUID) error {
	ctx, cancel := r.txContext()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM staff_services WHERE staff_id = $1`, staffID); err != nil {
		return err
	}

	insert := `INSERT INTO staff_services (staff_id, service_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	for _, serviceID := range serviceIDs {
		if _, err := tx.ExecContext(ctx, insert, staffID, serviceID); err != nil {
			return err
		}
	}

	return tx.Commit()
}
