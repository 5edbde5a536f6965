package repository

import (
	"github.com/chuk05/myy-signature-myy-style/internal/domain"
	"github.com/google/uuid"
)

const profileColumns = `id, email, password_hash, full_name, phone, avatar_url, role, created_at, updated_at, version`

func profileDst(p *domain.Profile) []any {
	return []any{&p.ID, &p.Email, &p.PasswordHash, &p.FullName, &p.Phone, &p.AvatarURL, &p.Role, &p.CreatedAt, &p.UpdatedAt, &p.Version}
}

func (r *Repository) GetProfileByID(id uuid.UUID) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`

	ctx, cancel := r.queryContext()
	defer cancel()

	profile := &domain.Profile{}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(profileDst(profile)...); err != nil {
		return nil, err
	}

	return profile, nil
}

func (r *Repository) GetProfileByEmail(email string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE lower(email) = lower($1)`

	ctx, cancel := r.queryContext()
	defer cancel()

	profile := &domain.Profile{}
	if err := r.dbpool.QueryRowContext(ctx, query, email).Scan(profileDst(profile)...); err != nil {
		return nil, err
	}

	return profile, nil
}

func (r *Repository) CreateProfile(profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (email, password_hash, full_name, phone, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{profile.Email, profile.PasswordHash, profile.FullName, profile.Phone, profile.Role}
	dst := []any{&profile.ID, &profile.CreatedAt, &profile.UpdatedAt, &profile.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateProfile(profile *domain.Profile) error {
	query := `
		UPDATE profiles
		SET
			email = $1,
			password_hash = $2,
			full_name = $3,
			phone = $4,
			avatar_url = $5,
			role = $6,
			updated_at = now(),
			version = version + 1
		WHERE id = $7 AND version = $8
		RETURNING updated_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{profile.Email, profile.PasswordHash, profile.FullName, profile.Phone, profile.AvatarURL, profile.Role, profile.ID, profile.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&profile.UpdatedAt, &profile.Version); err != nil {
		return err
	}

	return nil
}
