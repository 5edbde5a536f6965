package repository

import (
	"database/sql"

	"github.com/chuk05/myy-signature-myy-style/internal/domain"
	"github.com/google/uuid"
)

const serviceColumns = `
	sv.id,
	sv.category_id,
	sv.name,
	sv.description,
	sv.duration,
	sv.price::float8,
	sv.image,
	sv.is_active,
	sv.display_order,
	sv.created_at,
	sv.updated_at,
	sv.version
`

func serviceDst(s *domain.Service) []any {
	return []any{
		&s.ID,
		&s.CategoryID,
		&s.Name,
		&s.Description,
		&s.Duration,
		&s.Price,
		&s.Image,
		&s.IsActive,
		&s.DisplayOrder,
		&s.CreatedAt,
		&s.UpdatedAt,
		&s.Version,
	}
}

// GetActiveServices lists active services with their category. A nil
// categoryID returns services of every category.
func (r *Repository) GetActiveServices(categoryID *uuid.UUID) ([]*domain.Service, error) {
	query := `
		SELECT ` + serviceColumns + `,
			c.id, c.name, c.slug, c.description, c.color, c.icon_name, c.sort_order, c.is_active, c.created_at
		FROM services sv
		LEFT JOIN categories c ON c.id = sv.category_id
		WHERE sv.is_active AND ($1::uuid IS NULL OR sv.category_id = $1)
		ORDER BY sv.display_order, sv.name
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		service := &domain.Service{}

		var (
			cID                                sql.Null[uuid.UUID]
			cName, cSlug, cDesc, cColor, cIcon sql.NullString
			cSort                              sql.NullInt32
			cActive                            sql.NullBool
			cCreatedAt                         sql.NullTime
		)
		dst := append(serviceDst(service), &cID, &cName, &cSlug, &cDesc, &cColor, &cIcon, &cSort, &cActive, &cCreatedAt)
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}

		if cID.Valid {
			service.Category = &domain.Category{
				ID:          cID.V,
				Name:        cName.String,
				Slug:        cSlug.String,
				Description: cDesc.String,
				Color:       cColor.String,
				IconName:    cIcon.String,
				SortOrder:   cSort.Int32,
				IsActive:    cActive.Bool,
				CreatedAt:   cCreatedAt.Time,
			}
		}

		services = append(services, service)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return services, nil
}

func (r *Repository) GetServiceByID(id uuid.UUID) (*domain.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services sv WHERE sv.id = $1`

	ctx, cancel := r.queryContext()
	defer cancel()

	service := &domain.Service{}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(serviceDst(service)...); err != nil {
		return nil, err
	}

	return service, nil
}

func (r *Repository) CreateService(service *domain.Service) error {
	query := `
		INSERT INTO services (category_id, name, description, duration, price, image, is_active, display_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{
		service.CategoryID,
		service.Name,
		service.Description,
		service.Duration,
		service.Price,
		service.Image,
		service.IsActive,
		service.DisplayOrder,
	}
	dst := []any{&service.ID, &service.CreatedAt, &service.UpdatedAt, &service.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateService(service *domain.Service) error {
	query := `
		UPDATE services
		SET
			category_id = $1,
			name = $2,
			description = $3,
			duration = $4,
			price = $5,
			image = $6,
			is_active = $7,
			display_order = $8,
			updated_at = now(),
			version = version + 1
		WHERE id = $9 AND version = $10
		RETURNING updated_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{
		service.CategoryID,
		service.Name,
		service.Description,
		service.Duration,
		service.Price,
		service.Image,
		service.IsActive,
		service.DisplayOrder,
		service.ID,
		service.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&service.UpdatedAt, &service.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteService(id uuid.UUID) error {
	query := `DELETE FROM services WHERE id = $1`

	ctx, cancel := r.queryContext()
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	return err
}
