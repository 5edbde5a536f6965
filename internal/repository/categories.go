package repository

import (
	"github.com/chuk05/myy-signature-myy-style/internal/domain"
	"github.com/google/uuid"
)

const categoryColumns = `id, name, slug, description, color, icon_name, sort_order, is_active, created_at`

func categoryDst(c *domain.Category) []any {
	return []any{&c.ID, &c.Name, &c.Slug, &c.Description, &c.Color, &c.IconName, &c.SortOrder, &c.IsActive, &c.CreatedAt}
}

func (r *Repository) GetActiveCategories() ([]*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE is_active ORDER BY sort_order, name`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]*domain.Category, 0)
	for rows.Next() {
		category := &domain.Category{}
		if err := rows.Scan(categoryDst(category)...); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return categories, nil
}

func (r *Repository) GetCategoryByID(id uuid.UUID) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`

	ctx, cancel := r.queryContext()
	defer cancel()

	category := &domain.Category{}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(categoryDst(category)...); err != nil {
		return nil, err
	}

	return category, nil
}

func (r *Repository) GetActiveCategoryBySlug(slug string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE slug = $1 AND is_active`

	ctx, cancel := r.queryContext()
	defer cancel()

	category := &domain.Category{}
	if err := r.dbpool.QueryRowContext(ctx, query, slug).Scan(categoryDst(category)...); err != nil {
		return nil, err
	}

	return category, nil
}

func (r *Repository) CreateCategory(category *domain.Category) error {
	query := `
		INSERT INTO categories (name, slug, description, color, icon_name, sort_order, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{category.Name, category.Slug, category.Description, category.Color, category.IconName, category.SortOrder, category.IsActive}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&category.ID, &category.CreatedAt); err != nil {
		return err
	}

	return nil
}

// UpsertCategories inserts the given categories, updating rows that already
// exist with the same name. It runs in a single transaction.
func (r *Repository) UpsertCategories(categories []*domain.Category) error {
	ctx, cancel := r.txContext()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO categories (name, slug, description, color, icon_name, sort_order, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (name) DO UPDATE SET
			description = EXCLUDED.description,
			color = EXCLUDED.color,
			icon_name = EXCLUDED.icon_name,
			sort_order = EXCLUDED.sort_order,
			is_active = EXCLUDED.is_active
		RETURNING id, slug, created_at
	`
	for _, c := range categories {
		args := []any{c.Name, c.Slug, c.Description, c.Color, c.IconName, c.SortOrder, c.IsActive}
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.Slug, &c.CreatedAt); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *Repository) UpdateCategory(category *domain.Category) error {
	query := `
		UPDATE categories
		SET
			name = $1,
			slug = $2,
			description = $3,
			color = $4,
			icon_name = $5,
			sort_order = $6,
			is_active = $7
		WHERE id = $8
		RETURNING created_at
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{category.Name, category.Slug, category.Description, category.Color, category.IconName, category.SortOrder, category.IsActive, category.ID}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&category.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteCategory(id uuid.UUID) error {
	query := `DELETE FROM categories WHERE id = $1`

	ctx, cancel := r.queryContext()
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	return err
}
