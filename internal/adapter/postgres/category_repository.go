package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"banner-engine/internal/core/domain"
	"banner-engine/internal/core/port"
)

// CategoryRepository implements port.CategoryRepository using pgxpool.
// Both the name and the request key are guarded by partial unique indexes
// scoped to active rows.
type CategoryRepository struct {
	pool *pgxpool.Pool
}

func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

const categoryColumns = `id, name, request_key, active, created_at, updated_at`

func scanCategory(row pgx.CollectableRow) (domain.Category, error) {
	var c domain.Category
	err := row.Scan(&c.ID, &c.Name, &c.RequestKey, &c.Active, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *CategoryRepository) Create(ctx context.Context, c domain.Category) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO categories (name, request_key, active, created_at, updated_at)
		VALUES ($1, $2, true, now(), now())
		RETURNING id`,
		c.Name, c.RequestKey).Scan(&id)
	if isUniqueViolation(err) {
		return 0, port.ErrCategoryExists
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *CategoryRepository) Update(ctx context.Context, c domain.Category) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE categories SET name = $2, request_key = $3, updated_at = now()
		WHERE id = $1 AND active`,
		c.ID, c.Name, c.RequestKey)
	if isUniqueViolation(err) {
		return port.ErrCategoryExists
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return port.ErrCategoryNotFound
	}
	return nil
}

func (r *CategoryRepository) SoftDelete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE categories SET active = false, updated_at = now()
		WHERE id = $1 AND active`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return port.ErrCategoryNotFound
	}
	return nil
}

func (r *CategoryRepository) SearchByName(ctx context.Context, name string) ([]domain.Category, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+categoryColumns+`
		FROM categories
		WHERE active AND name ILIKE '%' || $1 || '%'
		ORDER BY id`, name)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanCategory)
}

func (r *CategoryRepository) FindByID(ctx context.Context, id int64) (*domain.Category, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+categoryColumns+`
		FROM categories
		WHERE id = $1 AND active`, id)
	if err != nil {
		return nil, err
	}
	c, err := pgx.CollectOneRow(rows, scanCategory)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ExistsActive reports whether every distinct id refers to an active
// category.
func (r *CategoryRepository) ExistsActive(ctx context.Context, ids []int64) (bool, error) {
	distinct := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		distinct[id] = struct{}{}
	}
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT count(*) FROM categories WHERE active AND id = ANY($1)`, ids).Scan(&count)
	if err != nil {
		return false, err
	}
	return count == len(distinct), nil
}
