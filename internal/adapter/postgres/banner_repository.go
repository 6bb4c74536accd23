package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"banner-engine/internal/core/domain"
	"banner-engine/internal/core/port"
)

// uniqueViolation is the postgres error code raised when a partial unique
// index rejects an insert or update.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// BannerRepository implements port.BannerRepository using pgxpool. Name
// uniqueness lives in a partial unique index scoped to active rows, so
// soft-deleted banners keep their names without blocking reuse.
type BannerRepository struct {
	pool *pgxpool.Pool
}

func NewBannerRepository(pool *pgxpool.Pool) *BannerRepository {
	return &BannerRepository{pool: pool}
}

const bannerColumns = `b.id, b.name, b.body, b.price, b.active, b.created_at, b.updated_at,
	(SELECT COALESCE(array_agg(bc.category_id ORDER BY bc.category_id), '{}')
	   FROM banner_categories bc WHERE bc.banner_id = b.id)`

func scanBanner(row pgx.CollectableRow) (domain.Banner, error) {
	var b domain.Banner
	err := row.Scan(&b.ID, &b.Name, &b.Text, &b.Price, &b.Active, &b.CreatedAt, &b.UpdatedAt, &b.CategoryIDs)
	return b, err
}

// FindActiveByAnyCategoryKey returns active banners attached to at least
// one active category whose request key is in keys. Matching is
// case-sensitive.
func (r *BannerRepository) FindActiveByAnyCategoryKey(ctx context.Context, keys []string) ([]domain.Banner, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+bannerColumns+`
		FROM banners b
		WHERE b.active
		  AND EXISTS (
			SELECT 1
			FROM banner_categories bc
			JOIN categories c ON c.id = bc.category_id
			WHERE bc.banner_id = b.id AND c.active AND c.request_key = ANY($1))`,
		keys)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanBanner)
}

func (r *BannerRepository) Create(ctx context.Context, b domain.Banner) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	var id int64
	err = tx.QueryRow(ctx, `
		INSERT INTO banners (name, body, price, active, created_at, updated_at)
		VALUES ($1, $2, $3, true, now(), now())
		RETURNING id`,
		b.Name, b.Text, b.Price).Scan(&id)
	if isUniqueViolation(err) {
		return 0, port.ErrBannerExists
	}
	if err != nil {
		return 0, err
	}
	if err = r.replaceCategories(ctx, tx, id, b.CategoryIDs); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *BannerRepository) Update(ctx context.Context, b domain.Banner) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	tag, err := tx.Exec(ctx, `
		UPDATE banners SET name = $2, body = $3, price = $4, updated_at = now()
		WHERE id = $1 AND active`,
		b.ID, b.Name, b.Text, b.Price)
	if isUniqueViolation(err) {
		return port.ErrBannerExists
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return port.ErrBannerNotFound
	}
	if _, err = tx.Exec(ctx, `DELETE FROM banner_categories WHERE banner_id = $1`, b.ID); err != nil {
		return err
	}
	err = r.replaceCategories(ctx, tx, b.ID, b.CategoryIDs)
	return err
}

// SoftDelete marks the banner inactive. The name is left untouched;
// reactivation is not supported.
func (r *BannerRepository) SoftDelete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE banners SET active = false, updated_at = now()
		WHERE id = $1 AND active`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return port.ErrBannerNotFound
	}
	return nil
}

func (r *BannerRepository) SearchByName(ctx context.Context, name string) ([]domain.Banner, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+bannerColumns+`
		FROM banners b
		WHERE b.active AND b.name ILIKE '%' || $1 || '%'
		ORDER BY b.id`, name)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanBanner)
}

func (r *BannerRepository) FindActiveByCategoryID(ctx context.Context, categoryID int64) ([]domain.Banner, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+bannerColumns+`
		FROM banners b
		JOIN banner_categories bc ON bc.banner_id = b.id
		WHERE b.active AND bc.category_id = $1
		ORDER BY b.id`, categoryID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanBanner)
}

func (r *BannerRepository) replaceCategories(ctx context.Context, tx pgx.Tx, bannerID int64, categoryIDs []int64) error {
	for _, catID := range categoryIDs {
		_, err := tx.Exec(ctx, `
			INSERT INTO banner_categories (banner_id, category_id)
			VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			bannerID, catID)
		if err != nil {
			return err
		}
	}
	return nil
}
