package port

import (
	"context"
	"errors"

	"banner-engine/internal/core/domain"
)

var (
	ErrBannerExists     = errors.New("banner with this name already exists")
	ErrBannerNotFound   = errors.New("banner not found")
	ErrCategoryExists   = errors.New("category with this name or request key already exists")
	ErrCategoryNotFound = errors.New("category not found")
	ErrDependentBanners = errors.New("category has dependent active banners")
)

// BannerRepository is the catalog store for banners. Implementations must
// scope every read to active records: a soft-deleted banner is never
// returned from any query method. Uniqueness of Name is enforced among
// active banners only, so a deactivated record keeps its original name.
type BannerRepository interface {
	// FindActiveByAnyCategoryKey returns active banners whose category set
	// intersects keys. Matching is case-sensitive against each category's
	// request key, not its display name.
	FindActiveByAnyCategoryKey(ctx context.Context, keys []string) ([]domain.Banner, error)

	// Create stores a new banner and returns its assigned id. It fails
	// with ErrBannerExists when the name collides with an active banner.
	Create(ctx context.Context, b domain.Banner) (int64, error)

	// Update replaces the banner's name, text, price and category set.
	// Fails with ErrBannerNotFound when the id is absent or inactive and
	// ErrBannerExists on a name collision with another active banner.
	Update(ctx context.Context, b domain.Banner) error

	// SoftDelete marks the banner inactive. Deleting an absent or already
	// inactive banner fails with ErrBannerNotFound.
	SoftDelete(ctx context.Context, id int64) error

	// SearchByName returns active banners whose name contains the given
	// substring, case-insensitively.
	SearchByName(ctx context.Context, name string) ([]domain.Banner, error)

	// FindActiveByCategoryID returns active banners referencing the category.
	FindActiveByCategoryID(ctx context.Context, categoryID int64) ([]domain.Banner, error)
}

// CategoryRepository is the catalog store for categories. The same
// active-scoping rules as BannerRepository apply.
type CategoryRepository interface {
	// Create stores a new category and returns its assigned id. Fails with
	// ErrCategoryExists when the name or request key collides with an
	// active category.
	Create(ctx context.Context, c domain.Category) (int64, error)

	// Update replaces the category's name and request key, with the same
	// uniqueness checks excluding the category itself.
	Update(ctx context.Context, c domain.Category) error

	// SoftDelete marks the category inactive. Fails with
	// ErrCategoryNotFound when absent or already inactive.
	SoftDelete(ctx context.Context, id int64) error

	// SearchByName returns active categories whose name contains the given
	// substring, case-insensitively.
	SearchByName(ctx context.Context, name string) ([]domain.Category, error)

	// FindByID returns an active category by id, or ErrCategoryNotFound.
	FindByID(ctx context.Context, id int64) (*domain.Category, error)

	// ExistsActive reports whether every id refers to an active category.
	ExistsActive(ctx context.Context, ids []int64) (bool, error)
}
