package port

import (
	"context"
	"errors"

	"banner-engine/internal/core/domain"
)

var (
	// ErrEmptyQuery rejects a blank search parameter.
	ErrEmptyQuery = errors.New("search name cannot be empty")

	// ErrInvalidInput rejects a catalog payload failing basic validation,
	// e.g. a negative price or a blank required field.
	ErrInvalidInput = errors.New("invalid input")
)

// BannerUseCase manages the banner side of the catalog. All operations
// enforce the active-scoped uniqueness invariants of the catalog store.
type BannerUseCase interface {
	// CreateBanner validates that the name is free among active banners
	// and every referenced category exists and is active, then stores the
	// banner and returns its id.
	CreateBanner(ctx context.Context, b domain.Banner) (int64, error)

	// UpdateBanner replaces name, text, price and the category set of an
	// existing banner.
	UpdateBanner(ctx context.Context, b domain.Banner) error

	// DeleteBanner soft-deletes the banner, permanently excluding it from
	// selection. The name stays untouched; uniqueness is scoped to active
	// records so it is immediately reusable.
	DeleteBanner(ctx context.Context, id int64) error

	// SearchBanners finds active banners by case-insensitive name substring.
	SearchBanners(ctx context.Context, name string) ([]domain.Banner, error)
}

// CategoryUseCase manages the category side of the catalog.
type CategoryUseCase interface {
	// CreateCategory validates name and request-key uniqueness among
	// active categories, then stores the category and returns its id.
	CreateCategory(ctx context.Context, c domain.Category) (int64, error)

	// UpdateCategory replaces name and request key with the same
	// uniqueness checks, excluding the category itself.
	UpdateCategory(ctx context.Context, c domain.Category) error

	// DeleteCategory soft-deletes the category. When active banners still
	// reference it the call fails with ErrDependentBanners unless cascade
	// is true, in which case the dependent banners are soft-deleted too.
	DeleteCategory(ctx context.Context, id int64, cascade bool) error

	// SearchCategories finds active categories by case-insensitive name
	// substring.
	SearchCategories(ctx context.Context, name string) ([]domain.Category, error)
}
