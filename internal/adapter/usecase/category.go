package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"banner-engine/internal/core/domain"
	"banner-engine/internal/core/port"
)

// CategoryUseCase implements catalog management for categories.
type CategoryUseCase struct {
	categories port.CategoryRepository
	banners    port.BannerRepository
	logger     *slog.Logger
}

func NewCategoryUseCase(categories port.CategoryRepository, banners port.BannerRepository, logger *slog.Logger) *CategoryUseCase {
	return &CategoryUseCase{categories: categories, banners: banners, logger: logger}
}

// CreateCategory stores a new category after checking that both the name
// and the request key are free among active categories.
func (u *CategoryUseCase) CreateCategory(ctx context.Context, c domain.Category) (int64, error) {
	if strings.TrimSpace(c.Name) == "" || strings.TrimSpace(c.RequestKey) == "" {
		return 0, fmt.Errorf("%w: category name and request key are required", port.ErrInvalidInput)
	}
	id, err := u.categories.Create(ctx, c)
	if err != nil {
		return 0, err
	}
	u.logger.Info("category created",
		slog.Int64("category_id", id),
		slog.String("request_key", c.RequestKey),
	)
	return id, nil
}

// UpdateCategory replaces name and request key of an existing category.
func (u *CategoryUseCase) UpdateCategory(ctx context.Context, c domain.Category) error {
	if strings.TrimSpace(c.Name) == "" || strings.TrimSpace(c.RequestKey) == "" {
		return fmt.Errorf("%w: category name and request key are required", port.ErrInvalidInput)
	}
	if err := u.categories.Update(ctx, c); err != nil {
		return err
	}
	u.logger.Info("category updated", slog.Int64("category_id", c.ID))
	return nil
}

// DeleteCategory soft-deletes the category. When active banners still
// reference it the call fails with port.ErrDependentBanners unless
// cascade is true; with cascade the dependent banners are soft-deleted
// first, then the category.
func (u *CategoryUseCase) DeleteCategory(ctx context.Context, id int64, cascade bool) error {
	if _, err := u.categories.FindByID(ctx, id); err != nil {
		return err
	}

	dependents, err := u.banners.FindActiveByCategoryID(ctx, id)
	if err != nil {
		return err
	}
	if len(dependents) > 0 && !cascade {
		return port.ErrDependentBanners
	}
	for _, b := range dependents {
		if err := u.banners.SoftDelete(ctx, b.ID); err != nil {
			return fmt.Errorf("cascade delete banner %d: %w", b.ID, err)
		}
	}

	if err := u.categories.SoftDelete(ctx, id); err != nil {
		return err
	}
	u.logger.Info("category deleted",
		slog.Int64("category_id", id),
		slog.Int("cascaded_banners", len(dependents)),
	)
	return nil
}

// SearchCategories finds active categories by case-insensitive name
// substring.
func (u *CategoryUseCase) SearchCategories(ctx context.Context, name string) ([]domain.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, port.ErrEmptyQuery
	}
	return u.categories.SearchByName(ctx, name)
}
