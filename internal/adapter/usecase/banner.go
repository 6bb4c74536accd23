package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"banner-engine/internal/core/domain"
	"banner-engine/internal/core/port"
)

// BannerUseCase implements catalog management for banners.
type BannerUseCase struct {
	banners    port.BannerRepository
	categories port.CategoryRepository
	logger     *slog.Logger
}

func NewBannerUseCase(banners port.BannerRepository, categories port.CategoryRepository, logger *slog.Logger) *BannerUseCase {
	return &BannerUseCase{banners: banners, categories: categories, logger: logger}
}

// CreateBanner stores a new banner. Every referenced category must exist
// and be active; the name must be free among active banners.
func (u *BannerUseCase) CreateBanner(ctx context.Context, b domain.Banner) (int64, error) {
	if b.Price < 0 {
		return 0, fmt.Errorf("%w: banner price must be non-negative", port.ErrInvalidInput)
	}
	if err := u.checkCategories(ctx, b.CategoryIDs); err != nil {
		return 0, err
	}
	id, err := u.banners.Create(ctx, b)
	if err != nil {
		return 0, err
	}
	u.logger.Info("banner created", slog.Int64("banner_id", id), slog.String("name", b.Name))
	return id, nil
}

// UpdateBanner replaces name, text, price and category set of an existing
// banner.
func (u *BannerUseCase) UpdateBanner(ctx context.Context, b domain.Banner) error {
	if b.Price < 0 {
		return fmt.Errorf("%w: banner price must be non-negative", port.ErrInvalidInput)
	}
	if err := u.checkCategories(ctx, b.CategoryIDs); err != nil {
		return err
	}
	if err := u.banners.Update(ctx, b); err != nil {
		return err
	}
	u.logger.Info("banner updated", slog.Int64("banner_id", b.ID))
	return nil
}

// DeleteBanner soft-deletes the banner. The record keeps its name;
// uniqueness is scoped to active banners so the name becomes reusable
// immediately. Deleting an absent or already inactive banner returns
// port.ErrBannerNotFound.
func (u *BannerUseCase) DeleteBanner(ctx context.Context, id int64) error {
	if err := u.banners.SoftDelete(ctx, id); err != nil {
		return err
	}
	u.logger.Info("banner deleted", slog.Int64("banner_id", id))
	return nil
}

// SearchBanners finds active banners by case-insensitive name substring.
func (u *BannerUseCase) SearchBanners(ctx context.Context, name string) ([]domain.Banner, error) {
	if strings.TrimSpace(name) == "" {
		return nil, port.ErrEmptyQuery
	}
	return u.banners.SearchByName(ctx, name)
}

func (u *BannerUseCase) checkCategories(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	ok, err := u.categories.ExistsActive(ctx, ids)
	if err != nil {
		return err
	}
	if !ok {
		return port.ErrCategoryNotFound
	}
	return nil
}
