package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"banner-engine/internal/core/domain"
	"banner-engine/internal/core/port"
)

func TestCreateCategoryUniqueness(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	_, err := f.categories.CreateCategory(ctx, domain.Category{Name: "Sports", RequestKey: "sports"})
	require.NoError(t, err)

	// Name collision.
	_, err = f.categories.CreateCategory(ctx, domain.Category{Name: "Sports", RequestKey: "other"})
	require.ErrorIs(t, err, port.ErrCategoryExists)

	// Request-key collision.
	_, err = f.categories.CreateCategory(ctx, domain.Category{Name: "Other", RequestKey: "sports"})
	require.ErrorIs(t, err, port.ErrCategoryExists)
}

func TestUpdateCategoryKeepsOwnKeys(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	id, err := f.categories.CreateCategory(ctx, domain.Category{Name: "Sports", RequestKey: "sports"})
	require.NoError(t, err)
	_, err = f.categories.CreateCategory(ctx, domain.Category{Name: "Music", RequestKey: "music"})
	require.NoError(t, err)

	// Same name and key on itself is allowed.
	err = f.categories.UpdateCategory(ctx, domain.Category{ID: id, Name: "Sports", RequestKey: "sports"})
	require.NoError(t, err)

	// Taking another active category's key is not.
	err = f.categories.UpdateCategory(ctx, domain.Category{ID: id, Name: "Sports", RequestKey: "music"})
	require.ErrorIs(t, err, port.ErrCategoryExists)
}

// TestDeleteCategoryCascade covers the dependent-banner rules: refusal
// without cascade, full deactivation with it.
func TestDeleteCategoryCascade(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	catID, err := f.categories.CreateCategory(ctx, domain.Category{Name: "Sports", RequestKey: "sports"})
	require.NoError(t, err)
	bannerID, err := f.banners.CreateBanner(ctx, domain.Banner{Name: "Promo", Text: "t", Price: 10, CategoryIDs: []int64{catID}})
	require.NoError(t, err)

	// Dependent active banner, no cascade: refused, nothing deleted.
	err = f.categories.DeleteCategory(ctx, catID, false)
	require.ErrorIs(t, err, port.ErrDependentBanners)

	found, err := f.banners.SearchBanners(ctx, "Promo")
	require.NoError(t, err)
	require.Len(t, found, 1)

	// With cascade both the category and the banner go inactive.
	require.NoError(t, f.categories.DeleteCategory(ctx, catID, true))

	found, err = f.banners.SearchBanners(ctx, "Promo")
	require.NoError(t, err)
	require.Empty(t, found)

	err = f.banners.DeleteBanner(ctx, bannerID)
	require.ErrorIs(t, err, port.ErrBannerNotFound)
}

func TestDeleteCategoryWithoutDependents(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	catID, err := f.categories.CreateCategory(ctx, domain.Category{Name: "Sports", RequestKey: "sports"})
	require.NoError(t, err)

	require.NoError(t, f.categories.DeleteCategory(ctx, catID, false))

	// Second delete reports not-found.
	err = f.categories.DeleteCategory(ctx, catID, false)
	require.ErrorIs(t, err, port.ErrCategoryNotFound)

	// The request key is reusable afterwards.
	_, err = f.categories.CreateCategory(ctx, domain.Category{Name: "Sports", RequestKey: "sports"})
	require.NoError(t, err)
}

func TestSearchCategories(t *testing.T) {
	f := newCatalogFixture()
	ctx := context.Background()

	_, err := f.categories.CreateCategory(ctx, domain.Category{Name: "Water Sports", RequestKey: "water"})
	require.NoError(t, err)
	_, err = f.categories.CreateCategory(ctx, domain.Category{Name: "Music", RequestKey: "music"})
	require.NoError(t, err)

	found, err := f.categories.SearchCategories(ctx, "sports")
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, "water", found[0].RequestKey)

	_, err = f.categories.SearchCategories(ctx, "")
	require.ErrorIs(t, err, port.ErrEmptyQuery)
}
