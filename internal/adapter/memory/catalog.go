// Package memory provides in-memory implementations of the catalog and
// journal ports. They back the usecase tests and serve as a reference for
// the store contracts; the postgres adapters are the production
// implementations.
package memory

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"banner-engine/internal/core/domain"
	"banner-engine/internal/core/port"
)

// Catalog holds banners and categories behind a single lock so the
// cross-entity queries (banner lookup by category key) stay consistent.
type Catalog struct {
	mu         sync.RWMutex
	banners    map[int64]domain.Banner
	categories map[int64]domain.Category
	bannerSeq  int64
	catSeq     int64
}

func NewCatalog() *Catalog {
	return &Catalog{
		banners:    make(map[int64]domain.Banner),
		categories: make(map[int64]domain.Category),
	}
}

// Banners returns the banner side of the catalog.
func (c *Catalog) Banners() *BannerStore { return &BannerStore{c: c} }

// Categories returns the category side of the catalog.
func (c *Catalog) Categories() *CategoryStore { return &CategoryStore{c: c} }

// BannerStore implements port.BannerRepository.
type BannerStore struct {
	c *Catalog
}

func (s *BannerStore) FindActiveByAnyCategoryKey(_ context.Context, keys []string) ([]domain.Banner, error) {
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()

	// Resolve request keys to active category ids. Matching is
	// case-sensitive on the request key.
	catIDs := make(map[int64]struct{})
	for _, cat := range s.c.categories {
		if cat.Active && slices.Contains(keys, cat.RequestKey) {
			catIDs[cat.ID] = struct{}{}
		}
	}

	var out []domain.Banner
	for _, b := range s.c.banners {
		if !b.Active {
			continue
		}
		for _, id := range b.CategoryIDs {
			if _, ok := catIDs[id]; ok {
				out = append(out, cloneBanner(b))
				break
			}
		}
	}
	return out, nil
}

func (s *BannerStore) Create(_ context.Context, b domain.Banner) (int64, error) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()

	if s.c.activeBannerNameTaken(b.Name, 0) {
		return 0, port.ErrBannerExists
	}
	s.c.bannerSeq++
	b.ID = s.c.bannerSeq
	b.Active = true
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	s.c.banners[b.ID] = cloneBanner(b)
	return b.ID, nil
}

func (s *BannerStore) Update(_ context.Context, b domain.Banner) error {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()

	cur, ok := s.c.banners[b.ID]
	if !ok || !cur.Active {
		return port.ErrBannerNotFound
	}
	if s.c.activeBannerNameTaken(b.Name, b.ID) {
		return port.ErrBannerExists
	}
	cur.Name = b.Name
	cur.Text = b.Text
	cur.Price = b.Price
	cur.CategoryIDs = slices.Clone(b.CategoryIDs)
	cur.UpdatedAt = time.Now()
	s.c.banners[b.ID] = cur
	return nil
}

func (s *BannerStore) SoftDelete(_ context.Context, id int64) error {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()

	cur, ok := s.c.banners[id]
	if !ok || !cur.Active {
		return port.ErrBannerNotFound
	}
	cur.Active = false
	cur.UpdatedAt = time.Now()
	s.c.banners[id] = cur
	return nil
}

func (s *BannerStore) SearchByName(_ context.Context, name string) ([]domain.Banner, error) {
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()

	needle := strings.ToLower(name)
	var out []domain.Banner
	for _, b := range s.c.banners {
		if b.Active && strings.Contains(strings.ToLower(b.Name), needle) {
			out = append(out, cloneBanner(b))
		}
	}
	return out, nil
}

func (s *BannerStore) FindActiveByCategoryID(_ context.Context, categoryID int64) ([]domain.Banner, error) {
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()

	var out []domain.Banner
	for _, b := range s.c.banners {
		if b.Active && slices.Contains(b.CategoryIDs, categoryID) {
			out = append(out, cloneBanner(b))
		}
	}
	return out, nil
}

// CategoryStore implements port.CategoryRepository.
type CategoryStore struct {
	c *Catalog
}

func (s *CategoryStore) Create(_ context.Context, cat domain.Category) (int64, error) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()

	if s.c.activeCategoryTaken(cat.Name, cat.RequestKey, 0) {
		return 0, port.ErrCategoryExists
	}
	s.c.catSeq++
	cat.ID = s.c.catSeq
	cat.Active = true
	cat.CreatedAt = time.Now()
	cat.UpdatedAt = cat.CreatedAt
	s.c.categories[cat.ID] = cat
	return cat.ID, nil
}

func (s *CategoryStore) Update(_ context.Context, cat domain.Category) error {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()

	cur, ok := s.c.categories[cat.ID]
	if !ok || !cur.Active {
		return port.ErrCategoryNotFound
	}
	if s.c.activeCategoryTaken(cat.Name, cat.RequestKey, cat.ID) {
		return port.ErrCategoryExists
	}
	cur.Name = cat.Name
	cur.RequestKey = cat.RequestKey
	cur.UpdatedAt = time.Now()
	s.c.categories[cat.ID] = cur
	return nil
}

func (s *CategoryStore) SoftDelete(_ context.Context, id int64) error {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()

	cur, ok := s.c.categories[id]
	if !ok || !cur.Active {
		return port.ErrCategoryNotFound
	}
	cur.Active = false
	cur.UpdatedAt = time.Now()
	s.c.categories[id] = cur
	return nil
}

func (s *CategoryStore) SearchByName(_ context.Context, name string) ([]domain.Category, error) {
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()

	needle := strings.ToLower(name)
	var out []domain.Category
	for _, cat := range s.c.categories {
		if cat.Active && strings.Contains(strings.ToLower(cat.Name), needle) {
			out = append(out, cat)
		}
	}
	return out, nil
}

func (s *CategoryStore) FindByID(_ context.Context, id int64) (*domain.Category, error) {
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()

	cat, ok := s.c.categories[id]
	if !ok || !cat.Active {
		return nil, port.ErrCategoryNotFound
	}
	return &cat, nil
}

func (s *CategoryStore) ExistsActive(_ context.Context, ids []int64) (bool, error) {
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()

	for _, id := range ids {
		cat, ok := s.c.categories[id]
		if !ok || !cat.Active {
			return false, nil
		}
	}
	return true, nil
}

func (c *Catalog) activeBannerNameTaken(name string, excludeID int64) bool {
	for _, b := range c.banners {
		if b.ID != excludeID && b.Active && strings.EqualFold(b.Name, name) {
			return true
		}
	}
	return false
}

func (c *Catalog) activeCategoryTaken(name, requestKey string, excludeID int64) bool {
	for _, cat := range c.categories {
		if cat.ID == excludeID || !cat.Active {
			continue
		}
		if strings.EqualFold(cat.Name, name) || cat.RequestKey == requestKey {
			return true
		}
	}
	return false
}

func cloneBanner(b domain.Banner) domain.Banner {
	b.CategoryIDs = slices.Clone(b.CategoryIDs)
	return b
}
