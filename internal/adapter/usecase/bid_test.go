package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"banner-engine/internal/adapter/memory"
	"banner-engine/internal/core/domain"
	"banner-engine/internal/core/port"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// bidFixture wires a bid usecase over in-memory stores with a frozen
// clock and seeds one "sports" category.
type bidFixture struct {
	bid     *BidUseCase
	catalog *memory.Catalog
	journal *memory.Journal
	sports  int64
	now     time.Time
}

func newBidFixture(t *testing.T) *bidFixture {
	t.Helper()

	catalog := memory.NewCatalog()
	journal := memory.NewJournal()

	sportsID, err := catalog.Categories().Create(context.Background(), domain.Category{Name: "Sports", RequestKey: "sports"})
	require.NoError(t, err)

	now := time.Date(2026, 8, 31, 15, 30, 0, 0, time.UTC)
	bid := NewBidUseCase(catalog.Banners(), journal, testLogger(), time.Second)
	bid.now = func() time.Time { return now }

	return &bidFixture{bid: bid, catalog: catalog, journal: journal, sports: sportsID, now: now}
}

func (f *bidFixture) addBanner(t *testing.T, name, text string, price int64) int64 {
	t.Helper()
	id, err := f.catalog.Banners().Create(context.Background(), domain.Banner{
		Name:        name,
		Text:        text,
		Price:       price,
		CategoryIDs: []int64{f.sports},
	})
	require.NoError(t, err)
	return id
}

// TestBidFrequencyCap walks one client through the full window: highest
// price first, then the remaining banner, then nothing.
func TestBidFrequencyCap(t *testing.T) {
	f := newBidFixture(t)
	xID := f.addBanner(t, "X", "banner X text", 5)
	yID := f.addBanner(t, "Y", "banner Y text", 9)

	client := domain.ClientKey{IP: "ip1", UserAgent: "ua1"}
	ctx := context.Background()

	// First call: Y wins on price.
	res, err := f.bid.Bid(ctx, client, []string{"sports"})
	require.NoError(t, err)
	require.Equal(t, port.StatusShown, res.Status)
	require.Equal(t, "banner Y text", res.Text)
	require.Equal(t, int64(9), res.Price)

	entries := f.journal.Entries()
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].BannerID)
	require.Equal(t, yID, *entries[0].BannerID)
	require.Equal(t, int64(9), *entries[0].BannerPrice)

	// Second call same client same day: Y is excluded, X wins.
	res, err = f.bid.Bid(ctx, client, []string{"sports"})
	require.NoError(t, err)
	require.Equal(t, port.StatusShown, res.Status)
	require.Equal(t, "banner X text", res.Text)

	entries = f.journal.Entries()
	require.Len(t, entries, 2)
	require.Equal(t, xID, *entries[1].BannerID)

	// Third call: both shown, empty outcome with its own journal entry.
	res, err = f.bid.Bid(ctx, client, []string{"sports"})
	require.NoError(t, err)
	require.Equal(t, port.StatusAlreadyShown, res.Status)

	entries = f.journal.Entries()
	require.Len(t, entries, 3)
	require.Nil(t, entries[2].BannerID)
	require.Equal(t, outcomeAlreadyShown, entries[2].Outcome)
}

// TestBidUnknownCategory verifies the no-match outcome is journaled with
// a descriptive message and no banner reference.
func TestBidUnknownCategory(t *testing.T) {
	f := newBidFixture(t)
	f.addBanner(t, "X", "banner X text", 5)

	res, err := f.bid.Bid(context.Background(), domain.ClientKey{IP: "ip1", UserAgent: "ua1"}, []string{"unknown-key"})
	require.NoError(t, err)
	require.Equal(t, port.StatusNoMatch, res.Status)

	entries := f.journal.Entries()
	require.Len(t, entries, 1)
	require.Nil(t, entries[0].BannerID)
	require.Equal(t, outcomeNoMatch, entries[0].Outcome)
}

// TestBidPerClientIsolation verifies two different clients independently
// receive the highest priced banner on the same day.
func TestBidPerClientIsolation(t *testing.T) {
	f := newBidFixture(t)
	f.addBanner(t, "X", "banner X text", 5)
	f.addBanner(t, "Y", "banner Y text", 9)

	ctx := context.Background()
	for _, client := range []domain.ClientKey{
		{IP: "ip1", UserAgent: "ua1"},
		{IP: "ip2", UserAgent: "ua2"},
	} {
		res, err := f.bid.Bid(ctx, client, []string{"sports"})
		require.NoError(t, err)
		require.Equal(t, port.StatusShown, res.Status)
		require.Equal(t, "banner Y text", res.Text)
	}
	require.Len(t, f.journal.Entries(), 2)
}

// TestBidEmptyCategories verifies the caller error is raised before any
// store access and nothing is journaled.
func TestBidEmptyCategories(t *testing.T) {
	f := newBidFixture(t)

	_, err := f.bid.Bid(context.Background(), domain.ClientKey{IP: "ip1", UserAgent: "ua1"}, nil)
	require.ErrorIs(t, err, port.ErrNoCategories)
	require.Empty(t, f.journal.Entries())
}

// TestBidConcurrentSameClient races bids for one client against two
// banners: the conditional journal insert lets each banner through once.
func TestBidConcurrentSameClient(t *testing.T) {
	f := newBidFixture(t)
	f.addBanner(t, "X", "banner X text", 5)
	f.addBanner(t, "Y", "banner Y text", 9)

	client := domain.ClientKey{IP: "ip1", UserAgent: "ua1"}
	const calls = 10

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		shown int
	)
	wg.Add(calls)
	for i := 0; i < calls; i++ {
		go func() {
			defer wg.Done()
			res, err := f.bid.Bid(context.Background(), client, []string{"sports"})
			if err != nil {
				t.Errorf("bid error: %v", err)
				return
			}
			if res.Status == port.StatusShown {
				mu.Lock()
				shown++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 2, shown, "each banner must be shown exactly once")
	require.Len(t, f.journal.Entries(), calls)

	seen := make(map[int64]int)
	for _, e := range f.journal.Entries() {
		if e.BannerID != nil {
			seen[*e.BannerID]++
		}
	}
	require.Len(t, seen, 2)
	for id, n := range seen {
		require.Equal(t, 1, n, "banner %d journaled more than once", id)
	}
}

type failingJournal struct{}

func (failingJournal) HasShown(context.Context, int64, domain.ClientKey, domain.Window) (bool, error) {
	return false, nil
}

func (failingJournal) Append(context.Context, domain.JournalEntry) error {
	return errors.New("journal unavailable")
}

// TestBidJournalFailureStillServes verifies an audit write failure never
// blocks the response.
func TestBidJournalFailureStillServes(t *testing.T) {
	catalog := memory.NewCatalog()
	sportsID, err := catalog.Categories().Create(context.Background(), domain.Category{Name: "Sports", RequestKey: "sports"})
	require.NoError(t, err)
	_, err = catalog.Banners().Create(context.Background(), domain.Banner{
		Name: "X", Text: "banner X text", Price: 5, CategoryIDs: []int64{sportsID},
	})
	require.NoError(t, err)

	bid := NewBidUseCase(catalog.Banners(), failingJournal{}, testLogger(), time.Second)

	res, err := bid.Bid(context.Background(), domain.ClientKey{IP: "ip1", UserAgent: "ua1"}, []string{"sports"})
	require.NoError(t, err)
	require.Equal(t, port.StatusShown, res.Status)
	require.Equal(t, "banner X text", res.Text)
}

type failingBanners struct {
	port.BannerRepository
}

func (failingBanners) FindActiveByAnyCategoryKey(context.Context, []string) ([]domain.Banner, error) {
	return nil, errors.New("catalog unavailable")
}

// TestBidCatalogFailure verifies a collaborator failure surfaces as an
// error distinct from the empty outcomes, with a best-effort journal
// entry recording it.
func TestBidCatalogFailure(t *testing.T) {
	journal := memory.NewJournal()
	bid := NewBidUseCase(failingBanners{}, journal, testLogger(), time.Second)

	res, err := bid.Bid(context.Background(), domain.ClientKey{IP: "ip1", UserAgent: "ua1"}, []string{"sports"})
	require.Error(t, err)
	require.Nil(t, res)

	entries := journal.Entries()
	require.Len(t, entries, 1)
	require.Nil(t, entries[0].BannerID)
	require.Contains(t, entries[0].Outcome, "catalog lookup failed")
}
