package usecase

import (
	"cmp"
	"context"
	"slices"

	"banner-engine/internal/core/domain"
	"banner-engine/internal/core/port"
)

// History is the journal-lookup capability the selection algorithm needs.
// port.JournalRepository satisfies it.
type History interface {
	HasShown(ctx context.Context, bannerID int64, client domain.ClientKey, w domain.Window) (bool, error)
}

// Select picks at most one banner from candidates for the given client.
// The rule: highest price among candidates not yet shown to the client
// within the window, ties broken by banner id ascending. Candidates are
// walked in that order and the first unshown one wins, so at most one
// history lookup is made per candidate. The input slice is not mutated.
//
// An empty candidate set returns port.ErrNoBannerMatch without consulting
// the journal. When every candidate has already been shown the result is
// port.ErrAllShown.
func Select(ctx context.Context, candidates []domain.Banner, history History, client domain.ClientKey, w domain.Window) (*domain.Banner, error) {
	if len(candidates) == 0 {
		return nil, port.ErrNoBannerMatch
	}

	ordered := slices.Clone(candidates)
	slices.SortFunc(ordered, func(a, b domain.Banner) int {
		if c := cmp.Compare(b.Price, a.Price); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	for i := range ordered {
		shown, err := history.HasShown(ctx, ordered[i].ID, client, w)
		if err != nil {
			return nil, err
		}
		if !shown {
			return &ordered[i], nil
		}
	}
	return nil, port.ErrAllShown
}
