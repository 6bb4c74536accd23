package port

import (
	"context"
	"errors"

	"banner-engine/internal/core/domain"
)

// ErrDuplicateShown is returned by Append when a shown entry for the same
// (banner, client, day) already exists. It resolves the check-then-act
// race between concurrent bids from the same client: the storage layer
// accepts at most one shown entry per banner, client and day.
var ErrDuplicateShown = errors.New("banner already shown to this client today")

// JournalRepository is the append-only decision journal. Entries are
// never mutated or deleted; they serve as read history for frequency-cap
// checks on future bids.
type JournalRepository interface {
	// HasShown reports whether a shown entry exists for the exact
	// (bannerID, client) pair with a request time inside the window,
	// bounds inclusive.
	HasShown(ctx context.Context, bannerID int64, client domain.ClientKey, w domain.Window) (bool, error)

	// Append durably stores one decision entry. For entries recording a
	// served banner the insert is conditional: a second shown entry for
	// the same (banner, client, day) fails with ErrDuplicateShown and
	// stores nothing. Outcome-only entries are always accepted.
	Append(ctx context.Context, e domain.JournalEntry) error
}
