package port

import (
	"context"
	"errors"

	"banner-engine/internal/core/domain"
)

var (
	// ErrNoCategories rejects a bid carrying no category keys. It is a
	// caller error raised before any store access and is never journaled.
	ErrNoCategories = errors.New("at least one category key is required")

	// ErrNoBannerMatch means no active banner intersects the requested
	// categories.
	ErrNoBannerMatch = errors.New("no banner matches the requested categories")

	// ErrAllShown means every matching banner was already shown to this
	// client within the window.
	ErrAllShown = errors.New("all matching banners already shown to this client")
)

// BidStatus classifies the outcome of one bid decision.
type BidStatus int

const (
	StatusShown BidStatus = iota
	StatusNoMatch
	StatusAlreadyShown
)

// BidResult is the outcome of one bid returned to the transport layer.
// Text, BannerID and Price are only meaningful when Status is StatusShown.
type BidResult struct {
	Status   BidStatus
	BannerID int64
	Text     string
	Price    int64
}

// BidUseCase is the primary port into the selection engine. A call either
// returns a decision outcome or an error when a collaborator (catalog,
// journal) failed, so operators can tell "no ad to show" apart from
// "the engine is broken".
type BidUseCase interface {
	// Bid runs one selection decision for the client and category keys.
	// Exactly one journal entry is written per call regardless of outcome;
	// a journal write failure is reported to observability but does not
	// block the response.
	Bid(ctx context.Context, client domain.ClientKey, categoryKeys []string) (*BidResult, error)
}
