package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"banner-engine/internal/core/domain"
	"banner-engine/internal/core/port"
)

// Descriptive outcome messages stored in the journal for negative
// decisions. The transport layer returns 204 for both; the distinct
// texts keep them tellable apart in the journal and the logs.
const (
	outcomeNoMatch      = "banner with the requested categories not found"
	outcomeAlreadyShown = "all matching banners have already been shown to this client today"
)

// BidUseCase orchestrates one selection decision: catalog lookup,
// selection, journal write. It owns the request-scoped unit of work and
// never mutates catalog state.
type BidUseCase struct {
	banners port.BannerRepository
	journal port.JournalRepository
	logger  *slog.Logger

	// callTimeout bounds each collaborator call.
	callTimeout time.Duration

	// now is swappable in tests.
	now func() time.Time
}

// NewBidUseCase wires the orchestrator. The logger is the base emitter;
// every bid derives a request-scoped logger from it.
func NewBidUseCase(banners port.BannerRepository, journal port.JournalRepository, logger *slog.Logger, callTimeout time.Duration) *BidUseCase {
	return &BidUseCase{
		banners:     banners,
		journal:     journal,
		logger:      logger,
		callTimeout: callTimeout,
		now:         time.Now,
	}
}

// Bid runs one decision for the client and category keys. Exactly one
// journal entry is written per call regardless of outcome. A failed
// journal write is logged and does not block the response; a catalog
// failure is returned as an error so the caller can surface a server-side
// failure distinct from the empty outcomes.
func (u *BidUseCase) Bid(ctx context.Context, client domain.ClientKey, categoryKeys []string) (*port.BidResult, error) {
	if len(categoryKeys) == 0 {
		return nil, port.ErrNoCategories
	}

	log := u.logger.With(
		slog.String("request_id", uuid.NewString()),
		slog.String("ip", client.IP),
	)

	now := u.now()
	window := domain.Day(now)

	lookupCtx, cancel := context.WithTimeout(ctx, u.callTimeout)
	defer cancel()
	candidates, err := u.banners.FindActiveByAnyCategoryKey(lookupCtx, categoryKeys)
	if err != nil {
		u.appendOutcome(ctx, log, client, now, "catalog lookup failed: "+err.Error())
		return nil, fmt.Errorf("catalog lookup: %w", err)
	}

	// Re-run selection when the conditional journal insert loses a race
	// with a concurrent bid from the same client: the raced banner now
	// counts as shown, so the next pass picks the next candidate. Each
	// pass retires at least one candidate, bounding the loop.
	for attempt := 0; attempt <= len(candidates); attempt++ {
		winner, err := Select(lookupCtx, candidates, u.journal, client, window)
		switch {
		case errors.Is(err, port.ErrNoBannerMatch):
			log.Info("no banner matched", slog.Any("categories", categoryKeys))
			u.appendOutcome(ctx, log, client, now, outcomeNoMatch)
			return &port.BidResult{Status: port.StatusNoMatch}, nil
		case errors.Is(err, port.ErrAllShown):
			log.Info("all matching banners already shown")
			u.appendOutcome(ctx, log, client, now, outcomeAlreadyShown)
			return &port.BidResult{Status: port.StatusAlreadyShown}, nil
		case err != nil:
			u.appendOutcome(ctx, log, client, now, "selection failed: "+err.Error())
			return nil, fmt.Errorf("selection: %w", err)
		}

		entry := domain.JournalEntry{
			IP:          client.IP,
			UserAgent:   client.UserAgent,
			RequestTime: now,
			BannerID:    &winner.ID,
			BannerPrice: &winner.Price,
		}
		err = u.appendEntry(ctx, entry)
		if errors.Is(err, port.ErrDuplicateShown) {
			log.Info("lost dedup race, reselecting", slog.Int64("banner_id", winner.ID))
			continue
		}
		if err != nil {
			// Serving the ad is not blocked by an audit failure.
			log.Error("journal write failed", slog.Any("error", err))
		}
		log.Info("banner selected",
			slog.Int64("banner_id", winner.ID),
			slog.Int64("price", winner.Price),
		)
		return &port.BidResult{
			Status:   port.StatusShown,
			BannerID: winner.ID,
			Text:     winner.Text,
			Price:    winner.Price,
		}, nil
	}

	u.appendOutcome(ctx, log, client, now, outcomeAlreadyShown)
	return &port.BidResult{Status: port.StatusAlreadyShown}, nil
}

// appendOutcome journals a negative decision best-effort.
func (u *BidUseCase) appendOutcome(ctx context.Context, log *slog.Logger, client domain.ClientKey, now time.Time, outcome string) {
	err := u.appendEntry(ctx, domain.JournalEntry{
		IP:          client.IP,
		UserAgent:   client.UserAgent,
		RequestTime: now,
		Outcome:     outcome,
	})
	if err != nil {
		log.Error("journal write failed", slog.Any("error", err))
	}
}

// appendEntry writes one journal entry under its own timeout, detached
// from the request deadline so an expired bid still gets its audit record.
func (u *BidUseCase) appendEntry(ctx context.Context, e domain.JournalEntry) error {
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), u.callTimeout)
	defer cancel()
	return u.journal.Append(writeCtx, e)
}
