package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"banner-engine/internal/core/domain"
	"banner-engine/internal/core/port"
)

// JournalRepository implements port.JournalRepository over an append-only
// table. A partial unique index on (banner_id, ip_address, user_agent,
// shown_on) turns the frequency cap into a conditional insert, so two
// racing bids from the same client cannot both record the same banner on
// the same day.
type JournalRepository struct {
	pool *pgxpool.Pool
}

func NewJournalRepository(pool *pgxpool.Pool) *JournalRepository {
	return &JournalRepository{pool: pool}
}

func (r *JournalRepository) HasShown(ctx context.Context, bannerID int64, client domain.ClientKey, w domain.Window) (bool, error) {
	var shown bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM request_journal
			WHERE banner_id = $1
			  AND ip_address = $2
			  AND user_agent = $3
			  AND request_time BETWEEN $4 AND $5)`,
		bannerID, client.IP, client.UserAgent, w.Start, w.End).Scan(&shown)
	if err != nil {
		return false, err
	}
	return shown, nil
}

func (r *JournalRepository) Append(ctx context.Context, e domain.JournalEntry) error {
	// shown_on carries the server-local calendar day for shown entries;
	// it is what the dedup index keys on.
	var shownOn any
	if e.BannerID != nil {
		shownOn = e.RequestTime.Format("2006-01-02")
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO request_journal
			(ip_address, user_agent, request_time, banner_id, banner_price, outcome, shown_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.IP, e.UserAgent, e.RequestTime, e.BannerID, e.BannerPrice, e.Outcome, shownOn)
	if isUniqueViolation(err) {
		return port.ErrDuplicateShown
	}
	return err
}
