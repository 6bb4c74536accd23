package domain

import "time"

// JournalEntry is an immutable audit record of one selection decision.
// Exactly one entry exists per bid request. For a successful decision
// BannerID and BannerPrice are set; for a negative decision they are nil
// and Outcome carries a descriptive message.
type JournalEntry struct {
	ID          int64
	IP          string
	UserAgent   string
	RequestTime time.Time
	BannerID    *int64
	BannerPrice *int64
	Outcome     string
}

// Shown reports whether the entry records a served banner rather than a
// negative outcome.
func (e JournalEntry) Shown() bool {
	return e.BannerID != nil
}
