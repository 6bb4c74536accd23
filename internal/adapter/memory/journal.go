package memory

import (
	"context"
	"sync"

	"banner-engine/internal/core/domain"
	"banner-engine/internal/core/port"
)

type shownKey struct {
	bannerID int64
	ip       string
	ua       string
	day      string
}

// Journal is an append-only in-memory decision journal. Shown entries are
// indexed by (banner, client, day) so Append can reject a duplicate
// atomically, matching the conditional insert of the postgres adapter.
type Journal struct {
	mu      sync.Mutex
	entries []domain.JournalEntry
	shown   map[shownKey]struct{}
	seq     int64
}

func NewJournal() *Journal {
	return &Journal{shown: make(map[shownKey]struct{})}
}

func (j *Journal) HasShown(_ context.Context, bannerID int64, client domain.ClientKey, w domain.Window) (bool, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	for _, e := range j.entries {
		if e.BannerID != nil && *e.BannerID == bannerID &&
			e.IP == client.IP && e.UserAgent == client.UserAgent &&
			w.Contains(e.RequestTime) {
			return true, nil
		}
	}
	return false, nil
}

func (j *Journal) Append(_ context.Context, e domain.JournalEntry) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if e.BannerID != nil {
		key := shownKey{
			bannerID: *e.BannerID,
			ip:       e.IP,
			ua:       e.UserAgent,
			day:      e.RequestTime.Format("2006-01-02"),
		}
		if _, dup := j.shown[key]; dup {
			return port.ErrDuplicateShown
		}
		j.shown[key] = struct{}{}
	}
	j.seq++
	e.ID = j.seq
	j.entries = append(j.entries, e)
	return nil
}

// Entries returns a snapshot of all journal entries in append order.
func (j *Journal) Entries() []domain.JournalEntry {
	j.mu.Lock()
	defer j.mu.Unlock()

	out := make([]domain.JournalEntry, len(j.entries))
	copy(out, j.entries)
	return out
}
