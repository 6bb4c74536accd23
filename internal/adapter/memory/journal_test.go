package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"banner-engine/internal/core/domain"
	"banner-engine/internal/core/port"
)

func TestJournalConditionalInsert(t *testing.T) {
	j := NewJournal()
	ctx := context.Background()

	bannerID := int64(7)
	price := int64(500)
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

	entry := domain.JournalEntry{
		IP:          "ip1",
		UserAgent:   "ua1",
		RequestTime: now,
		BannerID:    &bannerID,
		BannerPrice: &price,
	}
	require.NoError(t, j.Append(ctx, entry))

	// Same banner, client and day: rejected, nothing stored.
	dup := entry
	dup.RequestTime = now.Add(5 * time.Hour)
	require.ErrorIs(t, j.Append(ctx, dup), port.ErrDuplicateShown)
	require.Len(t, j.Entries(), 1)

	// Next day it goes through again.
	nextDay := entry
	nextDay.RequestTime = now.AddDate(0, 0, 1)
	require.NoError(t, j.Append(ctx, nextDay))

	// Outcome-only entries are never deduplicated.
	outcome := domain.JournalEntry{IP: "ip1", UserAgent: "ua1", RequestTime: now, Outcome: "nothing to show"}
	require.NoError(t, j.Append(ctx, outcome))
	require.NoError(t, j.Append(ctx, outcome))
	require.Len(t, j.Entries(), 4)
}

func TestJournalHasShownWindow(t *testing.T) {
	j := NewJournal()
	ctx := context.Background()

	bannerID := int64(7)
	shownAt := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	client := domain.ClientKey{IP: "ip1", UserAgent: "ua1"}

	require.NoError(t, j.Append(ctx, domain.JournalEntry{
		IP: client.IP, UserAgent: client.UserAgent, RequestTime: shownAt, BannerID: &bannerID,
	}))

	sameDay := domain.Day(shownAt)
	shown, err := j.HasShown(ctx, bannerID, client, sameDay)
	require.NoError(t, err)
	require.True(t, shown)

	// Different banner, different client, different day: all unshown.
	shown, err = j.HasShown(ctx, 8, client, sameDay)
	require.NoError(t, err)
	require.False(t, shown)

	shown, err = j.HasShown(ctx, bannerID, domain.ClientKey{IP: "ip2", UserAgent: "ua1"}, sameDay)
	require.NoError(t, err)
	require.False(t, shown)

	nextDay := domain.Day(shownAt.AddDate(0, 0, 1))
	shown, err = j.HasShown(ctx, bannerID, client, nextDay)
	require.NoError(t, err)
	require.False(t, shown)
}
