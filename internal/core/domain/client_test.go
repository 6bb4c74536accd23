package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDayWindowBounds(t *testing.T) {
	now := time.Date(2026, 8, 31, 15, 45, 12, 0, time.UTC)
	w := Day(now)

	require.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), w.Start)
	require.Equal(t, time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC), w.End)

	// Bounds are inclusive.
	require.True(t, w.Contains(w.Start))
	require.True(t, w.Contains(w.End))
	require.True(t, w.Contains(now))
	require.False(t, w.Contains(w.Start.Add(-time.Second)))
	require.False(t, w.Contains(w.End.Add(time.Second)))
}
