package domain

import "time"

// ClientKey identifies a requester for frequency-cap purposes.
type ClientKey struct {
	IP        string
	UserAgent string
}

// Window is the time interval within which a prior showing suppresses
// re-selection of the same banner for the same client.
type Window struct {
	Start time.Time
	End   time.Time
}

// Day returns the calendar-day window containing now, in now's location:
// 00:00:00 through 23:59:59 inclusive.
func Day(now time.Time) Window {
	y, m, d := now.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return Window{
		Start: start,
		End:   start.Add(24*time.Hour - time.Second),
	}
}

// Contains reports whether t lies inside the window, bounds included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}
