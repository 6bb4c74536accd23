package domain

import "time"

// Banner is a single textual advertisement unit. Price is stored in
// integer minor units (e.g. cents) and is used only as a tie-breaker
// between eligible banners, never as an auction bid.
type Banner struct {
	ID          int64
	Name        string
	Text        string
	Price       int64
	Active      bool
	CategoryIDs []int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
