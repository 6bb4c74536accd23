package domain

import "time"

// Category is a targeting tag. RequestKey is the externally visible key
// matched against the `cat` parameters of a bid request; it is distinct
// from both the numeric id and the display name. Name and RequestKey are
// unique among active categories.
type Category struct {
	ID         int64
	Name       string
	RequestKey string
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
