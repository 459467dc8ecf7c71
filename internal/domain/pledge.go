package domain

import "time"

// Pledge is a donation toward a fundraiser. Two independent write
// capabilities exist on the same row: the supporter owns the comment and
// anonymous flag, the fundraiser owner owns the hidden flag.
type Pledge struct {
	ID              string
	Amount          int64
	Comment         string
	Anonymous       bool
	IsHiddenByOwner bool
	DateCreated     time.Time
	FundraiserID    string
	SupporterID     string

	// FundraiserOwnerID is joined in from the parent fundraiser whenever a
	// pledge is loaded, so hide-toggle authorization and comment visibility
	// never need a second lookup.
	FundraiserOwnerID string
}
