package domain

import "time"

// Fundraiser is a campaign created and exclusively managed by its owner.
// OwnerID is assigned once at creation from the authenticated creator and is
// never writable through a request payload.
type Fundraiser struct {
	ID          string
	Title       string
	Description string
	Goal        int64
	Image       string
	IsOpen      bool
	DateCreated time.Time
	OwnerID     string
}
