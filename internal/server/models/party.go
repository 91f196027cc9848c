// Package models defines server-side data models persisted in the database.
package models

import "time"

// Party is a participant known to the directory, keyed by its canonical id.
type Party struct {
	CanonicalID string
	// DisplayHintID is the identifier as the identity provider delivered it,
	// before normalization. Empty for placeholders.
	DisplayHintID string
	// LastSeen is nil until the party authenticates.
	LastSeen *time.Time
}

// PartyUpdate is a partial Party. Nil fields are left untouched when the
// update is merged into an existing record.
type PartyUpdate struct {
	DisplayHintID *string
	LastSeen      *time.Time
}
