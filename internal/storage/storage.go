// Package storage persists the review collection and the small side values
// that live next to it.
package storage

import "github.com/rcliao/theaterlog/internal/model"

// Adapter is the persistence boundary of the store.
//
// Load reports errors so callers can log them, but a failed load always comes
// with a usable (empty) collection; the in-memory store stays authoritative
// for the session either way. Save is best-effort.
type Adapter interface {
	// Load returns the persisted collection in insertion order.
	Load() ([]model.Review, error)

	// Save replaces the persisted collection.
	Save(reviews []model.Review) error

	// LastLocation returns the persisted "last used location" value.
	LastLocation() (string, error)

	// SaveLastLocation replaces the "last used location" value.
	SaveLastLocation(loc string) error

	// Close releases the underlying resources.
	Close() error
}
