// Package statestore defines the key/value state contract and errors.
//
// The store is the single point of shared mutable state in the system.
// The interface is I/O-shaped (context-first, error-returning) so the
// in-memory implementation can be swapped for a durable cache without
// touching call sites.
package statestore

import (
	"context"
	"time"
)

// Store provides ordered key/value and list storage with optional expiry.
type Store interface {
	// Get returns the value for key. The second return is false on a miss.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set overwrites key with value. A positive ttl schedules deletion.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Delete removes key from both value and list storage.
	Delete(ctx context.Context, key string) error

	// Exists reports whether key is present in value or list storage.
	Exists(ctx context.Context, key string) (bool, error)

	// AddToList appends value to the list at key, creating it if absent.
	AddToList(ctx context.Context, key, value string) error

	// GetList returns the full list at key; empty on a miss.
	GetList(ctx context.Context, key string) ([]string, error)

	// GetListRange returns elements [start, end] inclusive.
	// end == -1 means "to tail".
	GetListRange(ctx context.Context, key string, start, end int) ([]string, error)

	// ListLength returns the number of elements in the list at key.
	ListLength(ctx context.Context, key string) (int, error)

	// Close releases background resources held by the store.
	Close() error
}
