package statestore

import "time"

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithJanitorInterval sets the interval for the expiry sweep goroutine.
func WithJanitorInterval(interval time.Duration) Option {
	return func(s *MemoryStore) {
		if interval > 0 {
			s.janitorInterval = interval
		}
	}
}

// WithClock overrides the time source. Used by tests to drive expiry.
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}
