package statestore

import (
	"context"
	"sync"
	"time"

	"github.com/DubjamMusic/hustlecodex/pkg/metrics"
)

// Default memory store configuration constants.
const (
	defaultJanitorInterval = 1 * time.Second
)

// entry stores one value with an optional expiry deadline.
type entry struct {
	value     string
	expiresAt time.Time // zero means no expiry
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryStore implements Store with mutex-guarded maps and TTL emulation.
// Expired entries are dropped lazily on read and swept by a janitor
// goroutine so TTLs hold even for keys that are never read again.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]entry
	lists  map[string][]string

	janitorInterval time.Duration
	now             func() time.Time

	wg       sync.WaitGroup
	stopChan chan struct{}
}

// NewMemoryStore constructs a memory store with configuration options.
func NewMemoryStore(ctx context.Context, opts ...Option) *MemoryStore {
	s := &MemoryStore{
		values:          make(map[string]entry),
		lists:           make(map[string][]string),
		janitorInterval: defaultJanitorInterval,
		now:             time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.stopChan = make(chan struct{})
	s.startJanitor(ctx)

	return s
}

// startJanitor starts a background goroutine that sweeps expired entries.
func (s *MemoryStore) startJanitor(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.janitorInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopChan:
				return
			case <-ticker.C:
				s.sweep()
			}
		}
	}()
}

// sweep removes all expired value entries and updates the key gauge.
func (s *MemoryStore) sweep() {
	now := s.now()

	s.mu.Lock()
	for k, e := range s.values {
		if e.expired(now) {
			delete(s.values, k)
		}
	}
	total := len(s.values) + len(s.lists)
	s.mu.Unlock()

	metrics.UpdateStoreKeys(total)
}

// Close stops the janitor goroutine.
func (s *MemoryStore) Close() error {
	select {
	case <-s.stopChan:
		// Channel already closed
	default:
		close(s.stopChan)
	}
	s.wg.Wait()
	return nil
}

// Get returns the value for key, dropping it if its TTL elapsed.
func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	metrics.RecordStoreOp("get")

	s.mu.RLock()
	e, ok := s.values[key]
	s.mu.RUnlock()

	if !ok {
		return "", false, nil
	}
	if e.expired(s.now()) {
		s.mu.Lock()
		// Re-check under the write lock; another writer may have replaced it.
		if cur, still := s.values[key]; still && cur.expired(s.now()) {
			delete(s.values, key)
		}
		s.mu.Unlock()
		return "", false, nil
	}
	return e.value, true, nil
}

// Set overwrites key with value and schedules expiry when ttl > 0.
func (s *MemoryStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	metrics.RecordStoreOp("set")

	e := entry{value: value}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}

	s.mu.Lock()
	s.values[key] = e
	s.mu.Unlock()
	return nil
}

// Delete removes key from both value and list storage.
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	metrics.RecordStoreOp("delete")

	s.mu.Lock()
	delete(s.values, key)
	delete(s.lists, key)
	s.mu.Unlock()
	return nil
}

// Exists reports whether key holds a live value or a list.
func (s *MemoryStore) Exists(ctx context.Context, key string) (bool, error) {
	metrics.RecordStoreOp("exists")

	s.mu.RLock()
	e, hasValue := s.values[key]
	_, hasList := s.lists[key]
	s.mu.RUnlock()

	if hasValue && !e.expired(s.now()) {
		return true, nil
	}
	return hasList, nil
}

// AddToList appends value to the list at key.
func (s *MemoryStore) AddToList(ctx context.Context, key, value string) error {
	metrics.RecordStoreOp("list_add")

	s.mu.Lock()
	s.lists[key] = append(s.lists[key], value)
	s.mu.Unlock()
	return nil
}

// GetList returns a copy of the full list at key.
func (s *MemoryStore) GetList(ctx context.Context, key string) ([]string, error) {
	metrics.RecordStoreOp("list_get")

	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.lists[key]
	out := make([]string, len(list))
	copy(out, list)
	return out, nil
}

// GetListRange returns elements [start, end] inclusive; end == -1 means tail.
func (s *MemoryStore) GetListRange(ctx context.Context, key string, start, end int) ([]string, error) {
	metrics.RecordStoreOp("list_range")

	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.lists[key]
	if start < 0 {
		start = 0
	}
	if start >= len(list) {
		return []string{}, nil
	}
	if end == -1 || end >= len(list) {
		end = len(list) - 1
	}
	if end < start {
		return []string{}, nil
	}

	out := make([]string, end-start+1)
	copy(out, list[start:end+1])
	return out, nil
}

// ListLength returns the number of elements in the list at key.
func (s *MemoryStore) ListLength(ctx context.Context, key string) (int, error) {
	metrics.RecordStoreOp("list_len")

	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lists[key]), nil
}
