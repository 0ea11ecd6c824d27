package session

import (
	"context"
	"sync"
	"time"
)

type sessionKey struct {
	userID  string
	boardID string
}

// MemoryStore is the in-process Store. It is safe for concurrent use, but it
// is per-instance state: a multi-instance deployment needs the Redis-backed
// store instead.
type MemoryStore struct {
	mu         sync.Mutex
	entries    map[sessionKey]*Entry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// NewMemoryStore creates a store with the default TTL and entry cap
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries:    make(map[sessionKey]*Entry),
		ttl:        TTL,
		maxEntries: MaxEntries,
		now:        time.Now,
	}
}

// SetClock overrides the time source for tests
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Save sweeps expired entries store-wide, evicts the globally oldest entries
// while the cap would be exceeded, then inserts or overwrites the entry for
// the key.
func (s *MemoryStore) Save(_ context.Context, userID, boardID string, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, e := range s.entries {
		if now.Sub(e.Timestamp) >= s.ttl {
			delete(s.entries, key)
		}
	}

	key := sessionKey{userID: userID, boardID: boardID}
	if _, exists := s.entries[key]; !exists {
		for len(s.entries) >= s.maxEntries {
			s.evictOldestLocked()
		}
	}

	s.entries[key] = entry
	return nil
}

// Get returns the entry for the key, lazily deleting it when its TTL has
// elapsed. Absent and expired both return (nil, nil).
func (s *MemoryStore) Get(_ context.Context, userID, boardID string) (*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := sessionKey{userID: userID, boardID: boardID}
	entry, ok := s.entries[key]
	if !ok {
		return nil, nil
	}
	if s.now().Sub(entry.Timestamp) >= s.ttl {
		delete(s.entries, key)
		return nil, nil
	}
	return entry, nil
}

// Len reports the number of live entries, for tests and metrics
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *MemoryStore) evictOldestLocked() {
	var oldestKey sessionKey
	var oldest *Entry
	for key, e := range s.entries {
		if oldest == nil || e.Timestamp.Before(oldest.Timestamp) {
			oldestKey = key
			oldest = e
		}
	}
	if oldest != nil {
		delete(s.entries, oldestKey)
	}
}
