package ratelimit

import (
	"context"
	"sync"
	"time"
)

type window struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter is the in-process Limiter. Entries whose window has rolled
// are treated as stale and reset on the next request rather than reaped.
type MemoryLimiter struct {
	mu      sync.Mutex
	users   map[string]*window
	window  time.Duration
	max     int
	now     func() time.Time
}

// NewMemoryLimiter creates a limiter with the default window and budget
func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{
		users:  make(map[string]*window),
		window: Window,
		max:    MaxRequests,
		now:    time.Now,
	}
}

// SetClock overrides the time source for tests
func (l *MemoryLimiter) SetClock(now func() time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.now = now
}

// Allow applies the fixed-window rule: the first request in a window resets
// the counter to one and is allowed; further requests are allowed until the
// budget is spent, then denied without incrementing.
func (l *MemoryLimiter) Allow(_ context.Context, userID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.users[userID]
	if !ok || !now.Before(w.resetAt) {
		l.users[userID] = &window{count: 1, resetAt: now.Add(l.window)}
		return true, nil
	}

	if w.count >= l.max {
		return false, nil
	}
	w.count++
	return true, nil
}
