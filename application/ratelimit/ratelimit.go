// Package ratelimit throttles the AI command path with a fixed-window
// per-user counter. A strict fixed window means a burst can straddle a window
// boundary; at six requests a minute that is an accepted trade-off, not a bug.
package ratelimit

import (
	"context"
	"time"
)

const (
	// Window is the fixed window length
	Window = time.Minute

	// MaxRequests is the number of requests allowed per user per window
	MaxRequests = 6
)

// Limiter gates requests per user. Allow reports whether this request may
// proceed; a denied request does not consume budget.
type Limiter interface {
	Allow(ctx context.Context, userID string) (bool, error)
}
