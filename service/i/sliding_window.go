package i

import (
	"context"
	"time"
)

// SlidingWindow stores timestamped events per key and admits new ones while the window has room.
type SlidingWindow interface {
	// Admit drops events older than at-window, then records member at time at
	// if fewer than limit events remain. It reports whether the event was recorded.
	Admit(ctx context.Context, key, member string, at time.Time, window time.Duration, limit int64) (bool, error)

	// Count returns the number of events currently stored under key.
	Count(ctx context.Context, key string) (int64, error)
}

// RateLimiter decides whether a subject may perform another request.
type RateLimiter interface {
	Allow(ctx context.Context, subject string) error
}
