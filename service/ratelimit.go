package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/maeln/r-astar/service/i"
)

const (
	defaultRateLimitPrefix = "mazes"
	defaultRateLimit       = 30
	defaultRateWindow      = time.Minute
	rateLimitKeyFmt        = "%s:ratelimit:%s"
)

var (
	ErrRateLimited = errors.New("rate limit exceeded")
)

// RateLimitOptions configures a RateLimiter.
type RateLimitOptions struct {
	// Prefix namespaces the storage keys.
	Prefix string

	// Limit is the number of requests allowed per Window.
	Limit int64

	// Window is the length of the sliding window.
	Window time.Duration

	// Now returns the current time, time.Now when nil.
	Now func() time.Time
}

// SlidingRateLimiter admits at most Limit requests per subject in any Window-long interval.
type SlidingRateLimiter struct {
	store  i.SlidingWindow
	logger i.Logger
	opts   *RateLimitOptions
}

// NewRateLimiter creates a SlidingRateLimiter, filling unset options with defaults.
func NewRateLimiter(store i.SlidingWindow, logger i.Logger, opts *RateLimitOptions) (i.RateLimiter, error) {
	if store == nil || logger == nil {
		return nil, errors.New("rate limiter requires a sliding window store and a logger")
	}

	if opts == nil {
		opts = &RateLimitOptions{}
	}

	if opts.Prefix == "" {
		opts.Prefix = defaultRateLimitPrefix
	}

	if opts.Limit <= 0 {
		opts.Limit = defaultRateLimit
	}

	if opts.Window <= 0 {
		opts.Window = defaultRateWindow
	}

	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &SlidingRateLimiter{
		store:  store,
		logger: logger,
		opts:   opts,
	}, nil
}

// Allow records a request for subject, or returns ErrRateLimited when the window is full.
func (rl *SlidingRateLimiter) Allow(ctx context.Context, subject string) error {
	key := fmt.Sprintf(rateLimitKeyFmt, rl.opts.Prefix, subject)
	ok, err := rl.store.Admit(ctx, key, uuid.NewString(), rl.opts.Now(), rl.opts.Window, rl.opts.Limit)
	if err != nil {
		rl.logger.Error(fmt.Sprintf("rate limiter store failure for %s: %s", subject, err))
		return err
	}

	if !ok {
		rl.logger.Warning(fmt.Sprintf("rate limit reached for %s", subject))
		return ErrRateLimited
	}
	return nil
}
