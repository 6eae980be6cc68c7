package ratelimit

import (
	"context"
	"time"
)

// Limiter decides whether a request from a given client key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, err error)
}

// SlidingWindowLimiter enforces a single fixed limit with a sliding window.
// It is the simple flat-limit counterpart to PolicyLimiter.
type SlidingWindowLimiter struct {
	store Store
	limit LimitConfig
}

// NewSlidingWindowLimiter creates a limiter allowing at most max requests per
// window for each key.
func NewSlidingWindowLimiter(store Store, max int64, window time.Duration) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{
		store: store,
		limit: LimitConfig{Window: window, Max: max},
	}
}

// Allow records the request and reports whether the key is still under the
// limit.
func (l *SlidingWindowLimiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := l.store.Record(ctx, key, l.limit.Window)
	if err != nil {
		return false, err
	}

	return count <= l.limit.Max, nil
}
