// Package ratelimit protects the public verification endpoints. Lookups are
// unauthenticated by design, so the only throttle key available is the
// client address.
package ratelimit

import (
	"context"
	"time"
)

// Result describes the outcome of a rate limit check.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
	Limit     int
}

// BucketStore counts requests per key within a window. Implementations:
// in-memory sliding window (single instance) and Redis (shared across
// replicas).
type BucketStore interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error)
	Reset(ctx context.Context, key string) error
}
