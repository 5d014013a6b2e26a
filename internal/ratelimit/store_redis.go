package ratelimit

import (
	"context"
	"fmt"
	"time"

	platformredis "sanad/internal/platform/redis"
)

// RedisBucketStore implements BucketStore on Redis with a fixed window
// counter (INCR + EXPIRE). Coarser than the in-memory sliding window, but
// shared across replicas.
type RedisBucketStore struct {
	client *platformredis.Client
	prefix string
}

// NewRedisBucketStore creates a Redis-backed bucket store.
func NewRedisBucketStore(client *platformredis.Client) *RedisBucketStore {
	return &RedisBucketStore{client: client, prefix: "ratelimit:"}
}

// Allow checks if a request is allowed and increments the counter.
func (s *RedisBucketStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error) {
	redisKey := s.prefix + key

	count, err := s.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return nil, fmt.Errorf("ratelimit incr: %w", err)
	}
	if count == 1 {
		if err := s.client.Expire(ctx, redisKey, window).Err(); err != nil {
			return nil, fmt.Errorf("ratelimit expire: %w", err)
		}
	}

	ttl, err := s.client.TTL(ctx, redisKey).Result()
	if err != nil || ttl < 0 {
		ttl = window
	}
	resetAt := time.Now().Add(ttl)

	if int(count) > limit {
		return &Result{Allowed: false, Remaining: 0, ResetAt: resetAt, Limit: limit}, nil
	}
	return &Result{Allowed: true, Remaining: limit - int(count), ResetAt: resetAt, Limit: limit}, nil
}

// Reset clears the counter for a key.
func (s *RedisBucketStore) Reset(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}
