package ratelimit

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInMemoryBucketStoreAllow(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryBucketStore()

	for i := 0; i < 3; i++ {
		result, err := store.Allow(ctx, "client", 3, time.Minute)
		require.NoError(t, err)
		require.True(t, result.Allowed)
		require.Equal(t, 3-(i+1), result.Remaining)
	}

	result, err := store.Allow(ctx, "client", 3, time.Minute)
	require.NoError(t, err)
	require.False(t, result.Allowed)
	require.Zero(t, result.Remaining)
}

func TestInMemoryBucketStoreKeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryBucketStore()

	for i := 0; i < 2; i++ {
		_, err := store.Allow(ctx, "a", 2, time.Minute)
		require.NoError(t, err)
	}

	result, err := store.Allow(ctx, "b", 2, time.Minute)
	require.NoError(t, err)
	require.True(t, result.Allowed)
}

func TestInMemoryBucketStoreReset(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryBucketStore()

	_, err := store.Allow(ctx, "client", 1, time.Minute)
	require.NoError(t, err)
	require.NoError(t, store.Reset(ctx, "client"))

	result, err := store.Allow(ctx, "client", 1, time.Minute)
	require.NoError(t, err)
	require.True(t, result.Allowed)
}

func TestInMemoryBucketStoreWindowExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryBucketStore()

	_, err := store.Allow(ctx, "client", 1, 20*time.Millisecond)
	require.NoError(t, err)

	time.Sleep(30 * time.Millisecond)

	result, err := store.Allow(ctx, "client", 1, 20*time.Millisecond)
	require.NoError(t, err)
	require.True(t, result.Allowed)
}

func TestMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := Middleware(NewInMemoryBucketStore(), 2, time.Minute, logger)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	do := func() *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/verify", nil)
		req.RemoteAddr = "203.0.113.7:51234"
		handler.ServeHTTP(rec, req)
		return rec
	}

	require.Equal(t, http.StatusOK, do().Code)
	require.Equal(t, http.StatusOK, do().Code)

	rec := do()
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))
	require.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
}
