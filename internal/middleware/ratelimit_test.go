package middleware

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestCheckRateLimit(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	rdb := setupRedis(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := CheckRateLimit(ctx, rdb, "upload", "user:alice", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, err := CheckRateLimit(ctx, rdb, "upload", "user:alice", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, allowed)

	// A different caller has its own counter.
	allowed, err = CheckRateLimit(ctx, rdb, "upload", "user:bob", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestCheckRateLimitFailOpenWithoutRedis(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	allowed, err := CheckRateLimit(context.Background(), nil, "upload", "user:alice", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestCheckRateLimitSkippedInTestEnv(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	rdb := setupRedis(t)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		allowed, err := CheckRateLimit(ctx, rdb, "upload", "user:alice", 1, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
	}
}
