package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
}

func TestGetSetJSON(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	type payload struct {
		Name string `json:"name"`
	}

	found, err := GetJSON(ctx, "missing", &payload{})
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, "k", payload{Name: "買い物"}, time.Minute))

	var got payload
	found, err = GetJSON(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "買い物", got.Name)
}

func TestCacheAside(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *string) func() error {
		return func() error {
			calls++
			*dest = "from db"
			return nil
		}
	}

	var v string
	require.NoError(t, CacheAside(ctx, "posts:all", &v, time.Minute, fetch(&v)))
	assert.Equal(t, "from db", v)
	assert.Equal(t, 1, calls)

	// Second read is served from the cache; fetch is not called again.
	var v2 string
	require.NoError(t, CacheAside(ctx, "posts:all", &v2, time.Minute, fetch(&v2)))
	assert.Equal(t, "from db", v2)
	assert.Equal(t, 1, calls)
}

func TestInvalidatePost(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, PostKey("abc"), "detail", time.Minute))
	require.NoError(t, SetJSON(ctx, PostListKey(), "list", time.Minute))

	InvalidatePost(ctx, "abc")

	var out string
	found, err := GetJSON(ctx, PostKey("abc"), &out)
	require.NoError(t, err)
	assert.False(t, found)

	found, err = GetJSON(ctx, PostListKey(), &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNilClientFailsOpen(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	var v string
	found, err := GetJSON(ctx, "k", &v)
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, SetJSON(ctx, "k", "v", time.Minute))

	require.NoError(t, CacheAside(ctx, "k", &v, time.Minute, func() error {
		v = "fetched"
		return nil
	}))
	assert.Equal(t, "fetched", v)
}
