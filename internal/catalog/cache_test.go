package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*CountsCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCountsCache(client, time.Minute, nil), mr
}

func TestCountsCacheRoundTrip(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	_, ok := cache.Get(ctx)
	assert.False(t, ok, "empty cache misses")

	counts := map[int64]int{1: 3, 2: 7}
	cache.Set(ctx, counts)

	got, ok := cache.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, counts, got)
}

func TestCountsCacheExpiry(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	cache.Set(ctx, map[int64]int{1: 1})
	mr.FastForward(2 * time.Minute)

	_, ok := cache.Get(ctx)
	assert.False(t, ok)
}

func TestCountsCacheInvalidate(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	cache.Set(ctx, map[int64]int{1: 1})
	cache.Invalidate(ctx)

	_, ok := cache.Get(ctx)
	assert.False(t, ok)
}

func TestCountsCacheNilClient(t *testing.T) {
	var cache *CountsCache
	_, ok := cache.Get(context.Background())
	assert.False(t, ok)
	cache.Set(context.Background(), map[int64]int{1: 1})
	cache.Invalidate(context.Background())
}
