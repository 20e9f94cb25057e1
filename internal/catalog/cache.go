package catalog

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const countsCacheKey = "catalog:category_counts"

// CountsCache keeps the per-category product counts in Redis. The
// counts back the category sidebar on every storefront page, so a short
// TTL saves a full product scan per render. Every failure degrades to a
// recomputation, never to an error.
type CountsCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCountsCache constructs the cache. A nil client disables it.
func NewCountsCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *CountsCache {
	return &CountsCache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached counts, or ok=false on miss or any error.
func (c *CountsCache) Get(ctx context.Context) (map[int64]int, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, countsCacheKey).Bytes()
	if err != nil {
		if c.logger != nil && err != redis.Nil {
			c.logger.Warn("counts cache get", slog.Any("error", err))
		}
		return nil, false
	}
	var counts map[int64]int
	if err := json.Unmarshal(data, &counts); err != nil {
		if c.logger != nil {
			c.logger.Warn("counts cache decode", slog.Any("error", err))
		}
		return nil, false
	}
	return counts, true
}

// Set stores the counts with the configured TTL. Best effort.
func (c *CountsCache) Set(ctx context.Context, counts map[int64]int) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(counts)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, countsCacheKey, data, c.ttl).Err(); err != nil && c.logger != nil {
		c.logger.Warn("counts cache set", slog.Any("error", err))
	}
}

// Invalidate drops the cached counts, e.g. after a bulk reprice run
// changes product visibility.
func (c *CountsCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, countsCacheKey).Err(); err != nil && c.logger != nil {
		c.logger.Warn("counts cache invalidate", slog.Any("error", err))
	}
}
