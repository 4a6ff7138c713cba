// Package cache provides the Redis-backed cache for dashboard aggregations.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const generationKey = "fanpulse:stats:gen"

// redisClient is the subset of redis.Client the cache uses.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

// StatsCache caches aggregation payloads keyed by endpoint + filters. A
// generation counter is folded into every key; bumping it on writes
// invalidates all cached aggregations at once.
type StatsCache struct {
	client redisClient
	ttl    time.Duration
	logger *slog.Logger
}

// NewStatsCache creates a stats cache over an established Redis client.
func NewStatsCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *StatsCache {
	return &StatsCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// newStatsCacheWithClient is the test seam.
func newStatsCacheWithClient(client redisClient, ttl time.Duration, logger *slog.Logger) *StatsCache {
	return &StatsCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Connect dials Redis from a URL and verifies connectivity.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

// Key builds a cache key from the endpoint name and filter parts, prefixed
// with the current generation.
func (c *StatsCache) Key(ctx context.Context, endpoint string, parts ...string) string {
	gen := c.generation(ctx)

	key := fmt.Sprintf("fanpulse:stats:g%d:%s", gen, endpoint)
	for _, part := range parts {
		key += ":" + part
	}

	return key
}

// GetJSON loads a cached payload into dest. Returns false on miss or any
// Redis error; cache failures degrade to a DB read, never to a request error.
func (c *StatsCache) GetJSON(ctx context.Context, key string, dest any) bool {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.WarnContext(ctx, "stats cache read failed", "key", key, "error", err)
		}

		return false
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		c.logger.WarnContext(ctx, "stats cache payload corrupt", "key", key, "error", err)
		return false
	}

	return true
}

// SetJSON stores a payload under key with the configured TTL. Errors are
// logged and swallowed.
func (c *StatsCache) SetJSON(ctx context.Context, key string, value any) {
	payload, err := json.Marshal(value)
	if err != nil {
		c.logger.WarnContext(ctx, "stats cache marshal failed", "key", key, "error", err)
		return
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "stats cache write failed", "key", key, "error", err)
	}
}

// Invalidate bumps the generation counter, orphaning all cached stats.
// Orphaned entries expire via TTL.
func (c *StatsCache) Invalidate(ctx context.Context) {
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		c.logger.WarnContext(ctx, "stats cache invalidation failed", "error", err)
	}
}

func (c *StatsCache) generation(ctx context.Context) int64 {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.WarnContext(ctx, "stats cache generation read failed", "error", err)
		}

		return 0
	}

	return gen
}
