package cache

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func testLoggerCache() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError, // Only errors in tests
	}))
}

// stubRedis backs the cache with a map and canned errors.
type stubRedis struct {
	data    map[string]string
	gen     int64
	failing bool
}

func newStubRedis() *stubRedis {
	return &stubRedis{data: map[string]string{}}
}

func (s *stubRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if s.failing {
		return redis.NewStringResult("", errors.New("connection refused"))
	}

	value, ok := s.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}

	return redis.NewStringResult(value, nil)
}

func (s *stubRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if s.failing {
		return redis.NewStatusResult("", errors.New("connection refused"))
	}

	s.data[key] = string(value.([]byte))

	return redis.NewStatusResult("OK", nil)
}

func (s *stubRedis) Incr(ctx context.Context, key string) *redis.IntCmd {
	if s.failing {
		return redis.NewIntResult(0, errors.New("connection refused"))
	}

	s.gen++
	s.data[key] = strconv.FormatInt(s.gen, 10)

	return redis.NewIntResult(s.gen, nil)
}

func TestStatsCache_RoundTrip(t *testing.T) {
	stub := newStubRedis()
	c := newStatsCacheWithClient(stub, time.Minute, testLoggerCache())
	ctx := context.Background()

	key := c.Key(ctx, "overview", "y2021", "cLiverpool")
	assert.Equal(t, "fanpulse:stats:g0:overview:y2021:cLiverpool", key)

	type payload struct {
		Total int `json:"total"`
	}

	var miss payload

	assert.False(t, c.GetJSON(ctx, key, &miss))

	c.SetJSON(ctx, key, payload{Total: 42})

	var hit payload

	assert.True(t, c.GetJSON(ctx, key, &hit))
	assert.Equal(t, 42, hit.Total)
}

func TestStatsCache_InvalidateChangesKeys(t *testing.T) {
	stub := newStubRedis()
	c := newStatsCacheWithClient(stub, time.Minute, testLoggerCache())
	ctx := context.Background()

	before := c.Key(ctx, "overview")

	c.Invalidate(ctx)

	after := c.Key(ctx, "overview")
	assert.NotEqual(t, before, after)
}

func TestStatsCache_DegradesOnRedisFailure(t *testing.T) {
	stub := newStubRedis()
	stub.failing = true

	c := newStatsCacheWithClient(stub, time.Minute, testLoggerCache())
	ctx := context.Background()

	// Failures look like misses and writes are silently dropped
	var dest map[string]any

	assert.False(t, c.GetJSON(ctx, "some-key", &dest))
	c.SetJSON(ctx, "some-key", map[string]int{"n": 1})
	c.Invalidate(ctx)

	// Generation read failure falls back to zero
	assert.Equal(t, "fanpulse:stats:g0:overview", c.Key(ctx, "overview"))
}

func TestStatsCache_CorruptPayloadIsMiss(t *testing.T) {
	stub := newStubRedis()
	c := newStatsCacheWithClient(stub, time.Minute, testLoggerCache())
	ctx := context.Background()

	stub.data["bad"] = "{not json"

	var dest map[string]any

	assert.False(t, c.GetJSON(ctx, "bad", &dest))
}
