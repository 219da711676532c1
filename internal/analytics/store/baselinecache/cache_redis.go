// Package baselinecache caches computed court baselines in Redis.
//
// Caching lives in the shell, never in the engine: a baseline is valid for
// the lifetime of one analysis request, and the short TTL here only saves
// recomputing the same aggregate for back-to-back requests against one
// court. A cache failure is never fatal; the caller recomputes.
package baselinecache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"judgefinder/internal/analytics/models"
	"judgefinder/pkg/domain"
)

const baselineKeyPrefix = "baseline:court:"

// DefaultTTL bounds staleness of a cached baseline.
const DefaultTTL = 5 * time.Minute

// RedisCache is a Redis-backed court baseline cache.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// Option configures a RedisCache.
type Option func(*RedisCache)

// WithTTL overrides the default baseline TTL.
func WithTTL(ttl time.Duration) Option {
	return func(c *RedisCache) { c.ttl = ttl }
}

// New constructs a Redis-backed baseline cache.
func New(client *redis.Client, opts ...Option) *RedisCache {
	c := &RedisCache{client: client, ttl: DefaultTTL}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Get returns the cached baseline for a court, reporting whether one was
// present. A nil error with ok=false is a plain miss.
func (c *RedisCache) Get(ctx context.Context, courtID domain.CourtID) (*models.CourtBaseline, bool, error) {
	data, err := c.client.Get(ctx, baselineKeyPrefix+courtID.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var baseline models.CourtBaseline
	if err := json.Unmarshal(data, &baseline); err != nil {
		// A corrupt entry behaves like a miss; the caller recomputes and
		// overwrites it.
		return nil, false, nil
	}
	return &baseline, true, nil
}

// Set stores a computed baseline with the configured TTL.
func (c *RedisCache) Set(ctx context.Context, courtID domain.CourtID, baseline *models.CourtBaseline) error {
	if baseline == nil {
		return nil
	}
	data, err := json.Marshal(baseline)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, baselineKeyPrefix+courtID.String(), data, c.ttl).Err()
}
