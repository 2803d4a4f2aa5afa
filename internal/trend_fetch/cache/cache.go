// Package cache is a read-through Redis cache for upstream fetch results.
// A down or cold cache always degrades to a direct fetch; it is never a
// correctness mechanism.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"trend-fetch/internal/trend_fetch/model"
	"trend-fetch/pkg/config"
)

const keyPrefix = "trends:video:"

const defaultTTL = 5 * time.Minute

type TrendCache struct {
	Log    *zap.Logger
	client *redis.Client
	ttl    time.Duration
	group  singleflight.Group
}

// New connects to Redis and verifies the connection with a PING.
func New(cfg config.RedisConfig, log *zap.Logger) (*TrendCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	ttl := defaultTTL
	if cfg.CacheTTL != "" {
		if d, err := time.ParseDuration(cfg.CacheTTL); err == nil && d > 0 {
			ttl = d
		} else {
			log.Warn("invalid cacheTTL, using default", zap.String("cacheTTL", cfg.CacheTTL))
		}
	}
	return &TrendCache{Log: log, client: client, ttl: ttl}, nil
}

// GetOrFetch returns the cached items for a category or runs fetch and
// caches the result. Concurrent callers for the same category share one
// upstream call. The second return reports whether the cache served the
// request. A nil receiver disables caching entirely.
func (c *TrendCache) GetOrFetch(ctx context.Context, category string, fetch func() ([]model.Video, error)) ([]model.Video, bool, error) {
	if c == nil {
		videos, err := fetch()
		return videos, false, err
	}

	if videos, ok := c.get(ctx, category); ok {
		return videos, true, nil
	}

	val, err, _ := c.group.Do(category, func() (any, error) {
		// The shared flight serves every waiter for this category, so it
		// must not die with the leader's request context.
		flightCtx := context.WithoutCancel(ctx)
		if videos, ok := c.get(flightCtx, category); ok {
			return videos, nil
		}
		videos, err := fetch()
		if err != nil {
			return nil, err
		}
		c.set(flightCtx, category, videos)
		return videos, nil
	})
	if err != nil {
		return nil, false, err
	}
	return val.([]model.Video), false, nil
}

func (c *TrendCache) get(ctx context.Context, category string) ([]model.Video, bool) {
	data, err := c.client.Get(ctx, keyPrefix+category).Result()
	if err != nil {
		if err != redis.Nil {
			c.Log.Warn("cache get failed", zap.String("category", category), zap.Error(err))
		}
		return nil, false
	}
	var videos []model.Video
	if err := json.Unmarshal([]byte(data), &videos); err != nil {
		c.Log.Warn("cache entry corrupt, ignoring", zap.String("category", category), zap.Error(err))
		return nil, false
	}
	return videos, true
}

func (c *TrendCache) set(ctx context.Context, category string, videos []model.Video) {
	data, err := json.Marshal(videos)
	if err != nil {
		c.Log.Warn("cache marshal failed", zap.String("category", category), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, keyPrefix+category, data, c.ttl).Err(); err != nil {
		c.Log.Warn("cache set failed", zap.String("category", category), zap.Error(err))
	}
}

// Close releases the Redis connection.
func (c *TrendCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
