package storage

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mind-engage/imuno/internal/config"
)

const cacheKeyPrefix = "imuno:doc:"

// RedisCache serves documents from Redis and fills misses from the wrapped
// source. Redis failures are logged and fall through to the source.
type RedisCache struct {
	rdb  redis.Cmdable
	next Source
	ttl  time.Duration
}

func NewRedisCache(rdb redis.Cmdable, next Source, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, next: next, ttl: ttl}
}

func CacheKey(name string) string { return cacheKeyPrefix + name }

func (c *RedisCache) Fetch(ctx context.Context, name string) ([]byte, error) {
	log := config.WithContext(ctx).WithField("document", name)

	b, err := c.rdb.Get(ctx, CacheKey(name)).Bytes()
	if err == nil {
		return b, nil
	}
	if err != redis.Nil {
		log.WithError(err).Warn("redis get failed, fetching from source")
	}

	b, err = c.next.Fetch(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := c.rdb.Set(ctx, CacheKey(name), b, c.ttl).Err(); err != nil {
		log.WithError(err).Warn("redis set failed")
	}
	return b, nil
}

// Invalidate drops cached copies so the next Fetch reads the source.
func (c *RedisCache) Invalidate(ctx context.Context, names ...string) error {
	if len(names) == 0 {
		return nil
	}
	keys := make([]string, len(names))
	for i, n := range names {
		keys[i] = CacheKey(n)
	}
	return c.rdb.Del(ctx, keys...).Err()
}
