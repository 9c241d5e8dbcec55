package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"jainvest/internal/logger"
)

const cachePrefix = "jainvest:"

// Cached wraps a primary Store with a Redis read-through cache. Writes go to
// the primary store and then refresh the cache; reads check Redis first and
// fall back to the primary. Redis failures never fail a request.
type Cached struct {
	primary Store
	rdb     *redis.Client
	ttl     time.Duration
}

// NewCached creates a cached wrapper around a primary store.
func NewCached(primary Store, rdb *redis.Client, ttl time.Duration) *Cached {
	return &Cached{primary: primary, rdb: rdb, ttl: ttl}
}

func (s *Cached) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.rdb.Get(ctx, cachePrefix+key).Bytes()
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, redis.Nil) {
		logger.Get().Warnw("redis read failed, using primary store", "key", key, "error", err)
	}

	// Cache miss: read from primary.
	data, err = s.primary.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	s.cache(ctx, key, data)
	return data, nil
}

func (s *Cached) Set(ctx context.Context, key string, value []byte) error {
	if err := s.primary.Set(ctx, key, value); err != nil {
		return err
	}
	s.cache(ctx, key, value)
	return nil
}

func (s *Cached) cache(ctx context.Context, key string, value []byte) {
	if err := s.rdb.Set(ctx, cachePrefix+key, value, s.ttl).Err(); err != nil {
		logger.Get().Warnw("redis write failed, dropping cached copy", "key", key, "error", err)
		// A stale entry must not outlive a newer primary write.
		s.rdb.Del(ctx, cachePrefix+key)
	}
}
