// Package cache is a small JSON cache over Redis.
//
// A nil *Store (Redis not configured) is valid: every lookup misses and
// Remember always calls through.
//
//	var provinces []client.Province
//	key := cache.Key{Family: "rajaongkir:provinces"}
//	err := store.Remember(ctx, key, time.Hour, &provinces, func() (any, error) {
//	    return courier.Provinces(ctx)
//	})
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/metrics"
)

// NewClient dials Redis and verifies the connection with a ping.
func NewClient(ctx context.Context, cfg config.Redis) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("cache: redis ping: %w", err)
	}
	return rdb, nil
}

// Store caches JSON values under a key prefix.
type Store struct {
	rdb    *redis.Client
	prefix string
}

// New returns nil when rdb is nil.
func New(rdb *redis.Client, prefix string) *Store {
	if rdb == nil {
		return nil
	}
	return &Store{rdb: rdb, prefix: prefix}
}

// Key names a cached value. Family is the metric label and must come from a
// fixed set of names; ID distinguishes entries within it and may be empty.
type Key struct {
	Family string
	ID     string
}

func (k Key) String() string {
	if k.ID == "" {
		return k.Family
	}
	return k.Family + ":" + k.ID
}

// get reports a hit and decodes into dest.
func (s *Store) get(ctx context.Context, key Key, dest any) bool {
	val, err := s.rdb.Get(ctx, s.prefix+key.String()).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.WithCtx(ctx).Warn("cache: get failed", "key", key.String(), "error", err)
		}
		metrics.CacheMisses.WithLabelValues(key.Family).Inc()
		return false
	}

	if err := json.Unmarshal(val, dest); err != nil {
		metrics.CacheMisses.WithLabelValues(key.Family).Inc()
		return false
	}

	metrics.CacheHits.WithLabelValues(key.Family).Inc()
	return true
}

// Remember returns the cached value for key, or calls fn, caches its result
// for ttl and decodes it into dest. Errors from fn are never cached. A
// failed write to Redis is logged and does not fail the call.
func (s *Store) Remember(ctx context.Context, key Key, ttl time.Duration, dest any, fn func() (any, error)) error {
	if s != nil && s.get(ctx, key, dest) {
		return nil
	}

	value, err := fn()
	if err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: marshal %s: %w", key, err)
	}
	if s != nil && ttl > 0 {
		if err := s.rdb.Set(ctx, s.prefix+key.String(), data, ttl).Err(); err != nil {
			logger.WithCtx(ctx).Warn("cache: set failed", "key", key.String(), "error", err)
		}
	}
	return json.Unmarshal(data, dest)
}
