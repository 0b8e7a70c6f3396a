package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shashiranjanraj/storefront/config"
)

// RedisDriver keeps jobs in a Redis list (LPUSH / BRPOP), so a separate
// queue:work process can consume what the API server dispatches.
type RedisDriver struct {
	rdb     *redis.Client
	key     string
	timeout time.Duration
}

// NewRedisDriver uses key as the list name; pass the client from pkg/cache.
func NewRedisDriver(rdb *redis.Client, key string) *RedisDriver {
	return &RedisDriver{rdb: rdb, key: key, timeout: 5 * time.Second}
}

func (d *RedisDriver) Push(ctx context.Context, payload []byte) error {
	if err := d.rdb.LPush(ctx, d.key, payload).Err(); err != nil {
		return fmt.Errorf("queue/redis: push: %w", err)
	}
	return nil
}

// Pop blocks up to five seconds for a job.
func (d *RedisDriver) Pop(ctx context.Context) ([]byte, error) {
	result, err := d.rdb.BRPop(ctx, d.timeout, d.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("queue/redis: pop: %w", err)
	}
	if len(result) < 2 {
		return nil, nil
	}
	return []byte(result[1]), nil
}

// NewDriver builds the driver named by cfg.Driver. rdb may be nil for the
// memory driver.
func NewDriver(cfg config.Queue, rdb *redis.Client) (Driver, error) {
	switch cfg.Driver {
	case "", "memory":
		return NewMemoryDriver(cfg.Buffer), nil
	case "redis":
		if rdb == nil {
			return nil, errors.New("queue: redis driver needs REDIS_ADDR")
		}
		return NewRedisDriver(rdb, cfg.Key), nil
	default:
		return nil, fmt.Errorf("queue: unsupported driver %q", cfg.Driver)
	}
}
