package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisOptions configures a [RedisCache].
type RedisOptions struct {
	Addr     string
	Password string
	DB       int

	// Prefix namespaces every key, e.g. "crossflow:".
	Prefix string
}

// RedisCache stores entries in Redis with native key expiry.
// It is the backend of choice when several server instances share layouts.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache connects to Redis and verifies the connection with PING,
// retrying transient failures with backoff.
func NewRedisCache(ctx context.Context, opts RedisOptions) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	err := RetryWithBackoff(ctx, func() error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := client.Ping(ctx).Err(); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			return Retryable(err)
		}
		return nil
	})
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: redis %s: %w", ErrUnavailable, opts.Addr, err)
	}

	return newRedisCache(client, opts.Prefix), nil
}

func newRedisCache(client *redis.Client, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix}
}

// Get retrieves a value from Redis. redis.Nil is reported as a miss.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores a value. A ttl <= 0 stores the key without expiry.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	return c.client.Set(ctx, c.key(key), data, ttl).Err()
}

// Delete removes a key.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.key(key)).Err()
}

// Close closes the underlying connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) key(k string) string {
	return c.prefix + k
}

var _ Cache = (*RedisCache)(nil)
