package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache implements a Redis-backed report cache for server deployments,
// where multiple instances share one store and entries expire server-side.
type RedisCache struct {
	client *redis.Client
}

// RedisOptions configures the Redis connection.
type RedisOptions struct {
	Addr     string // host:port
	Password string // optional
	DB       int    // logical database, default 0
}

// NewRedisCache creates a Redis-backed cache and verifies the connection
// with a ping.
func NewRedisCache(ctx context.Context, opts RedisOptions) (Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return &RedisCache{client: client}, nil
}

// Get retrieves a value from Redis. A missing key is a miss, not an error.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, Retryable(err)
	}
	return data, true, nil
}

// Set stores a value in Redis. Expiration is handled server-side; a zero ttl
// stores the entry without expiration.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return Retryable(err)
	}
	return nil
}

// Delete removes a value from Redis.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return Retryable(err)
	}
	return nil
}

// Close releases the client's connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Ensure RedisCache implements Cache.
var _ Cache = (*RedisCache)(nil)
