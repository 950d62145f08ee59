// Package cache provides the Redis layer: session lookups and rate limiting.
package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Options sizes the Redis connection pool. Zero values keep go-redis defaults.
type Options struct {
	PoolSize     int
	MinIdleConns int
}

// Cache wraps a go-redis client with the session and rate limit operations.
type Cache struct {
	client *redis.Client
}

// New connects to redisURL and pings once.
func New(ctx context.Context, redisURL string, opts Options) (*Cache, error) {
	redisOpts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if opts.PoolSize > 0 {
		redisOpts.PoolSize = opts.PoolSize
	}
	if opts.MinIdleConns > 0 {
		redisOpts.MinIdleConns = opts.MinIdleConns
	}

	client := redis.NewClient(redisOpts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Cache{client: client}, nil
}

// Ping reports whether redis answers.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the client.
func (c *Cache) Close() error {
	return c.client.Close()
}

// Client exposes the raw client for test fixtures.
func (c *Cache) Client() *redis.Client {
	return c.client
}
