package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dailydiet/dailydiet/internal/model"
)

const (
	// sessionCachePrefix is the Redis key prefix for resolved session users.
	sessionCachePrefix = "session:user:"
	// defaultSessionTTL applies when callers pass a non-positive TTL.
	defaultSessionTTL = 5 * time.Minute
)

// CachedUser represents a resolved session user stored in Redis.
// The token itself is never stored; the key is its digest.
type CachedUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// GetSessionUser retrieves a cached user by session digest.
// Returns nil if not found (cache miss).
func (c *Cache) GetSessionUser(ctx context.Context, digest string) (*model.User, error) {
	data, err := c.client.Get(ctx, sessionCachePrefix+digest).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session user: %w", err)
	}

	var cached CachedUser
	if err := json.Unmarshal(data, &cached); err != nil {
		// Corrupted cache entry - treat as miss
		return nil, nil //nolint:nilerr
	}

	return &model.User{
		ID:        cached.ID,
		Name:      cached.Name,
		Email:     cached.Email,
		CreatedAt: cached.CreatedAt,
	}, nil
}

// SetSessionUser caches the user a session digest resolves to.
func (c *Cache) SetSessionUser(ctx context.Context, digest string, user *model.User, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}

	data, err := json.Marshal(CachedUser{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal session user: %w", err)
	}

	return c.client.Set(ctx, sessionCachePrefix+digest, data, ttl).Err()
}
