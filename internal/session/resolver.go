package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dailydiet/dailydiet/internal/metrics"
	"github.com/dailydiet/dailydiet/internal/model"
	"github.com/dailydiet/dailydiet/internal/repository"
)

// Resolution errors.
var (
	// ErrUnauthenticated means no session credential was supplied.
	ErrUnauthenticated = errors.New("session token missing")
	// ErrUnauthorized means a credential was supplied but matches no user.
	ErrUnauthorized = errors.New("session token does not match any user")
)

// UserLookup finds the user owning a session token.
// It returns repository.ErrUserNotFound when none does.
type UserLookup interface {
	GetUserBySessionToken(ctx context.Context, token string) (*model.User, error)
}

// UserCache stores resolved users keyed by token digest.
// A nil user with a nil error is a miss.
type UserCache interface {
	GetSessionUser(ctx context.Context, digest string) (*model.User, error)
	SetSessionUser(ctx context.Context, digest string, user *model.User, ttl time.Duration) error
}

// Resolver maps session tokens to users.
type Resolver struct {
	users   UserLookup
	cache   UserCache
	ttl     time.Duration
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewResolver creates a Resolver. cache may be nil to always hit the store.
func NewResolver(users UserLookup, cache UserCache, ttl time.Duration, logger *slog.Logger, recorder metrics.Recorder) *Resolver {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		users:   users,
		cache:   cache,
		ttl:     ttl,
		logger:  logger,
		metrics: recorder,
	}
}

// Resolve returns the user owning token.
// Users are immutable, so a cached resolution never goes stale.
func (r *Resolver) Resolve(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	digest := Digest(token)

	if r.cache != nil {
		user, err := r.cache.GetSessionUser(ctx, digest)
		if err != nil {
			// Fail open to the database
			r.logger.Warn("session cache read failed", slog.String("error", err.Error()))
		}
		if user != nil {
			r.metrics.IncSessionCacheHit()
			return user, nil
		}
		r.metrics.IncSessionCacheMiss()
	}

	user, err := r.users.GetUserBySessionToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("resolve session: %w", err)
	}

	if r.cache != nil {
		if err := r.cache.SetSessionUser(ctx, digest, user, r.ttl); err != nil {
			r.logger.Warn("session cache write failed", slog.String("error", err.Error()))
		}
	}

	return user, nil
}
