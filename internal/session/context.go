// Package session resolves the opaque session cookie to a user and threads
// that user through the request context.
package session

import (
	"context"

	"github.com/dailydiet/dailydiet/internal/model"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// userContextKey is the context key for the resolved session user.
	userContextKey contextKey = "session_user"
)

// ContextWithUser adds the resolved user to the context.
func ContextWithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext retrieves the resolved user from the context.
// Returns nil if not present.
func UserFromContext(ctx context.Context) *model.User {
	user, ok := ctx.Value(userContextKey).(*model.User)
	if !ok {
		return nil
	}
	return user
}

// MustUserFromContext retrieves the resolved user from the context.
// Panics if not present (use only behind the session middleware).
func MustUserFromContext(ctx context.Context) *model.User {
	user := UserFromContext(ctx)
	if user == nil {
		panic("session user not found - ensure session middleware is applied")
	}
	return user
}
