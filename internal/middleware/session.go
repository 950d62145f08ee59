package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dailydiet/dailydiet/internal/model"
	"github.com/dailydiet/dailydiet/internal/session"
)

// SessionResolver maps a session token to its user.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*model.User, error)
}

// SessionConfig holds configuration for the session middleware.
type SessionConfig struct {
	Logger   *slog.Logger
	Resolver SessionResolver
}

// RequireSession rejects requests without a valid session cookie and
// attaches the resolved user to the request context.
//
//	no cookie             401 UNAUTHENTICATED
//	cookie, no such user  403 FORBIDDEN
func RequireSession(cfg SessionConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := cfg.Resolver.Resolve(r.Context(), session.TokenFromRequest(r))
			if err != nil {
				switch {
				case errors.Is(err, session.ErrUnauthenticated):
					writeJSONError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "Unauthorized")
				case errors.Is(err, session.ErrUnauthorized):
					cfg.Logger.Warn("session rejected",
						slog.String("reason", "unknown_token"),
						slog.String("ip", r.RemoteAddr),
						slog.String("endpoint", r.Method+" "+r.URL.Path),
						slog.String("request_id", GetRequestID(r.Context())),
					)
					writeJSONError(w, http.StatusForbidden, "FORBIDDEN", "Forbidden")
				default:
					cfg.Logger.Error("session resolution failed",
						slog.String("error", err.Error()),
						slog.String("request_id", GetRequestID(r.Context())),
					)
					writeJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
				}
				return
			}

			ctx := session.ContextWithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
