package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/blake2b"
)

// CookieName is the cookie carrying the session token.
const CookieName = "sessionId"

// DefaultMaxAge is the lifetime of a freshly issued session cookie.
const DefaultMaxAge = 7 * 24 * time.Hour

// NewToken issues a fresh opaque session token.
// ULIDs draw 80 bits from crypto/rand, so tokens are unguessable and unique.
func NewToken() (string, error) {
	id, err := ulid.New(ulid.Now(), rand.Reader)
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return id.String(), nil
}

// Digest returns a fixed-length hash of a token for use as a cache
// key, so raw tokens are never written to Redis.
func Digest(token string) string {
	sum := blake2b.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// TokenFromRequest returns the session token carried by the request, or "".
func TokenFromRequest(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// NewCookie builds the cookie that hands a token to the client.
func NewCookie(token string, maxAge time.Duration, secure bool) *http.Cookie {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Expires:  time.Now().Add(maxAge),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
