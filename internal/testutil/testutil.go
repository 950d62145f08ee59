// Package testutil holds helpers shared by integration tests.
package testutil

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/dailydiet/dailydiet/internal/model"
	"github.com/dailydiet/dailydiet/migrations"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 20241009

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// ResetSchema drops and recreates the users and meals tables from the
// embedded migrations.
func ResetSchema(ctx context.Context, pool *pgxpool.Pool) error {
	names, err := fs.Glob(migrations.FS, "*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(names)

	var ups, downs []string
	for _, name := range names {
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups = append(ups, name)
		case strings.HasSuffix(name, ".down.sql"):
			downs = append(downs, name)
		}
	}

	for i := len(downs) - 1; i >= 0; i-- {
		if err := execFile(ctx, pool, downs[i]); err != nil {
			return err
		}
	}
	for _, name := range ups {
		if err := execFile(ctx, pool, name); err != nil {
			return err
		}
	}

	return nil
}

func execFile(ctx context.Context, pool *pgxpool.Pool, name string) error {
	body, err := fs.ReadFile(migrations.FS, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if _, err := pool.Exec(ctx, string(body)); err != nil {
		return fmt.Errorf("apply %s: %w", name, err)
	}
	return nil
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ============================================================================
// Test Data Factories
// ============================================================================

var seq atomic.Int64

// UniqueEmail returns an email address that is unique within the test run.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d-%d@example.com", prefix, time.Now().UnixNano(), seq.Add(1))
}

// NewTestUser creates a user with sensible defaults.
func NewTestUser(t testing.TB, token string) *model.User {
	t.Helper()
	return &model.User{
		ID:           uuid.NewString(),
		Name:         "Test User",
		Email:        UniqueEmail("user"),
		SessionToken: token,
		CreatedAt:    time.Now().UTC(),
	}
}

// NewTestMeal creates a meal owned by userID on the given date.
// CreatedAt advances monotonically so insertion order is deterministic.
func NewTestMeal(t testing.TB, userID, date string, onDiet bool) *model.Meal {
	t.Helper()
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		t.Fatalf("NewTestMeal: bad date %q: %v", date, err)
	}
	return &model.Meal{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        "Lunch",
		Description: "Rice, vegetables and meat",
		Date:        date,
		Time:        time.Now().UTC().Format(model.TimeLayout),
		OnDiet:      onDiet,
		CreatedAt:   time.Now().UTC().Add(time.Duration(seq.Add(1)) * time.Millisecond),
	}
}
