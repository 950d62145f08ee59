//go:build integration

package migrate

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dailydiet/dailydiet/internal/testutil"
)

func tableExists(t *testing.T, ctx context.Context, pool *pgxpool.Pool, name string) bool {
	t.Helper()
	var exists bool
	if err := pool.QueryRow(ctx, `SELECT to_regclass($1) IS NOT NULL`, "public."+name).Scan(&exists); err != nil {
		t.Fatalf("to_regclass(%s): %v", name, err)
	}
	return exists
}

func TestIntegrationRunner_UpDownUp(t *testing.T) {
	databaseURL := testutil.RequireEnv(t, "DATABASE_URL")
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	unlock, err := testutil.AcquireDBLock(ctx, pool)
	if err != nil {
		t.Fatalf("lock: %v", err)
	}
	defer func() { _ = unlock() }()

	// Start from a clean slate regardless of what earlier suites left behind.
	if _, err := pool.Exec(ctx, `DROP TABLE IF EXISTS meals, users, schema_migrations`); err != nil {
		t.Fatalf("drop tables: %v", err)
	}

	runner, err := Open(ctx, databaseURL, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer runner.Close()

	if v, _, err := runner.Version(); err != nil || v != 0 {
		t.Fatalf("fresh Version = %d, %v; want 0, nil", v, err)
	}

	if err := runner.Up(ctx); err != nil {
		t.Fatalf("Up failed: %v", err)
	}
	if v, dirty, err := runner.Version(); err != nil || v != 2 || dirty {
		t.Errorf("Version after Up = %d (dirty=%t), %v; want 2", v, dirty, err)
	}
	if !tableExists(t, ctx, pool, "meals") {
		t.Fatal("meals table missing after Up")
	}

	// A second Up has nothing to do and must not fail.
	if err := runner.Up(ctx); err != nil {
		t.Errorf("second Up: %v", err)
	}

	if err := runner.Down(ctx); err != nil {
		t.Fatalf("Down failed: %v", err)
	}
	if tableExists(t, ctx, pool, "meals") || tableExists(t, ctx, pool, "users") {
		t.Error("tables still present after Down")
	}
	if err := runner.Down(ctx); err != nil {
		t.Errorf("second Down: %v", err)
	}

	// Leave the schema in place for the other integration suites.
	if err := runner.Up(ctx); err != nil {
		t.Fatalf("final Up failed: %v", err)
	}
}

func TestIntegrationRunner_CancelledContext(t *testing.T) {
	databaseURL := testutil.RequireEnv(t, "DATABASE_URL")

	runner, err := Open(context.Background(), databaseURL, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer runner.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := runner.Up(ctx); err == nil {
		t.Error("Up with a cancelled context returned nil")
	}
}
