// Package migrate applies the embedded SQL schema to PostgreSQL with
// golang-migrate. Migrations run over database/sql and lib/pq so the runner
// stays independent of the pgx pool the application uses at runtime.
package migrate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/dailydiet/dailydiet/migrations"
)

// Source returns the embedded migration files as a golang-migrate source.
func Source() (source.Driver, error) {
	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("load embedded migrations: %w", err)
	}
	return src, nil
}

// Runner applies the embedded migrations to one database.
type Runner struct {
	m      *migrate.Migrate
	logger *slog.Logger
}

// Open connects to databaseURL and prepares the embedded migrations.
func Open(ctx context.Context, databaseURL string, logger *slog.Logger) (*Runner, error) {
	src, err := Source()
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		_ = src.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = src.Close()
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		_ = src.Close()
		_ = db.Close()
		return nil, fmt.Errorf("postgres migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		_ = src.Close()
		_ = driver.Close()
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	m.Log = slogLogger{logger: logger}

	return &Runner{m: m, logger: logger}, nil
}

// Close releases the source and the database connection.
func (r *Runner) Close() error {
	srcErr, dbErr := r.m.Close()
	return errors.Join(srcErr, dbErr)
}

// Up applies every pending migration. An up-to-date schema is not an error.
func (r *Runner) Up(ctx context.Context) error {
	if err := r.run(ctx, r.m.Up); err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// Down reverts every applied migration. An empty schema is not an error.
func (r *Runner) Down(ctx context.Context) error {
	if err := r.run(ctx, r.m.Down); err != nil {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}

// Version reports the current schema version. A database that never saw a
// migration is version 0.
func (r *Runner) Version() (version uint, dirty bool, err error) {
	version, dirty, err = r.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

// run executes fn and asks golang-migrate to stop after the current step
// when ctx is cancelled.
func (r *Runner) run(ctx context.Context, fn func() error) error {
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			r.m.GracefulStop <- true
		case <-done:
		}
	}()

	err := fn()
	if errors.Is(err, migrate.ErrNoChange) {
		err = nil
	}
	if err != nil {
		return err
	}
	return ctx.Err()
}

// slogLogger routes golang-migrate's progress lines through slog.
type slogLogger struct {
	logger *slog.Logger
}

func (l slogLogger) Printf(format string, v ...any) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)), slog.String("component", "migrate"))
}

func (l slogLogger) Verbose() bool {
	return false
}
