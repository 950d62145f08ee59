// Command migrate applies or reverts the embedded database schema.
//
//	migrate [-database-url URL] up|down
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dailydiet/dailydiet/internal/migrate"
)

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		timeout     = flag.Duration("timeout", time.Minute, "Overall timeout")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] up|down\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, *databaseURL, flag.Arg(0), logger); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, databaseURL, direction string, logger *slog.Logger) error {
	var apply func(*migrate.Runner, context.Context) error
	switch direction {
	case "up":
		apply = (*migrate.Runner).Up
	case "down":
		apply = (*migrate.Runner).Down
	default:
		return fmt.Errorf("unknown direction %q (want up or down)", direction)
	}

	runner, err := migrate.Open(ctx, databaseURL, logger)
	if err != nil {
		return err
	}
	defer runner.Close()

	if err := apply(runner, ctx); err != nil {
		return err
	}

	version, dirty, err := runner.Version()
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	fmt.Printf("%s: schema at version %d (dirty=%t)\n", direction, version, dirty)
	return nil
}
