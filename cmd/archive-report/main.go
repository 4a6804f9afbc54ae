// Command archive-report prints the archived picks of the last days as a table.
//
//	archive-report -days 30
//	archive-report -url postgres://localhost:5432/artofday -format csv
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jsamuelsen/artofday/internal/adapters/storage/postgres"
	"github.com/jsamuelsen/artofday/internal/domain"
	"github.com/jsamuelsen/artofday/internal/platform/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	days := flag.Int("days", 14, "number of days to report, ending today")
	url := flag.String("url", "", "postgres URL (defaults to storage.postgres.url)")
	format := flag.String("format", "table", "output format: table, csv or markdown")
	timeout := flag.Duration("timeout", 10*time.Second, "query timeout")
	flag.Parse()

	if *days < 1 {
		return fmt.Errorf("-days must be positive, got %d", *days)
	}

	dsn := *url
	if dsn == "" {
		profile := os.Getenv("APP_ENVIRONMENT")
		if profile == "" {
			profile = "local"
		}

		cfg, err := config.Load(profile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		dsn = cfg.Storage.Postgres.URL
	}

	if dsn == "" {
		return fmt.Errorf("no postgres URL: pass -url or set storage.postgres.url")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	pool, err := postgres.Connect(ctx, postgres.Config{URL: dsn, MaxConns: 2})
	if err != nil {
		return fmt.Errorf("connecting: %w", err)
	}
	defer pool.Close()

	picks, err := postgres.NewArchive(pool).Recent(ctx, *days)
	if err != nil {
		return err
	}

	since := domain.DayOf(time.Now().UTC()).AddDays(-(*days - 1))

	return render(os.Stdout, withinDays(picks, since), *format)
}
