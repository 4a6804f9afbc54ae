package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/jsamuelsen/artofday/internal/domain"
)

// dayResult is the outcome of one day's work.
type dayResult[T any] struct {
	Day   domain.Day
	Value T
	Err   error
}

// recentDays lists n days ending at today, newest first.
func recentDays(today domain.Day, n int) []domain.Day {
	days := make([]domain.Day, 0, max(n, 0))
	for i := range n {
		days = append(days, today.AddDays(-i))
	}

	return days
}

// collectDays runs fn for every day with at most limit in flight and
// returns the outcomes in the order of days. One day failing does not stop
// the others. A limit below 1 means no limit.
func collectDays[T any](
	ctx context.Context,
	limit int,
	days []domain.Day,
	fn func(context.Context, domain.Day) (T, error),
) []dayResult[T] {
	results := make([]dayResult[T], len(days))

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, day := range days {
		g.Go(func() error {
			v, err := fn(ctx, day)
			results[i] = dayResult[T]{Day: day, Value: v, Err: err}

			return nil
		})
	}

	_ = g.Wait()

	return results
}

// eachDay runs fn for every day with at most limit in flight. The first
// error cancels the context passed to the remaining calls, and days not yet
// started are skipped.
func eachDay(ctx context.Context, limit int, days []domain.Day, fn func(context.Context, domain.Day) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(limit, 1))

	for _, day := range days {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			return fn(gctx, day)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	return ctx.Err()
}
