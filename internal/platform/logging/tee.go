package logging

import (
	"context"
	"errors"
	"log/slog"
)

// teeHandler fans each record out to several handlers.
type teeHandler []slog.Handler

// Tee returns a handler writing every record to each of handlers, for
// example the console and a rolling file. Nil handlers are dropped and a
// single handler is returned unwrapped.
func Tee(handlers ...slog.Handler) slog.Handler {
	var t teeHandler

	for _, h := range handlers {
		if h != nil {
			t = append(t, h)
		}
	}

	switch len(t) {
	case 0:
		return slog.DiscardHandler
	case 1:
		return t[0]
	default:
		return t
	}
}

func (t teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t {
		if h.Enabled(ctx, level) {
			return true
		}
	}

	return false
}

// Handle passes a copy of r to each handler enabled for its level and
// joins their errors.
func (t teeHandler) Handle(ctx context.Context, r slog.Record) error { //nolint:gocritic // slog.Handler signature
	var errs []error

	for _, h := range t {
		if !h.Enabled(ctx, r.Level) {
			continue
		}

		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return t.each(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return t
	}

	return t.each(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (t teeHandler) each(fn func(slog.Handler) slog.Handler) teeHandler {
	out := make(teeHandler, len(t))
	for i, h := range t {
		out[i] = fn(h)
	}

	return out
}
