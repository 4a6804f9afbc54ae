package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/jsamuelsen/artofday/internal/domain"
	"github.com/jsamuelsen/artofday/internal/platform/logging"
)

// ErrTaskPending is returned by Task.Result while the task is still loading.
var ErrTaskPending = errors.New("task still loading")

// LoadFunc resolves the pick for one day.
type LoadFunc func(ctx context.Context, day domain.Day) (*domain.DailyPick, error)

// Task is one asynchronous resolution of a day's pick.
type Task struct {
	day    domain.Day
	cancel context.CancelFunc
	done   chan struct{}

	// pick, err and finished are written once before done is closed.
	pick     *domain.DailyPick
	err      error
	finished time.Time
}

// Day returns the day the task resolves.
func (t *Task) Day() domain.Day { return t.day }

// State reports the task lifecycle without blocking.
func (t *Task) State() domain.LoadState {
	select {
	case <-t.done:
		if t.err != nil {
			return domain.StateFailed
		}

		return domain.StateLoaded
	default:
		return domain.StateLoading
	}
}

// Wait blocks until the task finishes or ctx is done.
// Returning early on ctx does not cancel the task.
func (t *Task) Wait(ctx context.Context) (*domain.DailyPick, error) {
	select {
	case <-t.done:
		return t.pick, t.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Result returns the outcome of a finished task, or ErrTaskPending.
func (t *Task) Result() (*domain.DailyPick, error) {
	select {
	case <-t.done:
		return t.pick, t.err
	default:
		return nil, ErrTaskPending
	}
}

// Cancel stops the underlying fetch. The task then fails with a context error.
func (t *Task) Cancel() { t.cancel() }

// Done is closed when the task reaches a terminal state.
func (t *Task) Done() <-chan struct{} { return t.done }

// LoaderConfig configures a Loader.
type LoaderConfig struct {
	// Load resolves a day. Required.
	Load LoadFunc

	// Timeout bounds each task. Zero means no limit beyond Close.
	Timeout time.Duration

	// RetryAfter is how long a failed task is kept and reported before
	// Load replaces it. Zero retries on the next Load.
	RetryAfter time.Duration

	// Now defaults to time.Now.
	Now func() time.Time

	Logger *slog.Logger
}

// Loader runs at most one task per day. Loaded tasks are kept until pruned.
// Failed tasks are kept for RetryAfter, then the next Load retries them.
type Loader struct {
	load       LoadFunc
	timeout    time.Duration
	retryAfter time.Duration
	now        func() time.Time
	logger     *slog.Logger

	base     context.Context
	stopAll  context.CancelFunc
	inflight sync.WaitGroup

	mu     sync.Mutex
	tasks  map[domain.Day]*Task
	closed bool
}

// NewLoader creates a loader. Tasks run detached from caller contexts and
// live until they finish, time out, are cancelled, or the loader is closed.
func NewLoader(cfg LoaderConfig) *Loader {
	if cfg.Load == nil {
		panic("Loader: Load is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	logger = logger.With(slog.String("component", "app.Loader"))
	base, stop := context.WithCancel(logging.WithContext(context.Background(), logger))

	return &Loader{
		load:       cfg.Load,
		timeout:    cfg.Timeout,
		retryAfter: cfg.RetryAfter,
		now:        now,
		logger:     logger,
		base:       base,
		stopAll:    stop,
		tasks:      make(map[domain.Day]*Task),
	}
}

// Load returns the task for day, starting one if none is cached or the
// cached one failed at least RetryAfter ago.
func (l *Loader) Load(day domain.Day) (*Task, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil, domain.NewUnavailableError("loader", "shut down")
	}

	if t, ok := l.tasks[day]; ok && !l.retryDue(t) {
		return t, nil
	}

	var (
		ctx    context.Context
		cancel context.CancelFunc
	)

	if l.timeout > 0 {
		ctx, cancel = context.WithTimeout(l.base, l.timeout)
	} else {
		ctx, cancel = context.WithCancel(l.base)
	}

	t := &Task{day: day, cancel: cancel, done: make(chan struct{})}
	l.tasks[day] = t

	l.inflight.Add(1)

	go l.run(ctx, t)

	return t, nil
}

func (l *Loader) run(ctx context.Context, t *Task) {
	defer l.inflight.Done()

	t.pick, t.err = l.load(ctx, t.day)
	t.finished = l.now()
	t.cancel()
	close(t.done)

	if t.err != nil {
		l.logger.Warn("featured task failed",
			slog.String("day", t.day.String()),
			slog.Any("error", t.err),
		)
	}
}

// retryDue reports whether t failed long enough ago to be replaced.
func (l *Loader) retryDue(t *Task) bool {
	select {
	case <-t.done:
		return t.err != nil && l.now().Sub(t.finished) >= l.retryAfter
	default:
		return false
	}
}

// Peek returns the cached task for day without starting one.
func (l *Loader) Peek(day domain.Day) (*Task, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	t, ok := l.tasks[day]

	return t, ok
}

// Prune drops tasks for days more than retainDays before today, cancelling
// any that are still loading. It returns the number removed.
func (l *Loader) Prune(today domain.Day, retainDays int) int {
	cutoff := today.AddDays(-retainDays)

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0

	for day, t := range l.tasks {
		if day.Before(cutoff) {
			t.Cancel()
			delete(l.tasks, day)

			removed++
		}
	}

	return removed
}

// Len returns the number of cached tasks.
func (l *Loader) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.tasks)
}

// Close cancels every task, waits for them to return, and rejects later loads.
func (l *Loader) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}

	l.closed = true
	l.mu.Unlock()

	l.stopAll()
	l.inflight.Wait()
}
