// Package app contains the application services that orchestrate the
// featured artwork use cases over the ports.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jsamuelsen/artofday/internal/domain"
	"github.com/jsamuelsen/artofday/internal/platform/logging"
	"github.com/jsamuelsen/artofday/internal/ports"
)

// Resolution sources reported to FeaturedMetrics in addition to the pick sources.
const (
	sourceArchive = "archive"
	sourceNone    = "none"
)

// archiveGrace bounds a Save that starts after the fetch budget ran out.
const archiveGrace = 5 * time.Second

// FeaturedSettings are the tunables of the featured service.
type FeaturedSettings struct {
	DefaultViewportWidth float64
	ImageBaseURL         string
	MaxHistoryDays       int
	HistoryConcurrency   int
	RetainDays           int
	FetchTimeout         time.Duration

	// RetryAfter is how long a failed day is reported as failed before the
	// next request resolves it again.
	RetryAfter time.Duration
}

// FeaturedServiceConfig holds the dependencies of a FeaturedService.
type FeaturedServiceConfig struct {
	Client   ports.CandidateClient
	Archive  ports.PickArchive
	Fallback ports.FallbackCatalog // optional
	Flags    ports.FeatureFlags    // optional
	Metrics  ports.FeaturedMetrics // optional

	Settings FeaturedSettings

	// Location decides when a day starts. Defaults to UTC.
	Location *time.Location

	// Now defaults to time.Now.
	Now func() time.Time

	Logger *slog.Logger
}

// FeaturedService picks, archives and presents the artwork of the day.
type FeaturedService struct {
	client   ports.CandidateClient
	archive  ports.PickArchive
	fallback ports.FallbackCatalog
	flags    ports.FeatureFlags
	metrics  ports.FeaturedMetrics

	settings FeaturedSettings
	location *time.Location
	now      func() time.Time

	exec   *Executor
	loader *Loader
	logger *slog.Logger
}

// NewFeaturedService creates the service and its loader.
// Panics if Client or Archive is nil.
func NewFeaturedService(cfg FeaturedServiceConfig) *FeaturedService {
	if cfg.Client == nil || cfg.Archive == nil {
		panic("FeaturedService: Client and Archive are required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &FeaturedService{
		client:   cfg.Client,
		archive:  cfg.Archive,
		fallback: cfg.Fallback,
		flags:    cfg.Flags,
		metrics:  cfg.Metrics,
		settings: cfg.Settings,
		location: cfg.Location,
		now:      cfg.Now,
		logger:   logger.With(slog.String("component", "app.FeaturedService")),
	}

	if s.metrics == nil {
		s.metrics = ports.NopFeaturedMetrics{}
	}

	if s.location == nil {
		s.location = time.UTC
	}

	if s.now == nil {
		s.now = time.Now
	}

	if s.settings.DefaultViewportWidth <= 0 {
		s.settings.DefaultViewportWidth = 400
	}

	if s.settings.MaxHistoryDays <= 0 {
		s.settings.MaxHistoryDays = 30
	}

	if s.settings.HistoryConcurrency <= 0 {
		s.settings.HistoryConcurrency = 4
	}

	if s.settings.RetainDays <= 0 {
		s.settings.RetainDays = 7
	}

	s.exec = NewExecutor(s.logger)
	s.loader = NewLoader(LoaderConfig{
		Load:       s.Resolve,
		Timeout:    s.settings.FetchTimeout,
		RetryAfter: s.settings.RetryAfter,
		Now:        s.now,
		Logger:     s.logger,
	})

	return s
}

// CurrentDay returns today's date in the configured location.
func (s *FeaturedService) CurrentDay() domain.Day {
	return domain.DayOf(s.now().In(s.location))
}

// resolution is a pick plus whether it was already archived.
type resolution struct {
	pick     *domain.DailyPick
	archived bool
}

// Resolve returns the pick for day: the archived one if it exists, otherwise
// a freshly searched candidate (or a fallback) which is then archived.
func (s *FeaturedService) Resolve(ctx context.Context, day domain.Day) (*domain.DailyPick, error) {
	start := time.Now()

	res, err := Execute(ctx, s.exec, Operation[domain.Day, resolution, resolution, resolution]{
		Name:     "featured.resolve",
		Validate: s.validateDay,
		Perform:  s.perform,
		Verify: func(_ context.Context, _ domain.Day, r resolution) (resolution, error) {
			return r, verifyCandidate(&r.pick.Candidate)
		},
		Archive: func(ctx context.Context, _ domain.Day, r resolution) (resolution, error) {
			if r.archived {
				return r, nil
			}

			ctx, cancel := archiveContext(ctx)
			defer cancel()

			stored, err := s.archive.Save(ctx, r.pick)
			if err != nil {
				return r, fmt.Errorf("saving pick: %w", err)
			}

			return resolution{pick: stored}, nil
		},
	}, day)

	took := time.Since(start)

	if err != nil {
		s.metrics.ObserveResolution(sourceNone, "error", took)
		return nil, err
	}

	source := string(res.pick.Source)
	if res.archived {
		source = sourceArchive
	}

	s.metrics.ObserveResolution(source, "ok", took)

	return res.pick, nil
}

func (s *FeaturedService) validateDay(_ context.Context, day domain.Day) error {
	today := s.CurrentDay()

	if today.Before(day) {
		return domain.NewValidationErrorWithValue("day", "must not be in the future", day.String())
	}

	if today.DaysSince(day) > s.settings.MaxHistoryDays {
		return domain.NewValidationErrorWithValue("day",
			fmt.Sprintf("must be within the last %d days", s.settings.MaxHistoryDays), day.String())
	}

	return nil
}

func (s *FeaturedService) perform(ctx context.Context, day domain.Day) (resolution, error) {
	logger := logging.FromContextOr(ctx, s.logger).With(slog.String("day", day.String()))

	archived, err := s.archive.Get(ctx, day)
	if err == nil {
		return resolution{pick: archived, archived: true}, nil
	}

	if !domain.IsNotFound(err) {
		return resolution{}, fmt.Errorf("reading archive: %w", err)
	}

	seed := day.Seed()

	candidate, err := s.client.FetchCandidate(ctx, seed)
	if err == nil {
		err = verifyCandidate(candidate)
	}

	if err == nil {
		return resolution{pick: s.newPick(day, candidate, domain.SourceAPI)}, nil
	}

	if cerr := ctx.Err(); cerr != nil && !errors.Is(cerr, context.DeadlineExceeded) {
		return resolution{}, fmt.Errorf("fetching candidate for page %d: %w", seed, cerr)
	}

	if !s.fallbackEnabled(ctx) {
		if candidate != nil {
			// Let Verify reject it so the failure is attributed to that step.
			return resolution{pick: s.newPick(day, candidate, domain.SourceAPI)}, nil
		}

		return resolution{}, fmt.Errorf("fetching candidate for page %d: %w", seed, err)
	}

	logger.WarnContext(ctx, "using fallback artwork", slog.Int("seed", seed), slog.Any("cause", err))

	fb, fbErr := s.fallback.Pick(seed)
	if fbErr != nil {
		return resolution{}, fmt.Errorf("fallback after %v: %w", err, fbErr)
	}

	return resolution{pick: s.newPick(day, fb, domain.SourceFallback)}, nil
}

// archiveContext lets a pick resolved within the fetch budget be saved after
// the budget expired. Cancellation still aborts the save.
func archiveContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ctx, func() {}
	}

	return context.WithTimeout(context.WithoutCancel(ctx), archiveGrace)
}

func (s *FeaturedService) fallbackEnabled(ctx context.Context) bool {
	if s.fallback == nil || s.fallback.Len() == 0 {
		return false
	}

	if s.flags == nil {
		return true
	}

	return s.flags.IsEnabled(ctx, ports.FlagFallbackArtwork, true)
}

func (s *FeaturedService) newPick(day domain.Day, c *domain.Candidate, source domain.PickSource) *domain.DailyPick {
	return &domain.DailyPick{
		Day:        day,
		Seed:       day.Seed(),
		Candidate:  *c,
		Source:     source,
		ResolvedAt: s.now().UTC(),
	}
}

// verifyCandidate rejects candidates that cannot be displayed.
func verifyCandidate(c *domain.Candidate) error {
	if c == nil || c.ID <= 0 {
		return domain.NewUnavailableError("collection", "candidate has no id")
	}

	if c.ImageID == "" {
		return domain.NewUnavailableError("collection", fmt.Sprintf("artwork %d has no image", c.ID))
	}

	return nil
}

// Today returns today's artwork. With wait unset and the task still loading
// it returns a nil artwork and StateLoading.
func (s *FeaturedService) Today(ctx context.Context, viewportWidth float64, wait bool) (*domain.FeaturedArtwork, domain.LoadState, error) {
	today := s.CurrentDay()

	if n := s.loader.Prune(today, s.settings.RetainDays); n > 0 {
		s.logger.DebugContext(ctx, "pruned featured tasks", slog.Int("removed", n))
	}

	task, err := s.loader.Load(today)
	if err != nil {
		return nil, domain.StateFailed, err
	}

	if !wait && task.State() == domain.StateLoading {
		return nil, domain.StateLoading, nil
	}

	pick, err := task.Wait(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, domain.StateLoading, err
		}

		return nil, domain.StateFailed, err
	}

	return s.present(ctx, pick, viewportWidth), domain.StateLoaded, nil
}

// State reports today's day and load state. It starts the task only when
// none exists, so a failed day stays failed here until Today retries it.
func (s *FeaturedService) State(_ context.Context) (domain.Day, domain.LoadState, error) {
	today := s.CurrentDay()

	if task, ok := s.loader.Peek(today); ok {
		return today, task.State(), nil
	}

	task, err := s.loader.Load(today)
	if err != nil {
		return today, domain.StateFailed, err
	}

	return today, task.State(), nil
}

// ForDay resolves a specific day through the loader and waits for it.
func (s *FeaturedService) ForDay(ctx context.Context, day domain.Day, viewportWidth float64) (*domain.FeaturedArtwork, error) {
	if err := s.validateDay(ctx, day); err != nil {
		return nil, err
	}

	task, err := s.loader.Load(day)
	if err != nil {
		return nil, err
	}

	pick, err := task.Wait(ctx)
	if err != nil {
		return nil, err
	}

	return s.present(ctx, pick, viewportWidth), nil
}

// History returns the artworks of the last days days, newest first.
// Days that fail to resolve are logged and left out.
func (s *FeaturedService) History(ctx context.Context, days int, viewportWidth float64) ([]*domain.FeaturedArtwork, error) {
	if days < 1 || days > s.settings.MaxHistoryDays {
		return nil, domain.NewValidationErrorWithValue("days",
			fmt.Sprintf("must be between 1 and %d", s.settings.MaxHistoryDays), days)
	}

	results := collectDays(ctx, s.settings.HistoryConcurrency, recentDays(s.CurrentDay(), days),
		func(ctx context.Context, day domain.Day) (*domain.DailyPick, error) {
			task, err := s.loader.Load(day)
			if err != nil {
				return nil, err
			}

			return task.Wait(ctx)
		})

	out := make([]*domain.FeaturedArtwork, 0, days)

	for _, r := range results {
		if r.Err != nil {
			s.logger.WarnContext(ctx, "history day unavailable",
				slog.String("day", r.Day.String()),
				slog.Any("error", r.Err),
			)

			continue
		}

		out = append(out, s.present(ctx, r.Value, viewportWidth))
	}

	return out, nil
}

// Warm starts resolution of the last days days without waiting for results.
func (s *FeaturedService) Warm(ctx context.Context, days int) error {
	return eachDay(ctx, s.settings.HistoryConcurrency, recentDays(s.CurrentDay(), days),
		func(_ context.Context, day domain.Day) error {
			_, err := s.loader.Load(day)
			return err
		})
}

// Close stops all in-flight resolutions.
func (s *FeaturedService) Close() {
	s.loader.Close()
}

// DefaultViewportWidth is the width used when callers send none.
func (s *FeaturedService) DefaultViewportWidth() float64 {
	return s.settings.DefaultViewportWidth
}

func (s *FeaturedService) present(ctx context.Context, pick *domain.DailyPick, viewportWidth float64) *domain.FeaturedArtwork {
	if viewportWidth <= 0 {
		viewportWidth = s.settings.DefaultViewportWidth
	}

	includeHTML := s.flags != nil && s.flags.IsEnabled(ctx, ports.FlagHTMLDescription, false)

	return pick.Present(domain.NormalizeOptions{
		ViewportWidth: viewportWidth,
		ImageBaseURL:  s.settings.ImageBaseURL,
		IncludeHTML:   includeHTML,
	})
}
