// Package ports defines the contracts between the application layer and its
// adapters.
//
// Port conventions:
//   - Context first on anything that may block
//   - Domain types in, domain types out; adapters keep their DTOs private
//   - Failures are reported with domain errors (ErrNotFound, ErrUnavailable, ...)
package ports

import (
	"context"
	"time"

	"github.com/jsamuelsen/artofday/internal/domain"
)

// CandidateClient searches the art collection for the candidate on a result page.
type CandidateClient interface {
	// FetchCandidate returns the first public-domain, boosted record on page.
	// Returns domain.ErrNotFound when the page is empty and
	// domain.ErrUnavailable when the collection cannot be reached.
	FetchCandidate(ctx context.Context, page int) (*domain.Candidate, error)
}

// PickArchive persists one immutable pick per day.
type PickArchive interface {
	// Get returns the pick archived for day.
	// Returns domain.ErrNotFound if the day has not been resolved.
	Get(ctx context.Context, day domain.Day) (*domain.DailyPick, error)

	// Save stores pick unless its day already has one.
	// It always returns the pick that is archived for the day afterwards,
	// which may be an earlier one.
	Save(ctx context.Context, pick *domain.DailyPick) (*domain.DailyPick, error)

	// Recent returns up to limit picks, newest day first.
	Recent(ctx context.Context, limit int) ([]*domain.DailyPick, error)
}

// FallbackCatalog supplies a stand-in candidate when the collection fails.
type FallbackCatalog interface {
	// Pick returns the catalog entry for seed.
	// Returns domain.ErrNotFound if the catalog is empty.
	Pick(seed int) (*domain.Candidate, error)

	// Len returns the number of entries.
	Len() int
}

// SelectionStore holds per-viewer display state.
type SelectionStore interface {
	// Get returns the selection for viewer.
	// Returns domain.ErrNotFound if the viewer has none.
	Get(ctx context.Context, viewer string) (*domain.Selection, error)

	// Put replaces the selection for sel.Viewer.
	Put(ctx context.Context, sel *domain.Selection) error
}

// FeaturedMetrics records how daily picks were resolved.
type FeaturedMetrics interface {
	// ObserveResolution records one resolution attempt.
	// source is "archive", "api" or "fallback"; result is "ok" or "error".
	ObserveResolution(source, result string, took time.Duration)
}

// NopFeaturedMetrics discards observations.
type NopFeaturedMetrics struct{}

// ObserveResolution implements FeaturedMetrics.
func (NopFeaturedMetrics) ObserveResolution(string, string, time.Duration) {}
