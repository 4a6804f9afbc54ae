// Package domain contains core business entities and rules.
package domain

import "time"

// Thumbnail carries the source dimensions and alt text of a candidate image.
// Either dimension may be unknown.
type Thumbnail struct {
	Width   *float64
	Height  *float64
	AltText string
}

// Candidate is the raw artwork record chosen from the collection search.
// It has no knowledge of the external API shape.
type Candidate struct {
	ID          int
	Title       string
	ImageID     string
	Description string
	Thumbnail   *Thumbnail
}

// AltText returns the thumbnail alt text, or "" when there is no thumbnail.
func (c *Candidate) AltText() string {
	if c == nil || c.Thumbnail == nil {
		return ""
	}

	return c.Thumbnail.AltText
}

// PickSource records where a daily pick came from.
type PickSource string

const (
	// SourceAPI means the pick came from the collection search.
	SourceAPI PickSource = "api"

	// SourceFallback means the pick came from the bundled fallback catalog.
	SourceFallback PickSource = "fallback"
)

// DailyPick is the archived, viewport-independent choice for one day.
// Once archived a pick is never replaced.
type DailyPick struct {
	Day        Day
	Seed       int
	Candidate  Candidate
	Source     PickSource
	ResolvedAt time.Time
}

// FeaturedArtwork is a daily pick normalized for display at one viewport width.
type FeaturedArtwork struct {
	ID              int
	Title           string
	Description     string
	DescriptionHTML string
	ImageID         string
	ImageURL        string

	// DisplayHeight is nil when the source dimensions are unknown.
	DisplayHeight *float64

	Day    Day
	Source PickSource
}

// LoadState is the lifecycle of resolving a day's artwork.
type LoadState string

const (
	// StateLoading means resolution is in flight.
	StateLoading LoadState = "loading"

	// StateLoaded means the artwork resolved and is immutable.
	StateLoaded LoadState = "loaded"

	// StateFailed means resolution ended with an error.
	StateFailed LoadState = "failed"
)

// Terminal reports whether no further transition can happen.
func (s LoadState) Terminal() bool {
	return s == StateLoaded || s == StateFailed
}
