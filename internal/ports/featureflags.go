package ports

import (
	"context"
)

// Flags read by the featured service.
const (
	// FlagFallbackArtwork serves a catalog artwork when the collection fails.
	FlagFallbackArtwork = "featured-fallback"

	// FlagHTMLDescription adds a sanitized HTML description to responses.
	FlagHTMLDescription = "featured-html-description"
)

// FeatureFlags evaluates feature flags without exposing the provider.
// Every getter takes a default that is returned when the flag is unknown or
// cannot be evaluated.
//
//	if flags.IsEnabled(ctx, ports.FlagFallbackArtwork, true) {
//	    return s.fallback.Pick(day.Seed())
//	}
type FeatureFlags interface {
	// IsEnabled evaluates a boolean flag.
	IsEnabled(ctx context.Context, flag string, defaultValue bool) bool

	// GetString evaluates a string flag.
	GetString(ctx context.Context, flag string, defaultValue string) string

	// GetInt evaluates an integer flag.
	GetInt(ctx context.Context, flag string, defaultValue int) int

	// GetFloat evaluates a float flag.
	GetFloat(ctx context.Context, flag string, defaultValue float64) float64

	// GetJSON decodes a structured flag into target.
	// Returns an error if the flag is missing or cannot be decoded.
	GetJSON(ctx context.Context, flag string, target any) error
}

// FeatureFlagUser is the viewer a flag is evaluated for.
type FeatureFlagUser struct {
	// ID is the viewer identifier.
	ID string

	// Anonymous is set when no gateway subject was supplied.
	Anonymous bool

	// Attributes holds extra targeting attributes.
	Attributes map[string]any
}

type featureFlagUserKey struct{}

// FeatureFlagUserKey is used to store/retrieve FeatureFlagUser from context.
var FeatureFlagUserKey = featureFlagUserKey{}

// WithFeatureFlagUser adds the viewer to ctx for flag targeting.
func WithFeatureFlagUser(ctx context.Context, user *FeatureFlagUser) context.Context {
	return context.WithValue(ctx, FeatureFlagUserKey, user)
}

// GetFeatureFlagUser returns the viewer stored in ctx, or nil.
func GetFeatureFlagUser(ctx context.Context) *FeatureFlagUser {
	if user, ok := ctx.Value(FeatureFlagUserKey).(*FeatureFlagUser); ok {
		return user
	}

	return nil
}
