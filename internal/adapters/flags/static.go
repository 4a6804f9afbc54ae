// Package flags evaluates feature flags from the features section of the
// service configuration.
package flags

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"strconv"
	"strings"
	"sync"

	"github.com/jsamuelsen/artofday/internal/ports"
)

// ErrUnknownFlag is returned by GetJSON for flags that are not configured.
var ErrUnknownFlag = errors.New("unknown feature flag")

var _ ports.FeatureFlags = (*Static)(nil)

// Static serves flag values from a map. Values loaded from environment
// variables arrive as strings and are parsed on read.
type Static struct {
	mu     sync.RWMutex
	values map[string]any
	logger *slog.Logger
}

// NewStatic copies values into a new provider.
func NewStatic(values map[string]any, logger *slog.Logger) *Static {
	if logger == nil {
		logger = slog.Default()
	}

	return &Static{
		values: maps.Clone(values),
		logger: logger.With(slog.String("component", "flags.Static")),
	}
}

// Set overrides one flag at runtime.
func (s *Static) Set(flag string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.values == nil {
		s.values = make(map[string]any)
	}

	s.values[flag] = value
}

func (s *Static) lookup(flag string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[flag]

	return v, ok
}

func (s *Static) mismatch(ctx context.Context, flag string, value any, want string) {
	s.logger.WarnContext(ctx, "feature flag has wrong type",
		slog.String("flag", flag),
		slog.String("want", want),
		slog.Any("value", value),
	)
}

// IsEnabled implements ports.FeatureFlags.
func (s *Static) IsEnabled(ctx context.Context, flag string, defaultValue bool) bool {
	v, ok := s.lookup(flag)
	if !ok {
		return defaultValue
	}

	switch b := v.(type) {
	case bool:
		return b
	case map[string]any:
		return s.targeted(ctx, flag, b, defaultValue)
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		if err == nil {
			return parsed
		}
	}

	s.mismatch(ctx, flag, v, "bool")

	return defaultValue
}

// targeted evaluates a rule of the form
//
//	featured-html-description:
//	  default: false
//	  viewers: [alice, bob]
//
// Listed viewers get the opposite of default.
func (s *Static) targeted(ctx context.Context, flag string, rule map[string]any, defaultValue bool) bool {
	base := defaultValue
	if d, ok := rule["default"].(bool); ok {
		base = d
	}

	user := ports.GetFeatureFlagUser(ctx)
	if user == nil || user.Anonymous {
		return base
	}

	viewers, _ := rule["viewers"].([]any)
	for _, v := range viewers {
		if id, ok := v.(string); ok && id == user.ID {
			s.logger.DebugContext(ctx, "feature flag targeted",
				slog.String("flag", flag),
				slog.String("viewer", user.ID),
			)

			return !base
		}
	}

	return base
}

// GetString implements ports.FeatureFlags.
func (s *Static) GetString(ctx context.Context, flag string, defaultValue string) string {
	v, ok := s.lookup(flag)
	if !ok {
		return defaultValue
	}

	if str, ok := v.(string); ok {
		return str
	}

	s.mismatch(ctx, flag, v, "string")

	return defaultValue
}

// GetInt implements ports.FeatureFlags.
func (s *Static) GetInt(ctx context.Context, flag string, defaultValue int) int {
	v, ok := s.lookup(flag)
	if !ok {
		return defaultValue
	}

	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		if n == float64(int(n)) {
			return int(n)
		}
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(n))
		if err == nil {
			return parsed
		}
	}

	s.mismatch(ctx, flag, v, "int")

	return defaultValue
}

// GetFloat implements ports.FeatureFlags.
func (s *Static) GetFloat(ctx context.Context, flag string, defaultValue float64) float64 {
	v, ok := s.lookup(flag)
	if !ok {
		return defaultValue
	}

	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err == nil {
			return parsed
		}
	}

	s.mismatch(ctx, flag, v, "float")

	return defaultValue
}

// GetJSON implements ports.FeatureFlags. String values are treated as JSON text.
func (s *Static) GetJSON(_ context.Context, flag string, target any) error {
	v, ok := s.lookup(flag)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownFlag, flag)
	}

	var raw []byte

	if str, ok := v.(string); ok {
		raw = []byte(str)
	} else {
		var err error

		raw, err = json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encoding flag %s: %w", flag, err)
		}
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decoding flag %s: %w", flag, err)
	}

	return nil
}
