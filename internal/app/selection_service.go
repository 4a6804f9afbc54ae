package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jsamuelsen/artofday/internal/domain"
	"github.com/jsamuelsen/artofday/internal/ports"
)

// SelectionServiceConfig holds the dependencies of a SelectionService.
type SelectionServiceConfig struct {
	Store  ports.SelectionStore
	Now    func() time.Time
	Logger *slog.Logger
}

// SelectionService tracks which artwork each viewer has open.
type SelectionService struct {
	store  ports.SelectionStore
	now    func() time.Time
	logger *slog.Logger
}

// NewSelectionService creates a selection service. Panics if Store is nil.
func NewSelectionService(cfg SelectionServiceConfig) *SelectionService {
	if cfg.Store == nil {
		panic("SelectionService: Store is required")
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &SelectionService{
		store:  cfg.Store,
		now:    now,
		logger: logger.With(slog.String("component", "app.SelectionService")),
	}
}

// Open shows the details screen for artworkID.
func (s *SelectionService) Open(ctx context.Context, viewer string, artworkID int) (*domain.Selection, error) {
	if err := validateViewer(viewer); err != nil {
		return nil, err
	}

	if artworkID <= 0 {
		return nil, domain.NewValidationErrorWithValue("artworkId", "must be positive", artworkID)
	}

	sel := &domain.Selection{
		Viewer:    viewer,
		ArtworkID: artworkID,
		Mode:      domain.ViewDetails,
		UpdatedAt: s.now().UTC(),
	}

	if err := s.store.Put(ctx, sel); err != nil {
		return nil, fmt.Errorf("storing selection: %w", err)
	}

	s.logger.DebugContext(ctx, "opened artwork details",
		slog.String("viewer", viewer),
		slog.Int("artwork_id", artworkID),
	)

	return sel, nil
}

// Close returns the viewer to the explore screen. The last artwork id is kept.
func (s *SelectionService) Close(ctx context.Context, viewer string) (*domain.Selection, error) {
	sel, err := s.Current(ctx, viewer)
	if err != nil {
		return nil, err
	}

	sel.Mode = domain.ViewExplore
	sel.UpdatedAt = s.now().UTC()

	if err := s.store.Put(ctx, sel); err != nil {
		return nil, fmt.Errorf("storing selection: %w", err)
	}

	return sel, nil
}

// Current returns the viewer's selection, or the explore default.
func (s *SelectionService) Current(ctx context.Context, viewer string) (*domain.Selection, error) {
	if err := validateViewer(viewer); err != nil {
		return nil, err
	}

	sel, err := s.store.Get(ctx, viewer)
	if domain.IsNotFound(err) {
		return domain.DefaultSelection(viewer), nil
	}

	if err != nil {
		return nil, fmt.Errorf("loading selection: %w", err)
	}

	return sel, nil
}

func validateViewer(viewer string) error {
	if viewer == "" {
		return domain.NewValidationError("viewer", "is required")
	}

	return nil
}
