package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jsamuelsen/artofday/internal/domain"
	"github.com/jsamuelsen/artofday/internal/ports"
)

var _ ports.SelectionStore = (*SelectionStore)(nil)

// SelectionStore is the selections table.
type SelectionStore struct {
	pool *pgxpool.Pool
}

// NewSelectionStore wraps pool. The caller owns the pool.
func NewSelectionStore(pool *pgxpool.Pool) *SelectionStore {
	return &SelectionStore{pool: pool}
}

// Get implements ports.SelectionStore.
func (s *SelectionStore) Get(ctx context.Context, viewer string) (*domain.Selection, error) {
	sel := domain.Selection{Viewer: viewer}

	var mode string

	err := s.pool.QueryRow(ctx,
		"SELECT artwork_id, mode, updated_at FROM selections WHERE viewer = $1", viewer).
		Scan(&sel.ArtworkID, &mode, &sel.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NewNotFoundError("selection", viewer)
	}

	if err != nil {
		return nil, fmt.Errorf("querying selection: %w", err)
	}

	sel.Mode = domain.ViewMode(mode)
	sel.UpdatedAt = sel.UpdatedAt.UTC()

	return &sel, nil
}

// Put implements ports.SelectionStore.
func (s *SelectionStore) Put(ctx context.Context, sel *domain.Selection) error {
	if sel == nil || sel.Viewer == "" {
		return domain.NewValidationError("viewer", "is required")
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO selections (viewer, artwork_id, mode, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (viewer) DO UPDATE
		SET artwork_id = EXCLUDED.artwork_id, mode = EXCLUDED.mode, updated_at = EXCLUDED.updated_at`,
		sel.Viewer, sel.ArtworkID, string(sel.Mode), sel.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upserting selection: %w", err)
	}

	return nil
}
