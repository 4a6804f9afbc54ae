// Package memory provides process-local implementations of the archive and
// selection ports. State is lost on restart.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jsamuelsen/artofday/internal/domain"
	"github.com/jsamuelsen/artofday/internal/ports"
)

var (
	_ ports.PickArchive    = (*Archive)(nil)
	_ ports.SelectionStore = (*SelectionStore)(nil)
)

// Archive keeps one pick per day.
type Archive struct {
	mu    sync.RWMutex
	picks map[domain.Day]domain.DailyPick
}

// NewArchive creates an empty archive.
func NewArchive() *Archive {
	return &Archive{picks: make(map[domain.Day]domain.DailyPick)}
}

// Get implements ports.PickArchive.
func (a *Archive) Get(_ context.Context, day domain.Day) (*domain.DailyPick, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	p, ok := a.picks[day]
	if !ok {
		return nil, domain.NewNotFoundError("pick", day.String())
	}

	return &p, nil
}

// Save implements ports.PickArchive. The first pick saved for a day wins.
func (a *Archive) Save(_ context.Context, pick *domain.DailyPick) (*domain.DailyPick, error) {
	if pick == nil {
		return nil, domain.NewValidationError("pick", "is required")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if existing, ok := a.picks[pick.Day]; ok {
		return &existing, nil
	}

	a.picks[pick.Day] = *pick
	stored := *pick

	return &stored, nil
}

// Recent implements ports.PickArchive.
func (a *Archive) Recent(_ context.Context, limit int) ([]*domain.DailyPick, error) {
	a.mu.RLock()
	out := make([]*domain.DailyPick, 0, len(a.picks))

	for _, p := range a.picks {
		out = append(out, &p)
	}
	a.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[j].Day.Before(out[i].Day)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

// SelectionStore keeps the latest selection per viewer.
type SelectionStore struct {
	mu         sync.RWMutex
	selections map[string]domain.Selection
}

// NewSelectionStore creates an empty store.
func NewSelectionStore() *SelectionStore {
	return &SelectionStore{selections: make(map[string]domain.Selection)}
}

// Get implements ports.SelectionStore.
func (s *SelectionStore) Get(_ context.Context, viewer string) (*domain.Selection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sel, ok := s.selections[viewer]
	if !ok {
		return nil, domain.NewNotFoundError("selection", viewer)
	}

	return &sel, nil
}

// Put implements ports.SelectionStore.
func (s *SelectionStore) Put(_ context.Context, sel *domain.Selection) error {
	if sel == nil || sel.Viewer == "" {
		return domain.NewValidationError("viewer", "is required")
	}

	s.mu.Lock()
	s.selections[sel.Viewer] = *sel
	s.mu.Unlock()

	return nil
}
