package domain

import "time"

// ViewMode is which screen a viewer is on.
type ViewMode string

const (
	// ViewExplore is the browsing screen with the featured card.
	ViewExplore ViewMode = "explore"

	// ViewDetails is the detail screen for one artwork.
	ViewDetails ViewMode = "details"
)

// Selection is the display state of one viewer: which artwork is shown and
// which screen is active.
type Selection struct {
	Viewer    string
	ArtworkID int
	Mode      ViewMode
	UpdatedAt time.Time
}

// DefaultSelection is the state of a viewer that has not opened anything.
func DefaultSelection(viewer string) *Selection {
	return &Selection{Viewer: viewer, Mode: ViewExplore}
}
