package dto

import (
	"time"

	"github.com/jsamuelsen/artofday/internal/domain"
)

// FeaturedQuery is the query of GET /featured.
type FeaturedQuery struct {
	ViewportWidth *float64 `form:"viewport_width" validate:"omitempty,gt=0,lte=10000"`

	// Wait blocks until the pick resolves. Defaults to true.
	Wait *bool `form:"wait"`
}

// ShouldWait applies the default of Wait.
func (q *FeaturedQuery) ShouldWait() bool {
	return q.Wait == nil || *q.Wait
}

// Width returns the requested width, or 0 to use the service default.
func (q *FeaturedQuery) Width() float64 {
	if q.ViewportWidth == nil {
		return 0
	}

	return *q.ViewportWidth
}

// DayURI is the path of GET /featured/:day.
type DayURI struct {
	Day string `uri:"day" validate:"required,day"`
}

// HistoryQuery is the query of GET /featured/history.
type HistoryQuery struct {
	Days          int      `form:"days"           validate:"omitempty,gte=1,lte=365"`
	ViewportWidth *float64 `form:"viewport_width" validate:"omitempty,gt=0,lte=10000"`
}

// WarmQuery is the query of POST /featured/warm.
type WarmQuery struct {
	Days int `form:"days" validate:"omitempty,gte=1,lte=365"`
}

// ArtworkResponse is a featured artwork ready for display.
type ArtworkResponse struct {
	ID              int    `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	DescriptionHTML string `json:"descriptionHtml,omitempty"`
	ImageID         string `json:"imageId"`
	ImageURL        string `json:"imageUrl"`

	// DisplayHeight is omitted when the source dimensions are unknown;
	// clients then use DefaultDisplayHeight.
	DisplayHeight        *float64 `json:"displayHeight,omitempty"`
	DefaultDisplayHeight float64  `json:"defaultDisplayHeight"`

	Day    string `json:"day"`
	Source string `json:"source"`
}

// NewArtworkResponse converts a domain artwork.
func NewArtworkResponse(a *domain.FeaturedArtwork, defaultHeight float64) ArtworkResponse {
	return ArtworkResponse{
		ID:                   a.ID,
		Title:                a.Title,
		Description:          a.Description,
		DescriptionHTML:      a.DescriptionHTML,
		ImageID:              a.ImageID,
		ImageURL:             a.ImageURL,
		DisplayHeight:        a.DisplayHeight,
		DefaultDisplayHeight: defaultHeight,
		Day:                  a.Day.String(),
		Source:               string(a.Source),
	}
}

// LoadingResponse is returned with 202 while today's pick is resolving.
type LoadingResponse struct {
	State string `json:"state"`
	Day   string `json:"day"`
}

// StateResponse describes today's resolution.
type StateResponse struct {
	Day   string `json:"day"`
	Seed  int    `json:"seed"`
	State string `json:"state"`
}

// HistoryResponse lists recent artworks, newest first.
type HistoryResponse struct {
	Items []ArtworkResponse `json:"items"`
	Count int               `json:"count"`
}

// WarmResponse acknowledges a warm request.
type WarmResponse struct {
	Days int `json:"days"`
}

// SelectionRequest is the body of PUT /selection.
type SelectionRequest struct {
	ArtworkID int `json:"artworkId" validate:"required,gt=0"`
}

// SelectionResponse is a viewer's display state.
type SelectionResponse struct {
	Viewer    string     `json:"viewer"`
	ArtworkID int        `json:"artworkId,omitempty"`
	Mode      string     `json:"mode"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// NewSelectionResponse converts a domain selection.
func NewSelectionResponse(s *domain.Selection) SelectionResponse {
	resp := SelectionResponse{
		Viewer:    s.Viewer,
		ArtworkID: s.ArtworkID,
		Mode:      string(s.Mode),
	}

	if !s.UpdatedAt.IsZero() {
		updated := s.UpdatedAt
		resp.UpdatedAt = &updated
	}

	return resp
}
