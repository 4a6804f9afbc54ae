package domain

import "strings"

// DefaultImageBaseURL is the image service root for collection renditions.
const DefaultImageBaseURL = "https://www.artic.edu"

// renditionPath is the IIIF path for an 843px wide rendition.
const renditionPath = "/full/843,/0/default.jpg"

// NormalizeOptions controls how a candidate is prepared for display.
type NormalizeOptions struct {
	// ViewportWidth is the width the image will be drawn at.
	ViewportWidth float64

	// ImageBaseURL overrides DefaultImageBaseURL.
	ImageBaseURL string

	// IncludeHTML fills FeaturedArtwork.DescriptionHTML.
	IncludeHTML bool
}

// ImageURL builds the rendition URL for imageID under base.
// An empty imageID yields an empty URL.
func ImageURL(base, imageID string) string {
	if imageID == "" {
		return ""
	}

	if base == "" {
		base = DefaultImageBaseURL
	}

	return strings.TrimSuffix(base, "/") + "/iiif/2/" + imageID + renditionPath
}

// DisplayHeight scales the thumbnail aspect ratio to viewportWidth.
// It returns nil unless both dimensions are known and the width is positive.
func DisplayHeight(t *Thumbnail, viewportWidth float64) *float64 {
	// TODO: fall back to parsing the record's "dimensions" string when the
	// thumbnail carries no width or height.
	if t == nil || t.Width == nil || t.Height == nil || *t.Width <= 0 {
		return nil
	}

	h := viewportWidth * (*t.Height / *t.Width)

	return &h
}

// Normalize turns a candidate into a displayable artwork.
// The description falls back to the thumbnail alt text when empty.
func Normalize(c *Candidate, opts NormalizeOptions) *FeaturedArtwork {
	raw := c.Description
	if raw == "" {
		raw = c.AltText()
	}

	art := &FeaturedArtwork{
		ID:            c.ID,
		Title:         c.Title,
		Description:   StripTags(raw),
		ImageID:       c.ImageID,
		ImageURL:      ImageURL(opts.ImageBaseURL, c.ImageID),
		DisplayHeight: DisplayHeight(c.Thumbnail, opts.ViewportWidth),
	}

	if opts.IncludeHTML {
		art.DescriptionHTML = SanitizeHTML(raw)
	}

	return art
}

// Present normalizes a daily pick and stamps it with its day and source.
func (p *DailyPick) Present(opts NormalizeOptions) *FeaturedArtwork {
	art := Normalize(&p.Candidate, opts)
	art.Day = p.Day
	art.Source = p.Source

	return art
}
