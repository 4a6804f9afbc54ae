// Package fallback provides the bundled artworks used when the collection
// cannot supply the daily pick.
package fallback

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/jsamuelsen/artofday/internal/domain"
	"github.com/jsamuelsen/artofday/internal/ports"
)

//go:embed catalog.yaml
var defaultCatalog []byte

var _ ports.FallbackCatalog = (*Catalog)(nil)

type catalogFile struct {
	Artworks []catalogEntry `yaml:"artworks"`
}

type catalogEntry struct {
	ID          int    `yaml:"id"`
	Title       string `yaml:"title"`
	ImageID     string `yaml:"image_id"`
	Description string `yaml:"description"`
	Thumbnail   *struct {
		Width   *float64 `yaml:"width"`
		Height  *float64 `yaml:"height"`
		AltText string   `yaml:"alt_text"`
	} `yaml:"thumbnail"`
}

// Catalog is an immutable, ordered list of candidates.
type Catalog struct {
	entries []domain.Candidate
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Parse decodes a YAML catalog. Every entry needs a positive id and an image id.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decoding fallback catalog: %w", err)
	}

	entries := make([]domain.Candidate, 0, len(file.Artworks))

	for i, e := range file.Artworks {
		if e.ID <= 0 || e.ImageID == "" {
			return nil, fmt.Errorf("fallback entry %d: id and image_id are required", i)
		}

		c := domain.Candidate{
			ID:          e.ID,
			Title:       e.Title,
			ImageID:     e.ImageID,
			Description: e.Description,
		}

		if e.Thumbnail != nil {
			c.Thumbnail = &domain.Thumbnail{
				Width:   e.Thumbnail.Width,
				Height:  e.Thumbnail.Height,
				AltText: e.Thumbnail.AltText,
			}
		}

		entries = append(entries, c)
	}

	return &Catalog{entries: entries}, nil
}

// Len implements ports.FallbackCatalog.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Pick implements ports.FallbackCatalog. The same seed always yields the same entry.
func (c *Catalog) Pick(seed int) (*domain.Candidate, error) {
	if len(c.entries) == 0 {
		return nil, domain.NewNotFoundError("fallback artwork", fmt.Sprintf("seed %d", seed))
	}

	i := seed % len(c.entries)
	if i < 0 {
		i += len(c.entries)
	}

	picked := c.entries[i]
	if picked.Thumbnail != nil {
		thumb := *picked.Thumbnail
		picked.Thumbnail = &thumb
	}

	return &picked, nil
}
