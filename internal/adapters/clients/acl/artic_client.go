package acl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/jsamuelsen/artofday/internal/adapters/clients"
	"github.com/jsamuelsen/artofday/internal/domain"
	"github.com/jsamuelsen/artofday/internal/platform/logging"
)

const (
	listPath   = "/api/v1/artworks"
	searchPath = listPath + "/search"

	// searchFields is the projection requested from the search endpoint.
	searchFields = "id,title,image_id,description,thumbnail"
)

// ArticClientConfig contains configuration for the collection client.
type ArticClientConfig struct {
	// Client is the HTTP client to use for requests.
	// Its BaseURL should point at the collection API root.
	Client *clients.Client

	// ServiceName names the downstream in errors and health output.
	ServiceName string

	// Logger is the structured logger.
	Logger *slog.Logger
}

// ArticClient implements ports.CandidateClient against the public
// collection search API.
type ArticClient struct {
	api    gateway
	logger *slog.Logger
}

// NewArticClient creates a new collection client adapter.
// Panics if Client is nil.
func NewArticClient(cfg ArticClientConfig) *ArticClient {
	if cfg.Client == nil {
		panic("ArticClient: Client is required")
	}

	name := cfg.ServiceName
	if name == "" {
		name = "artic-api"
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &ArticClient{
		api:    gateway{client: cfg.Client, name: name},
		logger: logger.With(slog.String("component", "acl.ArticClient")),
	}
}

// searchResponse is the external search envelope. Only data is consumed.
type searchResponse struct {
	Data []articArtwork `json:"data"`
}

type articArtwork struct {
	ID          int             `json:"id"`
	Title       *string         `json:"title"`
	ImageID     *string         `json:"image_id"`
	Description *string         `json:"description"`
	Thumbnail   *articThumbnail `json:"thumbnail"`
}

type articThumbnail struct {
	Width   *float64 `json:"width"`
	Height  *float64 `json:"height"`
	AltText *string  `json:"alt_text"`
}

// SearchQuery builds the query string for one page of public domain,
// boosted artworks with a single result per page.
func SearchQuery(page int) url.Values {
	q := url.Values{}
	q.Set("query[term][is_public_domain]", "true")
	q.Set("[is_boosted]", "true")
	q.Set("limit", "1")
	q.Set("fields", searchFields)
	q.Set("page", strconv.Itoa(page))

	return q
}

// FetchCandidate returns the first artwork on the given search page.
// An empty page yields a NotFoundError.
func (c *ArticClient) FetchCandidate(ctx context.Context, page int) (*domain.Candidate, error) {
	if err := positive(page, "page"); err != nil {
		return nil, err
	}

	pageRef := fmt.Sprintf("page %d", page)
	c.logger.DebugContext(ctx, "searching collection", slog.Int("page", page))

	body, err := c.api.get(ctx, searchPath, SearchQuery(page), "search artworks", pageRef)
	if err != nil {
		return nil, upstreamFault(c.api.name, "search rejected", err)
	}

	resp, err := decodeJSON[searchResponse](body)
	if err != nil {
		return nil, domain.NewUnavailableError(c.api.name, err.Error())
	}

	candidates, err := translateAll(resp.Data, translateArtwork)
	if err != nil {
		return nil, domain.WrapUnavailable(c.api.name, "invalid search result", err)
	}

	if len(candidates) == 0 {
		return nil, domain.NewNotFoundError("artwork", pageRef)
	}

	logging.Trace(ctx, c.logger, "translated search result",
		slog.Int("artwork_id", candidates[0].ID),
		slog.String("image_id", candidates[0].ImageID))

	return candidates[0], nil
}

// translateArtwork converts the external record, treating nulls as empty.
func translateArtwork(ext *articArtwork) (*domain.Candidate, error) {
	if err := positive(ext.ID, "id"); err != nil {
		return nil, err
	}

	c := &domain.Candidate{
		ID:          ext.ID,
		Title:       deref(ext.Title),
		ImageID:     deref(ext.ImageID),
		Description: deref(ext.Description),
	}

	if ext.Thumbnail != nil {
		c.Thumbnail = &domain.Thumbnail{
			Width:   ext.Thumbnail.Width,
			Height:  ext.Thumbnail.Height,
			AltText: deref(ext.Thumbnail.AltText),
		}
	}

	return c, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

// Name returns the health check name for this client.
func (c *ArticClient) Name() string {
	return c.api.name
}

// Check verifies the collection API answers a minimal listing request.
// An open circuit fails the check without a request.
func (c *ArticClient) Check(ctx context.Context) error {
	if err := c.api.available(); err != nil {
		return err
	}

	body, err := c.api.get(ctx, listPath, url.Values{"limit": {"1"}, "fields": {"id"}}, "health check", "")
	if err != nil {
		return err
	}

	return body.Close()
}
