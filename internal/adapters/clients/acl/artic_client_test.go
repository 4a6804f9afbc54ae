package acl

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/artofday/internal/adapters/clients"
	"github.com/jsamuelsen/artofday/internal/domain"
)

const monaLisaLike = `{
	"pagination": {"total": 1000, "limit": 1, "current_page": 315},
	"data": [{
		"id": 27992,
		"title": "A Sunday on La Grande Jatte",
		"image_id": "2d484387-2509-5e8e-2c43-22f9981972eb",
		"description": "<p>Seurat's <em>masterpiece</em></p>",
		"thumbnail": {"width": 3000, "height": 2000, "alt_text": "Painting of a park"}
	}]
}`

// setupArticClient creates an ArticClient with a test HTTP server.
func setupArticClient(t *testing.T, handler http.HandlerFunc) *ArticClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := clients.New(testConfig(server.URL))
	require.NoError(t, err)

	return NewArticClient(ArticClientConfig{
		Client: client,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

// TestNewArticClient_PanicsWithoutClient verifies that a nil client panics.
func TestNewArticClient_PanicsWithoutClient(t *testing.T) {
	assert.Panics(t, func() {
		NewArticClient(ArticClientConfig{})
	})
}

// TestArticClient_Name verifies the default service name.
func TestArticClient_Name(t *testing.T) {
	client := setupArticClient(t, func(http.ResponseWriter, *http.Request) {})

	assert.Equal(t, "artic-api", client.Name())
}

// TestSearchQuery verifies every query parameter sent to the search endpoint.
func TestSearchQuery(t *testing.T) {
	q := SearchQuery(315)

	assert.Equal(t, "true", q.Get("query[term][is_public_domain]"))
	assert.Equal(t, "true", q.Get("[is_boosted]"))
	assert.Equal(t, "1", q.Get("limit"))
	assert.Equal(t, "id,title,image_id,description,thumbnail", q.Get("fields"))
	assert.Equal(t, "315", q.Get("page"))
}

// TestFetchCandidate_Success verifies the request shape and translation.
func TestFetchCandidate_Success(t *testing.T) {
	client := setupArticClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/artworks/search", r.URL.Path)
		assert.Equal(t, "315", r.URL.Query().Get("page"))
		assert.Equal(t, "true", r.URL.Query().Get("query[term][is_public_domain]"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(monaLisaLike))
	})

	c, err := client.FetchCandidate(context.Background(), 315)

	require.NoError(t, err)
	assert.Equal(t, 27992, c.ID)
	assert.Equal(t, "A Sunday on La Grande Jatte", c.Title)
	assert.Equal(t, "2d484387-2509-5e8e-2c43-22f9981972eb", c.ImageID)
	assert.Equal(t, "<p>Seurat's <em>masterpiece</em></p>", c.Description)
	require.NotNil(t, c.Thumbnail)
	assert.InDelta(t, 3000, *c.Thumbnail.Width, 0)
	assert.InDelta(t, 2000, *c.Thumbnail.Height, 0)
	assert.Equal(t, "Painting of a park", c.AltText())
}

// TestFetchCandidate_NullFields verifies nulls become empty values.
func TestFetchCandidate_NullFields(t *testing.T) {
	client := setupArticClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"id":5,"title":"Untitled","image_id":null,"description":null,"thumbnail":null}]}`))
	})

	c, err := client.FetchCandidate(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, 5, c.ID)
	assert.Empty(t, c.ImageID)
	assert.Empty(t, c.Description)
	assert.Nil(t, c.Thumbnail)
}

// TestFetchCandidate_EmptyPage verifies an empty result set is NotFound.
func TestFetchCandidate_EmptyPage(t *testing.T) {
	client := setupArticClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	})

	_, err := client.FetchCandidate(context.Background(), 999)

	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))

	var nf *domain.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "page 999", nf.ID)
}

// TestFetchCandidate_InvalidID verifies records without a positive id are
// reported as an upstream fault.
func TestFetchCandidate_InvalidID(t *testing.T) {
	client := setupArticClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"id":0,"title":"x"}]}`))
	})

	_, err := client.FetchCandidate(context.Background(), 1)

	require.Error(t, err)
	assert.True(t, domain.IsUnavailable(err))

	var ue *domain.UnavailableError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "invalid search result", ue.Reason)
}

// TestFetchCandidate_Errors verifies upstream failures map to domain errors.
func TestFetchCandidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		is     func(error) bool
	}{
		{"server error", http.StatusInternalServerError, `{"error":"boom"}`, domain.IsUnavailable},
		{"not found", http.StatusNotFound, `{"error":"Not found"}`, domain.IsNotFound},
		{"bad json", http.StatusOK, `{"data":`, domain.IsUnavailable},
		{"bad request", http.StatusBadRequest, `{"error":"Invalid number of results"}`, domain.IsUnavailable},
		{"forbidden", http.StatusForbidden, `{"error":"Forbidden"}`, domain.IsUnavailable},
		{"unprocessable", http.StatusUnprocessableEntity, ``, domain.IsUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := setupArticClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.FetchCandidate(context.Background(), 42)

			require.Error(t, err)
			assert.True(t, tt.is(err), "unexpected error: %v", err)
		})
	}
}

// TestFetchCandidate_RejectsNonPositivePage verifies no request is made for page 0.
func TestFetchCandidate_RejectsNonPositivePage(t *testing.T) {
	called := false
	client := setupArticClient(t, func(http.ResponseWriter, *http.Request) { called = true })

	_, err := client.FetchCandidate(context.Background(), 0)

	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.False(t, called)
}

// TestArticClient_Check verifies the health probe.
func TestArticClient_Check(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		client := setupArticClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/v1/artworks", r.URL.Path)
			_, _ = w.Write([]byte(`{"data":[{"id":1}]}`))
		})

		assert.NoError(t, client.Check(context.Background()))
	})

	t.Run("unhealthy", func(t *testing.T) {
		client := setupArticClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		err := client.Check(context.Background())
		require.Error(t, err)
		assert.True(t, domain.IsUnavailable(err))
	})
}

// TestArticClient_Check_CircuitOpen verifies an open circuit fails the
// probe without reaching the collection.
func TestArticClient_Check_CircuitOpen(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	cfg := testConfig(server.URL)
	cfg.Circuit.MaxFailures = 1

	client, err := clients.New(cfg)
	require.NoError(t, err)

	articClient := NewArticClient(ArticClientConfig{Client: client})

	require.Error(t, articClient.Check(context.Background()))
	require.EqualValues(t, 1, calls.Load())

	err = articClient.Check(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsUnavailable(err))
	assert.EqualValues(t, 1, calls.Load())
}
