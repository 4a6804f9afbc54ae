//go:build integration

package integration

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jsamuelsen/artofday/internal/adapters/clients"
	"github.com/jsamuelsen/artofday/internal/adapters/clients/acl"
	"github.com/jsamuelsen/artofday/internal/adapters/fallback"
	"github.com/jsamuelsen/artofday/internal/adapters/flags"
	httpadapter "github.com/jsamuelsen/artofday/internal/adapters/http"
	"github.com/jsamuelsen/artofday/internal/adapters/http/handlers"
	"github.com/jsamuelsen/artofday/internal/adapters/storage/memory"
	"github.com/jsamuelsen/artofday/internal/app"
	"github.com/jsamuelsen/artofday/internal/platform/config"
	"github.com/jsamuelsen/artofday/internal/platform/telemetry"
	"github.com/jsamuelsen/artofday/internal/ports"
)

const (
	searchPath  = "/api/v1/artworks/search"
	listingPath = "/api/v1/artworks"
	userAgent   = "artofday-integration"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeCollection stands in for the public collection API. Pages without an
// artwork answer with an empty result set.
type fakeCollection struct {
	server *httptest.Server

	mu     sync.Mutex
	pages  map[int]string
	status int
	delay  time.Duration
	agents []string

	searches atomic.Int32
}

func newFakeCollection() *fakeCollection {
	fc := &fakeCollection{pages: make(map[int]string)}
	fc.server = httptest.NewServer(http.HandlerFunc(fc.serve))

	return fc
}

func (fc *fakeCollection) URL() string { return fc.server.URL }

func (fc *fakeCollection) Close() { fc.server.Close() }

// setPage makes page return artwork, a JSON object in the collection's shape.
func (fc *fakeCollection) setPage(page int, artwork string) {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	fc.pages[page] = artwork
}

// failWith makes every search answer status. Zero restores normal answers.
func (fc *fakeCollection) failWith(status int) {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	fc.status = status
}

func (fc *fakeCollection) slowDown(d time.Duration) {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	fc.delay = d
}

func (fc *fakeCollection) userAgents() []string {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	return append([]string(nil), fc.agents...)
}

func (fc *fakeCollection) serve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch r.URL.Path {
	case listingPath:
		_, _ = io.WriteString(w, `{"data":[{"id":1}]}`)
		return
	case searchPath:
	default:
		w.WriteHeader(http.StatusNotFound)
		return
	}

	fc.searches.Add(1)

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	fc.mu.Lock()
	fc.agents = append(fc.agents, r.Header.Get("AIC-User-Agent"))
	status, delay := fc.status, fc.delay
	artwork, ok := fc.pages[page]
	fc.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}

	if status != 0 {
		w.WriteHeader(status)
		_, _ = fmt.Fprintf(w, `{"status":%d,"error":"Upstream error","detail":"search backend down"}`, status)
		return
	}

	if !ok {
		_, _ = io.WriteString(w, `{"pagination":{"total":0},"data":[]}`)
		return
	}

	_, _ = fmt.Fprintf(w, `{"pagination":{"total":1,"current_page":%d},"data":[%s]}`, page, artwork)
}

// artworkJSON renders a search hit with a known thumbnail size.
func artworkJSON(id int, title string, width, height float64) string {
	return fmt.Sprintf(
		`{"id":%d,"title":%q,"image_id":"img-%d","description":"<p>%s <script>x()</script></p>",`+
			`"thumbnail":{"width":%g,"height":%g,"alt_text":"Artwork %d"}}`,
		id, title, id, title, width, height, id)
}

// harness runs the whole service in process against a fakeCollection.
type harness struct {
	collection *fakeCollection
	featured   *app.FeaturedService
	archive    *memory.Archive
	flags      *flags.Static
	registry   *prometheus.Registry
	server     *httptest.Server
	http       *http.Client
}

// harnessOptions tune newHarness.
type harnessOptions struct {
	now          time.Time
	authEnabled  bool
	fetchTimeout time.Duration
}

func newHarness(opts harnessOptions) (*harness, error) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	fc := newFakeCollection()

	client, err := clients.New(&clients.Config{
		BaseURL:     fc.URL(),
		ServiceName: "artic-api",
		Timeout:     2 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     1,
			InitialInterval: 10 * time.Millisecond,
			MaxInterval:     50 * time.Millisecond,
			Multiplier:      2.0,
		},
		Circuit: config.CircuitBreakerConfig{
			MaxFailures:   100,
			Timeout:       time.Second,
			HalfOpenLimit: 1,
		},
		Headers: http.Header{"Aic-User-Agent": {userAgent}},
		Logger:  logger,
	})
	if err != nil {
		fc.Close()
		return nil, fmt.Errorf("creating client: %w", err)
	}

	catalog, err := fallback.Default()
	if err != nil {
		fc.Close()
		return nil, fmt.Errorf("loading fallback catalog: %w", err)
	}

	now := opts.now
	if now.IsZero() {
		now = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	}

	fetchTimeout := opts.fetchTimeout
	if fetchTimeout == 0 {
		fetchTimeout = 5 * time.Second
	}

	collection := acl.NewArticClient(acl.ArticClientConfig{Client: client, Logger: logger})
	registry := prometheus.NewRegistry()
	flagSet := flags.NewStatic(map[string]any{ports.FlagFallbackArtwork: true}, logger)
	archive := memory.NewArchive()

	featured := app.NewFeaturedService(app.FeaturedServiceConfig{
		Client:   collection,
		Archive:  archive,
		Fallback: catalog,
		Flags:    flagSet,
		Metrics:  telemetry.NewFeaturedMetrics(registry),
		Settings: app.FeaturedSettings{
			DefaultViewportWidth: config.DefaultViewportWidth,
			ImageBaseURL:         "https://www.artic.edu",
			MaxHistoryDays:       config.DefaultMaxHistoryDays,
			HistoryConcurrency:   config.DefaultHistoryConcurrency,
			RetainDays:           config.DefaultRetainDays,
			FetchTimeout:         fetchTimeout,
		},
		Now:    func() time.Time { return now },
		Logger: logger,
	})

	selection := app.NewSelectionService(app.SelectionServiceConfig{
		Store:  memory.NewSelectionStore(),
		Now:    func() time.Time { return now },
		Logger: logger,
	})

	health := ports.NewHealthRegistry(time.Second)
	if err := health.Register(collection); err != nil {
		featured.Close()
		fc.Close()
		return nil, fmt.Errorf("registering health check: %w", err)
	}

	authCfg := &config.AuthConfig{Enabled: opts.authEnabled}
	appCfg := &config.AppConfig{Name: "artofday", Version: "integration", Environment: "test"}

	engine := gin.New()
	httpadapter.SetupRouter(engine, httpadapter.RouterConfig{
		Logger:     logger,
		AuthConfig: authCfg,
		AppConfig:  appCfg,
		HealthHandler: handlers.NewHealthHandler(health,
			handlers.NewBuildInfo(appCfg.Version, "test", "now"),
			handlers.WithGatherer(registry),
			handlers.WithFeaturedState(featured.State),
		),
		FeaturedHandler:  handlers.NewFeaturedHandler(featured, config.DefaultDisplayHeight),
		SelectionHandler: handlers.NewSelectionHandler(selection, authCfg),
		Timeout:          10 * time.Second,
	})

	server := httptest.NewServer(engine)

	return &harness{
		collection: fc,
		featured:   featured,
		archive:    archive,
		flags:      flagSet,
		registry:   registry,
		server:     server,
		http:       &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// Close stops the service before the collection it depends on.
func (h *harness) Close() {
	h.server.Close()
	h.featured.Close()
	h.collection.Close()
}

// startHarness is newHarness for tests.
func startHarness(t testing.TB, opts harnessOptions) *harness {
	t.Helper()

	h, err := newHarness(opts)
	if err != nil {
		t.Fatalf("starting harness: %v", err)
	}

	t.Cleanup(h.Close)

	return h
}
