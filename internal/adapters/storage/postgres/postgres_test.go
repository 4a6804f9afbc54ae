package postgres

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/artofday/internal/domain"
)

func f64(v float64) *float64 { return &v }

var march15 = domain.Day{Year: 2024, Month: time.March, Day: 15}

// TestPickRow_PreservesThumbnailPresence verifies a missing thumbnail stays missing.
func TestPickRow_PreservesThumbnailPresence(t *testing.T) {
	tests := []struct {
		name  string
		thumb *domain.Thumbnail
	}{
		{name: "no thumbnail", thumb: nil},
		{name: "unknown dimensions", thumb: &domain.Thumbnail{AltText: "alt"}},
		{name: "full thumbnail", thumb: &domain.Thumbnail{Width: f64(3000), Height: f64(2000), AltText: "alt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
			pick := &domain.DailyPick{
				Day:        march15,
				Seed:       315,
				Candidate:  domain.Candidate{ID: 4, Title: "T", ImageID: "img", Thumbnail: tt.thumb},
				Source:     domain.SourceFallback,
				ResolvedAt: resolved,
			}

			r := rowFromPick(pick)
			got := r.toDomain()

			assert.Equal(t, pick, got)
		})
	}
}

func TestRowFromPick_StampsResolvedAt(t *testing.T) {
	r := rowFromPick(&domain.DailyPick{Day: march15})

	assert.False(t, r.ResolvedAt.IsZero())
	assert.Equal(t, march15.Time(), r.Day)
}

func TestMigrationFiles_Sorted(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/0002_b.sql": {Data: []byte("SELECT 2")},
		"migrations/0001_a.sql": {Data: []byte("SELECT 1")},
		"migrations/README.md":  {Data: []byte("notes")},
		"migrations/0010_c.sql": {Data: []byte("SELECT 3")},
		"migrations/sub/x.sql":  {Data: []byte("ignored")},
	}

	names, err := migrationFiles(fsys)

	require.NoError(t, err)
	assert.Equal(t, []string{"0001_a.sql", "0002_b.sql", "0010_c.sql"}, names)
}

func TestMigrationFiles_Embedded(t *testing.T) {
	names, err := migrationFiles(migrationsFS)

	require.NoError(t, err)
	assert.Equal(t, []string{"0001_daily_picks.sql", "0002_selections.sql"}, names)
}

// TestStore_Postgres runs against a real database when ARTOFDAY_TEST_POSTGRES_URL is set.
func TestStore_Postgres(t *testing.T) {
	url := os.Getenv("ARTOFDAY_TEST_POSTGRES_URL")
	if url == "" {
		t.Skip("ARTOFDAY_TEST_POSTGRES_URL not set")
	}

	ctx := context.Background()

	pool, err := Connect(ctx, Config{URL: url, MaxConns: 2})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = Migrate(ctx, pool, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	_, err = pool.Exec(ctx, "TRUNCATE daily_picks, selections")
	require.NoError(t, err)

	archive := NewArchive(pool)
	require.NoError(t, archive.Check(ctx))

	_, err = archive.Get(ctx, march15)
	assert.True(t, domain.IsNotFound(err))

	first, err := archive.Save(ctx, &domain.DailyPick{Day: march15, Seed: 315, Candidate: domain.Candidate{ID: 1, ImageID: "a"}, Source: domain.SourceAPI})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Candidate.ID)

	again, err := archive.Save(ctx, &domain.DailyPick{Day: march15, Seed: 315, Candidate: domain.Candidate{ID: 2, ImageID: "b"}, Source: domain.SourceAPI})
	require.NoError(t, err)
	assert.Equal(t, 1, again.Candidate.ID)

	_, err = archive.Save(ctx, &domain.DailyPick{Day: march15.AddDays(-1), Seed: 314, Candidate: domain.Candidate{ID: 3, ImageID: "c"}, Source: domain.SourceFallback})
	require.NoError(t, err)

	recent, err := archive.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, march15, recent[0].Day)

	selections := NewSelectionStore(pool)
	_, err = selections.Get(ctx, "alice")
	assert.True(t, domain.IsNotFound(err))

	require.NoError(t, selections.Put(ctx, &domain.Selection{Viewer: "alice", ArtworkID: 1, Mode: domain.ViewDetails, UpdatedAt: time.Now()}))

	sel, err := selections.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, domain.ViewDetails, sel.Mode)
}
