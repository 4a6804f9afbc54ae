package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/artofday/internal/domain"
)

func reportPick(t *testing.T, day string, id int, source domain.PickSource) *domain.DailyPick {
	t.Helper()

	d, err := domain.ParseDay(day)
	require.NoError(t, err)

	return &domain.DailyPick{
		Day:        d,
		Seed:       d.Seed(),
		Candidate:  domain.Candidate{ID: id, Title: "Artwork " + day},
		Source:     source,
		ResolvedAt: time.Date(2024, time.March, 15, 0, 0, 5, 0, time.UTC),
	}
}

func TestWithinDays(t *testing.T) {
	picks := []*domain.DailyPick{
		reportPick(t, "2024-03-15", 1, domain.SourceAPI),
		reportPick(t, "2024-03-14", 2, domain.SourceAPI),
		reportPick(t, "2024-03-01", 3, domain.SourceFallback),
	}

	since, err := domain.ParseDay("2024-03-14")
	require.NoError(t, err)

	got := withinDays(picks, since)

	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Candidate.ID)
	assert.Equal(t, 2, got[1].Candidate.ID)
}

// TestRender verifies every format carries the rows and the footer.
func TestRender(t *testing.T) {
	picks := []*domain.DailyPick{
		reportPick(t, "2024-03-15", 27992, domain.SourceAPI),
		reportPick(t, "2024-03-14", 28560, domain.SourceFallback),
	}

	for _, format := range []string{"table", "csv", "markdown"} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer

			require.NoError(t, render(&buf, picks, format))

			out := buf.String()
			assert.Contains(t, out, "2024-03-15")
			assert.Contains(t, out, "27992")
			assert.Contains(t, out, "315")
			assert.Contains(t, out, "2024-03-15T00:00:05Z")
			assert.Contains(t, out, "2 picks")
			assert.Contains(t, out, "api 1 / fallback 1")
		})
	}
}

func TestRender_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer

	err := render(&buf, nil, "xml")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `"xml"`)
	assert.Empty(t, strings.TrimSpace(buf.String()))
}
