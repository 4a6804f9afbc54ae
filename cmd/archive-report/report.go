package main

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/jsamuelsen/artofday/internal/domain"
)

const maxTitleWidth = 48

// withinDays keeps picks on or after since. Picks are newest first.
func withinDays(picks []*domain.DailyPick, since domain.Day) []*domain.DailyPick {
	out := make([]*domain.DailyPick, 0, len(picks))

	for _, p := range picks {
		if p.Day.Before(since) {
			continue
		}

		out = append(out, p)
	}

	return out
}

// render writes the picks in format, with a per-source count in the footer.
func render(w io.Writer, picks []*domain.DailyPick, format string) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	style := table.StyleLight
	style.Format.Footer = text.FormatDefault
	t.SetStyle(style)
	t.AppendHeader(table.Row{"Day", "Seed", "Artwork", "Title", "Source", "Resolved At"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Seed", Align: text.AlignRight},
		{Name: "Artwork", Align: text.AlignRight},
		{Name: "Title", WidthMax: maxTitleWidth},
	})

	bySource := make(map[domain.PickSource]int)

	for _, p := range picks {
		bySource[p.Source]++

		t.AppendRow(table.Row{
			p.Day.String(),
			p.Seed,
			p.Candidate.ID,
			p.Candidate.Title,
			string(p.Source),
			p.ResolvedAt.UTC().Format(time.RFC3339),
		})
	}

	t.AppendFooter(table.Row{
		fmt.Sprintf("%d picks", len(picks)),
		"",
		"",
		"",
		fmt.Sprintf("api %d / fallback %d", bySource[domain.SourceAPI], bySource[domain.SourceFallback]),
		"",
	})

	switch format {
	case "table":
		t.Render()
	case "csv":
		t.RenderCSV()
	case "markdown":
		t.RenderMarkdown()
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	return nil
}
