package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jsamuelsen/artofday/internal/domain"
	"github.com/jsamuelsen/artofday/internal/ports"
)

var (
	_ ports.PickArchive   = (*Archive)(nil)
	_ ports.HealthChecker = (*Archive)(nil)
)

const pickCols = `day, seed, artwork_id, title, image_id, description,
	has_thumbnail, thumb_width, thumb_height, alt_text, source, resolved_at`

// Archive is the daily_picks table. It doubles as the database health check.
type Archive struct {
	pool *pgxpool.Pool
}

// NewArchive wraps pool. The caller owns the pool.
func NewArchive(pool *pgxpool.Pool) *Archive {
	return &Archive{pool: pool}
}

// Name implements ports.HealthChecker.
func (a *Archive) Name() string { return "postgres" }

// Check implements ports.HealthChecker.
func (a *Archive) Check(ctx context.Context) error {
	return a.pool.Ping(ctx)
}

// pickRow is the column layout of daily_picks.
type pickRow struct {
	Day          time.Time
	Seed         int
	ArtworkID    int
	Title        string
	ImageID      string
	Description  string
	HasThumbnail bool
	ThumbWidth   *float64
	ThumbHeight  *float64
	AltText      string
	Source       string
	ResolvedAt   time.Time
}

func (r *pickRow) scan(row pgx.Row) error {
	return row.Scan(&r.Day, &r.Seed, &r.ArtworkID, &r.Title, &r.ImageID, &r.Description,
		&r.HasThumbnail, &r.ThumbWidth, &r.ThumbHeight, &r.AltText, &r.Source, &r.ResolvedAt)
}

func (r *pickRow) toDomain() *domain.DailyPick {
	p := &domain.DailyPick{
		Day:  domain.DayOf(r.Day),
		Seed: r.Seed,
		Candidate: domain.Candidate{
			ID:          r.ArtworkID,
			Title:       r.Title,
			ImageID:     r.ImageID,
			Description: r.Description,
		},
		Source:     domain.PickSource(r.Source),
		ResolvedAt: r.ResolvedAt.UTC(),
	}

	if r.HasThumbnail {
		p.Candidate.Thumbnail = &domain.Thumbnail{
			Width:   r.ThumbWidth,
			Height:  r.ThumbHeight,
			AltText: r.AltText,
		}
	}

	return p
}

func rowFromPick(p *domain.DailyPick) pickRow {
	r := pickRow{
		Day:         p.Day.Time(),
		Seed:        p.Seed,
		ArtworkID:   p.Candidate.ID,
		Title:       p.Candidate.Title,
		ImageID:     p.Candidate.ImageID,
		Description: p.Candidate.Description,
		Source:      string(p.Source),
		ResolvedAt:  p.ResolvedAt,
	}

	if t := p.Candidate.Thumbnail; t != nil {
		r.HasThumbnail = true
		r.ThumbWidth = t.Width
		r.ThumbHeight = t.Height
		r.AltText = t.AltText
	}

	if r.ResolvedAt.IsZero() {
		r.ResolvedAt = time.Now().UTC()
	}

	return r
}

// Get implements ports.PickArchive.
func (a *Archive) Get(ctx context.Context, day domain.Day) (*domain.DailyPick, error) {
	var r pickRow

	err := r.scan(a.pool.QueryRow(ctx,
		"SELECT "+pickCols+" FROM daily_picks WHERE day = $1", day.Time()))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NewNotFoundError("pick", day.String())
	}

	if err != nil {
		return nil, fmt.Errorf("querying pick %s: %w", day, err)
	}

	return r.toDomain(), nil
}

// Save implements ports.PickArchive. Concurrent saves for one day keep the first.
func (a *Archive) Save(ctx context.Context, pick *domain.DailyPick) (*domain.DailyPick, error) {
	if pick == nil {
		return nil, domain.NewValidationError("pick", "is required")
	}

	r := rowFromPick(pick)

	_, err := a.pool.Exec(ctx, `
		INSERT INTO daily_picks (`+pickCols+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (day) DO NOTHING`,
		r.Day, r.Seed, r.ArtworkID, r.Title, r.ImageID, r.Description,
		r.HasThumbnail, r.ThumbWidth, r.ThumbHeight, r.AltText, r.Source, r.ResolvedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting pick %s: %w", pick.Day, err)
	}

	return a.Get(ctx, pick.Day)
}

// Recent implements ports.PickArchive.
func (a *Archive) Recent(ctx context.Context, limit int) ([]*domain.DailyPick, error) {
	if limit <= 0 {
		limit = 1000
	}

	rows, err := a.pool.Query(ctx,
		"SELECT "+pickCols+" FROM daily_picks ORDER BY day DESC LIMIT $1", limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent picks: %w", err)
	}
	defer rows.Close()

	var out []*domain.DailyPick

	for rows.Next() {
		var r pickRow
		if err := r.scan(rows); err != nil {
			return nil, fmt.Errorf("scanning pick: %w", err)
		}

		out = append(out, r.toDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating picks: %w", err)
	}

	return out, nil
}
