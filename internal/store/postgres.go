package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cutme/internal/shortlink"
)

// Postgres is a shortlink.Store backed by PostgreSQL. Unlike the remote
// document store, the unique index on code makes Create a genuine
// conditional insert: concurrent creates with the same code cannot both
// succeed.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a PostgreSQL-backed store.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Schema is the table definition this store expects.
const Schema = `
CREATE TABLE IF NOT EXISTS short_links (
	id         TEXT PRIMARY KEY,
	url        TEXT NOT NULL,
	code       TEXT NOT NULL UNIQUE,
	views      BIGINT NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS short_links_url_idx ON short_links (url);
`

// Migrate creates the short_links table when it does not exist.
func (p *Postgres) Migrate(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, Schema)

	return err
}

func (p *Postgres) Create(ctx context.Context, link *shortlink.ShortLink) error {
	query := `
		INSERT INTO short_links (id, url, code, views, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (code) DO NOTHING
		RETURNING id, created_at
	`

	id := uuid.NewString()
	now := time.Now()

	err := p.pool.QueryRow(ctx, query, id, link.URL, string(link.Code), link.Views, now).
		Scan(&link.ID, &link.CreatedAt)
	if err != nil {
		// DO NOTHING swallows the conflicting row, leaving RETURNING empty.
		if errors.Is(err, pgx.ErrNoRows) {
			return shortlink.ErrCodeTaken
		}

		return fmt.Errorf("%w: %v", shortlink.ErrUnavailable, err)
	}

	return nil
}

func (p *Postgres) FindByCode(ctx context.Context, code shortlink.Code) (*shortlink.ShortLink, error) {
	return p.queryOne(ctx, `WHERE code = $1`, string(code))
}

func (p *Postgres) FindByURL(ctx context.Context, url string) (*shortlink.ShortLink, error) {
	return p.queryOne(ctx, `WHERE url = $1`, url)
}

func (p *Postgres) GetByID(ctx context.Context, id string) (*shortlink.ShortLink, error) {
	return p.queryOne(ctx, `WHERE id = $1`, id)
}

func (p *Postgres) List(ctx context.Context) ([]*shortlink.ShortLink, error) {
	rows, err := p.pool.Query(ctx, selectColumns+` FROM short_links ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shortlink.ErrUnavailable, err)
	}
	defer rows.Close()

	return scanLinks(rows)
}

func (p *Postgres) Page(ctx context.Context, page, limit int) ([]*shortlink.ShortLink, int64, error) {
	skip := (page - 1) * limit

	rows, err := p.pool.Query(ctx,
		selectColumns+` FROM short_links ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		limit, skip,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", shortlink.ErrUnavailable, err)
	}
	defer rows.Close()

	links, err := scanLinks(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := p.pool.QueryRow(ctx, `SELECT count(*) FROM short_links`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", shortlink.ErrUnavailable, err)
	}

	return links, total, nil
}

func (p *Postgres) IncrementViews(ctx context.Context, id string) error {
	tag, err := p.pool.Exec(ctx, `UPDATE short_links SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: %v", shortlink.ErrUnavailable, err)
	}

	if tag.RowsAffected() == 0 {
		return shortlink.ErrNotFound
	}

	return nil
}

func (p *Postgres) Update(ctx context.Context, link *shortlink.ShortLink) error {
	tag, err := p.pool.Exec(ctx,
		`UPDATE short_links SET url = $2, code = $3, views = $4 WHERE id = $1`,
		link.ID, link.URL, string(link.Code), link.Views,
	)
	if err != nil {
		return fmt.Errorf("%w: %v", shortlink.ErrUnavailable, err)
	}

	if tag.RowsAffected() == 0 {
		return shortlink.ErrNotFound
	}

	return nil
}

func (p *Postgres) Delete(ctx context.Context, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM short_links WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%w: %v", shortlink.ErrUnavailable, err)
	}

	if tag.RowsAffected() == 0 {
		return shortlink.ErrNotFound
	}

	return nil
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

const selectColumns = `SELECT id, url, code, views, created_at`

func (p *Postgres) queryOne(ctx context.Context, where string, arg any) (*shortlink.ShortLink, error) {
	var link shortlink.ShortLink

	err := p.pool.QueryRow(ctx, selectColumns+` FROM short_links `+where, arg).Scan(
		&link.ID,
		&link.URL,
		&link.Code,
		&link.Views,
		&link.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shortlink.ErrNotFound
		}

		return nil, fmt.Errorf("%w: %v", shortlink.ErrUnavailable, err)
	}

	return &link, nil
}

func scanLinks(rows pgx.Rows) ([]*shortlink.ShortLink, error) {
	var links []*shortlink.ShortLink

	for rows.Next() {
		var link shortlink.ShortLink

		if err := rows.Scan(&link.ID, &link.URL, &link.Code, &link.Views, &link.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %v", shortlink.ErrUnavailable, err)
		}

		links = append(links, &link)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", shortlink.ErrUnavailable, err)
	}

	return links, nil
}

// Compile-time check.
var _ shortlink.Store = (*Postgres)(nil)
