package store

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/nmoran/gamedrop/pkg/game"
)

// Run records one monitor pass.
type Run struct {
	ID         int64     `db:"id"`
	RanAt      time.Time `db:"ran_at"`
	GamesFound int       `db:"games_found"`
	Changed    bool      `db:"changed"`
	Notified   bool      `db:"notified"`
}

// Promotion is a free game the monitor has seen at least once, keyed by
// normalized title like change detection is.
type Promotion struct {
	NormTitle string    `db:"norm_title"`
	Title     string    `db:"title"`
	Namespace string    `db:"namespace"`
	OfferID   string    `db:"offer_id"`
	EndDate   string    `db:"end_date"`
	FirstSeen time.Time `db:"first_seen"`
	LastSeen  time.Time `db:"last_seen"`
	TimesSeen int       `db:"times_seen"`
}

// ListOpts controls promotion listing.
type ListOpts struct {
	Title string // substring match, case-insensitive
	Since time.Time
	Limit int
}

// History is the run/promotion archive.
type History interface {
	RecordRun(ctx context.Context, run Run) error
	UpsertPromotions(ctx context.Context, games []game.FreeGame) error
	ListPromotions(ctx context.Context, opts ListOpts) ([]Promotion, error)
	ListRuns(ctx context.Context, limit int) ([]Run, error)
	Close() error
}

// SQLiteStore implements History using SQLite.
type SQLiteStore struct {
	db *sqlx.DB
}

// New opens a SQLite database and runs migrations.
func New(path string) (*SQLiteStore, error) {
	dsn := path
	if path != ":memory:" {
		dsn += "?_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) RecordRun(ctx context.Context, run Run) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (ran_at, games_found, changed, notified)
		VALUES (?, ?, ?, ?)
	`, run.RanAt, run.GamesFound, run.Changed, run.Notified)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

func (s *SQLiteStore) UpsertPromotions(ctx context.Context, games []game.FreeGame) error {
	now := time.Now().UTC()
	for _, g := range games {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO promotions (norm_title, title, namespace, offer_id, end_date, first_seen, last_seen, times_seen)
			VALUES (?, ?, ?, ?, ?, ?, ?, 1)
			ON CONFLICT(norm_title) DO UPDATE SET
				title = excluded.title,
				namespace = excluded.namespace,
				offer_id = excluded.offer_id,
				end_date = excluded.end_date,
				last_seen = excluded.last_seen,
				times_seen = times_seen + 1
		`, game.NormalizeTitle(g.Title), g.Title, g.Namespace, g.ID, g.EndDate, now, now)
		if err != nil {
			return fmt.Errorf("upsert promotion %q: %w", g.Title, err)
		}
	}
	return nil
}

func (s *SQLiteStore) ListPromotions(ctx context.Context, opts ListOpts) ([]Promotion, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}

	builder := sq.Select("norm_title", "title", "namespace", "offer_id", "end_date",
		"first_seen", "last_seen", "times_seen").
		From("promotions").
		OrderBy("last_seen DESC").
		Limit(uint64(limit))

	if opts.Title != "" {
		builder = builder.Where(sq.Like{"norm_title": "%" + game.NormalizeTitle(opts.Title) + "%"})
	}
	if !opts.Since.IsZero() {
		builder = builder.Where(sq.GtOrEq{"last_seen": opts.Since})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build promotions query: %w", err)
	}

	var promos []Promotion
	if err := s.db.SelectContext(ctx, &promos, query, args...); err != nil {
		return nil, fmt.Errorf("list promotions: %w", err)
	}
	return promos, nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	var runs []Run
	err := s.db.SelectContext(ctx, &runs,
		"SELECT * FROM runs ORDER BY ran_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}
