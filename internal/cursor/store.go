// Package cursor persists per-channel watermarks and the published-post
// registry in a local sqlite database. It is what makes overlapping poll
// windows safe across cycles and restarts: without it, a message seen in two
// windows would become two posts with two fresh random ids.
package cursor

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/abiyaddisM/ecta-telegram-scrapper/internal/feed"
)

const schema = `
CREATE TABLE IF NOT EXISTS channels (
	channel_id     TEXT PRIMARY KEY,
	last_item_id   INTEGER NOT NULL,
	last_item_time TIMESTAMP NOT NULL,
	updated_at     TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS published_posts (
	id           TEXT PRIMARY KEY,
	channel_id   TEXT NOT NULL,
	slug         TEXT NOT NULL,
	last_item_id INTEGER NOT NULL,
	published_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_published_posts_slug ON published_posts(slug);
`

// Store wraps the sqlite database.
type Store struct {
	db *sql.DB
}

// Open creates the database (and its directory) if needed and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create cursor directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cursor database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create cursor schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Watermark returns the newest item id already published for the channel, or
// zero when the channel has never been seen.
func (s *Store) Watermark(ctx context.Context, channelID string) (int64, error) {
	var last int64
	err := s.db.QueryRowContext(ctx,
		`SELECT last_item_id FROM channels WHERE channel_id = ?`, channelID,
	).Scan(&last)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("query watermark: %w", err)
	}
	return last, nil
}

// Advance moves the channel's watermark forward. A lower id than the stored
// one is ignored.
func (s *Store) Advance(ctx context.Context, channelID string, itemID int64, itemTime time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO channels (channel_id, last_item_id, last_item_time, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(channel_id) DO UPDATE SET
			last_item_id   = MAX(last_item_id, excluded.last_item_id),
			last_item_time = excluded.last_item_time,
			updated_at     = excluded.updated_at`,
		channelID, itemID, itemTime.UTC(), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("advance watermark: %w", err)
	}
	return nil
}

// RecordPost registers a published post. Re-recording the same post id is a
// no-op, matching the idempotent upsert downstream.
func (s *Store) RecordPost(ctx context.Context, channelID string, post feed.Post, lastItemID int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO published_posts (id, channel_id, slug, last_item_id, published_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING`,
		post.ID, channelID, post.Slug, lastItemID, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("record post: %w", err)
	}
	return nil
}

// SlugTaken reports whether a slug was already issued to any published post.
func (s *Store) SlugTaken(ctx context.Context, slug string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM published_posts WHERE slug = ?`, slug,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("query slug: %w", err)
	}
	return n > 0, nil
}
