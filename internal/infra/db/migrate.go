package db

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is applied in order; every statement is idempotent.
var schema = []string{
	`CREATE EXTENSION IF NOT EXISTS pgcrypto`,
	`CREATE TABLE IF NOT EXISTS articles (
    id           UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    title        TEXT NOT NULL,
    subtitle     TEXT,
    content      TEXT NOT NULL,
    summary      TEXT NOT NULL DEFAULT '',
    ai_summary   TEXT NOT NULL DEFAULT '',
    ai_tags      JSONB NOT NULL DEFAULT '[]'::jsonb,
    source       TEXT NOT NULL,
    source_url   TEXT NOT NULL DEFAULT '',
    category     TEXT NOT NULL DEFAULT 'general',
    is_live      BOOLEAN NOT NULL DEFAULT FALSE,
    is_trending  BOOLEAN NOT NULL DEFAULT FALSE,
    reading_time INTEGER NOT NULL DEFAULT 1 CHECK (reading_time >= 1),
    view_count   INTEGER NOT NULL DEFAULT 0,
    published_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE TABLE IF NOT EXISTS profiles (
    id         UUID PRIMARY KEY,
    email      TEXT NOT NULL DEFAULT '',
    role       TEXT NOT NULL DEFAULT 'user',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE TABLE IF NOT EXISTS bookmarks (
    user_id    UUID NOT NULL,
    article_id UUID NOT NULL REFERENCES articles(id) ON DELETE CASCADE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (user_id, article_id)
)`,
	`CREATE TABLE IF NOT EXISTS user_interests (
    user_id  UUID NOT NULL,
    interest TEXT NOT NULL,
    PRIMARY KEY (user_id, interest)
)`,
	// 読者向け一覧: WHERE is_live ORDER BY published_at DESC
	`CREATE INDEX IF NOT EXISTS idx_articles_live_published ON articles(published_at DESC) WHERE is_live`,
	// 管理画面: ORDER BY created_at DESC
	`CREATE INDEX IF NOT EXISTS idx_articles_created_at ON articles(created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_bookmarks_article_id ON bookmarks(article_id)`,
}

// MigrateUp creates the tables and indexes if they do not exist.
func MigrateUp(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	return nil
}

// MigrateDown drops every table created by MigrateUp. All data is lost.
func MigrateDown(ctx context.Context, db *sql.DB) error {
	for _, stmt := range []string{
		`DROP TABLE IF EXISTS bookmarks`,
		`DROP TABLE IF EXISTS user_interests`,
		`DROP TABLE IF EXISTS profiles`,
		`DROP TABLE IF EXISTS articles`,
	} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate down: %w", err)
		}
	}
	return nil
}

// WaitForSchema polls until the articles table is queryable or attempts run
// out. The worker uses it because the API owns migrations.
func WaitForSchema(ctx context.Context, db *sql.DB, attempts int, interval func(int)) error {
	const probe = "SELECT 1 FROM articles LIMIT 1"
	var err error
	for i := 0; i < attempts; i++ {
		if _, err = db.ExecContext(ctx, probe); err == nil {
			return nil
		}
		if interval != nil {
			interval(i + 1)
		}
	}
	return fmt.Errorf("schema not ready after %d attempts: %w", attempts, err)
}
