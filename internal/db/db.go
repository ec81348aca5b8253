// Package db provides PostgreSQL storage for document analyses, user
// accounts, and the corpus source-page cache.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Pool exposes the underlying pool for components that manage their own
// statements (the vector index registers pgvector types on it).
func (db *DB) Pool() *pgxpool.Pool {
	return db.pool
}

// EnsureSchema creates the tables this package owns if they do not exist
func (db *DB) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			phone TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL DEFAULT '',
			password_set BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS source_pages (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			url TEXT NOT NULL UNIQUE,
			collection TEXT,
			source_type TEXT,
			raw_html TEXT,
			parsed_text TEXT,
			content_hash TEXT,
			http_status INT,
			fetch_status TEXT NOT NULL DEFAULT 'success',
			error_message TEXT,
			is_permanent_failure BOOLEAN NOT NULL DEFAULT FALSE,
			retry_count INT NOT NULL DEFAULT 0,
			retry_after TIMESTAMPTZ,
			fetched_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			expires_at TIMESTAMPTZ,
			last_accessed_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS document_analyses (
			id TEXT PRIMARY KEY,
			original_filename TEXT NOT NULL,
			document_type TEXT NOT NULL,
			status TEXT NOT NULL,
			compliance_score DOUBLE PRECISION NOT NULL DEFAULT 0,
			record JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			completed_at TIMESTAMPTZ
		)`,
		`CREATE INDEX IF NOT EXISTS idx_document_analyses_status
			ON document_analyses (status)`,
		`CREATE INDEX IF NOT EXISTS idx_source_pages_collection
			ON source_pages (collection)`,
	}

	for _, stmt := range statements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}
