package knowledge

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	pgxvector "github.com/pgvector/pgvector-go/pgx"

	"github.com/nadim/adgm-agent/internal/types"
)

// Index is the storage backend of the knowledge store. Implementations
// must be safe for concurrent reads; writes are serialized by the Store.
type Index interface {
	// EnsureSchema creates or opens the on-disk index. Idempotent.
	EnsureSchema(ctx context.Context) error
	// Upsert writes or replaces one item by id within a collection.
	Upsert(ctx context.Context, collection string, item types.RegulationItem, embedding []float32) error
	// Search returns up to topK nearest neighbors in a collection,
	// ordered ascending by distance.
	Search(ctx context.Context, collection string, embedding []float32, topK int) ([]types.QueryResult, error)
	// Count returns the number of items in a collection.
	Count(ctx context.Context, collection string) (int64, error)
}

// PGIndex implements Index on PostgreSQL with the pgvector extension
type PGIndex struct {
	pool *pgxpool.Pool
}

// NewPGIndex connects to PostgreSQL and registers pgvector types on every
// pooled connection.
func NewPGIndex(ctx context.Context, databaseURL string) (*PGIndex, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvector.RegisterTypes(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PGIndex{pool: pool}, nil
}

// Close closes the connection pool.
func (p *PGIndex) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

// EnsureSchema creates the vector extension and the regulation_items
// table if they do not exist. Safe to call on an already-populated store.
func (p *PGIndex) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE EXTENSION IF NOT EXISTS vector`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS regulation_items (
			id TEXT PRIMARY KEY,
			collection TEXT NOT NULL,
			document_title TEXT NOT NULL DEFAULT '',
			section_label TEXT NOT NULL DEFAULT '',
			regulation_reference TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL,
			keywords TEXT[] NOT NULL DEFAULT '{}',
			source_type TEXT NOT NULL DEFAULT '',
			source_url TEXT NOT NULL DEFAULT '',
			embedding vector(%d) NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`, EmbeddingDimensions),
		`CREATE INDEX IF NOT EXISTS regulation_items_collection_idx ON regulation_items (collection)`,
	}

	for _, stmt := range statements {
		if _, err := p.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}

// Upsert writes or replaces one regulation item by id.
func (p *PGIndex) Upsert(ctx context.Context, collection string, item types.RegulationItem, embedding []float32) error {
	keywords := item.Keywords
	if keywords == nil {
		keywords = []string{}
	}

	_, err := p.pool.Exec(ctx,
		`INSERT INTO regulation_items
			(id, collection, document_title, section_label, regulation_reference,
			 category, content, keywords, source_type, source_url, embedding)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 ON CONFLICT (id) DO UPDATE SET
			collection = $2, document_title = $3, section_label = $4,
			regulation_reference = $5, category = $6, content = $7,
			keywords = $8, source_type = $9, source_url = $10,
			embedding = $11, updated_at = NOW()`,
		item.ID, collection, item.DocumentTitle, item.SectionLabel,
		item.RegulationReference, item.Category, item.Content, keywords,
		item.SourceType, item.SourceURL, pgvector.NewVector(embedding),
	)
	if err != nil {
		return &UpsertError{Collection: collection, Message: fmt.Sprintf("item %s", item.ID), Cause: err}
	}
	return nil
}

// Search runs a nearest-neighbor query within one collection.
func (p *PGIndex) Search(ctx context.Context, collection string, embedding []float32, topK int) ([]types.QueryResult, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, document_title, section_label, regulation_reference,
			category, content, source_type, source_url,
			embedding <=> $2 AS distance
		 FROM regulation_items
		 WHERE collection = $1
		 ORDER BY embedding <=> $2
		 LIMIT $3`,
		collection, pgvector.NewVector(embedding), topK,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query collection %s: %w", collection, err)
	}
	defer rows.Close()

	var results []types.QueryResult
	for rows.Next() {
		var r types.QueryResult
		r.Collection = collection
		if err := rows.Scan(
			&r.Metadata.ID, &r.Metadata.DocumentTitle, &r.Metadata.SectionLabel,
			&r.Metadata.RegulationReference, &r.Metadata.Category, &r.Content,
			&r.Metadata.SourceType, &r.Metadata.SourceURL, &r.Distance,
		); err != nil {
			return nil, fmt.Errorf("failed to scan query result: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating query results: %w", err)
	}

	return results, nil
}

// Count returns the number of items stored in a collection.
func (p *PGIndex) Count(ctx context.Context, collection string) (int64, error) {
	var count int64
	err := p.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM regulation_items WHERE collection = $1`,
		collection,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count collection %s: %w", collection, err)
	}
	return count, nil
}
