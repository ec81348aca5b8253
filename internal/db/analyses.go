package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/nadim/adgm-agent/internal/types"
)

// AnalysisStore is the document-analysis registry. Implementations must
// be safe for concurrent use; SaveAnalysis upserts by analysis ID.
type AnalysisStore interface {
	SaveAnalysis(ctx context.Context, analysis *types.DocumentAnalysis) error
	GetAnalysis(ctx context.Context, id string) (*types.DocumentAnalysis, error)
	DeleteAnalysis(ctx context.Context, id string) error
	ListAnalyses(ctx context.Context, filters AnalysisFilters) ([]types.DocumentAnalysis, error)
	CountAnalyses(ctx context.Context) (int, error)
}

// AnalysisFilters holds optional filters for listing analyses
type AnalysisFilters struct {
	Status       types.ProcessingStatus
	DocumentType types.DocumentType
	Limit        int
}

var _ AnalysisStore = (*DB)(nil)

// SaveAnalysis inserts or replaces the full analysis record
func (db *DB) SaveAnalysis(ctx context.Context, analysis *types.DocumentAnalysis) error {
	record, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO document_analyses (id, original_filename, document_type, status,
		                                compliance_score, record, created_at, completed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (id) DO UPDATE SET
		     original_filename = $2,
		     document_type = $3,
		     status = $4,
		     compliance_score = $5,
		     record = $6,
		     completed_at = $8`,
		analysis.ID, analysis.OriginalFilename, analysis.DocumentType, analysis.Status,
		analysis.ComplianceScore, record, analysis.CreatedAt, analysis.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis %s: %w", analysis.ID, err)
	}
	return nil
}

// GetAnalysis retrieves a full analysis record by ID. A missing ID
// returns (nil, nil).
func (db *DB) GetAnalysis(ctx context.Context, id string) (*types.DocumentAnalysis, error) {
	var record []byte
	err := db.pool.QueryRow(ctx,
		`SELECT record FROM document_analyses WHERE id = $1`,
		id,
	).Scan(&record)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get analysis %s: %w", id, err)
	}

	var analysis types.DocumentAnalysis
	if err := json.Unmarshal(record, &analysis); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analysis %s: %w", id, err)
	}
	return &analysis, nil
}

// DeleteAnalysis removes an analysis record
func (db *DB) DeleteAnalysis(ctx context.Context, id string) error {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM document_analyses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete analysis %s: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("analysis not found: %s", id)
	}
	return nil
}

// ListAnalyses retrieves analyses with optional filters, newest first
func (db *DB) ListAnalyses(ctx context.Context, filters AnalysisFilters) ([]types.DocumentAnalysis, error) {
	if filters.Limit == 0 {
		filters.Limit = 50
	}

	query := `SELECT record FROM document_analyses WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argNum)
		args = append(args, filters.Status)
		argNum++
	}
	if filters.DocumentType != "" {
		query += fmt.Sprintf(" AND document_type = $%d", argNum)
		args = append(args, filters.DocumentType)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argNum)
	args = append(args, filters.Limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var analyses []types.DocumentAnalysis
	for rows.Next() {
		var record []byte
		if err := rows.Scan(&record); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		var analysis types.DocumentAnalysis
		if err := json.Unmarshal(record, &analysis); err != nil {
			return nil, fmt.Errorf("failed to unmarshal analysis: %w", err)
		}
		analyses = append(analyses, analysis)
	}
	return analyses, nil
}

// CountAnalyses returns the total number of stored analyses
func (db *DB) CountAnalyses(ctx context.Context) (int, error) {
	var count int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM document_analyses`,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count analyses: %w", err)
	}
	return count, nil
}
