package db

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/nadim/adgm-agent/internal/types"
)

// MemoryAnalysisStore is an in-memory AnalysisStore for CLI runs and
// tests, where no database is configured.
type MemoryAnalysisStore struct {
	mu       sync.RWMutex
	analyses map[string]types.DocumentAnalysis
}

var _ AnalysisStore = (*MemoryAnalysisStore)(nil)

// NewMemoryAnalysisStore creates an empty in-memory store
func NewMemoryAnalysisStore() *MemoryAnalysisStore {
	return &MemoryAnalysisStore{analyses: make(map[string]types.DocumentAnalysis)}
}

// SaveAnalysis stores a copy of the record, replacing any previous
// version with the same ID.
func (s *MemoryAnalysisStore) SaveAnalysis(_ context.Context, analysis *types.DocumentAnalysis) error {
	if analysis.ID == "" {
		return fmt.Errorf("analysis ID cannot be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyses[analysis.ID] = *analysis
	return nil
}

// GetAnalysis retrieves a record by ID; missing IDs return (nil, nil)
func (s *MemoryAnalysisStore) GetAnalysis(_ context.Context, id string) (*types.DocumentAnalysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	analysis, ok := s.analyses[id]
	if !ok {
		return nil, nil
	}
	return &analysis, nil
}

// DeleteAnalysis removes a record
func (s *MemoryAnalysisStore) DeleteAnalysis(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.analyses[id]; !ok {
		return fmt.Errorf("analysis not found: %s", id)
	}
	delete(s.analyses, id)
	return nil
}

// ListAnalyses returns matching records, newest first
func (s *MemoryAnalysisStore) ListAnalyses(_ context.Context, filters AnalysisFilters) ([]types.DocumentAnalysis, error) {
	if filters.Limit == 0 {
		filters.Limit = 50
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var analyses []types.DocumentAnalysis
	for _, analysis := range s.analyses {
		if filters.Status != "" && analysis.Status != filters.Status {
			continue
		}
		if filters.DocumentType != "" && analysis.DocumentType != filters.DocumentType {
			continue
		}
		analyses = append(analyses, analysis)
	}

	sort.Slice(analyses, func(i, j int) bool {
		return analyses[i].CreatedAt.After(analyses[j].CreatedAt)
	})
	if len(analyses) > filters.Limit {
		analyses = analyses[:filters.Limit]
	}
	return analyses, nil
}

// CountAnalyses returns the number of stored records
func (s *MemoryAnalysisStore) CountAnalyses(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.analyses), nil
}
