package knowledge

import (
	"context"
	"log"
	"sort"
	"sync"

	"github.com/nadim/adgm-agent/internal/types"
)

// Store is the queryable knowledge corpus. Reads are safe to run
// concurrently; corpus-population writes are serialized against each
// other so a refresh cannot corrupt state even if it overlaps traffic.
type Store struct {
	embed Embedder
	index Index

	mu          sync.RWMutex // guards initialized
	writeMu     sync.Mutex   // serializes upserts
	initialized bool
}

// NewStore creates a store over an embedder and a storage index.
func NewStore(embed Embedder, index Index) *Store {
	return &Store{embed: embed, index: index}
}

// Initialize creates or opens the backing index. It is idempotent and
// never panics: an unrecoverable storage error is logged and reported as
// false, which callers must treat as "operate in degraded mode".
func (s *Store) Initialize(ctx context.Context) bool {
	if err := s.index.EnsureSchema(ctx); err != nil {
		log.Printf("knowledge store initialization failed: %v", err)
		return false
	}

	s.mu.Lock()
	s.initialized = true
	s.mu.Unlock()
	return true
}

// Available reports whether the store initialized successfully. It is
// safe to call on a nil receiver so callers can hold an optional store.
func (s *Store) Available() bool {
	if s == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}

// Upsert writes or replaces items by id in a collection. Empty input is a
// no-op. Writes are serialized against each other.
func (s *Store) Upsert(ctx context.Context, collection string, items []types.RegulationItem) error {
	if len(items) == 0 {
		return nil
	}
	if !s.Available() {
		return &UnavailableError{Message: "store not initialized"}
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	for _, item := range items {
		embedding, err := s.embed.Embed(ctx, item.Content)
		if err != nil {
			return &UpsertError{Collection: collection, Message: "failed to embed item " + item.ID, Cause: err}
		}
		if err := s.index.Upsert(ctx, collection, item, embedding); err != nil {
			return err
		}
	}
	return nil
}

// Query runs a nearest-neighbor search for text across the named
// collections (all known collections when none are given). Each
// collection is asked for up to topK hits; the merged result is sorted
// ascending by distance and capped at topK overall. The per-collection
// request with a global cap can under-fetch when several collections are
// searched; this matches the store's historical behavior and is covered
// by tests, so do not "fix" it casually.
func (s *Store) Query(ctx context.Context, text string, collections []string, topK int) ([]types.QueryResult, error) {
	if !s.Available() {
		return nil, &UnavailableError{Message: "store not initialized"}
	}
	if topK <= 0 {
		topK = 5
	}
	if len(collections) == 0 {
		collections = AllCollections()
	}

	embedding, err := s.embed.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	var merged []types.QueryResult
	for _, collection := range collections {
		hits, err := s.index.Search(ctx, collection, embedding, topK)
		if err != nil {
			// A failing collection must not abort the whole query.
			log.Printf("error querying collection %s: %v", collection, err)
			continue
		}
		merged = append(merged, hits...)
	}

	return sortAndCap(merged, topK), nil
}

// sortAndCap orders results ascending by distance and truncates to topK.
// The sort is stable so equally-distant hits keep collection order.
func sortAndCap(results []types.QueryResult, topK int) []types.QueryResult {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})
	if len(results) > topK {
		results = results[:topK]
	}
	return results
}

// Stats reports per-collection item counts. It never fails hard: a count
// error for one collection is recorded as an error string for that
// collection and the rest are still reported.
func (s *Store) Stats(ctx context.Context) types.KnowledgeStats {
	stats := types.KnowledgeStats{
		Collections: make(map[string]int64),
		Status:      "operational",
	}
	if !s.Available() {
		stats.Status = "unavailable"
		return stats
	}

	for _, collection := range AllCollections() {
		count, err := s.index.Count(ctx, collection)
		if err != nil {
			if stats.Errors == nil {
				stats.Errors = make(map[string]string)
			}
			stats.Errors[collection] = err.Error()
			continue
		}
		stats.Collections[collection] = count
		stats.TotalItems += count
	}
	return stats
}
