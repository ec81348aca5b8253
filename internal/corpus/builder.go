package corpus

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/nadim/adgm-agent/internal/db"
	"github.com/nadim/adgm-agent/internal/fetch"
	"github.com/nadim/adgm-agent/internal/ingestion"
	"github.com/nadim/adgm-agent/internal/knowledge"
	"github.com/nadim/adgm-agent/internal/types"
	"github.com/nadim/adgm-agent/internal/validation"
)

// DefaultConcurrency bounds how many sources are fetched at once.
const DefaultConcurrency = 3

// Indexer is the slice of the knowledge store the builder writes to.
type Indexer interface {
	Upsert(ctx context.Context, collection string, items []types.RegulationItem) error
}

// Fetcher retrieves source URLs, normally through the database-backed
// page cache.
type Fetcher interface {
	FetchWithCollection(ctx context.Context, urlStr string, collection *string, sourceType *string) (*fetch.CachedResult, error)
}

// Builder populates the knowledge store from the source registry.
type Builder struct {
	index       Indexer
	fetcher     Fetcher
	extractors  map[string]TextExtractor
	concurrency int
}

// Report summarizes a corpus build.
type Report struct {
	SeedItems      int `json:"seed_items"`
	SourcesIndexed int `json:"sources_indexed"`
	SourcesSkipped int `json:"sources_skipped"`
	SourcesFailed  int `json:"sources_failed"`
	ChunksIndexed  int `json:"chunks_indexed"`
}

// NewBuilder creates a builder with the HTML extractor pre-registered.
// PDF and DOCX extractors are registered separately when available.
func NewBuilder(index Indexer, fetcher Fetcher) *Builder {
	return &Builder{
		index:   index,
		fetcher: fetcher,
		extractors: map[string]TextExtractor{
			db.SourceTypeWebPage: HTMLExtractor{},
		},
		concurrency: DefaultConcurrency,
	}
}

// RegisterExtractor wires a text extractor for a source kind.
func (b *Builder) RegisterExtractor(kind string, extractor TextExtractor) {
	b.extractors[kind] = extractor
}

// Build seeds the built-in knowledge, then fetches and indexes every
// registry source. Individual source failures are logged and counted
// but do not abort the build; only a seed failure is fatal, since the
// seeds require no network and a failure there means the store itself
// is broken.
func (b *Builder) Build(ctx context.Context, sources []Source) (*Report, error) {
	report := &Report{}

	seeds := knowledge.SeedItems()
	if err := b.index.Upsert(ctx, knowledge.CollectionIncorporation, seeds); err != nil {
		return nil, &BuildError{Message: "failed to seed built-in knowledge", Cause: err}
	}
	report.SeedItems = len(seeds)

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for _, source := range sources {
		source := source
		g.Go(func() error {
			chunks, err := b.processSource(gctx, source)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				log.Printf("corpus: failed to process %s: %v", source.URL, err)
				report.SourcesFailed++
			case chunks == 0:
				report.SourcesSkipped++
			default:
				report.SourcesIndexed++
				report.ChunksIndexed += chunks
			}
			// Per-source failures are recorded, never propagated.
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return report, err
	}
	return report, nil
}

// processSource fetches one source, extracts its text, and indexes the
// resulting chunks. Returns the number of chunks indexed; zero with a
// nil error means the source was skipped (no extractor or no content).
func (b *Builder) processSource(ctx context.Context, source Source) (int, error) {
	extractor, ok := b.extractors[source.Kind]
	if !ok {
		log.Printf("corpus: no %s extractor registered, skipping %s", source.Kind, source.URL)
		return 0, nil
	}

	collection := CollectionFor(source)
	kind := source.Kind
	result, err := b.fetcher.FetchWithCollection(ctx, source.URL, &collection, &kind)
	if err != nil {
		return 0, err
	}

	// Cached web pages already carry extracted text.
	text := result.Text
	if text == "" || source.Kind != db.SourceTypeWebPage {
		text, err = extractor.Extract(ctx, []byte(result.HTML), source.URL)
		if err != nil {
			return 0, err
		}
	}

	validation.LogInjectionWarning(validation.CheckBasicHeuristics(text), "corpus page "+source.URL)

	items := itemsFromSource(source, text)
	if len(items) == 0 {
		return 0, nil
	}

	if err := b.index.Upsert(ctx, collection, items); err != nil {
		return 0, err
	}
	return len(items), nil
}

// itemsFromSource cleans and chunks extracted text into regulation items.
func itemsFromSource(source Source, text string) []types.RegulationItem {
	cleaned := ingestion.CleanLegalText(text)
	chunks := ingestion.ChunkLegalContent(cleaned, ingestion.DefaultChunkSize, ingestion.DefaultChunkOverlap)

	urlHash := shortHash(source.URL)
	items := make([]types.RegulationItem, 0, len(chunks))
	for i, chunk := range chunks {
		if strings.TrimSpace(chunk) == "" {
			continue
		}
		items = append(items, types.RegulationItem{
			ID:            fmt.Sprintf("%s_%s_%d", idPrefix(source.Kind), urlHash, i),
			DocumentTitle: source.Description,
			SectionLabel:  fmt.Sprintf("Part %d", i+1),
			Category:      source.Category,
			Content:       chunk,
			SourceType:    source.Kind,
			SourceURL:     source.URL,
		})
	}
	return items
}

// idPrefix maps a source kind to its item-ID prefix.
func idPrefix(kind string) string {
	switch kind {
	case db.SourceTypePDF:
		return "pdf"
	case db.SourceTypeDocx:
		return "docx"
	default:
		return "web"
	}
}

// shortHash returns the first 12 hex characters of the SHA-256 of s.
func shortHash(s string) string {
	hash := sha256.Sum256([]byte(s))
	return hex.EncodeToString(hash[:])[:12]
}
