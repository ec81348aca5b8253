package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nadim/adgm-agent/internal/db"
)

// CachedFetcher fronts URL fetching with the database page cache, so
// repeated corpus builds do not hammer the regulator sites.
type CachedFetcher struct {
	db        *db.DB
	options   *Options
	cacheTTL  time.Duration
	skipCache bool
}

// CachedFetcherConfig configures the cached fetcher.
type CachedFetcherConfig struct {
	CacheTTL  time.Duration
	SkipCache bool
	Options   *Options
}

// DefaultCachedFetcherConfig returns the standard configuration.
func DefaultCachedFetcherConfig() *CachedFetcherConfig {
	return &CachedFetcherConfig{
		CacheTTL:  db.DefaultPageCacheTTL,
		SkipCache: false,
		Options:   DefaultOptions(),
	}
}

// NewCachedFetcher creates a cached fetcher over the database.
func NewCachedFetcher(database *db.DB, config *CachedFetcherConfig) *CachedFetcher {
	if config == nil {
		config = DefaultCachedFetcherConfig()
	}
	if config.Options == nil {
		config.Options = DefaultOptions()
	}
	if config.CacheTTL == 0 {
		config.CacheTTL = db.DefaultPageCacheTTL
	}
	return &CachedFetcher{
		db:        database,
		options:   config.Options,
		cacheTTL:  config.CacheTTL,
		skipCache: config.SkipCache,
	}
}

// CachedResult is a fetch Result plus cache provenance.
type CachedResult struct {
	*Result
	FromCache bool
	PageID    uuid.UUID
}

// Fetch retrieves a URL, serving from cache while the entry is within
// its TTL.
func (f *CachedFetcher) Fetch(ctx context.Context, urlStr string) (*CachedResult, error) {
	return f.FetchWithCollection(ctx, urlStr, nil, nil)
}

// FetchWithCollection is Fetch with the cached page tagged for a
// knowledge collection, so ingestion can find it later.
func (f *CachedFetcher) FetchWithCollection(ctx context.Context, urlStr string, collection *string, sourceType *string) (*CachedResult, error) {
	useCache := !f.skipCache && f.db != nil

	// URLs with a recorded permanent failure or active backoff are not
	// retried.
	if useCache {
		shouldSkip, reason, err := f.db.ShouldSkipURL(ctx, urlStr)
		if err != nil {
			return nil, fmt.Errorf("failed to check skip status: %w", err)
		}
		if shouldSkip {
			return nil, &Error{
				URL:     urlStr,
				Message: fmt.Sprintf("URL skipped: %s", reason),
			}
		}
	}

	if useCache {
		cached, err := f.db.GetFreshSourcePage(ctx, urlStr, f.cacheTTL)
		if err != nil {
			return nil, fmt.Errorf("failed to check cache: %w", err)
		}
		if cached != nil {
			return &CachedResult{
				Result: &Result{
					URL:        cached.URL,
					HTML:       derefString(cached.RawHTML),
					Text:       derefString(cached.ParsedText),
					StatusCode: derefInt(cached.HTTPStatus),
				},
				FromCache: true,
				PageID:    cached.ID,
			}, nil
		}
	}

	result, err := URL(ctx, urlStr, f.options)
	if err != nil {
		if f.db != nil {
			statusCode := 0
			if result != nil {
				statusCode = result.StatusCode
			}
			_ = f.db.RecordFailedFetch(ctx, urlStr, statusCode, err.Error())
		}
		return nil, err
	}

	// Text extraction is portal-aware: each regulator site has its own
	// content and noise selectors.
	portal := DetectPortal(urlStr)
	text, _ := ExtractMainText(result.HTML, PortalContentSelectors(portal), PortalNoiseSelectors(portal)...)
	result.Text = text

	if f.db != nil {
		page := &db.SourcePage{
			URL:         urlStr,
			Collection:  collection,
			SourceType:  sourceType,
			RawHTML:     &result.HTML,
			ParsedText:  &result.Text,
			HTTPStatus:  &result.StatusCode,
			FetchStatus: db.FetchStatusSuccess,
		}
		if err := f.db.UpsertSourcePage(ctx, page); err == nil {
			return &CachedResult{Result: result, FromCache: false, PageID: page.ID}, nil
		}
		// The fetch itself succeeded; a cache write failure is not fatal.
	}

	return &CachedResult{Result: result, FromCache: false}, nil
}

// FetchMultiple fetches URLs sequentially. Results and errors are
// positional: a failed URL has a nil result and a non-nil error.
func (f *CachedFetcher) FetchMultiple(ctx context.Context, urls []string) ([]*CachedResult, []error) {
	results := make([]*CachedResult, len(urls))
	errors := make([]error, len(urls))

	for i, url := range urls {
		result, err := f.Fetch(ctx, url)
		if err != nil {
			errors[i] = err
		} else {
			results[i] = result
		}
	}
	return results, errors
}

// InvalidateCache expires a cached page so the next Fetch goes to the
// network.
func (f *CachedFetcher) InvalidateCache(ctx context.Context, urlStr string) error {
	if f.db == nil {
		return nil
	}

	page, err := f.db.GetSourcePageByURL(ctx, urlStr)
	if err != nil || page == nil {
		return err
	}

	past := time.Now().Add(-time.Hour)
	page.ExpiresAt = &past
	return f.db.UpsertSourcePage(ctx, page)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}
