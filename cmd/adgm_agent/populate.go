package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/nadim/adgm-agent/internal/corpus"
	"github.com/nadim/adgm-agent/internal/db"
	"github.com/nadim/adgm-agent/internal/fetch"
	"github.com/nadim/adgm-agent/internal/knowledge"
)

var populateCmd = &cobra.Command{
	Use:   "populate",
	Short: "Populate the knowledge base from ADGM regulatory sources",
	Long: `Seeds the built-in regulatory knowledge, then fetches, chunks, embeds, and indexes every source in the registry.

Fetched pages are cached in the database, so re-running only refetches expired or failed sources.`,
	RunE: runPopulate,
}

var (
	populateDatabaseURL string
	populateAPIKey      string
	populateUseBrowser  bool
	populateVerbose     bool
)

func init() {
	populateCmd.Flags().StringVar(&populateDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	populateCmd.Flags().StringVar(&populateAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	populateCmd.Flags().BoolVar(&populateUseBrowser, "use-browser", false, "Render script-heavy portal pages in a headless browser (requires Chrome)")
	populateCmd.Flags().BoolVarP(&populateVerbose, "verbose", "v", false, "Print per-source progress")

	rootCmd.AddCommand(populateCmd)
}

func runPopulate(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	databaseURL := populateDatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required")
	}

	apiKey := populateAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if err := database.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to ensure database schema: %w", err)
	}

	index, err := knowledge.NewPGIndex(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open knowledge index: %w", err)
	}
	defer index.Close()

	embedder, err := knowledge.NewGeminiEmbedder(ctx, apiKey, "")
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}
	defer func() { _ = embedder.Close() }()

	store := knowledge.NewStore(embedder, index)
	if !store.Initialize(ctx) {
		return fmt.Errorf("knowledge store initialization failed")
	}

	var fetcher corpus.Fetcher = fetch.NewCachedFetcher(database, nil)
	if populateUseBrowser {
		fetcher = &browserFetcher{
			inner:   fetcher,
			verbose: populateVerbose,
		}
	}

	builder := corpus.NewBuilder(store, fetcher)
	rep, err := builder.Build(ctx, corpus.DefaultSources())
	if err != nil {
		return fmt.Errorf("corpus build failed: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Knowledge base populated\n")
	_, _ = fmt.Fprintf(os.Stdout, "  Seed items:      %d\n", rep.SeedItems)
	_, _ = fmt.Fprintf(os.Stdout, "  Sources indexed: %d\n", rep.SourcesIndexed)
	_, _ = fmt.Fprintf(os.Stdout, "  Sources skipped: %d\n", rep.SourcesSkipped)
	_, _ = fmt.Fprintf(os.Stdout, "  Sources failed:  %d\n", rep.SourcesFailed)
	_, _ = fmt.Fprintf(os.Stdout, "  Chunks indexed:  %d\n", rep.ChunksIndexed)

	return nil
}

// browserFetcher falls back to headless browser rendering when the
// static fetch of a portal page comes back as an empty SPA shell.
type browserFetcher struct {
	inner   corpus.Fetcher
	verbose bool
}

func (b *browserFetcher) FetchWithCollection(ctx context.Context, urlStr string, collection *string, sourceType *string) (*fetch.CachedResult, error) {
	result, err := b.inner.FetchWithCollection(ctx, urlStr, collection, sourceType)
	if err != nil {
		return nil, err
	}

	if result.FromCache || !fetch.ShouldUseBrowser(result.Text) {
		return result, nil
	}

	html, err := fetch.WithBrowser(ctx, urlStr, 60*time.Second, b.verbose)
	if err != nil {
		// Keep the thin static result rather than failing the source
		return result, nil
	}
	result.HTML = html
	result.Text = ""
	return result, nil
}
