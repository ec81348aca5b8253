package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nadim/adgm-agent/internal/knowledge"
	"github.com/nadim/adgm-agent/internal/observability"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show knowledge base statistics",
	Long:  `Prints per-collection item counts and the overall status of the regulatory knowledge base.`,
	RunE:  runStats,
}

var (
	statsDatabaseURL string
	statsAPIKey      string
)

func init() {
	statsCmd.Flags().StringVar(&statsDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	statsCmd.Flags().StringVar(&statsAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	rootCmd.AddCommand(statsCmd)
}

func runStats(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	databaseURL := statsDatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable or --db-url flag is required")
	}

	apiKey := statsAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
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

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintKnowledgeStats(store.Stats(ctx))

	return nil
}
