package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nadim/adgm-agent/internal/config"
	"github.com/nadim/adgm-agent/internal/pipeline"
	"github.com/nadim/adgm-agent/internal/report"
	"github.com/nadim/adgm-agent/internal/schemas"
	"github.com/nadim/adgm-agent/internal/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a corporate document for ADGM compliance",
	Long: `Runs the full analysis pipeline on one document: ingestion -> classification -> section validation -> red flag detection -> completeness -> report assembly.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runAnalyze,
}

var (
	analyzeConfigPath  string
	analyzeDocument    string
	analyzeDocType     string
	analyzeOutputDir   string
	analyzeAPIKey      string
	analyzeDatabaseURL string
	analyzeVerbose     bool
)

func init() {
	// Config file flag (processed first)
	analyzeCmd.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	analyzeCmd.Flags().StringVarP(&analyzeDocument, "document", "d", "", "Path to the document to analyze (.txt or .md)")
	analyzeCmd.Flags().StringVarP(&analyzeDocType, "type", "t", "", "Document type override (memorandum, articles, application, board_resolution, employment_contract)")
	analyzeCmd.Flags().StringVarP(&analyzeOutputDir, "out", "o", "", "Directory to write the analysis artifact to")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print detailed check and flag breakdowns")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	analyzeCmd.Flags().StringVar(&analyzeAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	// Database URL for persistence and the knowledge base
	analyzeCmd.Flags().StringVar(&analyzeDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if analyzeConfigPath != "" {
		loadedCfg, err := config.LoadConfig(analyzeConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if err := loadedCfg.Validate(); err != nil {
			return err
		}

		cfg = *loadedCfg
		if analyzeVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", analyzeConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("document") {
		cfg.Document = analyzeDocument
	}
	if cmd.Flags().Changed("type") {
		cfg.DocumentType = analyzeDocType
	}
	if cmd.Flags().Changed("out") {
		cfg.OutputDir = analyzeOutputDir
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = analyzeAPIKey
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = analyzeDatabaseURL
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = analyzeVerbose
	}

	// Step 3: Apply defaults for unset values
	defaults := config.Config{
		UploadDir: "uploads",
		OutputDir: "output",
		TopK:      5,
		MaxIssues: 10,
	}
	cfg = cfg.MergeWithDefaults(defaults)

	// Step 4: Validate required fields
	if cfg.Document == "" {
		return fmt.Errorf("--document must be provided (via flag or config)")
	}
	if cfg.DocumentType != "" && !types.DocumentType(cfg.DocumentType).Known() {
		return fmt.Errorf("unknown document type: %s", cfg.DocumentType)
	}

	// Step 5: Optional services. Without an API key the pipeline runs
	// structural checks only; without a database nothing is persisted.
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		_, _ = fmt.Fprintln(os.Stderr, "Warning: no API key; skipping LLM analysis (set GEMINI_API_KEY or use --api-key)")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	analysis, err := pipeline.RunPipeline(ctx, pipeline.RunOptions{
		FilePath:     cfg.Document,
		DocumentType: types.DocumentType(cfg.DocumentType),
		APIKey:       cfg.APIKey,
		DatabaseURL:  cfg.DatabaseURL,
		Verbose:      cfg.Verbose,
	})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	outPath, err := writeAnalysisArtifact(cfg.OutputDir, analysis)
	if err != nil {
		return err
	}

	rep := report.Build(analysis)
	_, _ = fmt.Fprintln(os.Stdout, report.Format(rep))
	_, _ = fmt.Fprintf(os.Stdout, "\nArtifact: %s\n", outPath)

	return nil
}

// writeAnalysisArtifact writes the analysis record as JSON and checks it
// against the analysis schema.
func writeAnalysisArtifact(outputDir string, analysis *types.DocumentAnalysis) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	outPath := filepath.Join(outputDir, analysis.ID+".json")
	jsonBytes, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal analysis: %w", err)
	}
	if err := os.WriteFile(outPath, jsonBytes, 0644); err != nil {
		return "", fmt.Errorf("failed to write artifact: %w", err)
	}

	// Validate against schema (if schema file exists)
	schemaPath := schemas.ResolveSchemaPath("schemas/analysis.schema.json")
	if schemaPath != "" {
		if err := schemas.ValidateJSON(schemaPath, outPath); err != nil {
			// Distinguish between validation errors (data doesn't match schema) and schema load errors
			var validationErr *schemas.ValidationError
			var schemaLoadErr *schemas.SchemaLoadError
			if errors.As(err, &validationErr) {
				return "", fmt.Errorf("analysis artifact does not validate against schema: %w", err)
			} else if errors.As(err, &schemaLoadErr) {
				_, _ = fmt.Fprintf(os.Stderr, "Warning: Could not validate artifact against schema (schema loading failed): %v\n", err)
			} else {
				_, _ = fmt.Fprintf(os.Stderr, "Warning: Could not validate artifact against schema: %v\n", err)
			}
		}
	}

	return outPath, nil
}
