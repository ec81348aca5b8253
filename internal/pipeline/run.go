// Package pipeline provides the high-level orchestration for document analysis.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/nadim/adgm-agent/internal/db"
	"github.com/nadim/adgm-agent/internal/ingestion"
	"github.com/nadim/adgm-agent/internal/knowledge"
	"github.com/nadim/adgm-agent/internal/llm"
	"github.com/nadim/adgm-agent/internal/observability"
	"github.com/nadim/adgm-agent/internal/pipeline/steps"
	"github.com/nadim/adgm-agent/internal/types"
	"github.com/nadim/adgm-agent/internal/validation"
)

// classifyConfidenceFloor is the minimum LLM classification confidence
// accepted when the heuristic detector came up empty.
const classifyConfidenceFloor = 0.5

// ProgressEvent represents a progress update during an analysis run
type ProgressEvent struct {
	Step       string `json:"step"`
	Category   string `json:"category"`
	Message    string `json:"message"`
	AnalysisID string `json:"analysis_id,omitempty"`
	Content    any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for running one document analysis
type RunOptions struct {
	AnalysisID   string             // Pre-assigned record ID; empty means generate
	FilePath     string             // Path to the document; read when Text is empty
	Text         string             // Document content supplied directly
	Filename     string             // Display name when Text is supplied
	DocumentType types.DocumentType // Override; empty means detect
	APIKey       string
	DatabaseURL  string
	Verbose      bool
	OnProgress   ProgressCallback
}

// Runner executes the analysis pipeline against injected services. The
// knowledge store and analyzer may be nil; the pipeline degrades to
// structural checks only.
type Runner struct {
	store    db.AnalysisStore
	kb       *knowledge.Store
	analyzer *llm.Analyzer
	printer  *observability.Printer
}

// NewRunner creates a pipeline runner. store must not be nil.
func NewRunner(store db.AnalysisStore, kb *knowledge.Store, analyzer *llm.Analyzer) *Runner {
	return &Runner{
		store:    store,
		kb:       kb,
		analyzer: analyzer,
		printer:  observability.NewPrinter(os.Stdout),
	}
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, analysisID, step, category, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:       step,
			Category:   category,
			Message:    message,
			AnalysisID: analysisID,
			Content:    content,
		})
	}
}

// Analyze runs the full analysis pipeline for one document and persists
// the result. Validation and LLM analysis run concurrently once the
// document is classified.
func (r *Runner) Analyze(ctx context.Context, opts RunOptions) (*types.DocumentAnalysis, error) {
	// Stage 1: ingest
	var doc *ingestion.ParsedDocument
	var err error
	if opts.Text != "" {
		doc = ingestion.ParseText(opts.Text, opts.Filename)
	} else {
		doc, err = ingestion.ParseFile(opts.FilePath)
		if err != nil {
			return nil, fmt.Errorf("document ingestion failed: %w", err)
		}
	}

	analysisID := opts.AnalysisID
	if analysisID == "" {
		analysisID = uuid.New().String()
	}
	analysis := &types.DocumentAnalysis{
		ID:               analysisID,
		OriginalFilename: displayName(opts, doc),
		FilePath:         doc.FilePath,
		Status:           types.StatusAnalyzing,
		CreatedAt:        time.Now(),
	}
	emitProgress(&opts, analysis.ID, "ingest_document", steps.CategoryIngestion,
		fmt.Sprintf("Ingested %d characters from %s", len(doc.Text), analysis.OriginalFilename), nil)

	// Stage 2: classify
	analysis.DocumentType = r.classify(ctx, &opts, doc)
	emitProgress(&opts, analysis.ID, "classify_document", steps.CategoryIngestion,
		fmt.Sprintf("Document classified as %s", analysis.DocumentType), nil)

	if err := r.store.SaveAnalysis(ctx, analysis); err != nil {
		return nil, fmt.Errorf("failed to save analysis record: %w", err)
	}

	// Stages 3-7: validation branch and LLM branch run concurrently
	validator := validation.NewValidator(r.kb)
	requiredSections := validation.MandatorySections(analysis.DocumentType)

	var mu sync.Mutex
	var checks []types.ComplianceCheck
	var checklist *types.ChecklistResult
	var llmResult *llm.FullAnalysis

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		result := validator.Validate(gCtx, doc.Text, analysis.DocumentType, doc.Structure)

		matched, err := validator.MatchChecklist(gCtx, doc.Text, analysis.DocumentType)
		if err != nil {
			log.Printf("pipeline: checklist matching unavailable: %v", err)
		}

		mu.Lock()
		checks = result
		checklist = matched
		mu.Unlock()

		emitProgress(&opts, analysis.ID, "validate_sections", steps.CategoryValidation,
			fmt.Sprintf("Ran %d compliance checks", len(result)), nil)
		return nil
	})

	if r.analyzer != nil {
		g.Go(func() error {
			validation.LogInjectionWarning(
				validation.CheckBasicHeuristics(doc.Text), "uploaded document "+analysis.OriginalFilename)
			result := r.analyzer.Analyze(gCtx, doc.Text, analysis.DocumentType, requiredSections)

			mu.Lock()
			llmResult = result
			mu.Unlock()

			emitProgress(&opts, analysis.ID, "detect_red_flags", steps.CategoryAnalysis,
				fmt.Sprintf("Raised %d red flags", len(result.RedFlags.Flags)), nil)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		analysis.Status = types.StatusError
		if saveErr := r.store.SaveAnalysis(ctx, analysis); saveErr != nil {
			log.Printf("pipeline: failed to record error status: %v", saveErr)
		}
		return nil, err
	}

	// Stage 8: merge and assemble
	r.merge(analysis, checks, checklist, llmResult)

	if r.kb != nil && r.kb.Available() {
		if recs, err := validator.ContextualRecommendations(ctx, doc.Text, analysis.DocumentType, collectIssues(analysis.ComplianceChecks)); err == nil {
			analysis.Recommendations = append(analysis.Recommendations, recs...)
		} else {
			log.Printf("pipeline: contextual recommendations unavailable: %v", err)
		}
	}

	now := time.Now()
	analysis.Status = types.StatusCompleted
	analysis.CompletedAt = &now

	if err := r.store.SaveAnalysis(ctx, analysis); err != nil {
		return nil, fmt.Errorf("failed to save completed analysis: %w", err)
	}
	emitProgress(&opts, analysis.ID, "assemble_report", steps.CategoryReporting,
		fmt.Sprintf("Analysis completed with score %.2f", analysis.ComplianceScore), nil)

	if opts.Verbose {
		r.printer.PrintComplianceChecks(analysis.ComplianceChecks)
		r.printer.PrintFlags(analysis.Flags)
		r.printer.PrintChecklist(analysis.Checklist)
		r.printer.PrintAnalysisSummary(analysis)
	}

	return analysis, nil
}

// classify picks the document type: explicit override first, then the
// heuristic detector, then the LLM classifier for anything still unknown.
func (r *Runner) classify(ctx context.Context, opts *RunOptions, doc *ingestion.ParsedDocument) types.DocumentType {
	if opts.DocumentType.Known() {
		return opts.DocumentType
	}
	if doc.DocumentType.Known() {
		return doc.DocumentType
	}
	if r.analyzer == nil {
		return types.DocTypeUnknown
	}

	classification, err := r.analyzer.Classify(ctx, doc.Text)
	if err != nil {
		log.Printf("pipeline: LLM classification failed: %v", err)
		return types.DocTypeUnknown
	}
	if classification.Confidence < classifyConfidenceFloor {
		return types.DocTypeUnknown
	}
	candidate := types.DocumentType(classification.DocumentType)
	if !candidate.Known() {
		return types.DocTypeUnknown
	}
	return candidate
}

// merge folds the branch results into the analysis record. LLM
// completeness checks are appended after the structural checks so the
// emission order of the core validator is preserved.
func (r *Runner) merge(analysis *types.DocumentAnalysis, checks []types.ComplianceCheck, checklist *types.ChecklistResult, llmResult *llm.FullAnalysis) {
	analysis.ComplianceChecks = checks
	analysis.Checklist = checklist

	if llmResult != nil {
		if llmResult.Completeness != nil {
			analysis.ComplianceChecks = append(analysis.ComplianceChecks, llmResult.Completeness.ComplianceChecks...)
			analysis.Completeness = &types.Completeness{
				Score:           llmResult.Completeness.Score,
				MissingSections: llmResult.Completeness.MissingSections,
			}
		}
		if llmResult.RedFlags != nil {
			analysis.Flags = llmResult.RedFlags.Flags
			analysis.Summary = llmResult.RedFlags.Summary
		}
		if llmResult.Suggestions != nil {
			for _, suggestion := range llmResult.Suggestions.Suggestions {
				if suggestion.SuggestedClause == "" {
					continue
				}
				analysis.Recommendations = append(analysis.Recommendations,
					fmt.Sprintf("%s: %s", suggestion.Section, suggestion.SuggestedClause))
			}
		}
	}

	analysis.ComplianceScore = validation.Score(analysis.ComplianceChecks)
}

// collectIssues gathers issue strings from non-compliant checks.
func collectIssues(checks []types.ComplianceCheck) []string {
	var issues []string
	for _, check := range checks {
		if check.Compliant {
			continue
		}
		issues = append(issues, check.Issues...)
	}
	return issues
}

func displayName(opts RunOptions, doc *ingestion.ParsedDocument) string {
	if opts.Filename != "" {
		return opts.Filename
	}
	if doc.Metadata != nil && doc.Metadata.Filename != "" {
		return doc.Metadata.Filename
	}
	return opts.FilePath
}

// RunPipeline builds the services from options and runs one analysis.
// Database, knowledge store, and analyzer are each optional: a failed
// connection logs a warning and the pipeline continues degraded.
func RunPipeline(ctx context.Context, opts RunOptions) (*types.DocumentAnalysis, error) {
	var store db.AnalysisStore = db.NewMemoryAnalysisStore()
	if opts.DatabaseURL != "" {
		database, err := db.Connect(ctx, opts.DatabaseURL)
		if err != nil {
			log.Printf("Warning: failed to connect to database: %v", err)
			log.Printf("Continuing without database persistence...")
		} else {
			defer database.Close()
			store = database
		}
	}

	var kb *knowledge.Store
	if opts.DatabaseURL != "" && opts.APIKey != "" {
		index, err := knowledge.NewPGIndex(ctx, opts.DatabaseURL)
		if err != nil {
			log.Printf("Warning: knowledge index unavailable: %v", err)
		} else {
			defer index.Close()
			embedder, err := knowledge.NewGeminiEmbedder(ctx, opts.APIKey, "")
			if err != nil {
				log.Printf("Warning: embedder unavailable: %v", err)
			} else {
				defer func() { _ = embedder.Close() }()
				kb = knowledge.NewStore(embedder, index)
				if !kb.Initialize(ctx) {
					log.Printf("Warning: knowledge store degraded, structural checks only")
				}
			}
		}
	}

	var analyzer *llm.Analyzer
	if opts.APIKey != "" {
		client, err := llm.NewClient(ctx, llm.DefaultConfig(), opts.APIKey)
		if err != nil {
			log.Printf("Warning: LLM client unavailable: %v", err)
		} else {
			defer func() { _ = client.Close() }()
			analyzer = llm.NewAnalyzer(client)
		}
	}

	return NewRunner(store, kb, analyzer).Analyze(ctx, opts)
}
