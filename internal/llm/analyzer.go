// Package llm - analyzer.go provides LLM-based legal document analysis:
// classification, red-flag detection, completeness review, and clause
// suggestions.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/nadim/adgm-agent/internal/prompts"
	"github.com/nadim/adgm-agent/internal/types"
)

// promptFile holds the externalized prompt templates for every analysis stage
const promptFile = "analysis.json"

// Content limits per analysis stage. Classification needs only the
// opening of the document; red-flag and completeness review read deeper.
const (
	classifyContentLimit     = 3000
	redFlagContentLimit      = 6000
	completenessContentLimit = 8000
	suggestionContentLimit   = 4000
	contextLimit             = 2000
	maxSuggestionIssues      = 5
)

// AnalysisError represents a failure in one LLM analysis stage
type AnalysisError struct {
	Stage   string
	Message string
	Cause   error
}

func (e *AnalysisError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("analysis error in %s: %s: %v", e.Stage, e.Message, e.Cause)
	}
	return fmt.Sprintf("analysis error in %s: %s", e.Stage, e.Message)
}

func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

// Classification is the analyzer's document-type verdict.
type Classification struct {
	DocumentType  string   `json:"document_type"`
	Confidence    float64  `json:"confidence"`
	KeyIndicators []string `json:"key_indicators"`
}

// RedFlagReport holds the analyzer's legal red-flag findings.
type RedFlagReport struct {
	Flags            []types.DocumentFlag `json:"flags"`
	OverallRiskLevel string               `json:"overall_risk_level"`
	Summary          string               `json:"summary"`
}

// CompletenessReport holds the analyzer's completeness review.
type CompletenessReport struct {
	Score            float64                 `json:"completeness_score"`
	MissingSections  []string                `json:"missing_sections"`
	PresentSections  []string                `json:"present_sections"`
	ComplianceChecks []types.ComplianceCheck `json:"compliance_checks"`
}

// ClauseSuggestion is one recommended clause improvement.
type ClauseSuggestion struct {
	Section         string `json:"section"`
	Issue           string `json:"issue"`
	SuggestedClause string `json:"suggested_clause"`
	Justification   string `json:"justification"`
	ADGMReference   string `json:"adgm_reference,omitempty"`
}

// SuggestionReport holds clause suggestions for identified issues.
type SuggestionReport struct {
	Suggestions []ClauseSuggestion `json:"suggestions"`
	Priority    string             `json:"priority"`
}

// ContextValidation is the verdict of validating content against a
// specific regulatory passage.
type ContextValidation struct {
	Compliant       bool     `json:"compliant"`
	Violations      []string `json:"violations"`
	Recommendations []string `json:"recommendations"`
	Confidence      float64  `json:"confidence"`
}

// FullAnalysis bundles the results of a complete analyzer run.
type FullAnalysis struct {
	Classification *Classification     `json:"classification,omitempty"`
	RedFlags       *RedFlagReport      `json:"red_flags,omitempty"`
	Completeness   *CompletenessReport `json:"completeness,omitempty"`
	Suggestions    *SuggestionReport   `json:"suggestions,omitempty"`
}

// Analyzer runs legal document analysis through an LLM client.
type Analyzer struct {
	client Client
}

// NewAnalyzer creates an analyzer over an LLM client.
func NewAnalyzer(client Client) *Analyzer {
	return &Analyzer{client: client}
}

// Analyze runs the full analysis pipeline: classification, red flags,
// completeness, and clause suggestions (only when flags were raised).
// Individual stage failures degrade to neutral results rather than
// aborting the run.
func (a *Analyzer) Analyze(ctx context.Context, content string, docType types.DocumentType, requiredSections []string) *FullAnalysis {
	result := &FullAnalysis{}

	classification, err := a.Classify(ctx, content)
	if err != nil {
		log.Printf("analyzer: classification failed: %v", err)
		classification = fallbackClassification()
	}
	result.Classification = classification

	redFlags, err := a.DetectRedFlags(ctx, content, docType)
	if err != nil {
		log.Printf("analyzer: red flag detection failed: %v", err)
		redFlags = fallbackRedFlags("")
	}
	result.RedFlags = redFlags

	completeness, err := a.CheckCompleteness(ctx, content, docType, requiredSections)
	if err != nil {
		log.Printf("analyzer: completeness check failed: %v", err)
		completeness = fallbackCompleteness()
	}
	result.Completeness = completeness

	if len(result.RedFlags.Flags) > 0 {
		suggestions, err := a.GenerateSuggestions(ctx, content, docType, result.RedFlags.Flags)
		if err != nil {
			log.Printf("analyzer: suggestion generation failed: %v", err)
			suggestions = fallbackSuggestions()
		}
		result.Suggestions = suggestions
	}

	return result
}

// Classify determines the document type from its content.
func (a *Analyzer) Classify(ctx context.Context, content string) (*Classification, error) {
	prompt := prompts.Format(prompts.MustGet(promptFile, "classify-document"), map[string]string{
		"Content": truncate(content, classifyContentLimit),
	})

	response, err := a.client.GenerateJSON(ctx, prompt, TierLite)
	if err != nil {
		return nil, &AnalysisError{Stage: "classification", Message: "LLM call failed", Cause: err}
	}

	var classification Classification
	if err := json.Unmarshal([]byte(CleanJSONBlock(response)), &classification); err != nil {
		log.Printf("analyzer: unparseable classification response: %v", err)
		return fallbackClassification(), nil
	}
	return &classification, nil
}

// DetectRedFlags scans the document for legal red flags and compliance
// issues.
func (a *Analyzer) DetectRedFlags(ctx context.Context, content string, docType types.DocumentType) (*RedFlagReport, error) {
	prompt := prompts.Format(prompts.MustGet(promptFile, "detect-red-flags"), map[string]string{
		"DocType": string(docType),
		"Content": truncate(content, redFlagContentLimit),
	})

	response, err := a.client.GenerateJSON(ctx, prompt, TierAdvanced)
	if err != nil {
		return nil, &AnalysisError{Stage: "red_flags", Message: "LLM call failed", Cause: err}
	}

	var report RedFlagReport
	if err := json.Unmarshal([]byte(CleanJSONBlock(response)), &report); err != nil {
		log.Printf("analyzer: unparseable red flag response: %v", err)
		return fallbackRedFlags(response), nil
	}
	return &report, nil
}

// CheckCompleteness reviews whether all required sections are present.
func (a *Analyzer) CheckCompleteness(ctx context.Context, content string, docType types.DocumentType, requiredSections []string) (*CompletenessReport, error) {
	prompt := prompts.Format(prompts.MustGet(promptFile, "check-completeness"), map[string]string{
		"DocType":          string(docType),
		"RequiredSections": strings.Join(requiredSections, ", "),
		"Content":          truncate(content, completenessContentLimit),
	})

	response, err := a.client.GenerateJSON(ctx, prompt, TierStandard)
	if err != nil {
		return nil, &AnalysisError{Stage: "completeness", Message: "LLM call failed", Cause: err}
	}

	var report CompletenessReport
	if err := json.Unmarshal([]byte(CleanJSONBlock(response)), &report); err != nil {
		log.Printf("analyzer: unparseable completeness response: %v", err)
		return fallbackCompleteness(), nil
	}
	return &report, nil
}

// GenerateSuggestions proposes clause fixes for identified issues.
func (a *Analyzer) GenerateSuggestions(ctx context.Context, content string, docType types.DocumentType, flags []types.DocumentFlag) (*SuggestionReport, error) {
	if len(flags) > maxSuggestionIssues {
		flags = flags[:maxSuggestionIssues]
	}
	issues, err := json.Marshal(flags)
	if err != nil {
		return nil, &AnalysisError{Stage: "suggestions", Message: "failed to serialize issues", Cause: err}
	}

	prompt := prompts.Format(prompts.MustGet(promptFile, "generate-suggestions"), map[string]string{
		"DocType": string(docType),
		"Content": truncate(content, suggestionContentLimit),
		"Issues":  string(issues),
	})

	response, err := a.client.GenerateJSON(ctx, prompt, TierAdvanced)
	if err != nil {
		return nil, &AnalysisError{Stage: "suggestions", Message: "LLM call failed", Cause: err}
	}

	var report SuggestionReport
	if err := json.Unmarshal([]byte(CleanJSONBlock(response)), &report); err != nil {
		log.Printf("analyzer: unparseable suggestion response: %v", err)
		return fallbackSuggestions(), nil
	}
	return &report, nil
}

// ValidateWithContext validates content against a specific regulatory
// passage.
func (a *Analyzer) ValidateWithContext(ctx context.Context, content, regulatoryContext string) (*ContextValidation, error) {
	prompt := prompts.Format(prompts.MustGet(promptFile, "validate-with-context"), map[string]string{
		"Content": truncate(content, suggestionContentLimit),
		"Context": truncate(regulatoryContext, contextLimit),
	})

	response, err := a.client.GenerateJSON(ctx, prompt, TierStandard)
	if err != nil {
		return nil, &AnalysisError{Stage: "context_validation", Message: "LLM call failed", Cause: err}
	}

	var validation ContextValidation
	if err := json.Unmarshal([]byte(CleanJSONBlock(response)), &validation); err != nil {
		return nil, &AnalysisError{Stage: "context_validation", Message: "unparseable response", Cause: err}
	}
	return &validation, nil
}

// Fallback structures used when a response cannot be parsed. Analysis
// degrades to neutral rather than failing the whole run.

func fallbackClassification() *Classification {
	return &Classification{DocumentType: string(types.DocTypeUnknown), Confidence: 0, KeyIndicators: []string{}}
}

func fallbackRedFlags(raw string) *RedFlagReport {
	summary := "Analysis completed but response parsing failed"
	if raw != "" {
		summary = fmt.Sprintf("%s: %s", summary, truncate(raw, 200))
	}
	return &RedFlagReport{Flags: []types.DocumentFlag{}, OverallRiskLevel: "medium", Summary: summary}
}

func fallbackCompleteness() *CompletenessReport {
	neutral := types.NeutralCompleteness()
	return &CompletenessReport{
		Score:            neutral.Score,
		MissingSections:  []string{},
		PresentSections:  []string{},
		ComplianceChecks: []types.ComplianceCheck{},
	}
}

func fallbackSuggestions() *SuggestionReport {
	return &SuggestionReport{Suggestions: []ClauseSuggestion{}, Priority: "medium"}
}

// truncate limits content to max bytes for prompt construction.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
