package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nadim/adgm-agent/internal/db"
	"github.com/nadim/adgm-agent/internal/ingestion"
	"github.com/nadim/adgm-agent/internal/llm"
	"github.com/nadim/adgm-agent/internal/types"
)

const memorandumText = `MEMORANDUM OF ASSOCIATION

COMPANY NAME
The name of the company is Gulf Ventures Limited.

REGISTERED OFFICE
The registered office of the company is situated at Al Maryah Island,
Abu Dhabi Global Market, Abu Dhabi, United Arab Emirates.

SHARE CAPITAL
The share capital of the company is AED 150,000 divided into 150,000
shares of AED 1 each.

OBJECTS
The company objects are general trading and consultancy services.

LIABILITY OF MEMBERS
The liability of members is limited to the amount unpaid on their shares.
`

// fakeLLMClient implements llm.Client, matching responses by prompt
// substring.
type fakeLLMClient struct {
	responses map[string]string
	err       error
}

func (f *fakeLLMClient) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	return f.lookup(prompt)
}

func (f *fakeLLMClient) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	return f.lookup(prompt)
}

func (f *fakeLLMClient) lookup(prompt string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	for key, response := range f.responses {
		if strings.Contains(prompt, key) {
			return response, nil
		}
	}
	return "{}", nil
}

func (f *fakeLLMClient) GetModel(_ llm.ModelTier) string { return "fake-model" }
func (f *fakeLLMClient) Close() error                    { return nil }

func TestRunner_Analyze_TextInput(t *testing.T) {
	store := db.NewMemoryAnalysisStore()
	runner := NewRunner(store, nil, nil)

	analysis, err := runner.Analyze(context.Background(), RunOptions{
		Text:     memorandumText,
		Filename: "memorandum.txt",
	})
	require.NoError(t, err)
	require.NotNil(t, analysis)

	assert.Equal(t, types.StatusCompleted, analysis.Status)
	assert.Equal(t, types.DocTypeMemorandum, analysis.DocumentType)
	assert.Equal(t, "memorandum.txt", analysis.OriginalFilename)
	assert.NotEmpty(t, analysis.ComplianceChecks)
	assert.NotNil(t, analysis.CompletedAt)

	// Record is persisted
	saved, err := store.GetAnalysis(context.Background(), analysis.ID)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, types.StatusCompleted, saved.Status)
}

func TestRunner_Analyze_FileInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memorandum.txt")
	require.NoError(t, os.WriteFile(path, []byte(memorandumText), 0644))

	runner := NewRunner(db.NewMemoryAnalysisStore(), nil, nil)

	analysis, err := runner.Analyze(context.Background(), RunOptions{FilePath: path})
	require.NoError(t, err)

	assert.Equal(t, "memorandum.txt", analysis.OriginalFilename)
	assert.Equal(t, path, analysis.FilePath)
	assert.Equal(t, types.DocTypeMemorandum, analysis.DocumentType)
}

func TestRunner_Analyze_UnsupportedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memorandum.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0644))

	runner := NewRunner(db.NewMemoryAnalysisStore(), nil, nil)

	_, err := runner.Analyze(context.Background(), RunOptions{FilePath: path})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ingestion.ErrUnsupportedFormat))
}

func TestRunner_Analyze_TypeOverrideWins(t *testing.T) {
	runner := NewRunner(db.NewMemoryAnalysisStore(), nil, nil)

	analysis, err := runner.Analyze(context.Background(), RunOptions{
		Text:         memorandumText,
		Filename:     "doc.txt",
		DocumentType: types.DocTypeBoardResolution,
	})
	require.NoError(t, err)

	assert.Equal(t, types.DocTypeBoardResolution, analysis.DocumentType)
}

func TestRunner_Analyze_WithAnalyzer(t *testing.T) {
	client := &fakeLLMClient{responses: map[string]string{
		"red flags": `{
			"flags": [
				{"severity": "high", "title": "Wrong jurisdiction", "description": "References UAE federal courts", "suggested_fix": "Reference ADGM courts"}
			],
			"overall_risk_level": "medium",
			"summary": "One jurisdiction issue found."
		}`,
		"Required sections for": `{
			"completeness_score": 0.85,
			"missing_sections": ["Subscriber Details"],
			"present_sections": ["Company Name"],
			"compliance_checks": []
		}`,
		"suggest improvements": `{
			"suggestions": [
				{"section": "Jurisdiction", "issue": "Wrong courts", "suggested_clause": "Disputes shall be resolved in the ADGM courts.", "justification": "Required forum"}
			],
			"priority": "high"
		}`,
	}}

	runner := NewRunner(db.NewMemoryAnalysisStore(), nil, llm.NewAnalyzer(client))

	analysis, err := runner.Analyze(context.Background(), RunOptions{
		Text:     memorandumText,
		Filename: "memorandum.txt",
	})
	require.NoError(t, err)

	require.Len(t, analysis.Flags, 1)
	assert.Equal(t, "Wrong jurisdiction", analysis.Flags[0].Title)
	assert.Equal(t, "One jurisdiction issue found.", analysis.Summary)

	require.NotNil(t, analysis.Completeness)
	assert.InDelta(t, 0.85, analysis.Completeness.Score, 0.001)
	assert.Equal(t, []string{"Subscriber Details"}, analysis.Completeness.MissingSections)

	assert.Contains(t, analysis.Recommendations,
		"Jurisdiction: Disputes shall be resolved in the ADGM courts.")
}

func TestRunner_Analyze_AnalyzerFailureDegrades(t *testing.T) {
	client := &fakeLLMClient{err: errors.New("quota exhausted")}
	runner := NewRunner(db.NewMemoryAnalysisStore(), nil, llm.NewAnalyzer(client))

	analysis, err := runner.Analyze(context.Background(), RunOptions{
		Text:     memorandumText,
		Filename: "memorandum.txt",
	})
	require.NoError(t, err)

	// All analyzer stages fall back to neutral results
	assert.Equal(t, types.StatusCompleted, analysis.Status)
	assert.Empty(t, analysis.Flags)
	require.NotNil(t, analysis.Completeness)
	assert.InDelta(t, 0.5, analysis.Completeness.Score, 0.001)
}

func TestRunner_Classify_LLMFallback(t *testing.T) {
	client := &fakeLLMClient{responses: map[string]string{
		"classify its type": `{"document_type": "employment_contract", "confidence": 0.9, "key_indicators": ["probation period"]}`,
	}}
	runner := NewRunner(db.NewMemoryAnalysisStore(), nil, llm.NewAnalyzer(client))

	analysis, err := runner.Analyze(context.Background(), RunOptions{
		Text:     "This agreement sets out the terms of employment between the parties.",
		Filename: "contract.txt",
	})
	require.NoError(t, err)

	assert.Equal(t, types.DocTypeEmploymentContract, analysis.DocumentType)
}

func TestRunner_Classify_LowConfidenceStaysUnknown(t *testing.T) {
	client := &fakeLLMClient{responses: map[string]string{
		"classify its type": `{"document_type": "memorandum", "confidence": 0.2}`,
	}}
	runner := NewRunner(db.NewMemoryAnalysisStore(), nil, llm.NewAnalyzer(client))

	analysis, err := runner.Analyze(context.Background(), RunOptions{
		Text:     "Some text without any recognizable markers.",
		Filename: "mystery.txt",
	})
	require.NoError(t, err)

	assert.Equal(t, types.DocTypeUnknown, analysis.DocumentType)
}

func TestRunner_Analyze_EmitsProgress(t *testing.T) {
	runner := NewRunner(db.NewMemoryAnalysisStore(), nil, nil)

	var events []ProgressEvent
	_, err := runner.Analyze(context.Background(), RunOptions{
		Text:     memorandumText,
		Filename: "memorandum.txt",
		OnProgress: func(event ProgressEvent) {
			events = append(events, event)
		},
	})
	require.NoError(t, err)

	steps := make([]string, 0, len(events))
	for _, event := range events {
		steps = append(steps, event.Step)
		assert.NotEmpty(t, event.AnalysisID)
	}
	assert.Contains(t, steps, "ingest_document")
	assert.Contains(t, steps, "classify_document")
	assert.Contains(t, steps, "validate_sections")
	assert.Contains(t, steps, "assemble_report")
}
