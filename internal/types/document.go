// Package types provides type definitions for structured data used throughout the adgm-agent system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// DocumentType identifies the kind of corporate document under review
type DocumentType string

const (
	DocTypeMemorandum         DocumentType = "memorandum"
	DocTypeArticles           DocumentType = "articles"
	DocTypeApplication        DocumentType = "application"
	DocTypeBoardResolution    DocumentType = "board_resolution"
	DocTypeEmploymentContract DocumentType = "employment_contract"
	DocTypeUnknown            DocumentType = "unknown"
)

// Known reports whether the document type is one of the recognized types
// (i.e. not DocTypeUnknown and not an arbitrary string).
func (d DocumentType) Known() bool {
	switch d {
	case DocTypeMemorandum, DocTypeArticles, DocTypeApplication,
		DocTypeBoardResolution, DocTypeEmploymentContract:
		return true
	}
	return false
}

// Heading is a structural heading extracted by the document parser
type Heading struct {
	Text  string `json:"text"`
	Level int    `json:"level"`
}

// DocumentSection is a titled section with its paragraph content,
// as supplied by the external text/structure extractor
type DocumentSection struct {
	Title   string   `json:"title"`
	Content []string `json:"content"`
}

// DocumentStructure is the structural view of a parsed document
type DocumentStructure struct {
	Headings []Heading         `json:"headings"`
	Sections []DocumentSection `json:"sections"`
}

// FlagSeverity grades a red-flag finding from the LLM analyzer
type FlagSeverity string

const (
	SeverityCritical FlagSeverity = "critical"
	SeverityHigh     FlagSeverity = "high"
	SeverityMedium   FlagSeverity = "medium"
	SeverityLow      FlagSeverity = "low"
	SeverityInfo     FlagSeverity = "info"
)

// DocumentFlag is one red-flag finding raised against a document
type DocumentFlag struct {
	Severity      FlagSeverity `json:"severity"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Location      string       `json:"location,omitempty"`
	SuggestedFix  string       `json:"suggested_fix,omitempty"`
	ADGMReference string       `json:"adgm_reference,omitempty"`
}

// ProcessingStatus tracks the lifecycle of a document analysis
type ProcessingStatus string

const (
	StatusUploaded  ProcessingStatus = "uploaded"
	StatusAnalyzing ProcessingStatus = "analyzing"
	StatusCompleted ProcessingStatus = "completed"
	StatusError     ProcessingStatus = "error"
)

// DocumentAnalysis is the full record of one document run through the
// pipeline. Every field consumed downstream is declared here up front;
// nothing is attached to the record after construction.
type DocumentAnalysis struct {
	ID               string           `json:"id"`
	OriginalFilename string           `json:"original_filename"`
	FilePath         string           `json:"file_path"`
	OutputPath       string           `json:"output_path,omitempty"`
	DocumentType     DocumentType     `json:"document_type"`
	Status           ProcessingStatus `json:"status"`
	Summary          string           `json:"summary,omitempty"`

	ComplianceChecks []ComplianceCheck `json:"compliance_checks,omitempty"`
	ComplianceScore  float64           `json:"compliance_score"`
	Flags            []DocumentFlag    `json:"flags,omitempty"`
	Checklist        *ChecklistResult  `json:"checklist,omitempty"`
	Recommendations  []string          `json:"recommendations,omitempty"`
	Completeness     *Completeness     `json:"completeness,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}
