// Package types provides type definitions for structured data used throughout the adgm-agent system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ComplianceCheck is a single compliance finding for one section or rule.
// Checks are constructed once per validation run and never mutated after
// the aggregation step hands them back.
type ComplianceCheck struct {
	Section         string   `json:"section"`
	Required        bool     `json:"required"`
	Present         bool     `json:"present"`
	Compliant       bool     `json:"compliant"`
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
}

// ChecklistResult is the coverage of a document against checklist-style
// corpus content (itemized procedural requirements)
type ChecklistResult struct {
	TotalItems           int      `json:"total_items"`
	CompletedItems       int      `json:"completed_items"`
	MissingItems         []string `json:"missing_items"`
	CompliancePercentage float64  `json:"compliance_percentage"`
}

// Completeness is the LLM analyzer's estimate of document completeness.
// Score is in [0,1]; a neutral estimate has Score 0.5 and no sections.
type Completeness struct {
	Score           float64  `json:"completeness_score"`
	MissingSections []string `json:"missing_sections"`
}

// NeutralCompleteness is the estimate used when the analyzer is
// unavailable or returns an error.
func NeutralCompleteness() *Completeness {
	return &Completeness{Score: 0.5, MissingSections: []string{}}
}
