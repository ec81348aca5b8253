package validation

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/nadim/adgm-agent/internal/knowledge"
	"github.com/nadim/adgm-agent/internal/rules"
	"github.com/nadim/adgm-agent/internal/types"
)

// Knowledge is the slice of the knowledge store the validator needs.
// A nil Knowledge (or one that reports unavailable) puts the validator in
// fallback mode.
type Knowledge interface {
	Available() bool
	Query(ctx context.Context, text string, collections []string, topK int) ([]types.QueryResult, error)
}

// DefaultStepTimeout bounds each knowledge query inside a validation run.
// A query that exceeds it degrades that step only, never the whole run.
const DefaultStepTimeout = 10 * time.Second

// Validator orchestrates the full set of compliance checks for one
// document. It is safe for concurrent use: validation runs share no
// mutable state beyond the read-mostly knowledge store.
type Validator struct {
	kb          Knowledge
	stepTimeout time.Duration
}

// NewValidator creates a validator. kb may be nil, which forces fallback
// mode for every knowledge-backed step.
func NewValidator(kb Knowledge) *Validator {
	return &Validator{kb: kb, stepTimeout: DefaultStepTimeout}
}

// SetStepTimeout overrides the per-step knowledge query budget.
func (v *Validator) SetStepTimeout(d time.Duration) {
	if d > 0 {
		v.stepTimeout = d
	}
}

func (v *Validator) knowledgeAvailable() bool {
	return v.kb != nil && v.kb.Available()
}

// queryKnowledge runs one bounded knowledge query. Errors (including
// timeouts) are returned to the caller, which treats them as "store
// unavailable for this step".
func (v *Validator) queryKnowledge(ctx context.Context, text string, collections []string, topK int) ([]types.QueryResult, error) {
	stepCtx, cancel := context.WithTimeout(ctx, v.stepTimeout)
	defer cancel()
	return v.kb.Query(stepCtx, text, collections, topK)
}

// Validate runs the complete check sequence for a document: mandatory
// section checks, document-type heuristics, then knowledge-derived checks
// when the store is available. Output order is the emission order; checks
// from different sources are never deduplicated against each other.
func (v *Validator) Validate(ctx context.Context, content string, docType types.DocumentType, structure types.DocumentStructure) []types.ComplianceCheck {
	checks := make([]types.ComplianceCheck, 0)

	for _, section := range MandatorySections(docType) {
		checks = append(checks, v.ValidateSection(ctx, content, section, docType, structure))
	}

	checks = append(checks, heuristicChecks(content, docType)...)

	if v.knowledgeAvailable() {
		checks = append(checks, v.knowledgeChecks(ctx, content, docType)...)
	}

	return checks
}

// knowledgeChecks validates the document against requirements and
// compliance rules retrieved from the knowledge store, plus a template
// structure diff for template-backed document types. Satisfied
// requirements emit no check; only issues surface, so the score leans
// on the structural checks.
func (v *Validator) knowledgeChecks(ctx context.Context, content string, docType types.DocumentType) []types.ComplianceCheck {
	checks := make([]types.ComplianceCheck, 0)
	collections := knowledge.CollectionsFor(docType)

	requirementsQuery := fmt.Sprintf("%s requirements mandatory sections", docType)
	reqResults, err := v.queryKnowledge(ctx, requirementsQuery, collections, 8)
	if err != nil {
		log.Printf("knowledge requirements query failed for %s: %v", docType, err)
	} else {
		checks = append(checks, v.requirementChecks(content, reqResults)...)
	}

	complianceQuery := fmt.Sprintf("%s compliance ADGM regulations", docType)
	compResults, err := v.queryKnowledge(ctx, complianceQuery, collections, 5)
	if err != nil {
		log.Printf("knowledge compliance query failed for %s: %v", docType, err)
	} else {
		checks = append(checks, v.complianceRuleChecks(content, compResults)...)
	}

	switch docType {
	case types.DocTypeMemorandum, types.DocTypeArticles, types.DocTypeBoardResolution:
		checks = append(checks, v.templateChecks(ctx, content, docType)...)
	}

	return checks
}

// requirementChecks extracts requirement statements from retrieved
// passages and tests each against the document. A check is emitted only
// when the requirement is missing or inadequately addressed.
func (v *Validator) requirementChecks(content string, results []types.QueryResult) []types.ComplianceCheck {
	checks := make([]types.ComplianceCheck, 0)

	for _, result := range results {
		for _, requirement := range rules.ExtractRequirements(result.Content) {
			present := requirementPresent(content, requirement)
			compliant := present && requirementQuality(content, requirement)
			if present && compliant {
				continue
			}

			check := types.ComplianceCheck{
				Section:         fmt.Sprintf("KB Requirement: %s", sectionOrUnknown(result.Metadata.SectionLabel)),
				Required:        true,
				Present:         present,
				Compliant:       compliant,
				Issues:          []string{},
				Recommendations: []string{},
			}
			if !present {
				check.Issues = append(check.Issues,
					fmt.Sprintf("Missing requirement: %s", truncate(requirement, 100)))
				check.Recommendations = append(check.Recommendations,
					fmt.Sprintf("Add section addressing: %s", truncate(requirement, 100)))
			} else {
				check.Issues = append(check.Issues,
					fmt.Sprintf("Requirement inadequately addressed: %s", truncate(requirement, 100)))
				check.Recommendations = append(check.Recommendations,
					fmt.Sprintf("Improve section covering: %s", truncate(requirement, 100)))
			}
			checks = append(checks, check)
		}
	}
	return checks
}

// complianceRuleChecks flags prohibition statements whose key terms
// appear in the document, and obligation statements with most key terms
// absent.
func (v *Validator) complianceRuleChecks(content string, results []types.QueryResult) []types.ComplianceCheck {
	checks := make([]types.ComplianceCheck, 0)

	for _, result := range results {
		for _, statement := range rules.Extract(result.Content) {
			var violation string
			switch statement.Kind {
			case rules.KindProhibition:
				violation = prohibitionViolation(content, statement.Text)
			case rules.KindRequirement:
				violation = obligationViolation(content, statement.Text)
			}
			if violation == "" {
				continue
			}

			checks = append(checks, types.ComplianceCheck{
				Section:   fmt.Sprintf("Compliance Rule: %s", sectionOrUnknown(result.Metadata.RegulationReference)),
				Required:  true,
				Present:   true,
				Compliant: false,
				Issues:    []string{violation},
				Recommendations: []string{
					fmt.Sprintf("Address compliance issue: %s", truncate(statement.Text, 100)),
				},
			})
		}
	}
	return checks
}

// templateChecks diffs the document structure against official template
// passages from the templates collection.
func (v *Validator) templateChecks(ctx context.Context, content string, docType types.DocumentType) []types.ComplianceCheck {
	checks := make([]types.ComplianceCheck, 0)

	templateQuery := fmt.Sprintf("%s template structure", docType)
	results, err := v.queryKnowledge(ctx, templateQuery, []string{knowledge.CollectionTemplates}, 3)
	if err != nil {
		log.Printf("template query failed for %s: %v", docType, err)
		return checks
	}

	for _, result := range results {
		issues := templateStructureIssues(content, result.Content)
		if len(issues) == 0 {
			continue
		}
		checks = append(checks, types.ComplianceCheck{
			Section:   fmt.Sprintf("Template Compliance: %s", sectionOrUnknown(result.Metadata.DocumentTitle)),
			Required:  false,
			Present:   true,
			Compliant: false,
			Issues:    issues,
			Recommendations: []string{
				fmt.Sprintf("Align with official template: %s", result.Metadata.DocumentTitle),
			},
		})
	}
	return checks
}

// Score computes the compliance score: the percentage of compliant checks
// over all emitted checks, rounded to two decimals. An empty check list
// scores 0.0.
func Score(checks []types.ComplianceCheck) float64 {
	if len(checks) == 0 {
		return 0.0
	}

	compliant := 0
	for _, check := range checks {
		if check.Compliant {
			compliant++
		}
	}
	return math.Round(float64(compliant)/float64(len(checks))*100*100) / 100
}

func sectionOrUnknown(label string) string {
	if label == "" {
		return "Unknown"
	}
	return label
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
