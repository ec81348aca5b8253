package validation

import (
	"context"
	"fmt"
	"math"

	"github.com/nadim/adgm-agent/internal/knowledge"
	"github.com/nadim/adgm-agent/internal/rules"
	"github.com/nadim/adgm-agent/internal/types"
)

// MatchChecklist scores the document's coverage of checklist-style corpus
// content for its document type. Unlike section validation this operation
// has no fallback mode: it returns an error when the knowledge store is
// unavailable.
func (v *Validator) MatchChecklist(ctx context.Context, content string, docType types.DocumentType) (*types.ChecklistResult, error) {
	if !v.knowledgeAvailable() {
		return nil, &KnowledgeUnavailableError{Operation: "checklist validation"}
	}

	query := fmt.Sprintf("checklist %s requirements", docType)
	results, err := v.queryKnowledge(ctx, query, []string{knowledge.CollectionCompliance}, 3)
	if err != nil {
		return nil, &ChecklistError{Message: "checklist query failed", Cause: err}
	}

	var items []string
	seen := make(map[string]bool)
	for _, result := range results {
		for _, item := range rules.ExtractChecklistItems(result.Content) {
			if seen[item] {
				continue
			}
			seen[item] = true
			items = append(items, item)
		}
	}

	outcome := &types.ChecklistResult{
		TotalItems:   len(items),
		MissingItems: []string{},
	}
	for _, item := range items {
		if requirementPresent(content, item) {
			outcome.CompletedItems++
		} else {
			outcome.MissingItems = append(outcome.MissingItems, item)
		}
	}
	if outcome.TotalItems > 0 {
		outcome.CompliancePercentage = math.Round(
			float64(outcome.CompletedItems)/float64(outcome.TotalItems)*100*100) / 100
	}
	return outcome, nil
}
