package validation

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/nadim/adgm-agent/internal/rules"
	"github.com/nadim/adgm-agent/internal/types"
)

// maxRecommendationIssues bounds how many issues are looked up against
// the corpus per call.
const maxRecommendationIssues = 3

// ContextualRecommendations queries the corpus for fixes to the top
// identified issues and returns actionable recommendation phrases. It has
// no fallback mode: an unavailable knowledge store is an error.
func (v *Validator) ContextualRecommendations(ctx context.Context, content string, docType types.DocumentType, issues []string) ([]string, error) {
	if !v.knowledgeAvailable() {
		return nil, &KnowledgeUnavailableError{Operation: "contextual recommendations"}
	}
	_ = content // reserved: future versions may condition the query on the document

	if len(issues) > maxRecommendationIssues {
		issues = issues[:maxRecommendationIssues]
	}

	var recommendations []string
	seen := make(map[string]bool)
	for _, issue := range issues {
		query := fmt.Sprintf("how to fix %s %s", issue, docType)
		results, err := v.queryKnowledge(ctx, query, nil, 2)
		if err != nil {
			// A failed lookup for one issue must not sink the rest.
			log.Printf("recommendation query failed for %q: %v", issue, err)
			continue
		}

		for _, result := range results {
			actionable := rules.ExtractRecommendations(result.Content)
			if len(actionable) > 2 {
				actionable = actionable[:2]
			}
			for _, rec := range actionable {
				if seen[rec] {
					continue
				}
				seen[rec] = true
				recommendations = append(recommendations, rec)
			}
		}
	}
	return recommendations, nil
}

// MissingDocuments returns the incorporation filing documents not yet
// uploaded, for document types that carry a filing requirement list.
func MissingDocuments(docType types.DocumentType, uploaded []string) []string {
	required, ok := incorporationRequirements[docType]
	if !ok {
		return nil
	}

	var missing []string
	for _, doc := range required {
		found := false
		for _, u := range uploaded {
			if containsFold(u, doc) {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, doc)
		}
	}
	return missing
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

var incorporationRequirements = map[types.DocumentType][]string{
	types.DocTypeApplication: {
		"Company Registration Application",
		"Memorandum of Association",
		"Articles of Association",
		"Board Resolution (if applicable)",
		"Passport copies of directors",
		"Proof of registered office",
	},
}
