package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nadim/adgm-agent/internal/rules"
)

// presenceThreshold is the fraction of a statement's key terms that must
// appear in the document for the statement to count as addressed.
const presenceThreshold = 0.6

var datePattern = regexp.MustCompile(`\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`)

// requirementPresent tests lexical presence of a requirement: at least
// 60% of its non-stopword key terms must appear in the document.
func requirementPresent(content, requirement string) bool {
	terms := rules.KeyTerms(requirement)
	if len(terms) == 0 {
		return false
	}

	contentLower := strings.ToLower(content)
	found := 0
	for _, term := range terms {
		if strings.Contains(contentLower, term) {
			found++
		}
	}
	return float64(found) >= float64(len(terms))*presenceThreshold
}

// requirementQuality is a coarse adequacy heuristic: sentences containing
// a key term score 2 when over 100 characters and 1 when over 50; the
// requirement is adequately addressed when the total reaches the number
// of key terms.
func requirementQuality(content, requirement string) bool {
	terms := rules.KeyTerms(requirement)
	if len(terms) == 0 {
		return false
	}

	contentLower := strings.ToLower(content)
	score := 0
	for _, term := range terms {
		pattern, err := regexp.Compile(`[^.]*` + regexp.QuoteMeta(term) + `[^.]*\.`)
		if err != nil {
			continue
		}
		for _, sentence := range pattern.FindAllString(contentLower, -1) {
			switch {
			case len(sentence) > 100:
				score += 2
			case len(sentence) > 50:
				score++
			}
		}
	}
	return score >= len(terms)
}

// prohibitionViolation returns a violation message when any key term of a
// prohibition statement appears in the document, or empty string.
func prohibitionViolation(content, prohibition string) string {
	contentLower := strings.ToLower(content)
	for _, term := range rules.KeyTerms(prohibition) {
		if strings.Contains(contentLower, term) {
			return fmt.Sprintf("Document may violate prohibition: contains '%s'", term)
		}
	}
	return ""
}

// obligationViolation returns a violation message when more than half of
// an obligation statement's key terms are absent from the document, or
// empty string.
func obligationViolation(content, obligation string) string {
	terms := rules.KeyTerms(obligation)
	if len(terms) == 0 {
		return ""
	}

	contentLower := strings.ToLower(content)
	var missing []string
	for _, term := range terms {
		if !strings.Contains(contentLower, term) {
			missing = append(missing, term)
		}
	}
	if float64(len(missing)) > float64(len(terms))*0.5 {
		shown := missing
		if len(shown) > 3 {
			shown = shown[:3]
		}
		return fmt.Sprintf("Document may not comply with requirement: missing %s",
			strings.Join(shown, ", "))
	}
	return ""
}

// templateStructureIssues diffs the document against an official template
// passage: a template heading with over half of its words absent from the
// uppercased document is reported as a missing section. Template
// signature and date conventions are checked alongside.
func templateStructureIssues(content, templateContent string) []string {
	var issues []string
	contentUpper := strings.ToUpper(content)

	var missingHeadings []string
	for _, heading := range rules.ExtractTemplateHeadings(templateContent) {
		if strings.Contains(contentUpper, heading) {
			continue
		}
		words := strings.Fields(heading)
		if len(words) < 2 {
			continue
		}
		found := 0
		for _, word := range words {
			if strings.Contains(contentUpper, word) {
				found++
			}
		}
		if float64(found) < float64(len(words))*0.5 {
			missingHeadings = append(missingHeadings, heading)
		}
	}
	if len(missingHeadings) > 0 {
		if len(missingHeadings) > 3 {
			missingHeadings = missingHeadings[:3]
		}
		issues = append(issues,
			fmt.Sprintf("Missing template sections: %s", strings.Join(missingHeadings, ", ")))
	}

	templateLower := strings.ToLower(templateContent)
	if strings.Contains(templateLower, "signature") && !strings.Contains(strings.ToLower(content), "signature") {
		issues = append(issues, "Missing signature section as shown in template")
	}
	if strings.Contains(templateLower, "date") && !datePattern.MatchString(content) {
		issues = append(issues, "Missing date formatting as shown in template")
	}
	return issues
}
