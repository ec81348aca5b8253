// Package rules extracts atomic normative statements from regulatory prose.
//
// This is lexical pattern extraction, not NLP parsing. The contract is
// best-effort surfacing of normative language; over- and under-matching
// are expected and tolerated by every consumer.
package rules

import (
	"regexp"
	"strings"
)

// Kind tags an extracted statement as a requirement or a prohibition
type Kind string

const (
	KindRequirement Kind = "requirement"
	KindProhibition Kind = "prohibition"
)

// Statement is one atomic normative statement pulled out of a passage.
// Statements live only for the validation call that produced them.
type Statement struct {
	Text string
	Kind Kind
}

// minStatementLen filters out fragments too short to test against a document
const minStatementLen = 15

var (
	requirementPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)must\s+(?:include|contain|have|specify)\s+([^.]{20,100})`),
		regexp.MustCompile(`(?i)required?\s+(?:to|that)\s+([^.]{20,100})`),
		regexp.MustCompile(`(?i)shall\s+(?:include|contain|have|specify)\s+([^.]{20,100})`),
		regexp.MustCompile(`(?i)company\s+(?:must|shall)\s+([^.]{20,100})`),
	}

	listItemPatterns = []*regexp.Regexp{
		regexp.MustCompile(`[•\-\*]\s+([^.\n]{20,100})`),
		regexp.MustCompile(`\d+\.\s+([^.\n]{20,100})`),
	}

	prohibitionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:cannot|must not|shall not|prohibited)\s+([^.]{15,80})`),
		regexp.MustCompile(`(?i)not\s+(?:permitted|allowed)\s+to\s+([^.]{15,80})`),
	}

	compliancePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)comply\s+with\s+([^.]{15,80})`),
		regexp.MustCompile(`(?i)accordance\s+with\s+([^.]{15,80})`),
		regexp.MustCompile(`(?i)subject\s+to\s+([^.]{15,80})`),
	}

	checklistPatterns = []*regexp.Regexp{
		regexp.MustCompile(`[✓✗☐☑]\s*([^.\n]{15,100})`),
		regexp.MustCompile(`(?m)^\s*[-•*]\s+([^.\n]{15,100})`),
		regexp.MustCompile(`(?m)^\s*\d+\.\s+([^.\n]{15,100})`),
		regexp.MustCompile(`(?m)^\s*[a-z]\)\s+([^.\n]{15,100})`),
	}

	recommendationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:should|must|recommend|suggest)\s+([^.]{20,100})`),
		regexp.MustCompile(`(?i)(?:add|include|specify|ensure)\s+([^.]{20,100})`),
		regexp.MustCompile(`(?i)(?:to|for)\s+(?:comply|meet|satisfy)\s+([^.]{20,100})`),
	}

	templateHeadingPattern = regexp.MustCompile(`(?m)^([A-Z][A-Z\s]{10,50})$`)

	keyTermWordPattern = regexp.MustCompile(`\b[a-z]{3,}\b`)
)

// keyTermStopwords are words carrying no discriminating weight in a
// requirement; they are excluded from key-term matching.
var keyTermStopwords = map[string]bool{
	"the": true, "and": true, "or": true, "of": true, "to": true, "in": true,
	"for": true, "with": true, "by": true, "at": true, "is": true, "are": true,
	"be": true, "must": true, "shall": true, "should": true, "include": true,
	"contain": true, "have": true, "specify": true, "company": true,
}

// maxKeyTerms caps the number of key terms tested per statement
const maxKeyTerms = 8

// Extract scans a regulatory passage and returns all requirement and
// prohibition statements found in it, deduplicated by exact text.
func Extract(text string) []Statement {
	statements := make([]Statement, 0)
	for _, req := range ExtractRequirements(text) {
		statements = append(statements, Statement{Text: req, Kind: KindRequirement})
	}
	for _, pro := range ExtractProhibitions(text) {
		statements = append(statements, Statement{Text: pro, Kind: KindProhibition})
	}
	return statements
}

// ExtractRequirements returns requirement statements: normative
// "must/shall/required" phrases plus bullet and numbered list items.
func ExtractRequirements(text string) []string {
	found := collectMatches(text, requirementPatterns, minStatementLen)
	found = append(found, collectMatches(text, listItemPatterns, minStatementLen)...)
	return dedupe(found)
}

// ExtractProhibitions returns prohibition statements
// ("cannot/must not/shall not/prohibited/not permitted to ...").
func ExtractProhibitions(text string) []string {
	return dedupe(collectMatches(text, prohibitionPatterns, 10))
}

// ExtractComplianceRules returns prohibition statements plus
// "comply with / in accordance with / subject to" obligations. Consumers
// decide per statement whether it reads as a prohibition or a requirement.
func ExtractComplianceRules(text string) []string {
	found := collectMatches(text, prohibitionPatterns, 10)
	found = append(found, collectMatches(text, compliancePatterns, 10)...)
	return dedupe(found)
}

// ExtractChecklistItems returns itemized checklist entries (checkbox
// glyphs, bullets, numbered and lettered lines), capped at 20 per passage.
func ExtractChecklistItems(text string) []string {
	items := dedupe(collectMatches(text, checklistPatterns, 10))
	if len(items) > 20 {
		items = items[:20]
	}
	return items
}

// ExtractTemplateHeadings returns probable section headings from template
// text: ALL-CAPS runs of 10-50 characters on their own line.
func ExtractTemplateHeadings(text string) []string {
	var headings []string
	for _, match := range templateHeadingPattern.FindAllStringSubmatch(text, -1) {
		heading := strings.TrimSpace(match[1])
		if len(heading) > 5 {
			headings = append(headings, heading)
		}
	}
	return dedupe(headings)
}

// ExtractRecommendations returns actionable recommendation phrases from a
// passage, capped at 3 per text.
func ExtractRecommendations(text string) []string {
	recs := dedupe(collectMatches(text, recommendationPatterns, minStatementLen))
	if len(recs) > 3 {
		recs = recs[:3]
	}
	return recs
}

// KeyTerms extracts the discriminating lowercase terms of a statement,
// stopwords removed, first-seen order, capped at maxKeyTerms. The cap and
// ordering are deterministic so presence tests are repeatable.
func KeyTerms(statement string) []string {
	words := keyTermWordPattern.FindAllString(strings.ToLower(statement), -1)
	seen := make(map[string]bool)
	terms := make([]string, 0, maxKeyTerms)
	for _, word := range words {
		if keyTermStopwords[word] || seen[word] {
			continue
		}
		seen[word] = true
		terms = append(terms, word)
		if len(terms) == maxKeyTerms {
			break
		}
	}
	return terms
}

func collectMatches(text string, patterns []*regexp.Regexp, minLen int) []string {
	var out []string
	for _, pattern := range patterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			candidate := strings.TrimSpace(match[1])
			if len(candidate) > minLen {
				out = append(out, candidate)
			}
		}
	}
	return out
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}
