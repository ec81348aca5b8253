package validation

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/nadim/adgm-agent/internal/types"
)

// mandatorySections lists the required structural sections per document
// type. Unknown types get an empty list and validation still proceeds.
var mandatorySections = map[types.DocumentType][]string{
	types.DocTypeMemorandum: {
		"Company Name",
		"Registered Office",
		"Objects",
		"Share Capital",
		"Liability of Members",
		"Subscriber Details",
	},
	types.DocTypeArticles: {
		"Share Classes and Rights",
		"Board of Directors",
		"General Meetings",
		"Dividend Policy",
		"Transfer of Shares",
		"Accounts and Audit",
	},
	types.DocTypeApplication: {
		"Company Details",
		"Business Activities",
		"Directors Information",
		"Shareholders Information",
		"Financial Projections",
	},
	types.DocTypeBoardResolution: {
		"Meeting Details",
		"Attendees",
		"Resolutions",
		"Voting Record",
		"Signatures",
	},
}

// MandatorySections returns the required section labels for a document
// type. The returned slice must not be mutated.
func MandatorySections(docType types.DocumentType) []string {
	return mandatorySections[docType]
}

// sectionKeywords maps lowercased section labels to the synonyms accepted
// as evidence of the section's presence in the document body.
var sectionKeywords = map[string][]string{
	"company name":      {"name of", "company name", "corporate name"},
	"registered office": {"registered office", "principal office", "head office"},
	"objects":           {"objects", "business objects", "company objects"},
	"share capital":     {"share capital", "capital", "authorized capital"},
	"liability":         {"liability", "member liability", "limited liability"},
	"directors":         {"directors", "board", "management"},
	"meetings":          {"meetings", "general meeting", "shareholders meeting"},
}

var numberedSectionStart = regexp.MustCompile(`^\d+\.`)

// sectionStartIndicators mark lines that begin a new document section
var sectionStartIndicators = []string{"article", "section", "clause", "part", "chapter"}

// ValidateSection checks one mandatory section of the document: presence
// first, then section-specific content rules when a checker is registered
// for the label. Sections without a checker are compliant when present.
func (v *Validator) ValidateSection(ctx context.Context, content, sectionLabel string, docType types.DocumentType, structure types.DocumentStructure) types.ComplianceCheck {
	present := sectionExists(content, sectionLabel, structure)

	check := types.ComplianceCheck{
		Section:         sectionLabel,
		Required:        true,
		Present:         present,
		Issues:          []string{},
		Recommendations: []string{},
	}

	if !present {
		check.Issues = append(check.Issues,
			fmt.Sprintf("Required section '%s' is missing", sectionLabel))
		check.Recommendations = append(check.Recommendations,
			fmt.Sprintf("Add %s section as required by ADGM regulations", sectionLabel))
		return check
	}

	sectionContent := extractSectionContent(content, sectionLabel, structure)
	requirements := v.sectionRequirements(ctx, sectionLabel, docType)
	result := validateSectionContent(sectionContent, sectionLabel, requirements)

	check.Compliant = result.compliant
	check.Issues = append(check.Issues, result.issues...)
	check.Recommendations = append(check.Recommendations, result.recommendations...)
	return check
}

// sectionExists tests for the section in structural headings first, then
// for any of the label's keyword synonyms in the document body. Unknown
// labels fall back to the literal label text.
func sectionExists(content, sectionLabel string, structure types.DocumentStructure) bool {
	labelLower := strings.ToLower(sectionLabel)
	for _, heading := range structure.Headings {
		if strings.Contains(strings.ToLower(heading.Text), labelLower) {
			return true
		}
	}

	keywords, ok := sectionKeywords[labelLower]
	if !ok {
		keywords = []string{labelLower}
	}

	contentLower := strings.ToLower(content)
	for _, keyword := range keywords {
		if strings.Contains(contentLower, keyword) {
			return true
		}
	}
	return false
}

// extractSectionContent returns the text span of a section. Structured
// sections from the parser win; otherwise a line scan starts capture at
// the line carrying the label plus punctuation and stops at the next
// section-start line.
func extractSectionContent(content, sectionLabel string, structure types.DocumentStructure) string {
	labelLower := strings.ToLower(sectionLabel)
	for _, section := range structure.Sections {
		if strings.Contains(strings.ToLower(section.Title), labelLower) {
			return strings.Join(section.Content, " ")
		}
	}

	var captured []string
	inSection := false
	for _, line := range strings.Split(content, "\n") {
		if !inSection {
			if strings.Contains(strings.ToLower(line), labelLower) && strings.ContainsAny(line, ":.-") {
				inSection = true
				captured = append(captured, line)
			}
			continue
		}
		if isNewSectionStart(line) {
			break
		}
		captured = append(captured, line)
	}
	return strings.Join(captured, "\n")
}

// isNewSectionStart reports whether a line begins a new section: a
// numbered prefix or any of the section indicator words.
func isNewSectionStart(line string) bool {
	lineLower := strings.ToLower(strings.TrimSpace(line))
	if numberedSectionStart.MatchString(lineLower) {
		return true
	}
	for _, indicator := range sectionStartIndicators {
		if strings.Contains(lineLower, indicator) {
			return true
		}
	}
	return false
}

// SectionRequirements carries the regulatory requirements fetched for a
// section, with their provenance.
type SectionRequirements struct {
	Regulations []string
	References  []types.RegulationMeta
	Fallback    *FallbackRequirement
	Source      string
}

// sectionRequirements fetches requirements for (section, docType) with
// priority: live knowledge query, then the hardcoded fallback table, then
// empty.
func (v *Validator) sectionRequirements(ctx context.Context, sectionLabel string, docType types.DocumentType) SectionRequirements {
	if v.knowledgeAvailable() {
		query := fmt.Sprintf("%s %s requirements", sectionLabel, docType)
		results, err := v.queryKnowledge(ctx, query, nil, 3)
		if err == nil && len(results) > 0 {
			reqs := SectionRequirements{Source: "knowledge_base"}
			for _, r := range results {
				reqs.Regulations = append(reqs.Regulations, r.Content)
				reqs.References = append(reqs.References, r.Metadata)
			}
			return reqs
		}
	}

	if fallback, ok := FallbackRequirementFor(sectionLabel); ok {
		return SectionRequirements{Fallback: &fallback, Source: "fallback"}
	}
	return SectionRequirements{Source: "none"}
}
