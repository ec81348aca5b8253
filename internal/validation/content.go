package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// contentResult is the outcome of one section-specific content check
type contentResult struct {
	compliant       bool
	issues          []string
	recommendations []string
}

// MinimumShareCapitalAED is the minimum authorized share capital for
// private companies.
const MinimumShareCapitalAED = 150000

var (
	legalSuffixes   = []string{"LIMITED", "LTD", "LLC", "PJSC", "PLC"}
	prohibitedTerms = []string{"BANK", "INSURANCE", "ISLAMIC", "TRUST"}

	capitalPattern = regexp.MustCompile(`(?i)(AED|USD)\s*([0-9,]+)`)

	adgmIndicators    = []string{"ADGM", "ABU DHABI GLOBAL MARKET", "AL MARYAH ISLAND"}
	addressComponents = []string{"FLOOR", "BUILDING", "STREET", "P.O.", "UAE"}
)

// validateSectionContent dispatches to the checker registered for the
// section label. Sections without a checker are compliant as long as they
// are present. The fetched requirements are carried for provenance; the
// registered checkers apply the hardcoded ADGM rules.
func validateSectionContent(content, sectionLabel string, _ SectionRequirements) contentResult {
	switch strings.ToLower(sectionLabel) {
	case "company name":
		return validateCompanyName(content)
	case "share capital":
		return validateShareCapital(content)
	case "registered office":
		return validateRegisteredOffice(content)
	default:
		return contentResult{compliant: true}
	}
}

// validateCompanyName requires a legal suffix and rejects prohibited
// terms. Each prohibited term found is a separate issue.
func validateCompanyName(content string) contentResult {
	result := contentResult{compliant: true}
	contentUpper := strings.ToUpper(content)

	hasSuffix := false
	for _, suffix := range legalSuffixes {
		if strings.Contains(contentUpper, suffix) {
			hasSuffix = true
			break
		}
	}
	if !hasSuffix {
		result.compliant = false
		result.issues = append(result.issues,
			"Company name must include legal suffix (Limited, LLC, etc.)")
		result.recommendations = append(result.recommendations,
			"Add appropriate legal suffix to company name")
	}

	for _, term := range prohibitedTerms {
		if strings.Contains(contentUpper, term) {
			result.compliant = false
			result.issues = append(result.issues,
				fmt.Sprintf("Company name contains prohibited term: %s", term))
			result.recommendations = append(result.recommendations,
				fmt.Sprintf("Remove or replace prohibited term: %s", term))
		}
	}
	return result
}

// validateShareCapital extracts every AED/USD amount and compares AED
// amounts against the private-company minimum. A malformed amount is a
// compliance issue, not an error.
func validateShareCapital(content string) contentResult {
	result := contentResult{compliant: true}

	matches := capitalPattern.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		result.compliant = false
		result.issues = append(result.issues, "Share capital amount not clearly specified")
		result.recommendations = append(result.recommendations,
			"Clearly specify share capital amount in AED or USD")
		return result
	}

	for _, match := range matches {
		currency := strings.ToUpper(match[1])
		amountStr := match[2]

		amount, err := strconv.Atoi(strings.ReplaceAll(amountStr, ",", ""))
		if err != nil {
			result.compliant = false
			result.issues = append(result.issues, "Invalid share capital amount format")
			continue
		}
		if currency == "AED" && amount < MinimumShareCapitalAED {
			result.compliant = false
			result.issues = append(result.issues,
				fmt.Sprintf("Share capital %s %s below minimum requirement", currency, amountStr))
			result.recommendations = append(result.recommendations,
				"Increase share capital to meet minimum AED 150,000 requirement")
		}
	}
	return result
}

// validateRegisteredOffice requires an ADGM jurisdiction indicator and a
// sufficiently complete address (at most 2 of 5 components may be
// missing).
func validateRegisteredOffice(content string) contentResult {
	result := contentResult{compliant: true}
	contentUpper := strings.ToUpper(content)

	hasADGM := false
	for _, indicator := range adgmIndicators {
		if strings.Contains(contentUpper, indicator) {
			hasADGM = true
			break
		}
	}
	if !hasADGM {
		result.compliant = false
		result.issues = append(result.issues,
			"Registered office must be within ADGM jurisdiction")
		result.recommendations = append(result.recommendations,
			"Specify registered office address within ADGM")
	}

	missing := 0
	for _, component := range addressComponents {
		if !strings.Contains(contentUpper, component) {
			missing++
		}
	}
	if missing > 2 {
		result.compliant = false
		result.issues = append(result.issues, "Incomplete registered office address")
		result.recommendations = append(result.recommendations,
			"Provide complete address including building, floor, and P.O. Box")
	}
	return result
}
