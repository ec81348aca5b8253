package validation

import (
	"regexp"
	"strings"

	"github.com/nadim/adgm-agent/internal/types"
)

var activityCodePattern = regexp.MustCompile(`\d{4,5}`)

// heuristicChecks runs the one-off document-type specific checks that are
// not tied to a named mandatory section.
func heuristicChecks(content string, docType types.DocumentType) []types.ComplianceCheck {
	switch docType {
	case types.DocTypeMemorandum:
		return []types.ComplianceCheck{subscriberSignatureCheck(content)}
	case types.DocTypeArticles:
		return []types.ComplianceCheck{boardCompositionCheck(content)}
	case types.DocTypeApplication:
		return []types.ComplianceCheck{businessActivityCheck(content)}
	case types.DocTypeBoardResolution:
		return []types.ComplianceCheck{meetingQuorumCheck(content)}
	default:
		return nil
	}
}

func subscriberSignatureCheck(content string) types.ComplianceCheck {
	contentLower := strings.ToLower(content)
	check := types.ComplianceCheck{
		Section:         "Subscriber Signatures",
		Required:        true,
		Present:         strings.Contains(contentLower, "signature") || strings.Contains(contentLower, "signed"),
		Issues:          []string{},
		Recommendations: []string{},
	}

	if check.Present {
		check.Compliant = true
	} else {
		check.Issues = append(check.Issues, "Subscriber signatures missing")
		check.Recommendations = append(check.Recommendations, "Add subscriber signatures section")
	}
	return check
}

func boardCompositionCheck(content string) types.ComplianceCheck {
	contentLower := strings.ToLower(content)
	check := types.ComplianceCheck{
		Section:         "Board Composition",
		Required:        true,
		Present:         strings.Contains(contentLower, "director") && strings.Contains(contentLower, "board"),
		Issues:          []string{},
		Recommendations: []string{},
	}

	if !check.Present {
		check.Issues = append(check.Issues, "Board composition not addressed")
		check.Recommendations = append(check.Recommendations,
			"Add board composition and director requirements")
		return check
	}

	if strings.Contains(contentLower, "one director") || strings.Contains(contentLower, "1 director") {
		check.Compliant = true
	} else {
		check.Issues = append(check.Issues, "Minimum director requirements not clearly specified")
		check.Recommendations = append(check.Recommendations, "Specify minimum number of directors")
	}
	return check
}

func businessActivityCheck(content string) types.ComplianceCheck {
	contentLower := strings.ToLower(content)
	check := types.ComplianceCheck{
		Section:         "Business Activities",
		Required:        true,
		Present:         strings.Contains(contentLower, "activity") || strings.Contains(contentLower, "business"),
		Issues:          []string{},
		Recommendations: []string{},
	}

	if !check.Present {
		check.Issues = append(check.Issues, "Business activities section missing")
		check.Recommendations = append(check.Recommendations,
			"Add detailed business activities description")
		return check
	}

	if activityCodePattern.MatchString(content) {
		check.Compliant = true
	} else {
		check.Issues = append(check.Issues, "Business activity codes not specified")
		check.Recommendations = append(check.Recommendations,
			"Include specific ADGM business activity codes")
	}
	return check
}

func meetingQuorumCheck(content string) types.ComplianceCheck {
	contentLower := strings.ToLower(content)
	check := types.ComplianceCheck{
		Section:         "Meeting Quorum",
		Required:        true,
		Present:         strings.Contains(contentLower, "quorum") || strings.Contains(contentLower, "present"),
		Issues:          []string{},
		Recommendations: []string{},
	}

	if check.Present {
		check.Compliant = true
	} else {
		check.Issues = append(check.Issues, "Meeting quorum not confirmed")
		check.Recommendations = append(check.Recommendations, "Confirm meeting quorum was achieved")
	}
	return check
}
