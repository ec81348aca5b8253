package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequirementPresent_ThresholdIsSixtyPercent(t *testing.T) {
	requirement := "register of directors and shareholders maintained at office"

	// 3 of 5 key terms present is exactly the threshold.
	assert.True(t, requirementPresent(
		"The register of directors is kept at the registered office.", requirement))

	// 2 of 5 falls short.
	assert.False(t, requirementPresent(
		"The register of directors is kept at the head address.", requirement))
}

func TestRequirementPresent_NoKeyTerms(t *testing.T) {
	assert.False(t, requirementPresent("anything at all", "to be of the and"))
}

func TestRequirementQuality(t *testing.T) {
	requirement := "objects clause purpose"

	long := "The objects clause stating the purpose of the company is set out in full detail in this memorandum of association."
	assert.True(t, requirementQuality(long, requirement))

	short := "Objects clause purpose."
	assert.False(t, requirementQuality(short, requirement))
}

func TestProhibitionViolation(t *testing.T) {
	prohibition := "conduct banking business without a licence"

	msg := prohibitionViolation("The company engages in banking services.", prohibition)
	assert.Contains(t, msg, "violate prohibition")
	assert.Contains(t, msg, "'banking'")

	assert.Empty(t, prohibitionViolation("General trading only.", prohibition))
}

func TestObligationViolation(t *testing.T) {
	obligation := "maintain register members directors office"

	msg := obligationViolation("the office records", obligation)
	assert.Contains(t, msg, "may not comply")
	assert.Contains(t, msg, "maintain, register, members")

	// Exactly half missing is tolerated.
	assert.Empty(t, obligationViolation("maintain the register at the office", obligation))
}

func TestTemplateStructureIssues_FlagsMissingStructure(t *testing.T) {
	template := "COMPANY NAME AND DETAILS\n\nThe subscriber signature block follows.\nDate: 01/01/2024"

	issues := templateStructureIssues("This document covers other matters entirely.", template)
	require.Len(t, issues, 3)
	assert.Contains(t, issues[0], "Missing template sections")
	assert.Contains(t, issues[0], "COMPANY NAME AND DETAILS")
	assert.Contains(t, issues[1], "signature")
	assert.Contains(t, issues[2], "date formatting")
}

func TestTemplateStructureIssues_CleanDocument(t *testing.T) {
	template := "COMPANY NAME AND DETAILS\n\nThe subscriber signature block follows.\nDate: 01/01/2024"
	content := "COMPANY NAME AND DETAILS\nACME Limited, signature affixed on 05/06/2024."

	assert.Empty(t, templateStructureIssues(content, template))
}
