package validation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nadim/adgm-agent/internal/types"
)

func TestMandatorySections_PerDocumentType(t *testing.T) {
	assert.Len(t, MandatorySections(types.DocTypeMemorandum), 6)
	assert.Len(t, MandatorySections(types.DocTypeArticles), 6)
	assert.Len(t, MandatorySections(types.DocTypeApplication), 5)
	assert.Len(t, MandatorySections(types.DocTypeBoardResolution), 5)
	assert.Empty(t, MandatorySections(types.DocTypeUnknown))
}

func TestSectionExists_ViaStructuralHeading(t *testing.T) {
	structure := types.DocumentStructure{
		Headings: []types.Heading{{Text: "1. Company Name", Level: 1}},
	}
	assert.True(t, sectionExists("unrelated body text", "Company Name", structure))
}

func TestSectionExists_ViaKeywordSynonym(t *testing.T) {
	content := "The principal office of the company is situated in the city."
	assert.True(t, sectionExists(content, "Registered Office", types.DocumentStructure{}))
}

func TestSectionExists_UnknownLabelUsesLiteral(t *testing.T) {
	structure := types.DocumentStructure{}
	assert.True(t, sectionExists("The voting record is attached.", "Voting Record", structure))
	assert.False(t, sectionExists("No such thing here.", "Voting Record", structure))
}

func TestExtractSectionContent_PrefersStructuredSections(t *testing.T) {
	structure := types.DocumentStructure{
		Sections: []types.DocumentSection{
			{Title: "Share Capital", Content: []string{"The authorized share capital is AED 200,000."}},
		},
	}
	got := extractSectionContent("irrelevant", "Share Capital", structure)
	assert.Equal(t, "The authorized share capital is AED 200,000.", got)
}

func TestExtractSectionContent_LineScanStopsAtNextSection(t *testing.T) {
	content := "Share Capital: The authorized share capital is AED 200,000\n" +
		"divided into ordinary shares\n" +
		"2. Liability of Members\n" +
		"The liability of members is limited"

	got := extractSectionContent(content, "Share Capital", types.DocumentStructure{})
	assert.Contains(t, got, "AED 200,000")
	assert.Contains(t, got, "ordinary shares")
	assert.NotContains(t, got, "liability")
}

func TestIsNewSectionStart(t *testing.T) {
	assert.True(t, isNewSectionStart("2. Liability of Members"))
	assert.True(t, isNewSectionStart("Article 5 - Dividends"))
	assert.True(t, isNewSectionStart("  Clause 3"))
	assert.False(t, isNewSectionStart("the shares rank equally"))
}

func TestValidateSection_MissingSection(t *testing.T) {
	v := NewValidator(nil)
	check := v.ValidateSection(context.Background(),
		"completely unrelated text", "Objects", types.DocTypeMemorandum, types.DocumentStructure{})

	assert.Equal(t, "Objects", check.Section)
	assert.True(t, check.Required)
	assert.False(t, check.Present)
	assert.False(t, check.Compliant)
	require.Len(t, check.Issues, 1)
	assert.Contains(t, check.Issues[0], "Required section 'Objects' is missing")
	require.Len(t, check.Recommendations, 1)
}

func TestValidateSection_PresentWithoutCheckerIsCompliant(t *testing.T) {
	v := NewValidator(nil)
	check := v.ValidateSection(context.Background(),
		"Objects: The objects of the company are general trading.",
		"Objects", types.DocTypeMemorandum, types.DocumentStructure{})

	assert.True(t, check.Present)
	assert.True(t, check.Compliant)
	assert.Empty(t, check.Issues)
}

func TestSectionRequirements_FallbackWhenUnavailable(t *testing.T) {
	v := NewValidator(nil)
	reqs := v.sectionRequirements(context.Background(), "Share Capital", types.DocTypeMemorandum)

	assert.Equal(t, "fallback", reqs.Source)
	require.NotNil(t, reqs.Fallback)
	assert.Contains(t, reqs.Fallback.Minimum, "150,000")
}

func TestSectionRequirements_KnowledgeStoreWins(t *testing.T) {
	kb := &fakeKnowledge{
		available: true,
		responses: map[string][]types.QueryResult{
			"Share Capital": {
				{Content: "Minimum share capital is AED 150,000.", Collection: "adgm_incorporation"},
			},
		},
	}
	v := NewValidator(kb)
	reqs := v.sectionRequirements(context.Background(), "Share Capital", types.DocTypeMemorandum)

	assert.Equal(t, "knowledge_base", reqs.Source)
	require.Len(t, reqs.Regulations, 1)
	assert.Nil(t, reqs.Fallback)
}

func TestSectionRequirements_NoFallbackEntry(t *testing.T) {
	v := NewValidator(nil)
	reqs := v.sectionRequirements(context.Background(), "Voting Record", types.DocTypeBoardResolution)

	assert.Equal(t, "none", reqs.Source)
	assert.Nil(t, reqs.Fallback)
	assert.Empty(t, reqs.Regulations)
}

func TestFallbackRequirementFor_CaseInsensitive(t *testing.T) {
	req, ok := FallbackRequirementFor("COMPANY NAME")
	require.True(t, ok)
	assert.Contains(t, req.MustInclude, "Limited")
	assert.Contains(t, req.CannotInclude, "Bank")

	_, ok = FallbackRequirementFor("Dividend Policy")
	assert.False(t, ok)
}
