package validation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nadim/adgm-agent/internal/types"
)

func TestContextualRecommendations_UnavailableStore(t *testing.T) {
	v := NewValidator(nil)
	recs, err := v.ContextualRecommendations(context.Background(),
		"content", types.DocTypeMemorandum, []string{"some issue"})

	assert.Nil(t, recs)
	var unavailable *KnowledgeUnavailableError
	require.ErrorAs(t, err, &unavailable)
}

func TestContextualRecommendations_ExtractsActionablePhrases(t *testing.T) {
	kb := &fakeKnowledge{
		available: true,
		responses: map[string][]types.QueryResult{
			"how to fix": {
				{Content: "You should increase the share capital to at least the regulatory minimum. " +
					"Ensure the registered office address is located within ADGM jurisdiction."},
			},
		},
	}
	v := NewValidator(kb)

	recs, err := v.ContextualRecommendations(context.Background(),
		"content", types.DocTypeMemorandum, []string{"share capital below minimum"})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Contains(t, recs[0], "increase the share capital")
	assert.Contains(t, recs[1], "registered office address")
}

func TestContextualRecommendations_DeduplicatesAcrossIssues(t *testing.T) {
	kb := &fakeKnowledge{
		available: true,
		responses: map[string][]types.QueryResult{
			"how to fix": {
				{Content: "You should increase the share capital to at least the regulatory minimum."},
			},
		},
	}
	v := NewValidator(kb)

	recs, err := v.ContextualRecommendations(context.Background(),
		"content", types.DocTypeMemorandum,
		[]string{"first issue", "second issue"})
	require.NoError(t, err)
	assert.Len(t, recs, 1)
	require.Len(t, kb.queries, 2)
}

func TestContextualRecommendations_CapsIssuesConsidered(t *testing.T) {
	kb := &fakeKnowledge{available: true}
	v := NewValidator(kb)

	_, err := v.ContextualRecommendations(context.Background(),
		"content", types.DocTypeMemorandum,
		[]string{"one", "two", "three", "four", "five"})
	require.NoError(t, err)
	assert.Len(t, kb.queries, maxRecommendationIssues)
}

func TestMissingDocuments_Application(t *testing.T) {
	missing := MissingDocuments(types.DocTypeApplication, []string{
		"acme memorandum of association.docx",
		"Articles of Association v2.pdf",
	})

	require.Len(t, missing, 4)
	assert.NotContains(t, missing, "Memorandum of Association")
	assert.NotContains(t, missing, "Articles of Association")
	assert.Contains(t, missing, "Proof of registered office")
}

func TestMissingDocuments_NoRequirementList(t *testing.T) {
	assert.Nil(t, MissingDocuments(types.DocTypeMemorandum, nil))
	assert.Nil(t, MissingDocuments(types.DocTypeUnknown, []string{"anything"}))
}
