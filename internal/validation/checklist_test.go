package validation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nadim/adgm-agent/internal/types"
)

func TestMatchChecklist_UnavailableStore(t *testing.T) {
	v := NewValidator(nil)
	result, err := v.MatchChecklist(context.Background(), "any content", types.DocTypeApplication)

	assert.Nil(t, result)
	var unavailable *KnowledgeUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "checklist validation", unavailable.Operation)
}

func TestMatchChecklist_QueryFailure(t *testing.T) {
	kb := &fakeKnowledge{available: true, err: errors.New("connection reset")}
	v := NewValidator(kb)

	result, err := v.MatchChecklist(context.Background(), "any content", types.DocTypeApplication)

	assert.Nil(t, result)
	var checklistErr *ChecklistError
	require.ErrorAs(t, err, &checklistErr)
}

func TestMatchChecklist_ComputesCoverage(t *testing.T) {
	kb := &fakeKnowledge{
		available: true,
		responses: map[string][]types.QueryResult{
			"checklist": {
				{Content: "☐ Memorandum of Association signed by subscribers\n" +
					"☐ Articles of Association for the company\n" +
					"☐ Board Resolution approving incorporation"},
			},
		},
	}
	v := NewValidator(kb)

	result, err := v.MatchChecklist(context.Background(), compliantMemorandum, types.DocTypeApplication)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 3, result.TotalItems)
	assert.Equal(t, 1, result.CompletedItems)
	assert.Len(t, result.MissingItems, 2)
	assert.InDelta(t, 33.33, result.CompliancePercentage, 0.001)
}

func TestMatchChecklist_NoChecklistContent(t *testing.T) {
	kb := &fakeKnowledge{
		available: true,
		responses: map[string][]types.QueryResult{
			"checklist": {{Content: "General prose with no itemized entries at all"}},
		},
	}
	v := NewValidator(kb)

	result, err := v.MatchChecklist(context.Background(), "document text", types.DocTypeApplication)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Zero(t, result.TotalItems)
	assert.Zero(t, result.CompletedItems)
	assert.Empty(t, result.MissingItems)
	assert.Zero(t, result.CompliancePercentage)
}

func TestMatchChecklist_DeduplicatesAcrossPassages(t *testing.T) {
	item := "☐ Memorandum of Association signed by subscribers"
	kb := &fakeKnowledge{
		available: true,
		responses: map[string][]types.QueryResult{
			"checklist": {{Content: item}, {Content: item}},
		},
	}
	v := NewValidator(kb)

	result, err := v.MatchChecklist(context.Background(), compliantMemorandum, types.DocTypeApplication)
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalItems)
}
