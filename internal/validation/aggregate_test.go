package validation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nadim/adgm-agent/internal/types"
)

// fakeKnowledge is an in-memory Knowledge double. Responses are keyed by
// a substring of the query text; queries with no matching key return no
// results.
type fakeKnowledge struct {
	available bool
	err       error
	responses map[string][]types.QueryResult
	queries   []recordedQuery
}

type recordedQuery struct {
	text        string
	collections []string
	topK        int
}

func (f *fakeKnowledge) Available() bool { return f.available }

func (f *fakeKnowledge) Query(_ context.Context, text string, collections []string, topK int) ([]types.QueryResult, error) {
	f.queries = append(f.queries, recordedQuery{text: text, collections: collections, topK: topK})
	if f.err != nil {
		return nil, f.err
	}
	for key, results := range f.responses {
		if strings.Contains(text, key) {
			return results, nil
		}
	}
	return nil, nil
}

const compliantMemorandum = `MEMORANDUM OF ASSOCIATION

1. Company Name: The name of the company is ACME Holdings Limited.
2. Registered Office: The registered office is at Floor 3, Building B, Al Maryah Island, ADGM, P.O. Box 111, Abu Dhabi, UAE.
3. Objects: The objects clause stating the purpose of the company is general trading and investment holding.
4. Share Capital: The authorized share capital is AED 200,000 divided into 200,000 ordinary shares.
5. Liability of Members: The liability of the members is limited to the amount unpaid on their shares.
6. Subscriber Details: The subscribers have signed this memorandum on the date stated below.
`

const deficientMemorandum = `MEMORANDUM OF ASSOCIATION

1. Company Name: The name of the company is ACME Holdings Limited.
2. Registered Office: The registered office is at Floor 3, Building B, Al Maryah Island, ADGM, P.O. Box 111, Abu Dhabi, UAE.
3. Objects: The objects clause stating the purpose of the company is general trading and investment holding.
4. Share Capital: The authorized share capital is AED 50,000 divided into 50,000 ordinary shares.
5. Liability of Members: The liability of the members is limited to the amount unpaid on their shares.
6. Subscriber Details: The subscriber information is listed in the attached schedule.
`

func TestValidate_CompliantMemorandumScoresFull(t *testing.T) {
	v := NewValidator(nil)
	checks := v.Validate(context.Background(), compliantMemorandum, types.DocTypeMemorandum, types.DocumentStructure{})

	require.Len(t, checks, 7) // 6 mandatory sections + subscriber signature
	for _, check := range checks {
		assert.True(t, check.Compliant, "check %q: %v", check.Section, check.Issues)
	}
	assert.Equal(t, 100.0, Score(checks))
}

func TestValidate_DeficientMemorandumScoresBelowFull(t *testing.T) {
	v := NewValidator(nil)
	checks := v.Validate(context.Background(), deficientMemorandum, types.DocTypeMemorandum, types.DocumentStructure{})

	require.Len(t, checks, 7)

	bySection := make(map[string]types.ComplianceCheck, len(checks))
	for _, check := range checks {
		bySection[check.Section] = check
	}

	capital := bySection["Share Capital"]
	assert.False(t, capital.Compliant)
	require.NotEmpty(t, capital.Issues)
	assert.Contains(t, capital.Issues[0], "below minimum requirement")

	signature := bySection["Subscriber Signatures"]
	assert.False(t, signature.Compliant)
	assert.False(t, signature.Present)

	score := Score(checks)
	assert.Less(t, score, 100.0)
	assert.InDelta(t, 71.43, score, 0.001)
}

func TestValidate_UnavailableStoreKeepsStructuralChecks(t *testing.T) {
	kb := &fakeKnowledge{available: false}
	v := NewValidator(kb)

	checks := v.Validate(context.Background(), compliantMemorandum, types.DocTypeMemorandum, types.DocumentStructure{})

	assert.Len(t, checks, 7)
	assert.Equal(t, 100.0, Score(checks))
	assert.Empty(t, kb.queries, "an unavailable store must never be queried")
}

func TestValidate_QueryFailureDegradesToStructuralChecks(t *testing.T) {
	kb := &fakeKnowledge{available: true, err: errors.New("connection refused")}
	v := NewValidator(kb)

	checks := v.Validate(context.Background(), compliantMemorandum, types.DocTypeMemorandum, types.DocumentStructure{})

	require.Len(t, checks, 7)
	assert.Equal(t, 100.0, Score(checks))
}

func TestValidate_SatisfiedRequirementsEmitNoChecks(t *testing.T) {
	kb := &fakeKnowledge{
		available: true,
		responses: map[string][]types.QueryResult{
			"requirements mandatory sections": {
				{
					Content:  "The memorandum must include the objects clause stating the purpose of the company.",
					Metadata: types.RegulationMeta{SectionLabel: "Memorandum Requirements"},
				},
			},
		},
	}
	v := NewValidator(kb)

	checks := v.Validate(context.Background(), compliantMemorandum, types.DocTypeMemorandum, types.DocumentStructure{})

	require.Len(t, checks, 7)
	for _, check := range checks {
		assert.NotContains(t, check.Section, "KB Requirement")
	}
	assert.Equal(t, 100.0, Score(checks))
}

func TestValidate_MissingRequirementEmitsCheck(t *testing.T) {
	kb := &fakeKnowledge{
		available: true,
		responses: map[string][]types.QueryResult{
			"requirements mandatory sections": {
				{
					Content:  "The memorandum must include the objects clause stating the purpose of the company.",
					Metadata: types.RegulationMeta{SectionLabel: "Memorandum Requirements"},
				},
			},
		},
	}
	v := NewValidator(kb)

	doc := strings.Replace(compliantMemorandum,
		"The objects clause stating the purpose of the company is general trading and investment holding.",
		"The objects of the company are general trading.", 1)

	checks := v.Validate(context.Background(), doc, types.DocTypeMemorandum, types.DocumentStructure{})

	require.Len(t, checks, 8)
	kbCheck := checks[7]
	assert.Equal(t, "KB Requirement: Memorandum Requirements", kbCheck.Section)
	assert.True(t, kbCheck.Required)
	assert.False(t, kbCheck.Present)
	assert.False(t, kbCheck.Compliant)
	require.NotEmpty(t, kbCheck.Issues)
	assert.Contains(t, kbCheck.Issues[0], "Missing requirement:")

	assert.InDelta(t, 87.5, Score(checks), 0.001)
}

func TestValidate_ProhibitionViolationEmitsCheck(t *testing.T) {
	kb := &fakeKnowledge{
		available: true,
		responses: map[string][]types.QueryResult{
			"compliance ADGM regulations": {
				{
					Content:  "Companies must not conduct unlicensed banking operations in the jurisdiction.",
					Metadata: types.RegulationMeta{RegulationReference: "FSRA Reg 4.2"},
				},
			},
		},
	}
	v := NewValidator(kb)

	doc := strings.Replace(compliantMemorandum,
		"general trading and investment holding",
		"banking and deposit taking", 1)

	checks := v.Validate(context.Background(), doc, types.DocTypeMemorandum, types.DocumentStructure{})

	var found bool
	for _, check := range checks {
		if check.Section == "Compliance Rule: FSRA Reg 4.2" {
			found = true
			assert.False(t, check.Compliant)
			require.NotEmpty(t, check.Issues)
			assert.Contains(t, check.Issues[0], "violate prohibition")
		}
	}
	assert.True(t, found, "expected a prohibition check: %+v", checks)
}

func TestValidate_KnowledgeQueryShape(t *testing.T) {
	kb := &fakeKnowledge{available: true}
	v := NewValidator(kb)

	v.Validate(context.Background(), compliantMemorandum, types.DocTypeMemorandum, types.DocumentStructure{})

	var reqQuery, compQuery, tmplQuery *recordedQuery
	for i := range kb.queries {
		q := &kb.queries[i]
		switch {
		case strings.Contains(q.text, "requirements mandatory sections"):
			reqQuery = q
		case strings.Contains(q.text, "compliance ADGM regulations"):
			compQuery = q
		case strings.Contains(q.text, "template structure"):
			tmplQuery = q
		}
	}

	require.NotNil(t, reqQuery)
	assert.Equal(t, 8, reqQuery.topK)
	require.NotNil(t, compQuery)
	assert.Equal(t, 5, compQuery.topK)
	require.NotNil(t, tmplQuery)
	assert.Equal(t, 3, tmplQuery.topK)
	assert.Equal(t, []string{"adgm_templates"}, tmplQuery.collections)
}

func TestScore_EmptyChecksIsZero(t *testing.T) {
	assert.Equal(t, 0.0, Score(nil))
	assert.Equal(t, 0.0, Score([]types.ComplianceCheck{}))
}

func TestScore_RoundsToTwoDecimals(t *testing.T) {
	checks := []types.ComplianceCheck{
		{Compliant: true},
		{Compliant: false},
		{Compliant: false},
	}
	assert.InDelta(t, 33.33, Score(checks), 0.001)
}

func TestScore_StaysWithinBounds(t *testing.T) {
	cases := [][]types.ComplianceCheck{
		{{Compliant: false}},
		{{Compliant: true}},
		{{Compliant: true}, {Compliant: false}, {Compliant: true}},
	}
	for _, checks := range cases {
		score := Score(checks)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 100.0)
	}
}
