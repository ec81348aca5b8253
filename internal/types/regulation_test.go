package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegulationItem_Meta(t *testing.T) {
	item := RegulationItem{
		ID:                  "companies_reg_001",
		DocumentTitle:       "Companies Regulations 2020",
		SectionLabel:        "Registration Requirements",
		RegulationReference: "CR-2020-001",
		Category:            "incorporation",
		Content:             "Every company incorporated in ADGM must have a registered office.",
		Keywords:            []string{"registered office", "ADGM"},
	}

	meta := item.Meta()
	assert.Equal(t, item.ID, meta.ID)
	assert.Equal(t, item.DocumentTitle, meta.DocumentTitle)
	assert.Equal(t, item.RegulationReference, meta.RegulationReference)
	assert.Equal(t, item.Category, meta.Category)

	// Content must not leak into metadata
	data, err := json.Marshal(meta)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "registered office.")
}

func TestDocumentType_Known(t *testing.T) {
	assert.True(t, DocTypeMemorandum.Known())
	assert.True(t, DocTypeBoardResolution.Known())
	assert.False(t, DocTypeUnknown.Known())
	assert.False(t, DocumentType("invoice").Known())
}

func TestNeutralCompleteness(t *testing.T) {
	c := NeutralCompleteness()
	assert.Equal(t, 0.5, c.Score)
	assert.Empty(t, c.MissingSections)
}
