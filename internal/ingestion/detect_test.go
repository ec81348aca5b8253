package ingestion

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nadim/adgm-agent/internal/types"
)

func TestDetectDocumentType(t *testing.T) {
	cases := []struct {
		name string
		text string
		want types.DocumentType
	}{
		{
			name: "memorandum",
			text: "MEMORANDUM OF ASSOCIATION\nThe share capital and registered office of the company.",
			want: types.DocTypeMemorandum,
		},
		{
			name: "articles",
			text: "ARTICLES OF ASSOCIATION\nThe board of directors may declare a dividend at a general meeting.",
			want: types.DocTypeArticles,
		},
		{
			name: "application",
			text: "Application for registration under ADGM registration rules for company registration.",
			want: types.DocTypeApplication,
		},
		{
			name: "board resolution",
			text: "BOARD RESOLUTION\nAt a board meeting with all directors present it was resolved that the resolution passed.",
			want: types.DocTypeBoardResolution,
		},
		{
			name: "unknown",
			text: "An unrelated letter about invoices and deliveries.",
			want: types.DocTypeUnknown,
		},
		{
			name: "empty",
			text: "",
			want: types.DocTypeUnknown,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DetectDocumentType(tc.text))
		})
	}
}

func TestDetectDocumentType_HighestScoreWins(t *testing.T) {
	// One articles keyword against three memorandum keywords.
	text := "Memorandum of association: the share capital, the registered office, and one dividend clause."
	assert.Equal(t, types.DocTypeMemorandum, DetectDocumentType(text))
}
