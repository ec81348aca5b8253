package ingestion

import (
	"strings"

	"github.com/nadim/adgm-agent/internal/types"
)

// docTypeKeywords are the content markers scored per document type.
// Detection is plain keyword counting; the highest scoring type wins and
// ties resolve in the order listed here.
var docTypeKeywords = []struct {
	docType  types.DocumentType
	keywords []string
}{
	{types.DocTypeMemorandum, []string{
		"memorandum of association", "company objects", "share capital",
		"liability of members", "registered office",
	}},
	{types.DocTypeArticles, []string{
		"articles of association", "board of directors", "general meeting",
		"dividend", "transfer of shares",
	}},
	{types.DocTypeApplication, []string{
		"application for registration", "company registration",
		"business license application", "adgm registration",
	}},
	{types.DocTypeBoardResolution, []string{
		"board resolution", "resolved that", "board meeting",
		"directors present", "resolution passed",
	}},
}

// DetectDocumentType classifies a document from its text content. A
// document matching no keyword of any type is DocTypeUnknown.
func DetectDocumentType(text string) types.DocumentType {
	textLower := strings.ToLower(text)

	best := types.DocTypeUnknown
	bestScore := 0
	for _, entry := range docTypeKeywords {
		score := 0
		for _, keyword := range entry.keywords {
			if strings.Contains(textLower, keyword) {
				score++
			}
		}
		if score > bestScore {
			best = entry.docType
			bestScore = score
		}
	}
	return best
}
