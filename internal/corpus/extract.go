package corpus

import (
	"context"
	"strings"

	"github.com/nadim/adgm-agent/internal/fetch"
)

// TextExtractor turns the raw bytes of a downloaded document into plain
// text. Implementations exist per source kind; PDF and DOCX extraction
// are provided by external collaborators wired in at startup.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte, sourceURL string) (string, error)
}

// HTMLExtractor extracts main text from HTML documents using
// portal-aware selectors.
type HTMLExtractor struct{}

// Extract implements TextExtractor for HTML content.
func (HTMLExtractor) Extract(_ context.Context, data []byte, sourceURL string) (string, error) {
	portal := fetch.DetectPortal(sourceURL)
	text, err := fetch.ExtractMainText(string(data),
		fetch.PortalContentSelectors(portal),
		fetch.PortalNoiseSelectors(portal)...)
	if err != nil {
		return "", &ExtractionError{URL: sourceURL, Message: "failed to extract HTML text", Cause: err}
	}
	if strings.TrimSpace(text) == "" {
		return "", &ExtractionError{URL: sourceURL, Message: "no extractable text"}
	}
	return text, nil
}
