package ingestion

import (
	"regexp"
	"strings"
)

// Chunking defaults for regulatory corpus content. Overlap is measured in
// characters and approximated as words when carrying text between chunks.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200

	// minChunkLen filters out fragments too short to embed usefully
	minChunkLen = 50
)

var (
	flattenSpace = regexp.MustCompile(`\s+`)
	// Keep word characters and the punctuation that carries legal
	// structure (clause references, enumerations); everything else
	// becomes a space.
	nonLegalChar = regexp.MustCompile(`[^\w\s.,;:()\[\]\-'"]`)
)

// CleanLegalText flattens regulatory text for embedding: whitespace runs
// collapse to single spaces and characters outside the legal-formatting
// set are dropped. Unlike CleanText this does not preserve line structure.
func CleanLegalText(text string) string {
	text = flattenSpace.ReplaceAllString(text, " ")
	text = nonLegalChar.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// ChunkLegalContent splits regulatory text into chunks of roughly
// chunkSize characters, breaking on sentence boundaries and carrying an
// overlap of trailing words into the next chunk. Chunks shorter than
// minChunkLen are dropped, except when the whole text fits in one chunk.
func ChunkLegalContent(text string, chunkSize, overlap int) []string {
	if len(text) <= chunkSize {
		return []string{text}
	}

	var chunks []string
	current := ""
	for _, sentence := range strings.Split(text, ". ") {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}

		if len(current)+len(sentence)+2 > chunkSize {
			if current != "" {
				chunks = append(chunks, strings.TrimSpace(current))

				// Carry roughly overlap characters of trailing words
				words := strings.Fields(current)
				carry := overlap / 5
				if carry > 0 && len(words) > carry {
					current = strings.Join(words[len(words)-carry:], " ") + ". " + sentence
				} else {
					current = sentence
				}
			} else {
				current = sentence
			}
			continue
		}

		if current != "" {
			current += ". " + sentence
		} else {
			current = sentence
		}
	}
	if current != "" {
		chunks = append(chunks, strings.TrimSpace(current))
	}

	filtered := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		if len(strings.TrimSpace(chunk)) > minChunkLen {
			filtered = append(filtered, chunk)
		}
	}
	return filtered
}
