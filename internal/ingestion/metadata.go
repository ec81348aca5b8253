package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"
)

// charsPerPage is the rough page-size estimate for plain text
const charsPerPage = 2500

// Metadata describes one ingested document
type Metadata struct {
	Filename  string `json:"filename,omitempty"`
	Timestamp string `json:"timestamp"` // RFC3339 format
	Hash      string `json:"hash"`      // SHA256 hex digest of cleaned text
	WordCount int    `json:"word_count"`
	Pages     int    `json:"pages"` // estimated
	FileSize  int64  `json:"file_size,omitempty"`
}

// NewMetadata creates a Metadata instance for cleaned document text
func NewMetadata(content, filename string) *Metadata {
	return &Metadata{
		Filename:  filename,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(content),
		WordCount: len(strings.Fields(content)),
		Pages:     estimatePages(content),
	}
}

func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

func estimatePages(content string) int {
	pages := len(content) / charsPerPage
	if pages < 1 {
		return 1
	}
	return pages
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}
