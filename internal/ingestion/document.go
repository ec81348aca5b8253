package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nadim/adgm-agent/internal/types"
)

var (
	// ErrUnsupportedFormat is returned for file extensions the text
	// pipeline cannot read directly. Binary formats go through a
	// TextExtractor before ingestion.
	ErrUnsupportedFormat = fmt.Errorf("unsupported document format")
	// ErrFileTooLarge is returned when the file exceeds MaxFileSize
	ErrFileTooLarge = fmt.Errorf("file exceeds maximum size")
)

// MaxFileSize caps uploaded document size at 50MB
const MaxFileSize = 50 * 1024 * 1024

var supportedExtensions = map[string]bool{
	".txt": true,
	".md":  true,
}

// ParsedDocument is the fully ingested form of one uploaded document
type ParsedDocument struct {
	FilePath     string
	Text         string
	DocumentType types.DocumentType
	Structure    types.DocumentStructure
	Metadata     *Metadata
}

// ParseText ingests document text that is already in memory: clean,
// classify, extract structure, attach metadata.
func ParseText(text, filename string) *ParsedDocument {
	cleaned := CleanText(text)
	return &ParsedDocument{
		Text:         cleaned,
		DocumentType: DetectDocumentType(cleaned),
		Structure:    ExtractStructure(cleaned),
		Metadata:     NewMetadata(cleaned, filename),
	}
}

// ParseFile reads and ingests a document from disk. Only plain-text
// formats are read directly; size and extension are validated first.
func ParseFile(path string) (*ParsedDocument, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat document: %w", err)
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrFileTooLarge, info.Size())
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !supportedExtensions[ext] {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	doc := ParseText(string(content), filepath.Base(path))
	doc.FilePath = path
	doc.Metadata.FileSize = info.Size()
	return doc, nil
}
