// Package ingestion turns raw uploaded document text into the cleaned,
// typed, structured form the validation pipeline consumes.
package ingestion

import (
	"regexp"
	"strings"
)

var (
	multiSpace = regexp.MustCompile(`\s+`)
	blankRuns  = regexp.MustCompile(`\n\n\n+`)
)

// CleanText cleans and normalizes document text while preserving line
// structure, so heading and section detection still work afterwards.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	// Normalize line endings (CRLF → LF)
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}

	result := strings.Join(cleanedLines, "\n")
	result = removeExcessiveBlankLines(result)
	return strings.TrimSpace(result)
}

// cleanLine cleans a single line while preserving structure
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	if strings.TrimSpace(line) == "" {
		return ""
	}

	trimmed := strings.TrimLeft(line, " \t")

	// Preserve bullet lists, normalizing the indentation prefix
	if isBulletLine(line) {
		indent := len(line) - len(trimmed)
		if indent > 0 {
			return strings.Repeat(" ", indent) + trimmed
		}
		return trimmed
	}

	// For regular lines, collapse internal runs of spaces but keep the
	// leading indentation
	leadingSpace := len(line) - len(trimmed)
	content := multiSpace.ReplaceAllString(strings.TrimSpace(line), " ")
	if leadingSpace > 0 {
		return strings.Repeat(" ", leadingSpace) + content
	}
	return content
}

// isBulletLine checks if a line is a bullet list item
func isBulletLine(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	return strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") ||
		strings.HasPrefix(trimmed, "• ") || strings.HasPrefix(trimmed, "· ")
}

// removeExcessiveBlankLines caps consecutive blank lines at one.
func removeExcessiveBlankLines(content string) string {
	return blankRuns.ReplaceAllString(content, "\n\n")
}
