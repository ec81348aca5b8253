package ingestion

import (
	"regexp"
	"strings"

	"github.com/nadim/adgm-agent/internal/types"
)

// numberedHeading matches short numbered titles ("3. Objects") without
// trailing sentence text.
var numberedHeading = regexp.MustCompile(`^\d+\.\s+[A-Za-z][A-Za-z\s]{2,60}$`)

// ExtractStructure derives a structural view of plain document text.
// Top-level headings open a new section; body lines accumulate into the
// section opened most recently. Text before the first heading belongs to
// no section.
func ExtractStructure(text string) types.DocumentStructure {
	var structure types.DocumentStructure
	var current *types.DocumentSection

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		level, ok := headingLevel(trimmed)
		if ok {
			title := headingText(trimmed)
			structure.Headings = append(structure.Headings, types.Heading{Text: title, Level: level})
			if level == 1 {
				if current != nil {
					structure.Sections = append(structure.Sections, *current)
				}
				current = &types.DocumentSection{Title: title}
			}
			continue
		}

		if current != nil {
			current.Content = append(current.Content, trimmed)
		}
	}
	if current != nil {
		structure.Sections = append(structure.Sections, *current)
	}
	return structure
}

// headingLevel classifies a trimmed line as a heading. Markdown hashes
// carry their level; ALL-CAPS title lines are level 1; short numbered
// titles are level 2.
func headingLevel(line string) (int, bool) {
	if strings.HasPrefix(line, "#") {
		level := 0
		for level < len(line) && line[level] == '#' {
			level++
		}
		if level < len(line) && line[level] == ' ' {
			return level, true
		}
		return 0, false
	}

	if isAllCapsTitle(line) {
		return 1, true
	}
	if numberedHeading.MatchString(line) {
		return 2, true
	}
	return 0, false
}

// isAllCapsTitle reports whether a line looks like an ALL-CAPS section
// title rather than shouted body text: all letters uppercase, at least
// one letter, and short enough to be a title.
func isAllCapsTitle(line string) bool {
	if len(line) > 80 || strings.ContainsAny(line, ".!?") {
		return false
	}
	hasLetter := false
	for _, r := range line {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= 'A' && r <= 'Z' {
			hasLetter = true
		}
	}
	return hasLetter
}

var headingPrefix = regexp.MustCompile(`^(#+\s+|\d+\.\s+)`)

// headingText strips the markdown or numbering prefix from a heading line
func headingText(line string) string {
	return strings.TrimSpace(headingPrefix.ReplaceAllString(line, ""))
}
