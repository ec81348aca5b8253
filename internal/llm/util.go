package llm

import "strings"

// CleanJSONBlock recovers the JSON payload from a model response.
// Models wrap JSON in ```json fences or chat preamble ("Here is the
// JSON:") even when told not to, so the fencing is stripped first and
// then the first balanced JSON object or array is extracted.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// A short first line without spaces or braces is a language
		// identifier, not payload.
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	objIdx := strings.IndexByte(text, '{')
	arrIdx := strings.IndexByte(text, '[')

	if objIdx >= 0 && (arrIdx < 0 || objIdx < arrIdx) {
		if payload := extractJSONObject(text[objIdx:]); payload != "" {
			return payload
		}
	} else if arrIdx >= 0 {
		if payload := extractJSONArray(text[arrIdx:]); payload != "" {
			return payload
		}
	}

	return text
}

// extractJSONObject returns the balanced {...} prefix of s, or "" when
// s does not start with one.
func extractJSONObject(s string) string {
	return scanBalanced(s, '{', '}')
}

// extractJSONArray returns the balanced [...] prefix of s, or "" when
// s does not start with one.
func extractJSONArray(s string) string {
	return scanBalanced(s, '[', ']')
}

// scanBalanced walks s counting open/close pairs, ignoring brackets
// inside JSON strings and honoring backslash escapes.
func scanBalanced(s string, open, close byte) string {
	if s == "" || s[0] != open {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == open:
			depth++
		case c == close:
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}
	return ""
}
