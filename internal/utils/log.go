package utils

import "strings"

// TruncateForLog turns s into a single-line preview of at most limit runes.
// Whitespace runs, newlines included, collapse to one space; "..." marks a cut.
func TruncateForLog(s string, limit int) string {
	if limit <= 0 {
		return ""
	}

	preview := strings.Join(strings.Fields(s), " ")
	runes := []rune(preview)
	if len(runes) <= limit {
		return preview
	}
	return string(runes[:limit]) + "..."
}
