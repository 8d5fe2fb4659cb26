// Package format provides shared string, time, and ANSI-aware text
// measurement utilities used by the layout engine and the renderer.
package format

// TruncateRunes truncates a string to maxLen runes (Unicode-aware).
// Returns the full string if it's shorter than maxLen runes.
func TruncateRunes(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen])
}

// TruncateWithEllipsis truncates a string to maxWidth characters, appending "..."
// if the string exceeds the limit. If maxWidth is less than 4, the string
// is hard-truncated without an ellipsis suffix.
func TruncateWithEllipsis(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}

	if len([]rune(s)) <= maxWidth {
		return s
	}

	if maxWidth < 4 {
		return TruncateRunes(s, maxWidth)
	}

	return TruncateRunes(s, maxWidth-3) + "..."
}
