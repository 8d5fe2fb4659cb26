package format

import "strings"

// VisibleLength returns the number of visible characters in s, excluding
// ANSI escape sequences such as the SGR color codes emitted by lipgloss.
func VisibleLength(s string) int {
	length := 0
	inEscape := false
	for _, r := range s {
		if inEscape {
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '~' {
				inEscape = false
			}
			continue
		}
		if r == '\x1b' {
			inEscape = true
			continue
		}
		length++
	}
	return length
}

// StripANSI removes all ANSI escape sequences from a string, leaving only
// the visible characters.
func StripANSI(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	inEscape := false
	for _, r := range s {
		if inEscape {
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '~' {
				inEscape = false
			}
			continue
		}
		if r == '\x1b' {
			inEscape = true
			continue
		}
		result.WriteRune(r)
	}
	return result.String()
}

// TruncateVisible truncates a string to at most width visible characters.
// ANSI escape sequences are preserved but not counted, so colored text
// keeps its styling after truncation.
func TruncateVisible(s string, width int) string {
	if width <= 0 {
		return ""
	}

	var result strings.Builder
	visibleCount := 0
	inEscape := false

	for _, r := range s {
		if inEscape {
			result.WriteRune(r)
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '~' {
				inEscape = false
			}
			continue
		}
		if r == '\x1b' {
			inEscape = true
			result.WriteRune(r)
			continue
		}
		if visibleCount >= width {
			break
		}
		result.WriteRune(r)
		visibleCount++
	}

	return result.String()
}

// PadVisible pads a string with trailing spaces to exactly width visible
// characters. Strings already at or beyond width are returned unchanged.
func PadVisible(s string, width int) string {
	visible := VisibleLength(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

// PadOrTruncateVisible pads or truncates a string to exactly width visible
// characters.
func PadOrTruncateVisible(s string, width int) string {
	if VisibleLength(s) > width {
		return TruncateVisible(s, width)
	}
	return PadVisible(s, width)
}

// AlignText lays out left and right on one line of exactly maxWidth visible
// characters, with right flush against the right edge. When both sides do
// not fit with at least one separating space, the visible portion of left
// is truncated with a "..." suffix, keeping at least one visible character.
func AlignText(left, right string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}

	leftLen := VisibleLength(left)
	rightLen := VisibleLength(right)

	if leftLen+rightLen+1 > maxWidth {
		keep := maxWidth - rightLen - 1 - 3
		if keep < 1 {
			keep = 1
		}
		left = TruncateVisible(left, keep) + "..."
		leftLen = VisibleLength(left)
	}

	gap := maxWidth - leftLen - rightLen
	if gap < 1 {
		gap = 1
	}

	return PadOrTruncateVisible(left+strings.Repeat(" ", gap)+right, maxWidth)
}
