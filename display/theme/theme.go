// Package theme defines the color and border tokens consumed by the
// renderer. A Theme is an explicit value handed to every render call, so
// swapping themes takes effect on the next frame without any shared
// mutable state.
package theme

import "github.com/charmbracelet/lipgloss"

// BoxStyle defines the Unicode box-drawing characters used for group borders.
type BoxStyle struct {
	TopLeft, TopRight, BottomLeft, BottomRight rune
	Horizontal, Vertical                       rune
}

// RoundedBox uses rounded corner box-drawing characters.
var RoundedBox = BoxStyle{
	TopLeft: '╭', TopRight: '╮', BottomLeft: '╰', BottomRight: '╯',
	Horizontal: '─', Vertical: '│',
}

// SharpBox uses sharp corner box-drawing characters.
var SharpBox = BoxStyle{
	TopLeft: '┌', TopRight: '┐', BottomLeft: '└', BottomRight: '┘',
	Horizontal: '─', Vertical: '│',
}

// Theme maps semantic display roles to lipgloss styles plus a border glyph
// set. The renderer reads these tokens at paint time and never caches them
// across frames.
type Theme struct {
	// Name identifies the preset this theme was built from.
	Name string

	// Caption styles element labels on the left of each row.
	Caption lipgloss.Style
	// Value styles element values on the right of each row.
	Value lipgloss.Style
	// Title styles group titles.
	Title lipgloss.Style
	// Border styles the box-drawing glyphs around groups.
	Border lipgloss.Style
	// Active styles enabled switches and lit indicators.
	Active lipgloss.Style
	// Inactive styles disabled switches and dark indicators.
	Inactive lipgloss.Style
	// Selected styles the focused interactive row (background + foreground).
	Selected lipgloss.Style
	// Muted styles separators and secondary chrome.
	Muted lipgloss.Style
	// Prompt styles the input line prefix.
	Prompt lipgloss.Style

	// Success, Warning, Danger style threshold-dependent output such as
	// gauge bars and indicator levels.
	Success lipgloss.Style
	Warning lipgloss.Style
	Danger  lipgloss.Style

	// Box is the border glyph set for group frames.
	Box BoxStyle
}
