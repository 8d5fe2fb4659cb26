package render

import (
	"gitlab.com/tinyland/lab/dashgrid/display/element"
	"gitlab.com/tinyland/lab/dashgrid/display/grid"
	"gitlab.com/tinyland/lab/dashgrid/display/messages"
	"gitlab.com/tinyland/lab/dashgrid/display/theme"
)

// Frame is the complete input for one render call: the layout to draw,
// the current selection, the message window, the input line, and the theme
// to read styles from at paint time.
type Frame struct {
	// Layout is the geometry produced by the layout engine. The renderer
	// treats it as read-only.
	Layout grid.Layout
	// SelectedGroup is the index of the focused group in Layout.Groups,
	// or -1 when nothing is selected.
	SelectedGroup int
	// SelectedElement is the index of the focused element within the
	// selected group, or -1.
	SelectedElement int
	// Messages is the visible message window, oldest first.
	Messages []messages.Entry
	// Input is the current input line content.
	Input string
	// Caret is the caret position within Input, in visible characters.
	Caret int
	// CommandMode blanks the dashboard region and renders only the
	// message and input regions.
	CommandMode bool
	// Theme supplies the styles and border glyphs for this frame.
	Theme theme.Theme
}

// Stats reports what one render call wrote, so hosts and tests can verify
// that steady-state updates stay minimal.
type Stats struct {
	// FullRedraw is true when the call took the initial-render path.
	FullRedraw bool
	// CellsPainted is the number of element rows rewritten.
	CellsPainted int
	// GroupsDrawn is the number of groups drawn in full (borders included).
	GroupsDrawn int
}

// frameCell is the per-element cache entry used to decide whether a cell's
// visible content changed since the last frame. It never references live
// elements.
type frameCell struct {
	value    string
	selected bool
	x        int
	y        int
}

// cellKey builds the cache key for an element within a group.
func cellKey(groupID, elementID string) string {
	return groupID + ":" + elementID
}

// snapshotCell is the plain-data clone of one rendered element.
type snapshotCell struct {
	id      string
	kind    element.Kind
	caption string
	value   string
}

// snapshotGroup is the plain-data clone of one rendered group, geometry
// included.
type snapshotGroup struct {
	id     string
	title  string
	x      int
	y      int
	width  int
	height int
	cells  []snapshotCell
}

// frameSnapshot is the reference-free record of the last rendered frame.
// Only scalars are cloned so the renderer never retains external object
// identity across frames.
type frameSnapshot struct {
	terminalWidth  int
	terminalHeight int
	showBorders    bool
	groups         []snapshotGroup
}

// snapshotLayout clones the scalar fields of a layout and its elements.
func snapshotLayout(l grid.Layout) *frameSnapshot {
	snap := &frameSnapshot{
		terminalWidth:  l.TerminalWidth,
		terminalHeight: l.TerminalHeight,
		showBorders:    l.ShowBorders,
		groups:         make([]snapshotGroup, 0, len(l.Groups)),
	}
	for _, g := range l.Groups {
		sg := snapshotGroup{
			id:     g.ID,
			title:  g.Title,
			x:      g.X,
			y:      g.Y,
			width:  g.Width,
			height: g.Height,
			cells:  make([]snapshotCell, 0, len(g.Elements)),
		}
		for _, el := range g.Elements {
			sg.cells = append(sg.cells, snapshotCell{
				id:      el.ID,
				kind:    el.Kind,
				caption: el.Caption,
				value:   el.DisplayValue(),
			})
		}
		snap.groups = append(snap.groups, sg)
	}
	return snap
}

// group returns the snapshot entry for the given group id, or nil.
func (s *frameSnapshot) group(id string) *snapshotGroup {
	if s == nil {
		return nil
	}
	for i := range s.groups {
		if s.groups[i].id == id {
			return &s.groups[i]
		}
	}
	return nil
}
