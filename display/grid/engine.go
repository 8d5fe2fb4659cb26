// Package grid implements the responsive masonry layout engine. It owns
// the ordered list of dashboard groups and computes, for a given terminal
// size and column request, each group's column, position, and dimensions
// using greedy shortest-column placement.
package grid

import "gitlab.com/tinyland/lab/dashgrid/display/element"

// Settings are the layout knobs consumed by the engine. They are re-read
// on every CalculateLayout call, so the host propagates changes simply by
// updating them before the next recalculation.
type Settings struct {
	// Columns is the requested column count (>= 1).
	Columns int
	// Padding is the horizontal gap between columns (>= 0).
	Padding int
	// RowSpacing is the vertical gap between stacked groups (>= 0).
	RowSpacing int
	// ShowBorders toggles box-drawing frames around groups.
	ShowBorders bool
	// MinGroupWidth is the narrowest acceptable group width before the
	// engine drops columns (>= 1).
	MinGroupWidth int
}

// DefaultSettings returns the layout settings used when no configuration
// is supplied.
func DefaultSettings() Settings {
	return Settings{
		Columns:       2,
		Padding:       1,
		RowSpacing:    1,
		ShowBorders:   true,
		MinGroupWidth: 30,
	}
}

// Layout is the engine's output: an immutable snapshot of where every
// group sits on screen for one terminal size.
type Layout struct {
	// Groups in original order, with derived placement filled in.
	Groups []*Group
	// Columns is the effective column count after width constraints.
	Columns int
	// GroupWidth is the width of every group in this layout.
	GroupWidth int
	// ColumnHeights is the accumulated height of each column, including
	// row spacing after each placed group.
	ColumnHeights []int
	// TotalHeight is max(ColumnHeights).
	TotalHeight int
	// AvailableHeight is the terminal height minus the rows reserved for
	// the message window and input line.
	AvailableHeight int
	// TerminalWidth and TerminalHeight are the dimensions this layout was
	// computed for.
	TerminalWidth  int
	TerminalHeight int
	// NeedsScrolling is true when TotalHeight exceeds AvailableHeight.
	NeedsScrolling bool
	// ShowBorders mirrors the setting the layout was computed with, so
	// the renderer and the engine agree on height conventions.
	ShowBorders bool
}

// Engine owns the group list and keeps a current Layout. All mutators
// trigger a recalculation. Lookups by id are sentinel-based: nil or false
// on a miss, never a panic.
type Engine struct {
	groups       []*Group
	settings     Settings
	termWidth    int
	termHeight   int
	reservedRows int
	layout       Layout
}

// NewEngine creates an engine for the given settings and terminal size.
// reservedRows is the number of bottom rows the renderer keeps for the
// message window and input line.
func NewEngine(settings Settings, termWidth, termHeight, reservedRows int) *Engine {
	e := &Engine{
		settings:     settings,
		termWidth:    termWidth,
		termHeight:   termHeight,
		reservedRows: reservedRows,
	}
	e.layout = e.CalculateLayout()
	return e
}

// Settings returns the current layout settings.
func (e *Engine) Settings() Settings {
	return e.settings
}

// SetSettings replaces the layout settings and recalculates.
func (e *Engine) SetSettings(s Settings) {
	e.settings = s
	e.layout = e.CalculateLayout()
}

// Layout returns the most recently calculated layout.
func (e *Engine) Layout() Layout {
	return e.layout
}

// Groups returns the ordered group list.
func (e *Engine) Groups() []*Group {
	return e.groups
}

// FindGroup returns the group with the given id, or nil.
func (e *Engine) FindGroup(id string) *Group {
	for _, g := range e.groups {
		if g.ID == id {
			return g
		}
	}
	return nil
}

// groupIndex returns the position of the group with the given id, or -1.
func (e *Engine) groupIndex(id string) int {
	for i, g := range e.groups {
		if g.ID == id {
			return i
		}
	}
	return -1
}

// SetGroups replaces the whole group list and recalculates.
func (e *Engine) SetGroups(groups []*Group) {
	e.groups = groups
	e.layout = e.CalculateLayout()
}

// AddGroup appends a group and recalculates.
func (e *Engine) AddGroup(g *Group) {
	e.groups = append(e.groups, g)
	e.layout = e.CalculateLayout()
}

// RemoveGroup removes the group with the given id. Returns false when the
// id is unknown.
func (e *Engine) RemoveGroup(id string) bool {
	idx := e.groupIndex(id)
	if idx < 0 {
		return false
	}
	e.groups = append(e.groups[:idx], e.groups[idx+1:]...)
	e.layout = e.CalculateLayout()
	return true
}

// MoveGroup moves the group with the given id to newIndex in the order.
// A no-op returning false when the id is unknown or newIndex is outside
// [0, len).
func (e *Engine) MoveGroup(id string, newIndex int) bool {
	idx := e.groupIndex(id)
	if idx < 0 || newIndex < 0 || newIndex >= len(e.groups) {
		return false
	}
	g := e.groups[idx]
	e.groups = append(e.groups[:idx], e.groups[idx+1:]...)
	e.groups = append(e.groups[:newIndex], append([]*Group{g}, e.groups[newIndex:]...)...)
	e.layout = e.CalculateLayout()
	return true
}

// AddElementToGroup inserts el into the group with the given id at
// insertIndex; pass a negative index (or one past the end) to append.
// Returns false when the group is unknown.
func (e *Engine) AddElementToGroup(groupID string, el *element.Element, insertIndex int) bool {
	g := e.FindGroup(groupID)
	if g == nil {
		return false
	}
	if insertIndex < 0 || insertIndex > len(g.Elements) {
		insertIndex = len(g.Elements)
	}
	g.Elements = append(g.Elements[:insertIndex],
		append([]*element.Element{el}, g.Elements[insertIndex:]...)...)
	e.layout = e.CalculateLayout()
	return true
}

// RemoveElementFromGroup removes elementID from groupID. Returns false
// when either id is unknown.
func (e *Engine) RemoveElementFromGroup(groupID, elementID string) bool {
	g := e.FindGroup(groupID)
	if g == nil {
		return false
	}
	idx := g.elementIndex(elementID)
	if idx < 0 {
		return false
	}
	g.Elements = append(g.Elements[:idx], g.Elements[idx+1:]...)
	e.layout = e.CalculateLayout()
	return true
}

// MoveElement moves elementID from one group to another at the given
// position; positions outside the target range append. Returns false when
// any id is unknown.
func (e *Engine) MoveElement(elementID, fromGroupID, toGroupID string, position int) bool {
	from := e.FindGroup(fromGroupID)
	to := e.FindGroup(toGroupID)
	if from == nil || to == nil {
		return false
	}
	idx := from.elementIndex(elementID)
	if idx < 0 {
		return false
	}
	el := from.Elements[idx]
	from.Elements = append(from.Elements[:idx], from.Elements[idx+1:]...)

	if position < 0 || position > len(to.Elements) {
		position = len(to.Elements)
	}
	to.Elements = append(to.Elements[:position],
		append([]*element.Element{el}, to.Elements[position:]...)...)
	e.layout = e.CalculateLayout()
	return true
}

// UpdateTerminalSize stores the new dimensions and recalculates. Callers
// are expected to debounce rapid resize events before invoking this.
func (e *Engine) UpdateTerminalSize(width, height int) {
	e.termWidth = width
	e.termHeight = height
	e.layout = e.CalculateLayout()
}

// CalculateColumnsCount resolves the effective column count for a terminal
// width. The requested count is decreased until the resulting group width
// reaches minGroupWidth, bottoming out at 1 even for pathologically narrow
// terminals. It never errors: at 1 column the width may legally fall below
// the minimum so the dashboard stays visible.
func CalculateColumnsCount(requested, termWidth, padding, minGroupWidth int) int {
	if requested < 1 {
		requested = 1
	}
	cols := requested
	for cols > 1 {
		groupWidth := (termWidth - (cols-1)*padding) / cols
		if groupWidth >= minGroupWidth {
			break
		}
		cols--
	}
	return cols
}

// CalculateGroupHeight returns the number of terminal rows a group
// occupies: one row per element, plus two border rows when borders are on
// (with a floor of three so an empty frame still closes), or one title row
// when borders are off and the group is titled. Always at least 1.
func CalculateGroupHeight(g *Group, showBorders bool) int {
	height := len(g.Elements)
	if showBorders {
		height += 2
		if len(g.Elements) == 0 {
			height = 3
		}
	} else if g.Title != "" {
		height++
	}
	if height < 1 {
		height = 1
	}
	return height
}

// CalculateLayout performs one greedy masonry pass: groups are visited in
// original order and each is placed into the column with the current
// minimum accumulated height, the first such column winning ties.
func (e *Engine) CalculateLayout() Layout {
	s := e.settings
	cols := CalculateColumnsCount(s.Columns, e.termWidth, s.Padding, s.MinGroupWidth)

	groupWidth := (e.termWidth - (cols-1)*s.Padding) / cols
	if groupWidth < 1 {
		groupWidth = 1
	}

	columnHeights := make([]int, cols)
	for _, g := range e.groups {
		h := CalculateGroupHeight(g, s.ShowBorders)

		col := 0
		for c := 1; c < cols; c++ {
			if columnHeights[c] < columnHeights[col] {
				col = c
			}
		}

		g.Column = col
		g.X = col * (groupWidth + s.Padding)
		g.Y = columnHeights[col]
		g.Width = groupWidth
		g.Height = h
		columnHeights[col] += h + s.RowSpacing
	}

	totalHeight := 0
	for _, h := range columnHeights {
		if h > totalHeight {
			totalHeight = h
		}
	}

	available := e.termHeight - e.reservedRows
	if available < 1 {
		available = 1
	}

	groups := make([]*Group, len(e.groups))
	copy(groups, e.groups)

	return Layout{
		Groups:          groups,
		Columns:         cols,
		GroupWidth:      groupWidth,
		ColumnHeights:   columnHeights,
		TotalHeight:     totalHeight,
		AvailableHeight: available,
		TerminalWidth:   e.termWidth,
		TerminalHeight:  e.termHeight,
		NeedsScrolling:  totalHeight > available,
		ShowBorders:     s.ShowBorders,
	}
}
