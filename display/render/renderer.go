// Package render implements the incremental terminal renderer. It consumes
// the geometry produced by the layout engine plus live element values and
// emits the minimal set of terminal writes needed to reach the new frame,
// diffing against a per-cell cache of the previous one.
//
// The renderer is single-threaded and synchronous: every Render call runs
// to completion before returning, and the host's event loop is responsible
// for serializing calls and debouncing bursts of value changes.
package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"gitlab.com/tinyland/lab/dashgrid/display/grid"
	"gitlab.com/tinyland/lab/dashgrid/display/theme"
	"gitlab.com/tinyland/lab/dashgrid/internal/format"
)

// Terminal control sequences emitted by the renderer. Absolute cursor
// positioning, clear-screen, clear-to-EOL, and cursor visibility only; no
// alternate screen buffer and no mouse reporting.
const (
	escClearScreen = "\x1b[2J\x1b[H"
	escClearToEOL  = "\x1b[K"
	escHideCursor  = "\x1b[?25l"
	escShowCursor  = "\x1b[?25h"
	escReset       = "\x1b[0m"
)

// Renderer turns frames into terminal output. It has two states: before
// the first render (or after Invalidate) it is uninitialized and paints
// everything; afterwards it repaints only element rows whose value or
// selection changed. The message window and input line are rewritten on
// every call and never diffed.
type Renderer struct {
	out          *bufio.Writer
	messageLines int

	initialized bool
	cells       map[string]*frameCell
	prev        *frameSnapshot
}

// New creates a renderer writing to out, reserving messageLines rows for
// the message window plus one row for the input line.
func New(out io.Writer, messageLines int) *Renderer {
	if messageLines < 1 {
		messageLines = 1
	}
	return &Renderer{
		out:          bufio.NewWriter(out),
		messageLines: messageLines,
		cells:        make(map[string]*frameCell),
	}
}

// ReservedRows is the number of bottom terminal rows the renderer keeps
// for the message window and input line. The layout engine must be built
// with the same value or the two disagree on available height.
func (r *Renderer) ReservedRows() int {
	return r.messageLines + 1
}

// Initialized reports whether the renderer holds a valid previous frame.
func (r *Renderer) Initialized() bool {
	return r.initialized
}

// Invalidate marks the previous frame as stale and clears the cell cache.
// Hosts must call this before the next render after any structural change
// the renderer cannot see in values alone: adding or removing groups or
// elements, toggling command mode, switching themes, or resizing.
func (r *Renderer) Invalidate() {
	r.initialized = false
	r.cells = make(map[string]*frameCell)
	r.prev = nil
}

// Close repositions the cursor below the dashboard, restores cursor
// visibility, and flushes buffered output.
func (r *Renderer) Close() error {
	if r.prev != nil {
		r.moveTo(r.prev.terminalHeight, 1)
	}
	r.out.WriteString(escShowCursor)
	r.out.WriteString(escReset)
	r.out.WriteString("\r\n")
	return r.out.Flush()
}

// Render draws the frame. The initial-render path is always taken while
// the renderer is uninitialized, regardless of what changed; afterwards
// the incremental path repaints only changed cells. In both paths the
// order is groups, message window, input line, and finally the cursor
// moved to the input caret.
func (r *Renderer) Render(f Frame) Stats {
	var stats Stats
	if !r.initialized {
		stats = r.renderFull(f)
	} else {
		stats = r.renderIncremental(f)
	}

	r.renderMessages(f)
	r.renderInput(f)

	// The cursor always ends at the editable input position, no matter
	// how many cells were touched.
	r.moveTo(f.Layout.TerminalHeight, r.caretColumn(f))
	r.out.WriteString(escShowCursor)
	r.out.Flush()

	r.prev = snapshotLayout(f.Layout)
	return stats
}

// renderFull clears the screen and paints every group, then snapshots the
// frame and flips the renderer to initialized.
func (r *Renderer) renderFull(f Frame) Stats {
	stats := Stats{FullRedraw: true}

	r.out.WriteString(escHideCursor)
	r.out.WriteString(escClearScreen)
	r.cells = make(map[string]*frameCell)

	if f.CommandMode {
		r.blankDashboard(f.Layout)
	} else {
		for gi, g := range f.Layout.Groups {
			r.drawGroup(g, gi, f, &stats)
			stats.GroupsDrawn++
		}
	}

	r.initialized = true
	return stats
}

// renderIncremental walks every element, repainting only rows whose value
// or selection changed since the cached cell. Groups whose geometry moved
// since the previous frame are redrawn in full, frame included.
func (r *Renderer) renderIncremental(f Frame) Stats {
	var stats Stats

	if f.CommandMode {
		// The dashboard region was blanked when command mode was entered
		// (via Invalidate); nothing to diff against.
		return stats
	}

	for gi, g := range f.Layout.Groups {
		if r.groupMoved(g) {
			r.drawGroup(g, gi, f, &stats)
			stats.GroupsDrawn++
			continue
		}
		offset := r.elementRowOffset(g, f.Layout.ShowBorders)
		for i, el := range g.Elements {
			row := g.Y + offset + i + 1
			if row > f.Layout.AvailableHeight {
				break
			}

			key := cellKey(g.ID, el.ID)
			value := el.DisplayValue()
			selected := r.isSelected(gi, i, f) && el.Interactive()

			cached, ok := r.cells[key]
			if ok && cached.value == value && cached.selected == selected {
				continue
			}

			r.drawElementRow(g, gi, i, f)
			stats.CellsPainted++

			if ok {
				cached.value = value
				cached.selected = selected
				cached.x = g.X
				cached.y = row
			} else {
				r.cells[key] = &frameCell{value: value, selected: selected, x: g.X, y: row}
			}
		}
	}

	return stats
}

// groupMoved reports whether the group's geometry differs from the
// previous frame's snapshot.
func (r *Renderer) groupMoved(g *grid.Group) bool {
	sg := r.prev.group(g.ID)
	if sg == nil {
		return true
	}
	return sg.x != g.X || sg.y != g.Y || sg.width != g.Width ||
		sg.height != g.Height || sg.title != g.Title
}

// elementRowOffset is 1 when a border or a borderless title occupies the
// group's top row.
func (r *Renderer) elementRowOffset(g *grid.Group, showBorders bool) int {
	if showBorders || g.Title != "" {
		return 1
	}
	return 0
}

func (r *Renderer) isSelected(groupIdx, elementIdx int, f Frame) bool {
	return groupIdx == f.SelectedGroup && elementIdx == f.SelectedElement
}

// drawGroup paints a whole group: border and title (or borderless title
// row), every element row, and the closing border. Rows below the
// dashboard region are clipped; the message window is the only region
// that scrolls.
func (r *Renderer) drawGroup(g *grid.Group, gi int, f Frame, stats *Stats) {
	avail := f.Layout.AvailableHeight
	th := f.Theme

	if f.Layout.ShowBorders {
		top := g.Y + 1
		if top <= avail {
			r.moveTo(top, g.X+1)
			r.out.WriteString(r.topBorder(g, th))
		}
		bottom := g.Y + g.Height
		if bottom <= avail {
			r.moveTo(bottom, g.X+1)
			r.out.WriteString(r.bottomBorder(g, th))
		}
		// An empty bordered group keeps one blank interior row.
		if len(g.Elements) == 0 {
			mid := g.Y + 2
			if mid <= avail {
				r.moveTo(mid, g.X+1)
				inner := strings.Repeat(" ", maxInt(g.Width-2, 0))
				r.out.WriteString(th.Border.Render(string(th.Box.Vertical)) + inner +
					th.Border.Render(string(th.Box.Vertical)))
			}
		}
	} else if g.Title != "" {
		top := g.Y + 1
		if top <= avail {
			r.moveTo(top, g.X+1)
			title := format.PadOrTruncateVisible(th.Title.Render(g.Title), g.Width)
			r.out.WriteString(title + escReset)
		}
	}

	offset := r.elementRowOffset(g, f.Layout.ShowBorders)
	for i, el := range g.Elements {
		row := g.Y + offset + i + 1
		if row > avail {
			break
		}
		r.drawElementRow(g, gi, i, f)
		stats.CellsPainted++

		key := cellKey(g.ID, el.ID)
		r.cells[key] = &frameCell{
			value:    el.DisplayValue(),
			selected: r.isSelected(gi, i, f) && el.Interactive(),
			x:        g.X,
			y:        row,
		}
	}
}

// drawElementRow paints one element's row: cursor to the cell, the
// element's rendered content padded to the cell width with a trailing
// reset, and the right border glyph when borders are on.
//
// Selected interactive rows strip the color codes from the rendered text,
// wrap the stripped text in the selection style, and pad with plain
// spaces, so any previous selection background is fully overwritten. The
// padding computation is shared with the unselected path.
func (r *Renderer) drawElementRow(g *grid.Group, gi, elementIdx int, f Frame) {
	th := f.Theme
	el := g.Elements[elementIdx]
	offset := r.elementRowOffset(g, f.Layout.ShowBorders)
	row := g.Y + offset + elementIdx + 1

	cellX := g.X
	cellWidth := g.Width
	if f.Layout.ShowBorders {
		cellX++
		cellWidth -= 2
	}
	if cellWidth < 1 {
		return
	}

	content := el.Render(cellWidth, th)
	if r.isSelected(gi, elementIdx, f) && el.Interactive() {
		stripped := format.PadOrTruncateVisible(format.StripANSI(content), cellWidth)
		content = th.Selected.Render(stripped)
	} else {
		content = format.PadOrTruncateVisible(content, cellWidth)
	}

	r.moveTo(row, cellX+1)
	r.out.WriteString(content + escReset)

	if f.Layout.ShowBorders {
		vertical := th.Border.Render(string(th.Box.Vertical))
		r.moveTo(row, g.X+1)
		r.out.WriteString(vertical)
		r.moveTo(row, g.X+g.Width)
		r.out.WriteString(vertical)
	}
}

// topBorder builds the group's top border with the title embedded.
// Format: ╭─ Title ─────╮
func (r *Renderer) topBorder(g *grid.Group, th theme.Theme) string {
	box := th.Box
	inner := g.Width - 2
	if inner < 0 {
		inner = 0
	}

	if g.Title == "" || inner < 5 {
		return th.Border.Render(string(box.TopLeft) +
			strings.Repeat(string(box.Horizontal), inner) + string(box.TopRight))
	}

	title := format.TruncateWithEllipsis(g.Title, inner-4)
	remaining := inner - len([]rune(title)) - 3
	if remaining < 0 {
		remaining = 0
	}

	return th.Border.Render(string(box.TopLeft)+string(box.Horizontal)) +
		" " + th.Title.Render(title) + " " +
		th.Border.Render(strings.Repeat(string(box.Horizontal), remaining)+string(box.TopRight))
}

// bottomBorder builds the group's closing border.
func (r *Renderer) bottomBorder(g *grid.Group, th theme.Theme) string {
	box := th.Box
	inner := g.Width - 2
	if inner < 0 {
		inner = 0
	}
	return th.Border.Render(string(box.BottomLeft) +
		strings.Repeat(string(box.Horizontal), inner) + string(box.BottomRight))
}

// blankDashboard clears the dashboard region line by line, leaving the
// message window and input line untouched.
func (r *Renderer) blankDashboard(l grid.Layout) {
	for row := 1; row <= l.AvailableHeight; row++ {
		r.moveTo(row, 1)
		r.out.WriteString(escClearToEOL)
	}
}

// renderMessages rewrites the message window in full. No diffing is
// attempted here: the window changes on nearly every event and the writes
// are bounded by its height.
func (r *Renderer) renderMessages(f Frame) {
	termH := f.Layout.TerminalHeight
	termW := f.Layout.TerminalWidth
	th := f.Theme

	rows := r.messageLines
	if rows > termH-1 {
		rows = maxInt(termH-1, 0)
	}

	entries := f.Messages
	if len(entries) > rows {
		entries = entries[len(entries)-rows:]
	}

	for i := 0; i < rows; i++ {
		row := termH - rows + i
		r.moveTo(row, 1)
		r.out.WriteString(escClearToEOL)

		idx := i - (rows - len(entries))
		if idx < 0 {
			continue
		}
		entry := entries[idx]
		line := th.Muted.Render(format.FormatClock(entry.Time)) + " " +
			th.Caption.Render(entry.Text)
		r.out.WriteString(format.TruncateVisible(line, termW) + escReset)
	}
}

// renderInput rewrites the input line at the bottom row.
func (r *Renderer) renderInput(f Frame) {
	termH := f.Layout.TerminalHeight
	termW := f.Layout.TerminalWidth
	th := f.Theme

	r.moveTo(termH, 1)
	r.out.WriteString(escClearToEOL)

	prompt := r.promptText(f)
	line := th.Prompt.Render(prompt) + f.Input
	r.out.WriteString(format.TruncateVisible(line, termW-1) + escReset)
}

// promptText is ":" in command mode and "❯ " otherwise.
func (r *Renderer) promptText(f Frame) string {
	if f.CommandMode {
		return ":"
	}
	return "❯ "
}

// caretColumn computes the 1-based terminal column of the input caret.
func (r *Renderer) caretColumn(f Frame) int {
	col := len([]rune(r.promptText(f))) + f.Caret + 1
	if col > f.Layout.TerminalWidth {
		col = f.Layout.TerminalWidth
	}
	if col < 1 {
		col = 1
	}
	return col
}

func (r *Renderer) moveTo(row, col int) {
	fmt.Fprintf(r.out, "\x1b[%d;%dH", row, col)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
