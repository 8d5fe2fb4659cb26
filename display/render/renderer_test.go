package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"gitlab.com/tinyland/lab/dashgrid/display/element"
	"gitlab.com/tinyland/lab/dashgrid/display/grid"
	"gitlab.com/tinyland/lab/dashgrid/display/messages"
	"gitlab.com/tinyland/lab/dashgrid/display/theme"
	"gitlab.com/tinyland/lab/dashgrid/internal/format"
)

func testEngine(groups []*grid.Group) *grid.Engine {
	s := grid.Settings{Columns: 1, Padding: 1, RowSpacing: 1, ShowBorders: true, MinGroupWidth: 10}
	e := grid.NewEngine(s, 40, 20, 4)
	e.SetGroups(groups)
	return e
}

func switchGroup() *grid.Group {
	return &grid.Group{
		ID:    "sw",
		Title: "Switches",
		Elements: []*element.Element{
			{ID: "vpn", Kind: element.KindSwitch, Caption: "VPN", On: true},
			{ID: "fw", Kind: element.KindSwitch, Caption: "Firewall", On: false},
		},
	}
}

func testFrame(e *grid.Engine) Frame {
	return Frame{
		Layout:          e.Layout(),
		SelectedGroup:   -1,
		SelectedElement: -1,
		Theme:           theme.Get("monitoring"),
	}
}

func TestInitialRenderIsFull(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, 3)
	e := testEngine([]*grid.Group{switchGroup()})

	stats := r.Render(testFrame(e))

	if !stats.FullRedraw {
		t.Error("expected FullRedraw on first render")
	}
	if stats.GroupsDrawn != 1 {
		t.Errorf("GroupsDrawn = %d, want 1", stats.GroupsDrawn)
	}
	if stats.CellsPainted != 2 {
		t.Errorf("CellsPainted = %d, want 2", stats.CellsPainted)
	}
	if !strings.Contains(buf.String(), escClearScreen) {
		t.Error("expected clear-screen sequence in initial render")
	}
	if !r.Initialized() {
		t.Error("renderer should be initialized after first render")
	}
}

func TestRenderIdempotent(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, 3)
	e := testEngine([]*grid.Group{switchGroup()})
	f := testFrame(e)

	r.Render(f)
	buf.Reset()
	stats := r.Render(f)

	if stats.FullRedraw {
		t.Error("second identical render must not take the full path")
	}
	if stats.CellsPainted != 0 {
		t.Errorf("CellsPainted = %d, want 0 for an unchanged frame", stats.CellsPainted)
	}
	if stats.GroupsDrawn != 0 {
		t.Errorf("GroupsDrawn = %d, want 0 for an unchanged frame", stats.GroupsDrawn)
	}
	// Message window and input line are always rewritten.
	if !strings.Contains(buf.String(), escClearToEOL) {
		t.Error("expected message and input rows to be rewritten")
	}
}

func TestValueChangeRepaintsOneCell(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, 3)
	g := switchGroup()
	e := testEngine([]*grid.Group{g})
	f := testFrame(e)

	r.Render(f)
	g.Elements[0].On = false
	f.Layout = e.Layout()

	stats := r.Render(f)
	if stats.CellsPainted != 1 {
		t.Errorf("CellsPainted = %d, want 1 after a single value change", stats.CellsPainted)
	}
	if stats.FullRedraw {
		t.Error("value change must not trigger a full redraw")
	}
}

func TestSelectionChangeRepaintsBothCells(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, 3)
	e := testEngine([]*grid.Group{switchGroup()})

	f := testFrame(e)
	f.SelectedGroup, f.SelectedElement = 0, 0
	r.Render(f)

	f.SelectedElement = 1
	stats := r.Render(f)
	if stats.CellsPainted != 2 {
		t.Errorf("CellsPainted = %d, want 2 (deselected and newly selected rows)", stats.CellsPainted)
	}
}

// TestSparklineInteriorChangeRepaints guards the diff contract for rows
// whose appearance depends on more than their newest point: shuffling an
// at-capacity history without touching its length or last value still
// changes the rendered blocks and must repaint the cell.
func TestSparklineInteriorChangeRepaints(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, 3)
	g := &grid.Group{ID: "net", Title: "Network", Elements: []*element.Element{
		{ID: "load", Kind: element.KindSparkline, Caption: "Load", History: []float64{0, 5, 5}},
	}}
	e := testEngine([]*grid.Group{g})
	f := testFrame(e)

	r.Render(f)
	g.Elements[0].History[0] = 5
	g.Elements[0].History[1] = 0

	stats := r.Render(f)
	if stats.CellsPainted != 1 {
		t.Errorf("CellsPainted = %d, want 1 after an interior history change", stats.CellsPainted)
	}
}

// TestSliderSubUnitChangeRepaints: a fractional value change that moves
// the handle but not the rounded label must still repaint the row.
func TestSliderSubUnitChangeRepaints(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, 3)
	g := &grid.Group{ID: "tune", Title: "Tuning", Elements: []*element.Element{
		{ID: "gain", Kind: element.KindSlider, Caption: "Gain", Number: 2.04, Max: 5},
	}}
	e := testEngine([]*grid.Group{g})
	f := testFrame(e)

	r.Render(f)
	g.Elements[0].Number = 2.44

	stats := r.Render(f)
	if stats.CellsPainted != 1 {
		t.Errorf("CellsPainted = %d, want 1 after a sub-unit slider change", stats.CellsPainted)
	}
}

func TestSelectionIgnoredForNonInteractive(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, 3)
	g := &grid.Group{ID: "txt", Title: "Text", Elements: []*element.Element{
		{ID: "a", Kind: element.KindText, Caption: "Host", Value: "web-1"},
		{ID: "b", Kind: element.KindText, Caption: "Zone", Value: "eu-1"},
	}}
	e := testEngine([]*grid.Group{g})

	f := testFrame(e)
	f.SelectedGroup, f.SelectedElement = 0, 0
	r.Render(f)

	f.SelectedElement = 1
	stats := r.Render(f)
	if stats.CellsPainted != 0 {
		t.Errorf("CellsPainted = %d, want 0 when selection moves between text rows", stats.CellsPainted)
	}
}

func TestGroupMoveRedrawsGroups(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, 3)
	e := testEngine([]*grid.Group{
		switchGroup(),
		{ID: "misc", Title: "Misc", Elements: []*element.Element{
			{ID: "m1", Kind: element.KindText, Caption: "Up", Value: "4d"},
		}},
	})

	f := testFrame(e)
	r.Render(f)

	e.MoveGroup("misc", 0)
	f.Layout = e.Layout()

	stats := r.Render(f)
	if stats.FullRedraw {
		t.Error("reorder without Invalidate should stay on the incremental path")
	}
	if stats.GroupsDrawn != 2 {
		t.Errorf("GroupsDrawn = %d, want 2 when both groups changed position", stats.GroupsDrawn)
	}
}

func TestInvalidateForcesFullRedraw(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, 3)
	e := testEngine([]*grid.Group{switchGroup()})
	f := testFrame(e)

	r.Render(f)
	r.Invalidate()
	if r.Initialized() {
		t.Error("Invalidate must clear the initialized state")
	}

	stats := r.Render(f)
	if !stats.FullRedraw {
		t.Error("expected a full redraw after Invalidate")
	}
}

func TestCommandModeBlanksDashboard(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, 3)
	e := testEngine([]*grid.Group{switchGroup()})

	f := testFrame(e)
	f.CommandMode = true
	f.Input = "theme minimal"
	f.Caret = len(f.Input)

	stats := r.Render(f)
	if stats.GroupsDrawn != 0 {
		t.Errorf("GroupsDrawn = %d, want 0 in command mode", stats.GroupsDrawn)
	}
	out := buf.String()
	if strings.ContainsRune(out, '╭') {
		t.Error("command mode must not paint group borders")
	}
	if !strings.Contains(out, "theme minimal") {
		t.Error("expected the command input on the input line")
	}
	if !strings.Contains(out, ":") {
		t.Error("expected the command prompt")
	}
}

func TestCursorEndsAtInputCaret(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, 3)
	e := testEngine([]*grid.Group{switchGroup()})

	f := testFrame(e)
	f.Input = "ab"
	f.Caret = 2
	r.Render(f)

	// Prompt "❯ " is two columns, caret 2, so column 5 on the bottom row.
	want := fmt.Sprintf("\x1b[%d;%dH%s", 20, 5, escShowCursor)
	if !strings.HasSuffix(buf.String(), want) {
		t.Errorf("output does not end with cursor-to-caret and show-cursor, tail %q",
			tail(buf.String(), 24))
	}
}

func TestMessagesRendered(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, 3)
	e := testEngine([]*grid.Group{switchGroup()})

	f := testFrame(e)
	f.Messages = []messages.Entry{
		{Time: time.Date(2026, 8, 29, 9, 15, 30, 0, time.UTC), Text: "vpn connected"},
		{Time: time.Date(2026, 8, 29, 9, 15, 31, 0, time.UTC), Text: "firewall reloaded"},
	}
	r.Render(f)

	out := buf.String()
	for _, want := range []string{"09:15:30", "vpn connected", "firewall reloaded"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in message window output", want)
		}
	}
}

// TestSelectedRowWidth verifies the selected and unselected renditions of
// the same element occupy exactly the cell width, so moving the selection
// never leaves stale background cells behind.
func TestSelectedRowWidth(t *testing.T) {
	g := switchGroup()
	e := testEngine([]*grid.Group{g})
	cellWidth := e.Layout().GroupWidth - 2
	elementRow := g.Y + 2 // top border, then first element

	for _, selected := range []bool{false, true} {
		var buf bytes.Buffer
		r := New(&buf, 3)
		f := testFrame(e)
		if selected {
			f.SelectedGroup, f.SelectedElement = 0, 0
		}
		r.Render(f)

		payload, ok := payloadAt(buf.String(), elementRow, g.X+2)
		if !ok {
			t.Fatalf("selected=%v: no write found at row %d col %d", selected, elementRow, g.X+2)
		}
		if got := format.VisibleLength(payload); got != cellWidth {
			t.Errorf("selected=%v: element row visible width = %d, want %d",
				selected, got, cellWidth)
		}
	}
}

func TestReservedRowsFloor(t *testing.T) {
	var buf bytes.Buffer
	if got := New(&buf, 0).ReservedRows(); got != 2 {
		t.Errorf("ReservedRows() = %d, want 2 with a clamped message window", got)
	}
	if got := New(&buf, 4).ReservedRows(); got != 5 {
		t.Errorf("ReservedRows() = %d, want 5", got)
	}
}

var cursorMoveRe = regexp.MustCompile(`\x1b\[(\d+);(\d+)H`)

// payloadAt returns the bytes written immediately after the cursor was
// positioned at (row, col), up to the next cursor move.
func payloadAt(out string, row, col int) (string, bool) {
	locs := cursorMoveRe.FindAllStringSubmatchIndex(out, -1)
	for i, m := range locs {
		r, _ := strconv.Atoi(out[m[2]:m[3]])
		c, _ := strconv.Atoi(out[m[4]:m[5]])
		if r != row || c != col {
			continue
		}
		end := len(out)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		return out[m[1]:end], true
	}
	return "", false
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
