package grid

import (
	"testing"

	"gitlab.com/tinyland/lab/dashgrid/display/element"
)

// testSettings are the fixed settings used by most layout tests.
func testSettings() Settings {
	return Settings{
		Columns:       2,
		Padding:       1,
		RowSpacing:    1,
		ShowBorders:   true,
		MinGroupWidth: 10,
	}
}

// groupWithElements builds a group holding n text elements.
func groupWithElements(id string, n int) *Group {
	g := &Group{ID: id, Title: id}
	for i := 0; i < n; i++ {
		g.Elements = append(g.Elements, &element.Element{
			ID:      id + "-e" + string(rune('a'+i)),
			Kind:    element.KindText,
			Caption: "cap",
			Value:   "val",
		})
	}
	return g
}

func TestCalculateColumnsCount(t *testing.T) {
	tests := []struct {
		name          string
		requested     int
		termWidth     int
		padding       int
		minGroupWidth int
		want          int
	}{
		{"wide terminal keeps request", 4, 240, 1, 45, 4},
		{"narrow terminal drops columns", 4, 60, 1, 45, 1},
		{"partial drop", 4, 120, 1, 35, 3},
		{"single column floor", 8, 10, 2, 40, 1},
		{"zero width still one column", 4, 0, 1, 30, 1},
		{"requested below one clamps", 0, 100, 1, 30, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateColumnsCount(tt.requested, tt.termWidth, tt.padding, tt.minGroupWidth)
			if got != tt.want {
				t.Errorf("CalculateColumnsCount(%d, %d, %d, %d) = %d, want %d",
					tt.requested, tt.termWidth, tt.padding, tt.minGroupWidth, got, tt.want)
			}
		})
	}
}

// TestCalculateColumnsCountProperty sweeps a range of inputs and verifies
// the result never produces a group width below the minimum unless the
// count already bottomed out at 1.
func TestCalculateColumnsCountProperty(t *testing.T) {
	for _, termWidth := range []int{0, 20, 60, 80, 120, 200, 240} {
		for _, requested := range []int{1, 2, 3, 4, 6} {
			for _, padding := range []int{0, 1, 2} {
				for _, minWidth := range []int{10, 30, 45} {
					cols := CalculateColumnsCount(requested, termWidth, padding, minWidth)
					if cols < 1 {
						t.Fatalf("columns %d < 1 for W=%d R=%d P=%d M=%d",
							cols, termWidth, requested, padding, minWidth)
					}
					if cols == 1 {
						continue
					}
					groupWidth := (termWidth - (cols-1)*padding) / cols
					if groupWidth < minWidth {
						t.Errorf("W=%d R=%d P=%d M=%d: %d columns gives width %d < min",
							termWidth, requested, padding, minWidth, cols, groupWidth)
					}
				}
			}
		}
	}
}

func TestCalculateGroupHeight(t *testing.T) {
	tests := []struct {
		name        string
		elements    int
		title       string
		showBorders bool
		want        int
	}{
		{"empty bordered group has minimum frame", 0, "", true, 3},
		{"three elements bordered", 3, "", true, 5},
		{"titled borderless single element", 1, "X", false, 2},
		{"borderless untitled empty floors at one", 0, "", false, 1},
		{"borderless untitled elements only", 4, "", false, 4},
		{"titled bordered ignores extra title row", 2, "X", true, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := groupWithElements("g", tt.elements)
			g.Title = tt.title
			if got := CalculateGroupHeight(g, tt.showBorders); got != tt.want {
				t.Errorf("CalculateGroupHeight(%d elements, title=%q, borders=%v) = %d, want %d",
					tt.elements, tt.title, tt.showBorders, got, tt.want)
			}
		})
	}
}

// TestMasonryPlacementFixture pins the exact column heights for groups of
// heights [5,3,4] in 2 columns with padding 1 and row spacing 1. Column
// heights include the spacing appended after each placed group.
func TestMasonryPlacementFixture(t *testing.T) {
	e := NewEngine(testSettings(), 80, 40, 5)
	e.SetGroups([]*Group{
		groupWithElements("g1", 3), // height 5 with borders
		groupWithElements("g2", 1), // height 3
		groupWithElements("g3", 2), // height 4
	})

	l := e.Layout()
	if l.Columns != 2 {
		t.Fatalf("expected 2 columns, got %d", l.Columns)
	}

	wantHeights := []int{6, 9}
	for i, want := range wantHeights {
		if l.ColumnHeights[i] != want {
			t.Errorf("ColumnHeights[%d] = %d, want %d", i, l.ColumnHeights[i], want)
		}
	}
	if l.TotalHeight != 9 {
		t.Errorf("TotalHeight = %d, want 9", l.TotalHeight)
	}

	g1, g2, g3 := l.Groups[0], l.Groups[1], l.Groups[2]
	if g1.Column != 0 || g1.Y != 0 {
		t.Errorf("g1 placed at column %d y %d, want column 0 y 0", g1.Column, g1.Y)
	}
	if g2.Column != 1 || g2.Y != 0 {
		t.Errorf("g2 placed at column %d y %d, want column 1 y 0", g2.Column, g2.Y)
	}
	if g3.Column != 1 || g3.Y != 4 {
		t.Errorf("g3 placed at column %d y %d, want column 1 y 4", g3.Column, g3.Y)
	}

	// x positions follow column * (groupWidth + padding).
	if g2.X != l.GroupWidth+1 {
		t.Errorf("g2.X = %d, want %d", g2.X, l.GroupWidth+1)
	}
}

// TestGreedyPlacementInvariant verifies that each group lands in a column
// whose height, measured before the placement, is minimal.
func TestGreedyPlacementInvariant(t *testing.T) {
	e := NewEngine(Settings{Columns: 3, Padding: 1, RowSpacing: 1, ShowBorders: true, MinGroupWidth: 10}, 120, 50, 5)

	var groups []*Group
	for i, n := range []int{4, 1, 3, 2, 5, 1, 2, 4} {
		g := groupWithElements("g"+string(rune('0'+i)), n)
		groups = append(groups, g)
	}
	e.SetGroups(groups)

	// Replay the placement and check the chosen column was a minimum.
	l := e.Layout()
	heights := make([]int, l.Columns)
	for _, g := range l.Groups {
		for c := 0; c < l.Columns; c++ {
			if heights[c] < heights[g.Column] {
				t.Fatalf("group %s placed in column %d (height %d) while column %d is shorter (%d)",
					g.ID, g.Column, heights[g.Column], c, heights[c])
			}
		}
		if g.Y != heights[g.Column] {
			t.Errorf("group %s y = %d, want %d", g.ID, g.Y, heights[g.Column])
		}
		heights[g.Column] += g.Height + 1
	}
}

// TestResizeDropsColumns is the 240-to-60 resize scenario: 4 requested
// columns with a 45-wide minimum collapse below 4 on a narrow terminal.
func TestResizeDropsColumns(t *testing.T) {
	s := Settings{Columns: 4, Padding: 1, RowSpacing: 1, ShowBorders: true, MinGroupWidth: 45}
	e := NewEngine(s, 240, 50, 5)
	e.SetGroups([]*Group{groupWithElements("a", 2), groupWithElements("b", 2)})

	if got := e.Layout().Columns; got != 4 {
		t.Fatalf("expected 4 columns at width 240, got %d", got)
	}

	e.UpdateTerminalSize(60, 50)
	l := e.Layout()
	if l.Columns >= 4 {
		t.Errorf("expected fewer than 4 columns at width 60, got %d", l.Columns)
	}
	if l.Columns != 1 {
		t.Errorf("expected collapse to 1 column, got %d", l.Columns)
	}
	if l.TerminalWidth != 60 {
		t.Errorf("TerminalWidth = %d, want 60", l.TerminalWidth)
	}
}

func TestNeedsScrolling(t *testing.T) {
	e := NewEngine(Settings{Columns: 1, Padding: 1, RowSpacing: 1, ShowBorders: true, MinGroupWidth: 10}, 80, 12, 5)
	e.SetGroups([]*Group{groupWithElements("a", 2)}) // height 4, available 7
	if e.Layout().NeedsScrolling {
		t.Error("expected no scrolling for a short dashboard")
	}

	e.AddGroup(groupWithElements("b", 3)) // stacked: 4+1+5 = 10 > 7
	l := e.Layout()
	if !l.NeedsScrolling {
		t.Errorf("expected scrolling with TotalHeight %d > AvailableHeight %d",
			l.TotalHeight, l.AvailableHeight)
	}
	if l.TotalHeight != 11 {
		t.Errorf("TotalHeight = %d, want 11", l.TotalHeight)
	}
}

func TestMoveGroup(t *testing.T) {
	e := NewEngine(testSettings(), 80, 40, 5)
	e.SetGroups([]*Group{
		groupWithElements("a", 1),
		groupWithElements("b", 1),
		groupWithElements("c", 1),
	})

	tests := []struct {
		name     string
		id       string
		newIndex int
		want     bool
		order    []string
	}{
		{"move to front", "c", 0, true, []string{"c", "a", "b"}},
		{"move to back", "c", 2, true, []string{"a", "b", "c"}},
		{"unknown id", "zz", 0, false, []string{"a", "b", "c"}},
		{"negative index", "a", -1, false, []string{"a", "b", "c"}},
		{"index past end", "a", 3, false, []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.MoveGroup(tt.id, tt.newIndex); got != tt.want {
				t.Fatalf("MoveGroup(%q, %d) = %v, want %v", tt.id, tt.newIndex, got, tt.want)
			}
			for i, id := range tt.order {
				if e.Groups()[i].ID != id {
					t.Errorf("order[%d] = %s, want %s", i, e.Groups()[i].ID, id)
				}
			}
		})
	}
}

func TestRemoveGroup(t *testing.T) {
	e := NewEngine(testSettings(), 80, 40, 5)
	e.SetGroups([]*Group{groupWithElements("a", 1), groupWithElements("b", 1)})

	if !e.RemoveGroup("a") {
		t.Fatal("expected RemoveGroup(a) to succeed")
	}
	if e.RemoveGroup("a") {
		t.Error("expected second RemoveGroup(a) to return false")
	}
	if len(e.Groups()) != 1 || e.Groups()[0].ID != "b" {
		t.Errorf("unexpected groups after removal: %+v", e.Groups())
	}
}

func TestElementMutators(t *testing.T) {
	e := NewEngine(testSettings(), 80, 40, 5)
	e.SetGroups([]*Group{groupWithElements("a", 2), groupWithElements("b", 1)})

	el := &element.Element{ID: "new", Kind: element.KindGauge, Caption: "New"}

	if e.AddElementToGroup("missing", el, -1) {
		t.Error("expected add to unknown group to return false")
	}
	if !e.AddElementToGroup("a", el, 1) {
		t.Fatal("expected add to succeed")
	}
	a := e.FindGroup("a")
	if a.Elements[1].ID != "new" {
		t.Errorf("expected insertion at index 1, got order %v", elementIDs(a))
	}
	// Height recalculated: 3 elements + borders.
	if a.Height != 5 {
		t.Errorf("group height = %d, want 5 after insertion", a.Height)
	}

	if e.RemoveElementFromGroup("a", "nope") {
		t.Error("expected removal of unknown element to return false")
	}
	if !e.MoveElement("new", "a", "b", 0) {
		t.Fatal("expected MoveElement to succeed")
	}
	b := e.FindGroup("b")
	if b.Elements[0].ID != "new" {
		t.Errorf("expected moved element first in b, got %v", elementIDs(b))
	}
	if len(a.Elements) != 2 {
		t.Errorf("expected 2 elements left in a, got %d", len(a.Elements))
	}

	if e.MoveElement("new", "b", "missing", 0) {
		t.Error("expected move to unknown group to return false")
	}
}

func elementIDs(g *Group) []string {
	ids := make([]string, len(g.Elements))
	for i, el := range g.Elements {
		ids[i] = el.ID
	}
	return ids
}

// TestDegenerateSizes verifies the clamping behavior for pathological
// terminals: layouts stay legal instead of failing.
func TestDegenerateSizes(t *testing.T) {
	e := NewEngine(Settings{Columns: 3, Padding: 2, RowSpacing: 1, ShowBorders: true, MinGroupWidth: 30}, 0, 0, 5)
	e.SetGroups([]*Group{groupWithElements("a", 1)})

	l := e.Layout()
	if l.Columns != 1 {
		t.Errorf("Columns = %d, want 1", l.Columns)
	}
	if l.GroupWidth < 1 {
		t.Errorf("GroupWidth = %d, want >= 1", l.GroupWidth)
	}
	if l.AvailableHeight < 1 {
		t.Errorf("AvailableHeight = %d, want >= 1", l.AvailableHeight)
	}
}
