package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gitlab.com/tinyland/lab/dashgrid/config"
	"gitlab.com/tinyland/lab/dashgrid/display/element"
	"gitlab.com/tinyland/lab/dashgrid/display/grid"
	"gitlab.com/tinyland/lab/dashgrid/display/messages"
	"gitlab.com/tinyland/lab/dashgrid/display/render"
	"gitlab.com/tinyland/lab/dashgrid/display/theme"
	"gitlab.com/tinyland/lab/dashgrid/feed"
)

// app is the demo host: it owns the engine, renderer, feed, and all the
// interaction state the renderer only sees as values.
type app struct {
	engine   *grid.Engine
	renderer *render.Renderer
	feed     *feed.Feed
	log      *messages.Log
	theme    theme.Theme

	selectedGroup   int
	selectedElement int
	commandMode     bool
	input           []rune
	caret           int
}

func newApp(cfg *config.Config, seed int64) *app {
	settings := grid.Settings{
		Columns:       cfg.Layout.Columns,
		Padding:       cfg.Layout.Padding,
		RowSpacing:    cfg.Layout.RowSpacing,
		ShowBorders:   cfg.Layout.ShowBorders,
		MinGroupWidth: cfg.Layout.MinGroupWidth,
	}

	renderer := render.New(os.Stdout, cfg.Display.MessageLines)
	w, h := terminalSize()
	engine := grid.NewEngine(settings, w, h, renderer.ReservedRows())

	f := feed.New(seed)
	engine.SetGroups(f.Groups())

	log := messages.NewLog(messages.DefaultCapacity)
	log.Add("dashgrid started; press q to quit, : for commands")

	return &app{
		engine:          engine,
		renderer:        renderer,
		feed:            f,
		log:             log,
		theme:           theme.Get(cfg.Display.Theme),
		selectedGroup:   -1,
		selectedElement: -1,
	}
}

func (a *app) render() {
	a.renderer.Render(render.Frame{
		Layout:          a.engine.Layout(),
		SelectedGroup:   a.selectedGroup,
		SelectedElement: a.selectedElement,
		Messages:        a.log.Window(a.renderer.ReservedRows() - 1),
		Input:           string(a.input),
		Caret:           a.caret,
		CommandMode:     a.commandMode,
		Theme:           a.theme,
	})
}

// handleKey applies one key event. Returns true when the app should quit.
func (a *app) handleKey(k key) bool {
	if a.commandMode {
		return a.handleCommandKey(k)
	}

	switch {
	case k.kind == keyRune && (k.r == 'q' || k.r == 'Q'), k.kind == keyCtrlC:
		return true
	case k.kind == keyTab, k.kind == keyDown:
		a.moveSelection(1)
	case k.kind == keyShiftTab, k.kind == keyUp:
		a.moveSelection(-1)
	case k.kind == keyLeft:
		a.adjustSelected(-1)
	case k.kind == keyRight:
		a.adjustSelected(1)
	case k.kind == keyEnter, k.kind == keyRune && k.r == ' ':
		a.activateSelected()
	case k.kind == keyRune && k.r == 't':
		a.cycleTheme()
	case k.kind == keyRune && k.r == 'b':
		a.toggleBorders()
	case k.kind == keyRune && k.r == ':':
		a.enterCommandMode()
	}
	return false
}

func (a *app) handleCommandKey(k key) bool {
	switch k.kind {
	case keyCtrlC:
		return true
	case keyEscape:
		a.exitCommandMode()
	case keyEnter:
		cmd := strings.TrimSpace(string(a.input))
		a.exitCommandMode()
		return a.execCommand(cmd)
	case keyBackspace:
		if a.caret > 0 {
			a.input = append(a.input[:a.caret-1], a.input[a.caret:]...)
			a.caret--
		}
	case keyLeft:
		if a.caret > 0 {
			a.caret--
		}
	case keyRight:
		if a.caret < len(a.input) {
			a.caret++
		}
	case keyRune:
		a.input = append(a.input[:a.caret], append([]rune{k.r}, a.input[a.caret:]...)...)
		a.caret++
	}
	return false
}

// enterCommandMode blanks the dashboard region on the next render, so the
// renderer must be invalidated: it cannot see the mode flip in values.
func (a *app) enterCommandMode() {
	a.commandMode = true
	a.input = nil
	a.caret = 0
	a.renderer.Invalidate()
}

func (a *app) exitCommandMode() {
	a.commandMode = false
	a.input = nil
	a.caret = 0
	a.renderer.Invalidate()
}

// execCommand runs one command-mode command. Returns true to quit.
func (a *app) execCommand(cmd string) bool {
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return false
	}

	switch fields[0] {
	case "q", "quit":
		return true

	case "theme":
		if len(fields) < 2 {
			a.log.Add("usage: theme <" + strings.Join(theme.Names(), "|") + ">")
			return false
		}
		a.theme = theme.Get(fields[1])
		a.renderer.Invalidate()
		a.log.Add("theme set to " + a.theme.Name)

	case "columns":
		if len(fields) < 2 {
			a.log.Add("usage: columns <n>")
			return false
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 1 {
			a.log.Add("columns must be a positive number")
			return false
		}
		s := a.engine.Settings()
		s.Columns = n
		a.engine.SetSettings(s)
		a.renderer.Invalidate()
		a.log.Add(fmt.Sprintf("columns set to %d (effective %d)", n, a.engine.Layout().Columns))

	case "borders":
		a.toggleBorders()

	case "clear":
		a.log.Clear()

	default:
		a.log.Add("unknown command: " + fields[0])
	}
	return false
}

func (a *app) cycleTheme() {
	names := theme.Names()
	next := 0
	for i, n := range names {
		if n == a.theme.Name {
			next = (i + 1) % len(names)
		}
	}
	a.theme = theme.Get(names[next])
	a.renderer.Invalidate()
	a.log.Add("theme: " + a.theme.Name)
}

func (a *app) toggleBorders() {
	s := a.engine.Settings()
	s.ShowBorders = !s.ShowBorders
	a.engine.SetSettings(s)
	a.renderer.Invalidate()
	if s.ShowBorders {
		a.log.Add("borders on")
	} else {
		a.log.Add("borders off")
	}
}

// interactiveCell is one selectable position in layout order.
type interactiveCell struct {
	group   int
	element int
}

func (a *app) interactiveCells() []interactiveCell {
	var cells []interactiveCell
	for gi, g := range a.engine.Groups() {
		for ei, el := range g.Elements {
			if el.Interactive() {
				cells = append(cells, interactiveCell{group: gi, element: ei})
			}
		}
	}
	return cells
}

// moveSelection advances the selection over interactive elements in layout
// order, wrapping at both ends.
func (a *app) moveSelection(delta int) {
	cells := a.interactiveCells()
	if len(cells) == 0 {
		return
	}

	current := -1
	for i, c := range cells {
		if c.group == a.selectedGroup && c.element == a.selectedElement {
			current = i
			break
		}
	}

	next := (current + delta + len(cells)) % len(cells)
	if current == -1 && delta < 0 {
		next = len(cells) - 1
	}
	a.selectedGroup = cells[next].group
	a.selectedElement = cells[next].element
}

func (a *app) selected() (g *grid.Group, ei int) {
	groups := a.engine.Groups()
	if a.selectedGroup < 0 || a.selectedGroup >= len(groups) {
		return nil, -1
	}
	g = groups[a.selectedGroup]
	if a.selectedElement < 0 || a.selectedElement >= len(g.Elements) {
		return nil, -1
	}
	return g, a.selectedElement
}

// activateSelected toggles switches and "presses" buttons.
func (a *app) activateSelected() {
	g, ei := a.selected()
	if g == nil {
		return
	}
	el := g.Elements[ei]
	switch el.Kind {
	case element.KindSwitch:
		el.On = !el.On
		a.log.Add(fmt.Sprintf("%s/%s -> %s", g.ID, el.ID, el.DisplayValue()))
	case element.KindButton:
		a.log.Add(fmt.Sprintf("%s/%s pressed", g.ID, el.ID))
	}
}

// adjustSelected nudges the selected slider left or right.
func (a *app) adjustSelected(delta int) {
	g, ei := a.selected()
	if g == nil {
		return
	}
	el := g.Elements[ei]
	if el.Kind != element.KindSlider {
		return
	}
	max := el.Max
	if max <= 0 {
		max = 100
	}
	el.Number += float64(delta)
	if el.Number < 0 {
		el.Number = 0
	}
	if el.Number > max {
		el.Number = max
	}
}
