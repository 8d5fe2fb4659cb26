package grid

import "gitlab.com/tinyland/lab/dashgrid/display/element"

// Group is a bordered panel holding an ordered list of elements. The
// placement fields are derived by the layout engine on every pass and must
// never be edited by hand.
type Group struct {
	// ID uniquely identifies the group.
	ID string
	// Title is shown in the border (or above the elements when borders
	// are off).
	Title string
	// Elements is the ordered element list.
	Elements []*element.Element

	// Derived placement, recomputed by CalculateLayout.
	X      int
	Y      int
	Width  int
	Height int
	Column int
}

// FindElement returns the element with the given id, or nil.
func (g *Group) FindElement(id string) *element.Element {
	for _, el := range g.Elements {
		if el.ID == id {
			return el
		}
	}
	return nil
}

// elementIndex returns the position of the element with the given id,
// or -1.
func (g *Group) elementIndex(id string) int {
	for i, el := range g.Elements {
		if el.ID == id {
			return i
		}
	}
	return -1
}
