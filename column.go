package longview

import "github.com/gdamore/tcell/v3"

// Sizer is implemented by primitives that know how many rows they need at a
// given width.
type Sizer interface {
	Height(width int) int
}

type columnItem struct {
	item   Primitive
	height int // Fixed height, 0 fills the remaining space.
}

// Column stacks primitives vertically. Fixed items keep their height (or ask
// a [Sizer]), the others share what is left.
type Column struct {
	*Box

	items []*columnItem

	// Called for every key before it reaches the focused item. A non-nil
	// command stops the event there.
	inputCapture func(event *tcell.EventKey) Command
}

// NewColumn returns an empty column.
func NewColumn() *Column {
	c := &Column{Box: NewBox()}
	c.dontClear = true
	return c
}

// AddItem appends item. A height of 0 lets it fill the remaining space.
func (c *Column) AddItem(item Primitive, height int) *Column {
	c.items = append(c.items, &columnItem{item: item, height: max(height, 0)})
	return c
}

// SetInputCapture installs a function called for every key event before it is
// forwarded.
func (c *Column) SetInputCapture(capture func(event *tcell.EventKey) Command) *Column {
	c.inputCapture = capture
	return c
}

func (c *Column) layout() {
	x, y, width, height := c.GetInnerRect()

	heights := make([]int, len(c.items))
	fixed, flexible := 0, 0
	for i, it := range c.items {
		h := it.height
		if s, ok := it.item.(Sizer); ok && h > 0 {
			h = s.Height(width)
		}
		if it.height == 0 {
			flexible++
			continue
		}
		heights[i] = h
		fixed += h
	}

	rest := max(height-fixed, 0)
	for i, it := range c.items {
		if it.height == 0 && flexible > 0 {
			share := rest / flexible
			heights[i] = share
			rest -= share
			flexible--
		}
	}

	for i, it := range c.items {
		h := min(heights[i], max(height, 0))
		it.item.SetRect(x, y, width, h)
		y += h
		height -= h
	}
}

// Draw draws this primitive onto the screen.
func (c *Column) Draw(screen tcell.Screen) {
	c.DrawForSubclass(screen, c)
	c.layout()
	for _, it := range c.items {
		if _, _, w, h := it.item.GetRect(); w > 0 && h > 0 {
			it.item.Draw(screen)
		}
	}
}

// InputHandler forwards key events to the focused item.
func (c *Column) InputHandler(event *tcell.EventKey) Command {
	if c.inputCapture != nil {
		if cmd := c.inputCapture(event); cmd != nil {
			return cmd
		}
	}
	for _, it := range c.items {
		if it.item.HasFocus() {
			return it.item.InputHandler(event)
		}
	}
	return nil
}

// MouseHandler forwards mouse events to the item under the pointer.
func (c *Column) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	if !c.InRect(event.Position()) {
		return nil, nil
	}
	x, y := event.Position()
	for _, it := range c.items {
		ix, iy, w, h := it.item.GetRect()
		if x >= ix && x < ix+w && y >= iy && y < iy+h {
			return it.item.MouseHandler(action, event)
		}
	}
	return nil, nil
}

// HasFocus returns whether this column or one of its items has focus.
func (c *Column) HasFocus() bool {
	for _, it := range c.items {
		if it.item.HasFocus() {
			return true
		}
	}
	return c.Box.HasFocus()
}

// Focus passes the focus to the first flexible item.
func (c *Column) Focus(delegate func(p Primitive)) {
	if delegate == nil {
		return
	}
	for _, it := range c.items {
		if it.height == 0 {
			delegate(it.item)
			return
		}
	}
	c.Box.Focus(delegate)
}

var _ Primitive = (*Column)(nil)
