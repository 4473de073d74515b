package longview

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v3"

	"github.com/ayn2op/longview/keybind"
	"github.com/ayn2op/longview/window"
)

// scrollSurface is the list's scroll offset. Like a native scroll container
// it reports every change back to the engine.
type scrollSurface struct {
	top    int
	engine *window.Engine
}

func (s *scrollSurface) ScrollTop() int {
	return s.top
}

func (s *scrollSurface) SetScrollTop(top int) {
	if top == s.top {
		return
	}
	s.top = top
	if s.engine != nil {
		s.engine.OnScroll(top)
	}
}

// InfiniteList shows a window of rows from a [window.Bridge] of any size.
// Only the rows in the window are requested. Rows that have not arrived yet
// are drawn as placeholders until the bridge delivers them.
type InfiniteList struct {
	*Box

	engine  *window.Engine
	surface *scrollSurface
	bar     *ScrollBar
	keymap  *keybind.Keymap

	rowFunc      func(window.Slot) string
	rowStyle     tcell.Style
	pendingStyle tcell.Style
	indexStyle   tcell.Style
	showIndex    bool
	showPosition bool
	wheelStep    int
	tabWidth     int

	height   int
	dragging bool
	grab     float64
}

// NewInfiniteList returns a list reading rows from bridge. Deferred renders
// run through d, usually the [Application].
func NewInfiniteList(bridge window.Bridge, d window.Deferrer, opts ...window.Option) *InfiniteList {
	surface := &scrollSurface{}
	l := &InfiniteList{
		Box:          NewBox(),
		surface:      surface,
		bar:          NewScrollBar(),
		keymap:       keybind.DefaultKeymap(),
		rowFunc:      defaultRowText,
		rowStyle:     tcell.StyleDefault.Foreground(Styles.PrimaryTextColor),
		pendingStyle: tcell.StyleDefault.Foreground(Styles.PendingTextColor).Dim(true),
		indexStyle:   tcell.StyleDefault.Foreground(Styles.SecondaryTextColor).Dim(true),
		showPosition: true,
		wheelStep:    3,
		tabWidth:     4,
	}
	l.bar.SetRect(0, 0, 0, 0)
	l.engine = window.New(bridge, surface, d, opts...)
	surface.engine = l.engine
	return l
}

func defaultRowText(slot window.Slot) string {
	switch row := slot.Row.(type) {
	case nil:
		return ""
	case string:
		return row
	case fmt.Stringer:
		return row.String()
	default:
		return fmt.Sprint(row)
	}
}

// Engine returns the windowing engine. Bridges notify it, usually through
// [Application.Listener].
func (l *InfiniteList) Engine() *window.Engine {
	return l.engine
}

// ScrollBar returns the scrollbar so its glyphs and styles can be customized.
func (l *InfiniteList) ScrollBar() *ScrollBar {
	return l.bar
}

// Keymap returns the key bindings used for navigation.
func (l *InfiniteList) Keymap() *keybind.Keymap {
	return l.keymap
}

// SetKeymap replaces the key bindings.
func (l *InfiniteList) SetKeymap(keymap *keybind.Keymap) *InfiniteList {
	if keymap != nil {
		l.keymap = keymap
	}
	return l
}

// SetRowFunc sets the function that turns a delivered row into text.
func (l *InfiniteList) SetRowFunc(fn func(window.Slot) string) *InfiniteList {
	if fn != nil {
		l.rowFunc = fn
	}
	return l
}

// SetRowStyle sets the style of delivered rows.
func (l *InfiniteList) SetRowStyle(style tcell.Style) *InfiniteList {
	l.rowStyle = style
	return l
}

// SetPendingStyle sets the style of placeholder rows.
func (l *InfiniteList) SetPendingStyle(style tcell.Style) *InfiniteList {
	l.pendingStyle = style
	return l
}

// SetShowIndex enables a gutter with the absolute row index.
func (l *InfiniteList) SetShowIndex(show bool) *InfiniteList {
	l.showIndex = show
	return l
}

// SetShowPosition controls the "first-last of total" footer.
func (l *InfiniteList) SetShowPosition(show bool) *InfiniteList {
	l.showPosition = show
	if !show {
		l.SetFooter("")
	}
	return l
}

// SetWheelStep sets how many rows one wheel notch scrolls.
func (l *InfiniteList) SetWheelStep(rows int) *InfiniteList {
	l.wheelStep = max(rows, 1)
	return l
}

// Navigate applies a navigation action and reports whether the window moved.
func (l *InfiniteList) Navigate(a window.Action) bool {
	return l.engine.Navigate(a)
}

// ScrollTo shows row a few rows below the top of the frame.
func (l *InfiniteList) ScrollTo(row int) {
	l.engine.OnScrollTo(row)
}

// Draw draws this primitive onto the screen.
func (l *InfiniteList) Draw(screen tcell.Screen) {
	if l.showPosition {
		// The footer is set before drawing so the inner rect accounts for it.
		l.SetFooter(l.position())
	}
	l.DrawForSubclass(screen, l)

	x, y, width, height := l.GetInnerRect()
	l.sync(height)
	if l.showPosition {
		if footer := l.position(); footer != l.GetFooter() {
			l.SetFooter(footer)
			l.DrawForSubclass(screen, l)
		}
	}
	if width <= 0 || height <= 0 {
		return
	}

	if l.engine.ScrollbarVisible() && width > 1 {
		width--
		l.bar.SetRect(x+width, y, 1, height)
		l.bar.SetThumb(l.engine.Thumb(), float64(l.engine.Viewport().Height))
		l.bar.Draw(screen)
	} else {
		l.bar.SetRect(x+width, y, 0, 0)
	}

	gutter := 0
	if l.showIndex {
		gutter = len(strconv.Itoa(max(l.engine.Storage().Count, 1))) + 1
		if gutter >= width {
			gutter = 0
		}
	}

	for i, slot := range l.engine.Rows() {
		if i >= height {
			break
		}
		row := y + i
		if gutter > 0 {
			PrintWithStyle(screen, strconv.Itoa(slot.Index), x, row, gutter-1, AlignmentRight, l.indexStyle)
		}
		if slot.Pending {
			fill(screen, x+gutter, row, width-gutter, BlockLightShade, l.pendingStyle)
			continue
		}
		PrintWithStyle(screen, SanitizeRow(l.rowFunc(slot), l.tabWidth), x+gutter, row, width-gutter, AlignmentLeft, l.rowStyle)
	}
}

// sync attaches the engine on the first draw and re-measures it when the
// height changes.
func (l *InfiniteList) sync(height int) {
	switch {
	case !l.engine.Attached():
		l.height = height
		l.engine.Attach(height)
	case height != l.height:
		l.height = height
		l.engine.OnResize(height, false)
	}
}

func (l *InfiniteList) position() string {
	total := l.engine.Storage().Count
	st := l.engine.State()
	if st.Empty() {
		return fmt.Sprintf("0 of %d", total)
	}
	return fmt.Sprintf("%d-%d of %d", st.Start+1, st.End+1, total)
}

// InputHandler maps navigation keys to window actions.
func (l *InfiniteList) InputHandler(event *tcell.EventKey) Command {
	action := l.keymap.Lookup(event)
	if action == window.ActionNone {
		return nil
	}
	if l.Navigate(action) {
		return RedrawCommand{}
	}
	return ConsumeEventCommand{}
}

// MouseHandler scrolls on wheel events and drags the scrollbar thumb. A drag
// captures the mouse until the button is released.
func (l *InfiniteList) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	x, y := event.Position()

	if l.dragging {
		switch action {
		case MouseMove:
			l.engine.OnThumbDrag(l.bar.OffsetAt(y, l.grab))
			return l, RedrawCommand{}
		case MouseLeftUp:
			l.dragging = false
			return nil, RedrawCommand{}
		}
		return l, nil
	}

	if !l.InRect(x, y) {
		return nil, nil
	}
	onBar := l.engine.ScrollbarVisible() && l.bar.InRect(x, y)
	step := l.wheelStep * max(l.engine.Viewport().ItemHeight, 1)

	switch action {
	case MouseScrollUp, MouseScrollDown:
		direction := 1
		if action == MouseScrollUp {
			direction = -1
		}
		if onBar {
			l.engine.OnThumbScroll(step, direction)
		} else {
			l.engine.OnWheel(direction * step)
		}
		return nil, RedrawCommand{}
	case MouseLeftDown:
		cmd := Command(SetFocusCommand{Target: l})
		if !onBar {
			return nil, cmd
		}
		if l.bar.OnThumb(y) {
			l.dragging = true
			l.grab = l.bar.GrabAt(y)
			return l, cmd
		}
		page := window.ActionPageDown
		if l.bar.OffsetAt(y, 0) < l.engine.Thumb().OffsetTop {
			page = window.ActionPageUp
		}
		l.Navigate(page)
		return nil, AppendCommand(cmd, RedrawCommand{})
	}
	return nil, nil
}

var _ Primitive = (*InfiniteList)(nil)
