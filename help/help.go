// Package help draws the key hints shown below the list.
package help

import (
	"strings"

	"github.com/gdamore/tcell/v3"

	"github.com/ayn2op/longview"
	"github.com/ayn2op/longview/keybind"
	"github.com/ayn2op/longview/window"
)

const (
	shortSeparator = " • "
	columnGap      = "    "
	ellipsis       = "…"
)

// The actions of the one-line bar, in order.
var shortActions = []window.Action{
	window.ActionLineDown,
	window.ActionLineUp,
	window.ActionPageDown,
	window.ActionHome,
	window.ActionEnd,
}

// The columns of the full view. Help and quit form a last column.
var actionColumns = [][]window.Action{
	{window.ActionLineUp, window.ActionLineDown},
	{window.ActionPageUp, window.ActionPageDown},
	{window.ActionHome, window.ActionEnd},
}

// Styles of the help bar.
type Styles struct {
	Key       tcell.Style
	Desc      tcell.Style
	Separator tcell.Style
}

// DefaultStyles derives the help styles from the list theme.
func DefaultStyles() Styles {
	return Styles{
		Key:       tcell.StyleDefault.Foreground(longview.Styles.SecondaryTextColor),
		Desc:      tcell.StyleDefault.Foreground(longview.Styles.PrimaryTextColor),
		Separator: tcell.StyleDefault.Foreground(longview.Styles.PendingTextColor).Dim(true),
	}
}

// Help is a one-line hint bar that can expand into a column per action group.
type Help struct {
	*longview.Box

	styles Styles
	keymap *keybind.Keymap
	full   bool
}

// New returns a help bar for keymap in short mode.
func New(keymap *keybind.Keymap) *Help {
	return &Help{
		Box:    longview.NewBox(),
		styles: DefaultStyles(),
		keymap: keymap,
	}
}

// SetStyles replaces the styles.
func (h *Help) SetStyles(styles Styles) *Help {
	h.styles = styles
	return h
}

// Full reports whether every binding is shown.
func (h *Help) Full() bool {
	return h.full
}

// Toggle switches between the one-line bar and the full view.
func (h *Help) Toggle() *Help {
	h.full = !h.full
	return h
}

// Height returns the number of rows needed at width.
func (h *Help) Height(width int) int {
	if h.keymap == nil {
		return 0
	}
	if !h.full {
		return 1
	}
	return max(len(h.fullLines(width)), 1)
}

// Draw draws this primitive onto the screen.
func (h *Help) Draw(screen tcell.Screen) {
	h.DrawForSubclass(screen, h)
	if h.keymap == nil {
		return
	}

	x, y, width, height := h.GetInnerRect()
	lines := [][]segment{h.shortLine(width)}
	if h.full {
		lines = h.fullLines(width)
	}
	for row := 0; row < len(lines) && row < height; row++ {
		cursor, remaining := x, width
		for _, s := range lines[row] {
			if remaining <= 0 {
				break
			}
			_, printed := longview.PrintWithStyle(screen, s.text, cursor, y+row, remaining, longview.AlignmentLeft, s.style)
			cursor += printed
			remaining -= printed
		}
	}
}

type entry struct {
	key  string
	desc string
}

type segment struct {
	text  string
	style tcell.Style
}

func entries(bindings ...keybind.Keybind) []entry {
	out := make([]entry, 0, len(bindings))
	for _, kb := range bindings {
		if kb.Enabled() {
			out = append(out, entry{key: kb.Label(), desc: kb.Desc()})
		}
	}
	return out
}

func (h *Help) actionEntries(actions []window.Action) []entry {
	bindings := make([]keybind.Keybind, 0, len(actions))
	for _, a := range actions {
		bindings = append(bindings, h.keymap.Binding(a))
	}
	return entries(bindings...)
}

func (h *Help) shortEntries() []entry {
	return append(h.actionEntries(shortActions), entries(h.keymap.Help, h.keymap.Quit)...)
}

func (h *Help) columns() [][]entry {
	columns := make([][]entry, 0, len(actionColumns)+1)
	for _, actions := range actionColumns {
		if col := h.actionEntries(actions); len(col) > 0 {
			columns = append(columns, col)
		}
	}
	if col := entries(h.keymap.Help, h.keymap.Quit); len(col) > 0 {
		columns = append(columns, col)
	}
	return columns
}

// shortLine joins entries until the next one would not fit in maxWidth, then
// ends with an ellipsis if there is room for it. A maxWidth of 0 means no
// limit.
func (h *Help) shortLine(maxWidth int) []segment {
	items := h.shortEntries()
	if len(items) == 0 {
		return nil
	}
	sep := segment{text: shortSeparator, style: h.styles.Separator}

	out := h.entrySegments(items[0])
	if maxWidth > 0 && width(out) > maxWidth {
		return nil
	}
	for _, e := range items[1:] {
		candidate := append(append(clone(out), sep), h.entrySegments(e)...)
		if maxWidth > 0 && width(candidate) > maxWidth {
			return append(out, h.ellipsisTail(out, maxWidth)...)
		}
		out = candidate
	}
	return out
}

func (h *Help) entrySegments(e entry) []segment {
	return []segment{
		{text: e.key, style: h.styles.Key},
		{text: " ", style: h.styles.Desc},
		{text: e.desc, style: h.styles.Desc},
	}
}

// fullLines lays the columns out left to right. Columns that do not fit are
// dropped and the first line ends with an ellipsis.
func (h *Help) fullLines(maxWidth int) [][]segment {
	type column struct {
		entries    []entry
		keyW, colW int
	}

	var columns []column
	for _, group := range h.columns() {
		col := column{entries: group}
		for _, e := range group {
			col.keyW = max(col.keyW, longview.StringWidth(e.key))
		}
		for _, e := range group {
			col.colW = max(col.colW, col.keyW+1+longview.StringWidth(e.desc))
		}
		columns = append(columns, col)
	}
	if len(columns) == 0 {
		return nil
	}

	gapW := longview.StringWidth(columnGap)
	included, total := 0, 0
	for i, col := range columns {
		next := col.colW
		if i > 0 {
			next += gapW
		}
		if maxWidth > 0 && total+next > maxWidth {
			break
		}
		included++
		total += next
	}
	if included == 0 {
		return [][]segment{{{text: ellipsis, style: h.styles.Separator}}}
	}

	rows := 0
	for _, col := range columns[:included] {
		rows = max(rows, len(col.entries))
	}

	lines := make([][]segment, 0, rows)
	for row := range rows {
		var line []segment
		for i, col := range columns[:included] {
			if i > 0 {
				line = append(line, segment{text: columnGap, style: h.styles.Separator})
			}
			if row >= len(col.entries) {
				// Keeps the gaps of later columns aligned.
				line = append(line, segment{text: strings.Repeat(" ", col.colW), style: h.styles.Desc})
				continue
			}
			e := col.entries[row]
			cell := []segment{
				{text: e.key + strings.Repeat(" ", col.keyW-longview.StringWidth(e.key)), style: h.styles.Key},
				{text: " " + e.desc, style: h.styles.Desc},
			}
			if pad := col.colW - width(cell); i < included-1 && pad > 0 {
				cell = append(cell, segment{text: strings.Repeat(" ", pad), style: h.styles.Desc})
			}
			line = append(line, cell...)
		}
		lines = append(lines, line)
	}

	if included < len(columns) {
		lines[0] = append(lines[0], h.ellipsisTail(lines[0], maxWidth)...)
	}
	return lines
}

// ellipsisTail returns " …" when it fits after current, nothing otherwise.
func (h *Help) ellipsisTail(current []segment, maxWidth int) []segment {
	tail := []segment{{text: " " + ellipsis, style: h.styles.Separator}}
	if maxWidth > 0 && width(current)+width(tail) <= maxWidth {
		return tail
	}
	return nil
}

func width(segments []segment) int {
	w := 0
	for _, s := range segments {
		w += longview.StringWidth(s.text)
	}
	return w
}

func clone(in []segment) []segment {
	return append([]segment(nil), in...)
}
