package longview

import (
	"math"

	"github.com/gdamore/tcell/v3"

	"github.com/ayn2op/longview/window"
)

// ScrollBarArrows controls which endcaps are rendered.
type ScrollBarArrows uint8

const (
	ScrollBarArrowsNone ScrollBarArrows = iota
	ScrollBarArrowsStart
	ScrollBarArrowsEnd
	ScrollBarArrowsBoth
)

func (a ScrollBarArrows) hasStart() bool {
	return a == ScrollBarArrowsStart || a == ScrollBarArrowsBoth
}

func (a ScrollBarArrows) hasEnd() bool {
	return a == ScrollBarArrowsEnd || a == ScrollBarArrowsBoth
}

const subcell = 8

// GlyphSet defines vertical track, arrow, and fractional thumb glyphs.
type GlyphSet struct {
	TrackVertical string

	ArrowVerticalStart string
	ArrowVerticalEnd   string

	ThumbVerticalLower [8]string
	ThumbVerticalUpper [8]string
}

// MinimalGlyphSet returns the minimal glyph set (space track, fractional thumbs).
func MinimalGlyphSet() GlyphSet {
	g := LegacyComputingGlyphSet()
	g.TrackVertical = " "
	return g
}

// BoxDrawingGlyphSet returns box-drawing track glyphs with legacy fractional symbols.
func BoxDrawingGlyphSet() GlyphSet {
	return LegacyComputingGlyphSet()
}

// LegacyComputingGlyphSet returns legacy-computing symbols for full 1/8 fractional fidelity.
func LegacyComputingGlyphSet() GlyphSet {
	return GlyphSet{
		TrackVertical: "│",

		ArrowVerticalStart: "▲",
		ArrowVerticalEnd:   "▼",

		ThumbVerticalLower: [8]string{"▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"},
		ThumbVerticalUpper: [8]string{"▔", "🮂", "🮃", "▀", "🮄", "🮅", "🮆", "█"},
	}
}

// UnicodeGlyphSet returns a standard-unicode-only approximation set.
func UnicodeGlyphSet() GlyphSet {
	return GlyphSet{
		TrackVertical: "│",

		ArrowVerticalStart: "▲",
		ArrowVerticalEnd:   "▼",

		ThumbVerticalLower: [8]string{"▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"},
		ThumbVerticalUpper: [8]string{"▔", "▔", "▀", "▀", "▀", "▀", "█", "█"},
	}
}

// ScrollBar renders the thumb of a virtualized list. Geometry comes from a
// [window.Thumb] measured against a viewport in the same pixel units; the bar
// scales it onto its track in 1/8-cell steps.
type ScrollBar struct {
	*Box

	autoHide bool
	thumb    window.Thumb
	viewport float64

	trackStyle tcell.Style
	thumbStyle tcell.Style
	arrowStyle tcell.Style

	glyphSet GlyphSet
	arrows   ScrollBarArrows

	showTrack bool
}

// NewScrollBar returns a new vertical scrollBar.
func NewScrollBar() *ScrollBar {
	return &ScrollBar{
		Box:        NewBox(),
		autoHide:   true,
		thumb:      window.Thumb{Rate: 1},
		trackStyle: tcell.StyleDefault.Foreground(Styles.TrackColor).Dim(true),
		thumbStyle: tcell.StyleDefault.Foreground(Styles.ThumbColor),
		arrowStyle: tcell.StyleDefault.Dim(true),
		glyphSet:   MinimalGlyphSet(),
		arrows:     ScrollBarArrowsNone,
		showTrack:  true,
	}
}

// SetThumb sets the thumb geometry and the viewport height it was measured
// against.
func (s *ScrollBar) SetThumb(thumb window.Thumb, viewport float64) *ScrollBar {
	s.thumb = thumb
	s.viewport = max(viewport, 0)
	return s
}

// Thumb returns the current thumb geometry.
func (s *ScrollBar) Thumb() window.Thumb {
	return s.thumb
}

// SetGlyphSet applies a glyph set.
func (s *ScrollBar) SetGlyphSet(g GlyphSet) *ScrollBar {
	s.glyphSet = g
	return s
}

// SetArrows sets which arrow endcaps are rendered.
func (s *ScrollBar) SetArrows(arrows ScrollBarArrows) *ScrollBar {
	s.arrows = arrows
	return s
}

// SetAutoHide controls whether the scrollBar is hidden when everything fits.
func (s *ScrollBar) SetAutoHide(autoHide bool) *ScrollBar {
	s.autoHide = autoHide
	return s
}

// SetThumbGlyph sets all thumb glyphs to a single symbol.
func (s *ScrollBar) SetThumbGlyph(glyph string) *ScrollBar {
	for i := range len(s.glyphSet.ThumbVerticalLower) {
		s.glyphSet.ThumbVerticalLower[i] = glyph
		s.glyphSet.ThumbVerticalUpper[i] = glyph
	}
	return s
}

// SetThumbStyle sets the thumb style.
func (s *ScrollBar) SetThumbStyle(style tcell.Style) *ScrollBar {
	s.thumbStyle = style
	return s
}

// SetTrackGlyph sets the track symbol and visibility.
func (s *ScrollBar) SetTrackGlyph(glyph string, visible bool) *ScrollBar {
	s.glyphSet.TrackVertical = glyph
	s.showTrack = visible
	return s
}

// SetTrackStyle sets the track style.
func (s *ScrollBar) SetTrackStyle(style tcell.Style) *ScrollBar {
	s.trackStyle = style
	return s
}

// SetArrowStyle sets the arrow endcap style.
func (s *ScrollBar) SetArrowStyle(style tcell.Style) *ScrollBar {
	s.arrowStyle = style
	return s
}

func (s *ScrollBar) startArrows() int {
	if s.arrows.hasStart() {
		return 1
	}
	return 0
}

func (s *ScrollBar) trackLengthExcludingArrowHeads(length int) int {
	if length <= 0 {
		return 0
	}
	arrows := s.startArrows()
	if s.arrows.hasEnd() {
		arrows++
	}
	return max(length-arrows, 0)
}

type scrollMetrics struct {
	trackCells int
	trackLen   int
	thumbLen   int
	thumbStart int
}

// metrics computes scrollBar geometry in subcell units.
func (s *ScrollBar) metrics(length int) scrollMetrics {
	return computeScrollMetrics(s.trackLengthExcludingArrowHeads(length), s.thumb, s.viewport)
}

func computeScrollMetrics(trackCells int, thumb window.Thumb, viewport float64) scrollMetrics {
	trackLen := trackCells * subcell
	if trackLen == 0 {
		return scrollMetrics{}
	}
	if !thumb.Visible() || viewport <= 0 {
		return scrollMetrics{trackCells: trackCells, trackLen: trackLen, thumbLen: trackLen}
	}

	scale := float64(trackLen) / viewport
	thumbLen := min(max(int(math.Round(thumb.Height*scale)), subcell), trackLen)
	thumbStart := min(max(int(math.Round(thumb.OffsetTop*scale)), 0), trackLen-thumbLen)
	return scrollMetrics{trackCells: trackCells, trackLen: trackLen, thumbLen: thumbLen, thumbStart: thumbStart}
}

func (s *ScrollBar) shouldDraw(length int, m scrollMetrics) bool {
	if length <= 0 || m.trackLen == 0 {
		return false
	}
	return !s.autoHide || s.thumb.Visible()
}
func cellFill(m scrollMetrics, cellIndex int) (start int, fillLen int) {
	if m.thumbLen == 0 {
		return 0, 0
	}
	cellStart := cellIndex * subcell
	cellEnd := cellStart + subcell
	thumbEnd := m.thumbStart + m.thumbLen
	start = max(m.thumbStart, cellStart)
	end := min(thumbEnd, cellEnd)
	if end <= start {
		return 0, 0
	}
	// Convert absolute subcell coverage into cell-local [start,len] used by fractional glyph selection.
	fillLen = min(end-start, subcell)
	start = min(max(start-cellStart, 0), subcell)
	return start, fillLen
}

func (s *ScrollBar) glyphForVertical(start, fillLen int) (string, tcell.Style) {
	if fillLen <= 0 {
		if !s.showTrack {
			return " ", s.trackStyle
		}
		return s.glyphSet.TrackVertical, s.trackStyle
	}
	if fillLen >= subcell {
		return s.glyphSet.ThumbVerticalLower[7], s.thumbStyle
	}
	ix := fillLen - 1
	if start == 0 {
		return s.glyphSet.ThumbVerticalUpper[ix], s.thumbStyle
	}
	return s.glyphSet.ThumbVerticalLower[ix], s.thumbStyle
}

func (s *ScrollBar) put(screen tcell.Screen, x, y, index int, glyph string, style tcell.Style) {
	screen.Put(x, y+index, glyph, style)
}

// trackCell returns the track cell under screen row y, or false when y is
// outside the track.
func (s *ScrollBar) trackCell(y int) (int, scrollMetrics, bool) {
	_, top, _, height := s.GetInnerRect()
	m := s.metrics(height)
	cell := y - top - s.startArrows()
	if m.trackLen == 0 || cell < 0 || cell >= m.trackCells {
		return 0, m, false
	}
	return cell, m, true
}

// OnThumb reports whether screen row y touches the thumb.
func (s *ScrollBar) OnThumb(y int) bool {
	cell, m, ok := s.trackCell(y)
	if !ok || !s.thumb.Visible() {
		return false
	}
	_, fill := cellFill(m, cell)
	return fill > 0
}

// OffsetAt converts screen row y into a thumb offset in viewport units. The
// offset is shifted by grab, the distance in cells between the pointer and the
// top of the thumb when a drag started.
func (s *ScrollBar) OffsetAt(y int, grab float64) float64 {
	cell, m, ok := s.trackCell(y)
	if !ok {
		_, top, _, _ := s.GetInnerRect()
		if y < top+s.startArrows() {
			return 0
		}
		cell = m.trackCells
	}
	if m.trackLen == 0 {
		return 0
	}
	scale := s.viewport / float64(m.trackLen)
	return max((float64(cell)-grab)*subcell*scale, 0)
}

// GrabAt returns the distance in cells between screen row y and the top of the
// thumb.
func (s *ScrollBar) GrabAt(y int) float64 {
	cell, m, ok := s.trackCell(y)
	if !ok {
		return 0
	}
	return float64(cell) - float64(m.thumbStart)/subcell
}

// Draw draws the scrollBar.
func (s *ScrollBar) Draw(screen tcell.Screen) {
	s.DrawForSubclass(screen, s)

	x, y, _, height := s.GetInnerRect()
	if height <= 0 {
		return
	}
	length := height
	m := s.metrics(length)
	if !s.shouldDraw(length, m) {
		return
	}

	idx := 0
	if s.arrows.hasStart() {
		s.put(screen, x, y, idx, s.glyphSet.ArrowVerticalStart, s.arrowStyle)
		idx++
	}

	for cell := 0; cell < m.trackCells; cell++ {
		start, fillLen := cellFill(m, cell)
		glyph, style := s.glyphForVertical(start, fillLen)
		s.put(screen, x, y, idx, glyph, style)
		idx++
	}

	if s.arrows.hasEnd() {
		s.put(screen, x, y, idx, s.glyphSet.ArrowVerticalEnd, s.arrowStyle)
	}
}

var _ Primitive = &ScrollBar{}
