package window

import (
	"math"
	"time"
)

// Mode selects how pixel offsets map to rows.
type Mode uint8

const (
	// ModeNone means there is nothing to scroll (empty store or no geometry).
	ModeNone Mode = iota
	// ModeDirect maps offsets proportionally onto the full content height.
	ModeDirect
	// ModeScaled squeezes the content into MaxScrollHeight pixels.
	ModeScaled
)

func (m Mode) String() string {
	switch m {
	case ModeDirect:
		return "direct"
	case ModeScaled:
		return "scaled"
	default:
		return "none"
	}
}

// ScrollModel holds the per-axis scroll geometry. Like WindowState it is a
// value; every event produces a new model.
type ScrollModel struct {
	Mode Mode
	// Ratio between container pixels and content pixels.
	Scale float64
	// Bounds for offsets written to the container.
	MinScrollTop int
	MaxScrollTop int
	// Full content height, -1 when unset.
	HeightFiller int
	// Height of the scroll area given to the container.
	ScrollHeight int
	ItemHeight   int
	// Last offset seen on or written to the container, -1 when unset.
	Cache int
	// Time of the last wheel event.
	LastWheel time.Time
	// Pending programmatic target row, -1 when none.
	ScrollTo int
}

// NewScrollModel returns a model in its initial state.
func NewScrollModel() ScrollModel {
	return ScrollModel{
		Scale:        1,
		HeightFiller: -1,
		Cache:        -1,
		ScrollTo:     -1,
	}
}

// Layout recomputes the geometry for total rows and a viewport of the given
// height. Cache, ScrollTo and LastWheel carry over. An empty store or missing
// row height resets the model.
func (m ScrollModel) Layout(total, itemHeight, viewport int, s Settings) ScrollModel {
	if total <= 0 || itemHeight <= 0 {
		reset := NewScrollModel()
		reset.ItemHeight = itemHeight
		return reset
	}
	full := total * itemHeight
	m.ItemHeight = itemHeight
	m.HeightFiller = full
	if full < s.MaxScrollHeight {
		m.Mode = ModeDirect
		m.Scale = 1
		m.ScrollHeight = full
		m.MinScrollTop = s.MinScrollTopDirect
	} else {
		m.Mode = ModeScaled
		m.Scale = float64(s.MaxScrollHeight) / float64(full)
		m.ScrollHeight = s.MaxScrollHeight
		m.MinScrollTop = s.MinScrollTopScaled
	}
	m.MaxScrollTop = max(m.ScrollHeight-viewport, m.MinScrollTop, 0)
	if m.MinScrollTop > m.MaxScrollTop {
		m.MinScrollTop = m.MaxScrollTop
	}
	return m
}

// Limit returns the largest offset the container itself can reach.
func (m ScrollModel) Limit(viewport int) int {
	return max(m.ScrollHeight-viewport, 0)
}

// Correct clamps an offset into [MinScrollTop, MaxScrollTop].
func (m ScrollModel) Correct(scrollTop int) int {
	if scrollTop < m.MinScrollTop {
		scrollTop = m.MinScrollTop
	}
	if scrollTop > m.MaxScrollTop {
		scrollTop = m.MaxScrollTop
	}
	return scrollTop
}

// OffsetFor maps a row to the container offset that shows it at the top.
func (m ScrollModel) OffsetFor(row, viewport int) int {
	top := int(math.Round(float64(row*m.ItemHeight) * m.Scale))
	if top+viewport > m.ScrollHeight {
		top = m.MaxScrollTop
	}
	return top
}

// Wheeling reports whether input at now is still attributed to the last wheel
// event.
func (m ScrollModel) Wheeling(now time.Time, window time.Duration) bool {
	return !m.LastWheel.IsZero() && now.Sub(m.LastWheel) < window
}

// ScrollUpdate is the outcome of mapping one scroll offset.
type ScrollUpdate struct {
	State WindowState
	// Offset to remember; written back to the container when Rescroll is set.
	ScrollTop int
	Redraw    bool
	Rescroll  bool
}

// Map turns a container offset into the next window state.
func (m ScrollModel) Map(scrollTop int, st WindowState, total int, now time.Time, s Settings) ScrollUpdate {
	if m.ScrollTo >= 0 {
		return ScrollUpdate{State: st.WithStart(m.ScrollTo, total), ScrollTop: m.Correct(scrollTop), Redraw: true}
	}
	change := scrollTop
	if m.Cache != -1 {
		change = scrollTop - m.Cache
	}
	direction := -1
	if change > 0 {
		direction = 1
	}
	if m.Mode == ModeScaled {
		return m.mapScaled(scrollTop, change, direction, st, total, m.Wheeling(now, s.WheelWindow))
	}
	return m.mapDirect(scrollTop, direction, st, total)
}

func (m ScrollModel) mapDirect(scrollTop, direction int, st WindowState, total int) ScrollUpdate {
	start := 0
	if m.HeightFiller > 0 {
		start = int(math.Round(float64(scrollTop) / float64(m.HeightFiller) * float64(total)))
	}
	start = keepDirection(start, st.Start, direction)
	return ScrollUpdate{State: st.WithStart(start, total), ScrollTop: m.Correct(scrollTop), Redraw: true}
}

func (m ScrollModel) mapScaled(scrollTop, change, direction int, st WindowState, total int, wheel bool) ScrollUpdate {
	if direction < 0 && st.Start == 0 {
		return ScrollUpdate{State: st, ScrollTop: m.MinScrollTop}
	}
	if direction > 0 && st.End == total-1 {
		return ScrollUpdate{State: st, ScrollTop: m.MaxScrollTop}
	}
	start := st.Start
	if wheel {
		delta := max(abs(change), m.ItemHeight)
		start += int(math.Round(float64(delta)/float64(m.ItemHeight))) * direction
	} else {
		if m.MaxScrollTop > 0 {
			start = int(math.Round(float64(scrollTop) / float64(m.MaxScrollTop) * float64(total-1)))
		} else {
			start = 0
		}
		start = keepDirection(start, st.Start, direction)
	}
	next := st.WithStart(start, total)
	if !wheel {
		return ScrollUpdate{State: next, ScrollTop: m.Correct(scrollTop), Redraw: true}
	}
	top := int(math.Round(float64(next.Start*m.ItemHeight) * m.Scale))
	return ScrollUpdate{State: next, ScrollTop: m.Correct(top), Redraw: true, Rescroll: true}
}

// keepDirection suppresses rounding jitter: a downward move never lowers the
// start and an upward move never raises it.
func keepDirection(start, current, direction int) int {
	if direction > 0 && current > start {
		return current
	}
	if direction < 0 && current < start {
		return current
	}
	return start
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
