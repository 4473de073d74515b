package window

import "math"

// Thumb is the geometry of the synthetic vertical scrollbar thumb, in the same
// unit as the viewport height.
type Thumb struct {
	Height    float64
	OffsetTop float64
	// Viewport height divided by content height.
	Rate float64
}

// Visible reports whether the content overflows the viewport.
func (t Thumb) Visible() bool {
	return t.Rate < 1
}

// NewThumb sizes the thumb for total rows of itemHeight shown in a viewport of
// the given height. A thumb is never shorter than minThumb nor taller than
// the viewport.
func NewThumb(total, itemHeight, viewport int, minThumb float64) Thumb {
	content := total * itemHeight
	if content <= 0 || viewport <= 0 {
		return Thumb{Rate: 1}
	}
	t := Thumb{Rate: float64(viewport) / float64(content)}
	if !t.Visible() {
		return t
	}
	t.Height = min(max(float64(viewport)*t.Rate, minThumb), float64(viewport))
	return t
}

func (t Thumb) travel(viewport int) float64 {
	return max(float64(viewport)-t.Height, 0)
}

// At positions the thumb for a committed window state.
func (t Thumb) At(st WindowState, total, viewport int) Thumb {
	if !t.Visible() {
		t.OffsetTop = 0
		return t
	}
	travel := t.travel(viewport)
	span := total - st.Count
	if span <= 0 {
		t.OffsetTop = 0
		return t
	}
	offset := float64(st.Start+1) / float64(span) * travel
	t.OffsetTop = min(max(offset, 0), travel)
	return t
}

// StartAt maps a thumb offset back to the first row it represents.
func (t Thumb) StartAt(offset float64, st WindowState, total, viewport int) int {
	travel := t.travel(viewport)
	span := total - st.Count
	if travel <= 0 || span <= 0 {
		return 0
	}
	offset = min(max(offset, 0), travel)
	return int(math.Round(offset/travel*float64(span))) - 1
}
