package window

// WindowState is the visible logical row range. Values are never mutated in
// place; every transition returns a new state.
type WindowState struct {
	// First visible row.
	Start int
	// Last visible row, inclusive.
	End int
	// Number of rows that fit one frame.
	Count int
}

// Range returns the rows covered by the state.
func (s WindowState) Range() Range {
	return Range{Start: s.Start, End: s.End}
}

// Empty reports whether the state has nothing to render.
func (s WindowState) Empty() bool {
	return !s.Range().Valid() || s.End-s.Start == 0
}

// Clamp recomputes the end of the window for a store of total rows. When the
// end runs past the last row, the start is pulled back so a full frame stays
// visible.
func (s WindowState) Clamp(total int) WindowState {
	if total <= 0 {
		return WindowState{Count: s.Count}
	}
	if s.Start < 0 {
		s.Start = 0
	}
	s.End = s.Start + s.Count
	if s.End > total-1 {
		s.End = total - 1
		s.Start = max(total-max(s.Count, 1), 0)
	}
	return s
}

// WithStart moves the window to start, clamped into [0, total-Count].
func (s WindowState) WithStart(start, total int) WindowState {
	upper := max(total-s.Count, 0)
	start = min(max(start, 0), upper)
	return WindowState{Start: start, Count: s.Count}.Clamp(total)
}

// Step moves the window by delta rows.
func (s WindowState) Step(delta, total int) WindowState {
	return s.WithStart(s.Start+delta, total)
}

// WithCount changes the frame size and re-clamps against total.
func (s WindowState) WithCount(count, total int) WindowState {
	s.Count = max(count, 0)
	return s.Clamp(total)
}
