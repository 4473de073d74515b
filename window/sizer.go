package window

// Measure returns how many rows of itemHeight fit into a container of
// containerHeight once reserved pixels are removed. Degenerate geometry yields
// zero.
func Measure(containerHeight, itemHeight, reserved int) int {
	usable := containerHeight - reserved
	if itemHeight <= 0 || usable <= 0 {
		return 0
	}
	return usable / itemHeight
}

// Viewport is the last measurement of the scroll container.
type Viewport struct {
	// Container height as reported by the host.
	ContainerHeight int
	// Height available to rows (container minus the reserved scrollbar size).
	Height int
	// Height of one row.
	ItemHeight int
	// Rows per frame.
	Rows int

	measured bool
}

// Measured reports whether the viewport has been measured at least once.
func (v Viewport) Measured() bool {
	return v.measured
}

// Remeasure returns the viewport for a new container height. Unless force is
// set, a container that has not changed size is not measured again and
// changed is false.
func (v Viewport) Remeasure(containerHeight, itemHeight, reserved int, force bool) (next Viewport, changed bool) {
	if v.measured && !force && v.ContainerHeight == containerHeight && v.ItemHeight == itemHeight {
		return v, false
	}
	return Viewport{
		ContainerHeight: containerHeight,
		Height:          max(containerHeight-reserved, 0),
		ItemHeight:      itemHeight,
		Rows:            Measure(containerHeight, itemHeight, reserved),
		measured:        true,
	}, true
}
