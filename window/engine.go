package window

import (
	"log/slog"
	"math"
	"time"
)

// Bridge is the data source queried by the engine.
type Bridge interface {
	// GetRange returns the rows of r. The packet echoes r, or a narrower range
	// when only part of it is available.
	GetRange(r Range) RowsPacket
	GetStorageInfo() StorageInfo
	// GetItemHeight returns the height of one row in container units.
	GetItemHeight() int
	// UpdatingDone is called once a render for r has settled.
	UpdatingDone(r Range)
}

// Listener receives notifications from the bridge side. *Engine implements it.
type Listener interface {
	OnStorageUpdated(info StorageInfo)
	OnRowsDelivered(packet RowsPacket)
	OnScrollTo(row int)
	OnRedraw()
}

// ScrollContainer is the host scroll surface. After an offset change made by
// the user or by SetScrollTop, the host reports the new offset through
// Engine.OnScroll.
type ScrollContainer interface {
	ScrollTop() int
	SetScrollTop(top int)
}

var _ Listener = (*Engine)(nil)

// Engine is the windowing state machine. It is not safe for concurrent use:
// every method must be called from the goroutine that runs the Deferrer's
// task queue.
type Engine struct {
	bridge    Bridge
	container ScrollContainer
	scheduler *Scheduler

	settings Settings
	logger   *slog.Logger
	now      func() time.Time
	rendered func(Range, []Slot)

	attached bool
	storage  StorageInfo
	viewport Viewport
	model    ScrollModel
	state    WindowState
	thumb    Thumb
	rows     []Slot
	pending  int
}

// New returns an engine reading rows from bridge and driving container.
// Renders are deferred through d.
func New(bridge Bridge, container ScrollContainer, d Deferrer, opts ...Option) *Engine {
	e := &Engine{
		bridge:    bridge,
		container: container,
		settings:  DefaultSettings(),
		logger:    slog.Default(),
		now:       time.Now,
		model:     NewScrollModel(),
		thumb:     Thumb{Rate: 1},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.scheduler = NewScheduler(d, e.settings.CoalesceLimit, e.render)
	return e
}

// Attach measures a container of the given height and renders the first
// frame.
func (e *Engine) Attach(containerHeight int) {
	info := e.bridge.GetStorageInfo()
	if err := info.Validate(); err != nil {
		e.logger.Error("rejected storage info on attach", "count", info.Count, "err", err)
		info = StorageInfo{}
	}
	e.attached = true
	e.storage = info
	e.viewport, _ = e.viewport.Remeasure(containerHeight, e.bridge.GetItemHeight(), e.settings.ScrollBarSize, true)
	e.relayout()
	e.commit(WindowState{Count: e.viewport.Rows}.Clamp(info.Count))
	e.scheduler.Force()
}

// Detach drops the row buffer and resets the scroll model.
func (e *Engine) Detach() {
	e.scheduler.Stop()
	e.attached = false
	e.viewport = Viewport{}
	e.model = NewScrollModel()
	e.state = WindowState{}
	e.thumb = Thumb{Rate: 1}
	e.setRows(nil, 0)
}

// Attached reports whether Attach has been called since the last Detach.
func (e *Engine) Attached() bool {
	return e.attached
}

// OnScroll handles a container offset change.
func (e *Engine) OnScroll(scrollTop int) {
	if !e.attached || e.model.HeightFiller <= 0 || scrollTop == e.model.Cache {
		return
	}
	update := e.model.Map(scrollTop, e.state, e.storage.Count, e.now(), e.settings)
	e.model.ScrollTo = -1
	if update.Rescroll {
		e.model.Cache = update.ScrollTop
		e.container.SetScrollTop(update.ScrollTop)
	} else {
		e.model.Cache = scrollTop
	}
	if update.Redraw {
		e.commit(update.State)
		e.scheduler.Request()
	}
}

// OnWheel moves the container by delta units and marks the input as wheel
// driven.
func (e *Engine) OnWheel(delta int) {
	if !e.attached || e.model.HeightFiller <= 0 {
		return
	}
	e.model.LastWheel = e.now()
	current := e.container.ScrollTop()
	top := min(max(current+delta, 0), e.model.Limit(e.viewport.Height))
	if top != current {
		e.container.SetScrollTop(top)
	}
}

// OnThumbScroll scrolls the synthetic scrollbar by change units in direction
// (+1 down, -1 up).
func (e *Engine) OnThumbScroll(change, direction int) {
	if !e.attached || !e.thumb.Visible() || e.model.ItemHeight <= 0 {
		return
	}
	if e.state.Start == 0 && direction < 0 {
		return
	}
	offset := int(math.Round(float64(abs(change)) / float64(e.model.ItemHeight)))
	if offset == 0 {
		offset = 1
	}
	if direction < 0 {
		offset = -offset
	}
	e.commit(e.state.Step(offset, e.storage.Count))
	top := e.model.Correct(e.model.OffsetFor(e.state.Start, e.viewport.Height))
	e.model.Cache = top
	if e.container.ScrollTop() != top {
		e.container.SetScrollTop(top)
	}
	e.scheduler.Request()
}

// OnThumbDrag moves the window to the rows represented by a thumb dragged to
// offset.
func (e *Engine) OnThumbDrag(offset float64) {
	if !e.attached || !e.thumb.Visible() {
		return
	}
	row := e.thumb.StartAt(offset, e.state, e.storage.Count, e.viewport.Height)
	e.scrollTo(max(row, 0), false)
}

// OnScrollTo scrolls so that row is shown a few rows below the top of the
// frame.
func (e *Engine) OnScrollTo(row int) {
	e.scrollTo(row, true)
}

// Navigate applies a keyboard action. It returns false when the action does
// not move the window.
func (e *Engine) Navigate(a Action) bool {
	if !e.attached {
		return false
	}
	row, ok := a.target(e.state, e.storage.Count)
	if !ok {
		return false
	}
	return e.scrollTo(row, false)
}

func (e *Engine) scrollTo(row int, lead bool) bool {
	total := e.storage.Count
	if !e.attached || total <= 0 || e.model.HeightFiller <= 0 {
		return false
	}
	row = min(max(row, 0), total-1)
	start := row
	if lead {
		// A frame shorter than the lead still has to contain row.
		offset := min(e.settings.ScrollToOffset, max(e.state.Count-1, 0))
		start = max(row-offset, 0)
	}
	e.model.Cache = -1
	e.model.ScrollTo = start
	top := e.model.OffsetFor(start, e.viewport.Height)
	if e.container.ScrollTop() == top {
		// The container will not report an unchanged offset.
		e.OnScroll(top)
		return true
	}
	e.container.SetScrollTop(top)
	return true
}

// OnResize re-measures the container. Unless force is set nothing happens
// when the height did not change.
func (e *Engine) OnResize(containerHeight int, force bool) {
	e.resize(containerHeight, force)
}

func (e *Engine) resize(containerHeight int, force bool) bool {
	if !e.attached {
		return false
	}
	viewport, changed := e.viewport.Remeasure(containerHeight, e.bridge.GetItemHeight(), e.settings.ScrollBarSize, force)
	if !changed {
		return false
	}
	e.viewport = viewport
	e.relayout()
	prev := e.state
	e.commit(prev.WithCount(viewport.Rows, e.storage.Count))
	if e.state == prev {
		return false
	}
	e.scheduler.Force()
	return true
}

// OnRedraw re-measures the container and renders the current frame again.
func (e *Engine) OnRedraw() {
	if !e.resize(e.viewport.ContainerHeight, true) && e.attached {
		e.scheduler.Force()
	}
}

// OnStorageUpdated applies a new row count.
func (e *Engine) OnStorageUpdated(info StorageInfo) {
	if err := info.Validate(); err != nil {
		e.logger.Error("rejected storage update", "count", info.Count, "err", err)
		return
	}
	prev := e.storage.Count
	e.storage = info
	if !e.attached {
		return
	}
	if info.Count == 0 {
		e.scheduler.Stop()
		e.relayout()
		e.state = WindowState{}
		e.thumb = Thumb{Rate: 1}
		e.setRows(nil, 0)
		return
	}
	st := e.state
	update := st.Start+st.Count > info.Count-1 ||
		(prev < st.Count && info.Count > st.Count) ||
		prev == 0
	e.relayout()
	if !update {
		e.commit(st)
		return
	}
	e.commit(st.WithCount(e.viewport.Rows, info.Count))
	e.scheduler.Force()
}

// OnRowsDelivered applies rows delivered after the range query returned. A
// packet for a range that is no longer shown triggers a fresh query.
func (e *Engine) OnRowsDelivered(packet RowsPacket) {
	if !e.attached {
		return
	}
	if packet.Range != e.state.Range() {
		e.logger.Debug("stale rows packet", "packet", packet.Range, "window", e.state.Range())
		e.render()
		return
	}
	e.apply(packet)
}

func (e *Engine) relayout() {
	e.model = e.model.Layout(e.storage.Count, e.viewport.ItemHeight, e.viewport.Height, e.settings)
	e.thumb = NewThumb(e.storage.Count, e.viewport.ItemHeight, e.viewport.Height, e.settings.MinThumbSize)
}

func (e *Engine) commit(st WindowState) {
	e.state = st
	e.thumb = e.thumb.At(st, e.storage.Count, e.viewport.Height)
}

func (e *Engine) render() {
	st := e.state
	if st.Empty() || e.viewport.Rows == 0 || e.storage.Count == 0 {
		e.setRows(nil, 0)
		return
	}
	e.apply(e.bridge.GetRange(st.Range()))
	e.bridge.UpdatingDone(st.Range())
}

// apply splices a packet into the row buffer. Rows missing from a shorted
// packet become pending slots on the side the packet was shorted. Head
// placeholders are numbered from the window start so the first row of the
// frame always has a slot.
func (e *Engine) apply(packet RowsPacket) {
	st := e.state
	want := min(st.Count, e.storage.Count)
	pending := max(want-len(packet.Rows), 0)
	first := packet.Range.Start
	if !packet.Range.Valid() {
		first = st.Start
	}
	head := pending > 0 && packet.Range.Start != st.Start

	slots := make([]Slot, 0, pending+len(packet.Rows))
	if head {
		for i := range pending {
			slots = append(slots, Slot{Index: st.Start + i, Pending: true})
		}
	}
	for i, row := range packet.Rows {
		slots = append(slots, Slot{Index: first + i, Row: row})
	}
	if pending > 0 && !head {
		for i := range pending {
			slots = append(slots, Slot{Index: first + len(packet.Rows) + i, Pending: true})
		}
	}
	e.logger.Debug("render", "window", st.Range(), "rows", len(packet.Rows), "pending", pending)
	e.setRows(slots, pending)
}

func (e *Engine) setRows(rows []Slot, pending int) {
	e.rows = rows
	e.pending = pending
	if e.rendered != nil {
		e.rendered(e.state.Range(), rows)
	}
}

// Rows returns the current row buffer.
func (e *Engine) Rows() []Slot {
	return e.rows
}

// Pending returns the number of placeholder slots in the row buffer.
func (e *Engine) Pending() int {
	return e.pending
}

// Thumb returns the scrollbar thumb geometry.
func (e *Engine) Thumb() Thumb {
	return e.thumb
}

// ScrollbarVisible reports whether the synthetic scrollbar should be shown.
func (e *Engine) ScrollbarVisible() bool {
	return e.thumb.Visible()
}

func (e *Engine) State() WindowState {
	return e.state
}

func (e *Engine) Range() Range {
	return e.state.Range()
}

func (e *Engine) Model() ScrollModel {
	return e.model
}

func (e *Engine) Storage() StorageInfo {
	return e.storage
}

func (e *Engine) Viewport() Viewport {
	return e.viewport
}

func (e *Engine) Settings() Settings {
	return e.settings
}

// RenderPending reports whether a deferred render is waiting for its tick.
func (e *Engine) RenderPending() bool {
	return e.scheduler.Pending()
}
