// Package store provides in-memory row sources for the windowing engine.
package store

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/ayn2op/longview/window"
)

// DefaultReadAhead is the number of rows cached on each side of the last
// rendered range.
const DefaultReadAhead = 200

// AfterFunc schedules f after d and returns a function that cancels it.
type AfterFunc func(d time.Duration, f func()) (stop func() bool)

func timeAfter(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// Memory is a window.Bridge over rows held in memory. Rows inside the cache
// window are answered immediately. A query reaching outside of it gets the
// cached part and the rest arrives later through Listener.OnRowsDelivered,
// the way a remote source would answer. Memory is safe for concurrent use.
type Memory struct {
	mu sync.RWMutex

	rows       []string
	itemHeight int
	latency    time.Duration
	readAhead  int
	logger     *slog.Logger
	after      AfterFunc

	cache     window.Range
	inflight  map[window.Range]func() bool
	listeners map[int]window.Listener
	nextID    int
}

// Option configures a Memory.
type Option func(*Memory)

// WithRows sets the initial rows.
func WithRows(rows []string) Option {
	return func(m *Memory) {
		m.rows = rows
	}
}

// WithItemHeight sets the height of one row in container units.
func WithItemHeight(h int) Option {
	return func(m *Memory) {
		m.itemHeight = h
	}
}

// WithLatency sets the delay of deliveries for rows outside the cache. Zero
// answers every query in full.
func WithLatency(d time.Duration) Option {
	return func(m *Memory) {
		m.latency = max(d, 0)
	}
}

// WithReadAhead sets how many rows around the rendered range are cached.
func WithReadAhead(rows int) Option {
	return func(m *Memory) {
		m.readAhead = max(rows, 0)
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Memory) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithAfterFunc replaces the timer used for delayed deliveries.
func WithAfterFunc(after AfterFunc) Option {
	return func(m *Memory) {
		if after != nil {
			m.after = after
		}
	}
}

// NewMemory returns a store with the given options applied.
func NewMemory(opts ...Option) *Memory {
	m := &Memory{
		itemHeight: 1,
		readAhead:  DefaultReadAhead,
		logger:     slog.Default(),
		after:      timeAfter,
		inflight:   make(map[window.Range]func() bool),
		listeners:  make(map[int]window.Listener),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.cache = m.around(window.Range{Start: 0, End: 0})
	return m
}

// Subscribe registers l for notifications and returns a function removing it.
func (m *Memory) Subscribe(l window.Listener) (unsubscribe func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = l
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		delete(m.listeners, id)
	}
}

func (m *Memory) snapshotListeners() []window.Listener {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]window.Listener, 0, len(m.listeners))
	for id := range m.nextID {
		if l, ok := m.listeners[id]; ok {
			out = append(out, l)
		}
	}
	return out
}

// around returns the cache window for r. The caller holds the lock.
func (m *Memory) around(r window.Range) window.Range {
	if len(m.rows) == 0 {
		return window.Range{Start: 0, End: -1}
	}
	return window.Range{
		Start: max(r.Start-m.readAhead, 0),
		End:   min(r.End+m.readAhead, len(m.rows)-1),
	}
}

// slice returns the rows of r clipped to the store. The caller holds the lock.
func (m *Memory) slice(r window.Range) window.RowsPacket {
	r.Start = max(r.Start, 0)
	r.End = min(r.End, len(m.rows)-1)
	packet := window.RowsPacket{Range: r}
	if !r.Valid() {
		return packet
	}
	packet.Rows = make([]window.Row, 0, r.Len())
	for _, row := range m.rows[r.Start : r.End+1] {
		packet.Rows = append(packet.Rows, row)
	}
	return packet
}

// GetRange returns the rows of r. Without latency or when r lies in the cache
// the whole range is returned. Otherwise the packet holds the cached part
// only and the full range is delivered after the latency. The AfterFunc is
// called without the lock held and may run the delivery right away.
func (m *Memory) GetRange(r window.Range) window.RowsPacket {
	m.mu.Lock()
	if m.latency <= 0 || (m.cache.Contains(r.Start) && m.cache.Contains(r.End)) {
		defer m.mu.Unlock()
		return m.slice(r)
	}

	packet := window.RowsPacket{Range: r}
	if lo, hi := max(r.Start, m.cache.Start), min(r.End, m.cache.End); lo <= hi {
		packet = m.slice(window.Range{Start: lo, End: hi})
	}
	_, scheduled := m.inflight[r]
	if !scheduled {
		m.inflight[r] = noStop
	}
	latency := m.latency
	m.mu.Unlock()

	if scheduled {
		return packet
	}
	m.logger.Debug("scheduled delivery", "range", r, "cached", packet.Range)
	stop := m.after(latency, func() { m.deliver(r) })

	m.mu.Lock()
	// The entry is gone when the delivery already ran or Reset dropped it.
	if _, ok := m.inflight[r]; ok {
		m.inflight[r] = stop
	} else {
		stop()
	}
	m.mu.Unlock()
	return packet
}

// noStop marks a delivery whose timer is still being started.
func noStop() bool { return false }

func (m *Memory) deliver(r window.Range) {
	m.mu.Lock()
	if _, ok := m.inflight[r]; !ok {
		m.mu.Unlock()
		return
	}
	delete(m.inflight, r)
	packet := m.slice(r)
	packet.Range = r
	m.mu.Unlock()

	for _, l := range m.snapshotListeners() {
		l.OnRowsDelivered(packet)
	}
}

// GetStorageInfo returns the number of rows.
func (m *Memory) GetStorageInfo() window.StorageInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return window.StorageInfo{Count: len(m.rows)}
}

// GetItemHeight returns the height of one row.
func (m *Memory) GetItemHeight() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.itemHeight
}

// UpdatingDone moves the cache window around r.
func (m *Memory) UpdatingDone(r window.Range) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache = m.around(r)
}

// Cache returns the rows currently answered without delay.
func (m *Memory) Cache() window.Range {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cache
}

// Inflight returns the number of delayed deliveries not yet made.
func (m *Memory) Inflight() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.inflight)
}

// Append adds rows and notifies listeners of the new count.
func (m *Memory) Append(rows ...string) {
	m.mu.Lock()
	m.rows = append(m.rows, rows...)
	if !m.cache.Valid() {
		m.cache = m.around(window.Range{Start: 0, End: 0})
	}
	info := window.StorageInfo{Count: len(m.rows)}
	m.mu.Unlock()

	m.notifyStorage(info)
}

// Reset replaces every row, drops pending deliveries and notifies listeners.
func (m *Memory) Reset(rows []string) {
	m.mu.Lock()
	for r, stop := range m.inflight {
		stop()
		delete(m.inflight, r)
	}
	m.rows = rows
	m.cache = m.around(window.Range{Start: 0, End: 0})
	info := window.StorageInfo{Count: len(m.rows)}
	m.mu.Unlock()

	m.notifyStorage(info)
}

func (m *Memory) notifyStorage(info window.StorageInfo) {
	m.logger.Debug("storage updated", "count", info.Count)
	for _, l := range m.snapshotListeners() {
		l.OnStorageUpdated(info)
	}
}

// ScrollTo asks listeners to show row.
func (m *Memory) ScrollTo(row int) {
	for _, l := range m.snapshotListeners() {
		l.OnScrollTo(row)
	}
}

// Redraw asks listeners to re-measure and render again.
func (m *Memory) Redraw() {
	for _, l := range m.snapshotListeners() {
		l.OnRedraw()
	}
}

var _ window.Bridge = (*Memory)(nil)

// ReadLines reads r into one row per line.
func ReadLines(r io.Reader) ([]string, error) {
	var rows []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		rows = append(rows, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read lines: %w", err)
	}
	return rows, nil
}

// Generate returns n synthetic rows.
func Generate(n int) []string {
	rows := make([]string, max(n, 0))
	for i := range rows {
		rows[i] = fmt.Sprintf("row %d", i)
	}
	return rows
}
