package window

import (
	"fmt"
	"time"
)

type fakeBridge struct {
	count      int
	itemHeight int
	// Maximum rows answered per query, 0 answers everything.
	limit int
	// Short the head of the range instead of the tail.
	shortHead bool

	queries []Range
	done    []Range
}

func (b *fakeBridge) GetRange(r Range) RowsPacket {
	b.queries = append(b.queries, r)
	n := r.Len()
	packet := RowsPacket{Range: r}
	if b.limit > 0 && n > b.limit {
		n = b.limit
		if b.shortHead {
			packet.Range.Start = r.End - n + 1
		} else {
			packet.Range.End = r.Start + n - 1
		}
	}
	for i := range n {
		packet.Rows = append(packet.Rows, fmt.Sprintf("row %d", packet.Range.Start+i))
	}
	return packet
}

func (b *fakeBridge) GetStorageInfo() StorageInfo { return StorageInfo{Count: b.count} }
func (b *fakeBridge) GetItemHeight() int          { return b.itemHeight }
func (b *fakeBridge) UpdatingDone(r Range)        { b.done = append(b.done, r) }

// fakeContainer reports offset writes back to the engine synchronously, the
// way a scroll surface emits a scroll event for every change.
type fakeContainer struct {
	top    int
	engine *Engine
	writes []int
}

func (c *fakeContainer) ScrollTop() int { return c.top }

func (c *fakeContainer) SetScrollTop(top int) {
	c.top = top
	c.writes = append(c.writes, top)
	if c.engine != nil {
		c.engine.OnScroll(top)
	}
}

type manualClock struct {
	now time.Time
}

func (c *manualClock) Now() time.Time           { return c.now }
func (c *manualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type harness struct {
	engine    *Engine
	bridge    *fakeBridge
	container *fakeContainer
	queue     *Queue
	clock     *manualClock
}

func testSettings() Settings {
	s := DefaultSettings()
	s.ScrollBarSize = 0
	return s
}

func newHarness(count, itemHeight, containerHeight int, opts ...Option) *harness {
	h := &harness{
		bridge:    &fakeBridge{count: count, itemHeight: itemHeight},
		container: &fakeContainer{},
		queue:     &Queue{},
		clock:     &manualClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	opts = append([]Option{WithSettings(testSettings()), WithClock(h.clock.Now)}, opts...)
	h.engine = New(h.bridge, h.container, h.queue, opts...)
	h.container.engine = h.engine
	h.engine.Attach(containerHeight)
	return h
}
