package store

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayn2op/longview/window"
)

// manualTimers collects delayed deliveries so tests decide when they fire.
type manualTimers struct {
	fns     []func()
	stopped []bool
}

func (m *manualTimers) after(d time.Duration, f func()) func() bool {
	i := len(m.fns)
	m.fns = append(m.fns, f)
	m.stopped = append(m.stopped, false)
	return func() bool {
		m.stopped[i] = true
		return true
	}
}

func (m *manualTimers) fireAll() {
	for i, f := range m.fns {
		if !m.stopped[i] {
			m.stopped[i] = true
			f()
		}
	}
}

type recorder struct {
	infos   []window.StorageInfo
	packets []window.RowsPacket
	rows    []int
	redraws int
}

func (r *recorder) OnStorageUpdated(info window.StorageInfo) { r.infos = append(r.infos, info) }
func (r *recorder) OnRowsDelivered(p window.RowsPacket)      { r.packets = append(r.packets, p) }
func (r *recorder) OnScrollTo(row int)                       { r.rows = append(r.rows, row) }
func (r *recorder) OnRedraw()                                { r.redraws++ }

func newDelayed(n, readAhead int) (*Memory, *manualTimers, *recorder) {
	timers := &manualTimers{}
	m := NewMemory(
		WithRows(Generate(n)),
		WithLatency(time.Second),
		WithReadAhead(readAhead),
		WithAfterFunc(timers.after),
	)
	rec := &recorder{}
	m.Subscribe(rec)
	return m, timers, rec
}

func TestMemorySynchronous(t *testing.T) {
	t.Parallel()

	m := NewMemory(WithRows(Generate(100)), WithItemHeight(2))
	assert.Equal(t, window.StorageInfo{Count: 100}, m.GetStorageInfo())
	assert.Equal(t, 2, m.GetItemHeight())

	packet := m.GetRange(window.Range{Start: 95, End: 120})
	assert.Equal(t, window.Range{Start: 95, End: 99}, packet.Range)
	require.Len(t, packet.Rows, 5)
	assert.Equal(t, "row 95", packet.Rows[0])
	assert.Zero(t, m.Inflight())
}

func TestMemoryPartialDelivery(t *testing.T) {
	t.Parallel()

	t.Run("tail", func(t *testing.T) {
		t.Parallel()
		m, timers, rec := newDelayed(1000, 10)
		assert.Equal(t, window.Range{Start: 0, End: 10}, m.Cache())

		r := window.Range{Start: 5, End: 25}
		packet := m.GetRange(r)
		assert.Equal(t, window.Range{Start: 5, End: 10}, packet.Range)
		assert.Len(t, packet.Rows, 6)

		// A repeated query does not schedule a second delivery.
		m.GetRange(r)
		assert.Len(t, timers.fns, 1)
		assert.Equal(t, 1, m.Inflight())

		timers.fireAll()
		require.Len(t, rec.packets, 1)
		assert.Equal(t, r, rec.packets[0].Range)
		assert.Len(t, rec.packets[0].Rows, 21)
		assert.Zero(t, m.Inflight())
	})

	t.Run("head", func(t *testing.T) {
		t.Parallel()
		m, _, _ := newDelayed(1000, 10)
		m.UpdatingDone(window.Range{Start: 100, End: 120})
		assert.Equal(t, window.Range{Start: 90, End: 130}, m.Cache())

		packet := m.GetRange(window.Range{Start: 80, End: 100})
		assert.Equal(t, window.Range{Start: 90, End: 100}, packet.Range)
		assert.Equal(t, "row 90", packet.Rows[0])
	})

	t.Run("miss", func(t *testing.T) {
		t.Parallel()
		m, _, _ := newDelayed(1000, 10)
		r := window.Range{Start: 500, End: 520}
		packet := m.GetRange(r)
		assert.Equal(t, r, packet.Range)
		assert.Empty(t, packet.Rows)
	})

	t.Run("cached", func(t *testing.T) {
		t.Parallel()
		m, timers, _ := newDelayed(1000, 10)
		packet := m.GetRange(window.Range{Start: 2, End: 8})
		assert.Len(t, packet.Rows, 7)
		assert.Empty(t, timers.fns)
	})
}

func TestMemoryImmediateAfterFunc(t *testing.T) {
	t.Parallel()

	var calls int
	m := NewMemory(
		WithRows(Generate(1000)),
		WithLatency(time.Second),
		WithReadAhead(10),
		WithAfterFunc(func(_ time.Duration, f func()) func() bool {
			calls++
			f()
			return func() bool { return false }
		}),
	)
	rec := &recorder{}
	m.Subscribe(rec)

	r := window.Range{Start: 500, End: 520}
	done := make(chan window.RowsPacket, 1)
	go func() { done <- m.GetRange(r) }()

	select {
	case packet := <-done:
		assert.Empty(t, packet.Rows)
	case <-time.After(5 * time.Second):
		t.Fatal("GetRange did not return")
	}
	assert.Equal(t, 1, calls)
	require.Len(t, rec.packets, 1)
	assert.Equal(t, r, rec.packets[0].Range)
	assert.Len(t, rec.packets[0].Rows, 21)
	assert.Zero(t, m.Inflight())
}

func TestMemoryReset(t *testing.T) {
	t.Parallel()

	m, timers, rec := newDelayed(1000, 10)
	m.GetRange(window.Range{Start: 400, End: 420})
	m.Reset(Generate(5))
	timers.fireAll()

	assert.Empty(t, rec.packets, "pending deliveries are dropped")
	assert.Equal(t, []window.StorageInfo{{Count: 5}}, rec.infos)
	assert.Equal(t, window.Range{Start: 0, End: 4}, m.Cache())
}

func TestMemoryNotifications(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	assert.Equal(t, window.StorageInfo{Count: 0}, m.GetStorageInfo())
	assert.False(t, m.Cache().Valid())

	rec := &recorder{}
	other := &recorder{}
	unsubscribe := m.Subscribe(rec)
	m.Subscribe(other)

	m.Append("a", "b")
	assert.True(t, m.Cache().Valid())
	m.ScrollTo(1)
	m.Redraw()
	unsubscribe()
	m.Append("c")

	assert.Equal(t, []window.StorageInfo{{Count: 2}}, rec.infos)
	assert.Equal(t, []int{1}, rec.rows)
	assert.Equal(t, 1, rec.redraws)
	assert.Equal(t, []window.StorageInfo{{Count: 2}, {Count: 3}}, other.infos)
}

func TestReadLines(t *testing.T) {
	t.Parallel()

	rows, err := ReadLines(strings.NewReader("alpha\nbeta\n\ngamma"))
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta", "", "gamma"}, rows)

	_, err = ReadLines(failingReader{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errBroken)
}

var errBroken = errors.New("broken")

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errBroken }

func TestGenerate(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Generate(-1))
	assert.Equal(t, []string{"row 0", "row 1"}, Generate(2))
}
