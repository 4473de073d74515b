package longview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayn2op/longview/window"
)

type recordingListener struct {
	infos   []window.StorageInfo
	packets []window.RowsPacket
	rows    []int
	redraws int
}

func (l *recordingListener) OnStorageUpdated(info window.StorageInfo) { l.infos = append(l.infos, info) }
func (l *recordingListener) OnRowsDelivered(p window.RowsPacket)      { l.packets = append(l.packets, p) }
func (l *recordingListener) OnScrollTo(row int)                       { l.rows = append(l.rows, row) }
func (l *recordingListener) OnRedraw()                                { l.redraws++ }

// runQueued executes everything waiting on the update channel, the way the
// event loop would.
func runQueued(a *Application) int {
	n := 0
	for {
		select {
		case u := <-a.updates:
			u.f()
			a.refillUpdates()
			n++
		default:
			return n
		}
	}
}

func TestApplicationDefer(t *testing.T) {
	t.Parallel()

	a := NewApplication()
	var order []int
	a.Defer(func() { order = append(order, 1) })
	cancel := a.Defer(func() { order = append(order, 2) })
	a.Defer(func() { order = append(order, 3) })
	cancel()

	assert.Empty(t, order, "deferred work waits for the loop")
	require.Equal(t, 3, runQueued(a))
	assert.Equal(t, []int{1, 3}, order)
}

func TestApplicationDeferOverflowKeepsOrder(t *testing.T) {
	t.Parallel()

	a := NewApplication()
	var order []int
	for i := range updatesQueueSize + 20 {
		a.Defer(func() { order = append(order, i) })
	}

	require.Equal(t, updatesQueueSize+20, runQueued(a))
	require.Len(t, order, updatesQueueSize+20)
	for i, v := range order {
		require.Equal(t, i, v, "deferred update %d ran at position %d", v, i)
	}

	// Once drained, new updates go straight to the channel again.
	a.Defer(func() { order = append(order, -1) })
	assert.Len(t, a.updates, 1)
}

func TestApplicationListener(t *testing.T) {
	t.Parallel()

	a := NewApplication()
	target := &recordingListener{}
	l := a.Listener(target)

	l.OnStorageUpdated(window.StorageInfo{Count: 7})
	l.OnRowsDelivered(window.RowsPacket{Range: window.Range{Start: 1, End: 2}})
	l.OnScrollTo(5)
	l.OnRedraw()
	assert.Empty(t, target.rows)

	require.Equal(t, 4, runQueued(a))
	assert.Equal(t, []window.StorageInfo{{Count: 7}}, target.infos)
	assert.Equal(t, window.Range{Start: 1, End: 2}, target.packets[0].Range)
	assert.Equal(t, []int{5}, target.rows)
	assert.Equal(t, 1, target.redraws)
}

func TestApplicationEngineOnLoop(t *testing.T) {
	t.Parallel()

	a := NewApplication()
	l := NewInfiniteList(&testBridge{count: 1000}, a, window.WithSettings(terminalSettings()))
	l.SetShowPosition(false)
	l.SetRect(0, 0, 40, 20)
	l.sync(20)

	l.Engine().OnWheel(4)
	require.True(t, l.Engine().RenderPending())
	runQueued(a)
	assert.False(t, l.Engine().RenderPending())
	assert.Equal(t, 4, l.Engine().Rows()[0].Index)
}

func TestAppendCommand(t *testing.T) {
	t.Parallel()

	assert.Nil(t, AppendCommand(nil, nil))
	assert.Equal(t, RedrawCommand{}, AppendCommand(nil, RedrawCommand{}))
	assert.Equal(t, QuitCommand{}, AppendCommand(QuitCommand{}, nil))
	assert.Equal(t,
		BatchCommand{QuitCommand{}, RedrawCommand{}, ConsumeEventCommand{}},
		AppendCommand(QuitCommand{}, BatchCommand{RedrawCommand{}, ConsumeEventCommand{}}),
	)
}
