package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayn2op/longview/window"
)

type surface struct {
	top    int
	engine *window.Engine
}

func (s *surface) ScrollTop() int { return s.top }

func (s *surface) SetScrollTop(top int) {
	s.top = top
	s.engine.OnScroll(top)
}

func TestMemoryDrivesEngine(t *testing.T) {
	t.Parallel()

	m, timers, _ := newDelayed(1000, 10)
	settings := window.DefaultSettings()
	settings.ScrollBarSize = 0
	q := &window.Queue{}
	s := &surface{}
	e := window.New(m, s, q, window.WithSettings(settings))
	s.engine = e
	m.Subscribe(e)

	e.Attach(20)
	require.Equal(t, window.Range{Start: 0, End: 20}, e.Range())
	assert.Equal(t, 9, e.Pending(), "rows past the cache are placeholders")
	assert.Equal(t, window.Range{Start: 0, End: 30}, m.Cache())

	timers.fireAll()
	assert.Zero(t, e.Pending())
	rows := e.Rows()
	require.Len(t, rows, 21)
	assert.Equal(t, "row 20", rows[20].Row)

	// Rows appended to the store show up without scrolling.
	m.Append("tail")
	assert.Equal(t, 1001, e.Storage().Count)

	// A jump past the cache shows placeholders until the delivery lands.
	e.OnScrollTo(500)
	q.Drain()
	require.Equal(t, 495, e.State().Start)
	assert.Equal(t, 20, e.Pending())
	timers.fireAll()
	assert.Zero(t, e.Pending())
	assert.Equal(t, 495, e.Rows()[0].Index)
}
