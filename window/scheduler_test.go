package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerCoalescing(t *testing.T) {
	t.Parallel()

	q := &Queue{}
	renders := 0
	s := NewScheduler(q, 10, func() { renders++ })

	for range 15 {
		s.Request()
	}
	assert.Equal(t, 1, renders, "forced at the tenth request")
	assert.Equal(t, 5, s.Coalesced())
	assert.True(t, s.Pending())
	assert.Equal(t, 1, q.Len())

	q.Drain()
	assert.Equal(t, 2, renders)
	assert.Zero(t, s.Coalesced())
	assert.False(t, s.Pending())
}

func TestSchedulerSingleRequest(t *testing.T) {
	t.Parallel()

	q := &Queue{}
	renders := 0
	s := NewScheduler(q, 10, func() { renders++ })

	s.Request()
	assert.Zero(t, renders)
	q.Drain()
	assert.Equal(t, 1, renders)

	q.Drain()
	assert.Equal(t, 1, renders)
}

func TestSchedulerForceAndStop(t *testing.T) {
	t.Parallel()

	q := &Queue{}
	renders := 0
	s := NewScheduler(q, 10, func() { renders++ })

	s.Request()
	s.Request()
	s.Force()
	assert.Equal(t, 1, renders)
	require.Zero(t, q.Len())

	s.Request()
	s.Stop()
	q.Drain()
	assert.Equal(t, 1, renders)
	assert.Zero(t, s.Coalesced())
}

func TestSchedulerDeferFunc(t *testing.T) {
	t.Parallel()

	var deferred []func()
	d := DeferFunc(func(fn func()) func() {
		deferred = append(deferred, fn)
		return func() {}
	})
	renders := 0
	s := NewScheduler(d, 0, func() { renders++ })

	// A limit below one forces every request.
	s.Request()
	assert.Equal(t, 1, renders)
	assert.Empty(t, deferred)
}

func TestQueue(t *testing.T) {
	t.Parallel()

	q := &Queue{}
	var order []int
	q.Defer(func() { order = append(order, 1) })
	cancel := q.Defer(func() { order = append(order, 2) })
	q.Defer(func() {
		order = append(order, 3)
		q.Defer(func() { order = append(order, 4) })
	})
	cancel()
	assert.Equal(t, 2, q.Len())

	assert.Equal(t, 2, q.Tick())
	assert.Equal(t, []int{1, 3}, order)
	assert.Equal(t, 1, q.Len())

	assert.Equal(t, 1, q.Drain())
	assert.Equal(t, []int{1, 3, 4}, order)
	assert.Zero(t, q.Len())
}
