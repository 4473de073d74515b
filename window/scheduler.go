package window

// Deferrer runs fn after the work currently executing on the caller's task
// queue. The returned cancel func prevents fn from running if it has not run
// yet.
type Deferrer interface {
	Defer(fn func()) (cancel func())
}

// DeferFunc adapts a function to the Deferrer interface.
type DeferFunc func(fn func()) func()

// Defer calls f(fn).
func (f DeferFunc) Defer(fn func()) func() {
	return f(fn)
}

// Scheduler coalesces render requests into one render per task-queue tick.
// Once limit requests have been coalesced the render is forced.
type Scheduler struct {
	deferrer Deferrer
	limit    int
	render   func()

	cancel   func()
	requests int
}

// NewScheduler returns a scheduler calling render on the deferrer's queue.
func NewScheduler(d Deferrer, limit int, render func()) *Scheduler {
	return &Scheduler{
		deferrer: d,
		limit:    max(limit, 1),
		render:   render,
	}
}

// Request asks for a render on the next tick, superseding any pending one.
func (s *Scheduler) Request() {
	s.stop()
	s.requests++
	if s.requests >= s.limit {
		s.fire()
		return
	}
	s.cancel = s.deferrer.Defer(s.fire)
}

// Force renders immediately.
func (s *Scheduler) Force() {
	s.stop()
	s.fire()
}

// Stop drops the pending render and resets the counter.
func (s *Scheduler) Stop() {
	s.stop()
	s.requests = 0
}

// Pending reports whether a deferred render is waiting for its tick.
func (s *Scheduler) Pending() bool {
	return s.cancel != nil
}

// Coalesced returns the number of requests since the last render.
func (s *Scheduler) Coalesced() int {
	return s.requests
}

func (s *Scheduler) stop() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Scheduler) fire() {
	s.cancel = nil
	s.requests = 0
	s.render()
}
