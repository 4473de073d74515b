package window

// Queue is a single-threaded FIFO task queue. It implements Deferrer for
// hosts without an event loop of their own, and for tests.
type Queue struct {
	tasks []*task
}

type task struct {
	fn       func()
	canceled bool
}

// Defer appends fn to the queue.
func (q *Queue) Defer(fn func()) func() {
	t := &task{fn: fn}
	q.tasks = append(q.tasks, t)
	return func() { t.canceled = true }
}

// Len returns the number of queued tasks that have not been canceled.
func (q *Queue) Len() int {
	n := 0
	for _, t := range q.tasks {
		if !t.canceled {
			n++
		}
	}
	return n
}

// Tick runs the tasks queued before the call. Tasks deferred while ticking run
// on the next tick. It returns the number of tasks run.
func (q *Queue) Tick() int {
	batch := q.tasks
	q.tasks = nil
	n := 0
	for _, t := range batch {
		if t.canceled {
			continue
		}
		t.canceled = true
		t.fn()
		n++
	}
	return n
}

// Drain ticks until the queue is empty.
func (q *Queue) Drain() int {
	n := 0
	for len(q.tasks) > 0 {
		n += q.Tick()
	}
	return n
}
