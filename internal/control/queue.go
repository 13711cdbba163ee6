package control

import (
	"context"
	"sync"
)

// Queue buffers events for a controller. Push is safe from any goroutine;
// Drain must be called from the goroutine that owns the controller.
type Queue struct {
	mu     sync.Mutex
	events []Event
	ctrl   *Controller
}

func NewQueue(ctrl *Controller) *Queue {
	return &Queue{ctrl: ctrl}
}

func (q *Queue) Push(events ...Event) {
	q.mu.Lock()
	q.events = append(q.events, events...)
	q.mu.Unlock()
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

func (q *Queue) pop() (Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == 0 {
		return nil, false
	}
	ev := q.events[0]
	q.events[0] = nil
	q.events = q.events[1:]
	return ev, true
}

// Drain dispatches queued events in FIFO order until the queue is empty.
// The context is checked between events; a render in progress always
// completes. It returns the number of events dispatched.
func (q *Queue) Drain(ctx context.Context) (int, error) {
	n := 0
	for {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		ev, ok := q.pop()
		if !ok {
			return n, nil
		}
		if _, err := q.ctrl.Dispatch(ev); err != nil {
			return n, err
		}
		n++
	}
}
