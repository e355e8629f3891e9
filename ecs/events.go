package ecs

// EventQueue is a FIFO of frame-level notifications. Producers push from
// anywhere in the tick; consumers drain once per frame.
type EventQueue struct {
	items []any
	limit int
}

// SetLimit caps the queue; the oldest items are dropped past it. Zero means
// unbounded.
func (q *EventQueue) SetLimit(n int) {
	if q == nil || n < 0 {
		return
	}
	q.limit = n
	q.trim()
}

func (q *EventQueue) Push(evt any) {
	if q == nil || evt == nil {
		return
	}
	q.items = append(q.items, evt)
	q.trim()
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []any {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *EventQueue) trim() {
	if q.limit <= 0 || len(q.items) <= q.limit {
		return
	}
	drop := len(q.items) - q.limit
	q.items = append(q.items[:0], q.items[drop:]...)
}
