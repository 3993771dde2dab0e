// Package queue provides the typed event queues the simulation drains each tick.
//
// The simulation is single-threaded, so a queue is a plain FIFO buffer.
// An event pushed during tick N is returned by the first Drain that follows,
// which is later in tick N or in tick N+1, and never by a second Drain.
package queue

// Queue is a FIFO of pending events with a single consumer.
type Queue[T any] struct {
	items []T
	spare []T
}

// New creates an empty queue with room for n events.
func New[T any](n int) *Queue[T] {
	return &Queue[T]{items: make([]T, 0, n)}
}

// Push appends an event.
func (q *Queue[T]) Push(v T) {
	q.items = append(q.items, v)
}

// Len returns the number of pending events.
func (q *Queue[T]) Len() int {
	return len(q.items)
}

// Drain returns every pending event in FIFO order and empties the queue.
// The returned slice is only valid until the Drain after next.
func (q *Queue[T]) Drain() []T {
	if len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items, q.spare = q.spare[:0], out
	return out
}

// Reset discards every pending event.
func (q *Queue[T]) Reset() {
	clear(q.items)
	q.items = q.items[:0]
}
