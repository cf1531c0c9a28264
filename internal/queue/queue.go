// Package queue provides an unbounded FIFO channel.
package queue

import "sync"

// Queue is an unbounded FIFO. Push never blocks for longer than it takes the
// pump goroutine to append to its buffer; values come out of Out in push
// order.
type Queue[T any] struct {
	in     chan T
	out    chan T
	closed chan struct{}
	once   sync.Once
}

// New creates a queue and starts its pump goroutine.
func New[T any]() *Queue[T] {
	q := &Queue[T]{
		in:     make(chan T),
		out:    make(chan T),
		closed: make(chan struct{}),
	}
	go q.pump()
	return q
}

// Push appends v. It reports false once the queue is closed.
func (q *Queue[T]) Push(v T) bool {
	select {
	case <-q.closed:
		return false
	default:
	}

	select {
	case <-q.closed:
		return false
	case q.in <- v:
		return true
	}
}

// Out returns the receiving end. It is closed after Close.
func (q *Queue[T]) Out() <-chan T {
	return q.out
}

// Close stops the queue and drops anything still buffered.
func (q *Queue[T]) Close() {
	q.once.Do(func() { close(q.closed) })
}

func (q *Queue[T]) pump() {
	defer close(q.out)

	var buf []T
	for {
		if len(buf) == 0 {
			select {
			case <-q.closed:
				return
			case v := <-q.in:
				buf = append(buf, v)
			}
			continue
		}

		select {
		case <-q.closed:
			return
		case v := <-q.in:
			buf = append(buf, v)
		case q.out <- buf[0]:
			var zero T
			buf[0] = zero
			buf = buf[1:]
		}
	}
}
