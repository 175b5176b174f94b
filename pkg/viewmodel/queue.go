package viewmodel

import (
	"context"
	"sync"

	"tableflip.dev/moodlog/pkg/entry"
)

// write is one queued mutation, or a barrier when run is nil.
type write struct {
	name    string
	entry   *entry.Entry
	run     func(context.Context) error
	barrier chan struct{}
}

// writeQueue is an unbounded FIFO with a single consumer.
type writeQueue struct {
	mu     sync.Mutex
	items  []write
	closed bool
	wake   chan struct{}
}

func newWriteQueue() *writeQueue {
	return &writeQueue{wake: make(chan struct{}, 1)}
}

// push reports false once the queue is closed.
func (q *writeQueue) push(w write) bool {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return false
	}
	q.items = append(q.items, w)
	q.mu.Unlock()
	q.signal()
	return true
}

// next blocks until a write is available. It reports false when the queue is
// closed and empty.
func (q *writeQueue) next() (write, bool) {
	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			w := q.items[0]
			q.items[0] = write{}
			q.items = q.items[1:]
			q.mu.Unlock()
			return w, true
		}
		closed := q.closed
		q.mu.Unlock()
		if closed {
			return write{}, false
		}
		<-q.wake
	}
}

func (q *writeQueue) close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.signal()
}

func (q *writeQueue) signal() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}
