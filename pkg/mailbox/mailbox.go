// Package mailbox implements the ordered event queue that feeds the
// client-mode dispatch loop.
//
// Any goroutine may post; exactly one goroutine consumes. Besides ordinary
// tail insertion the mailbox supports front insertion, used for mode-switch
// commands that must overtake queued work and for replaying deferred events
// ahead of anything that arrived after them.
package mailbox

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned when posting to or reading from a closed mailbox.
var ErrClosed = errors.New("mailbox closed")

// Mailbox is a multi-producer single-consumer FIFO with front insertion.
type Mailbox[T any] struct {
	mu     sync.Mutex
	items  []T
	notify chan struct{}
	closed bool
}

// New returns an empty mailbox.
func New[T any]() *Mailbox[T] {
	return &Mailbox[T]{
		notify: make(chan struct{}, 1),
	}
}

// Post appends v to the tail.
func (m *Mailbox[T]) Post(v T) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	m.items = append(m.items, v)
	m.mu.Unlock()
	m.signal()
	return nil
}

// PostFront inserts v ahead of everything queued.
func (m *Mailbox[T]) PostFront(v T) error {
	return m.PostFrontAll([]T{v})
}

// PostFrontAll inserts vs ahead of everything queued, keeping their relative
// order: vs[0] is the next item returned.
func (m *Mailbox[T]) PostFrontAll(vs []T) error {
	if len(vs) == 0 {
		return nil
	}
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	items := make([]T, 0, len(vs)+len(m.items))
	items = append(items, vs...)
	items = append(items, m.items...)
	m.items = items
	m.mu.Unlock()
	m.signal()
	return nil
}

// TryNext removes and returns the head without blocking.
func (m *Mailbox[T]) TryNext() (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.popLocked()
}

// Next blocks until an item is available, the context is done or the
// mailbox is closed. Items queued before Close are still delivered.
func (m *Mailbox[T]) Next(ctx context.Context) (T, error) {
	for {
		m.mu.Lock()
		if v, ok := m.popLocked(); ok {
			m.mu.Unlock()
			return v, nil
		}
		closed := m.closed
		m.mu.Unlock()

		var zero T
		if closed {
			return zero, ErrClosed
		}

		select {
		case <-m.notify:
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}
}

// Len returns the number of queued items.
func (m *Mailbox[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Close stops accepting new items and wakes a blocked consumer.
// It is safe to call Close multiple times.
func (m *Mailbox[T]) Close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	m.signal()
}

func (m *Mailbox[T]) popLocked() (T, bool) {
	var zero T
	if len(m.items) == 0 {
		return zero, false
	}
	v := m.items[0]
	m.items[0] = zero
	m.items = m.items[1:]
	return v, true
}

func (m *Mailbox[T]) signal() {
	select {
	case m.notify <- struct{}{}:
	default:
	}
}
