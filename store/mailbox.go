package store

import "sync"

// mailbox is an unbounded FIFO feeding the store loop.
//
// Enqueue never blocks, so effects and observers can hand actions back to the loop
// whatever its backlog. The 1-slot signal channel lets the loop wait in a select
// alongside its context; closing the mailbox closes the channel and wakes it.
type mailbox[T any] struct {
	mu     sync.Mutex
	items  []T
	closed bool
	signal chan struct{}
}

func newMailbox[T any](hint int) *mailbox[T] {
	if hint < 1 {
		hint = 1
	}
	return &mailbox[T]{
		items:  make([]T, 0, hint),
		signal: make(chan struct{}, 1),
	}
}

// enqueue appends item. It returns false once the mailbox is closed.
func (m *mailbox[T]) enqueue(item T) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return false
	}
	m.items = append(m.items, item)

	select {
	case m.signal <- struct{}{}:
	default:
	}
	return true
}

// tryDequeue pops the oldest item without blocking.
func (m *mailbox[T]) tryDequeue() (T, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero T
	if len(m.items) == 0 {
		return zero, false
	}
	item := m.items[0]
	// Drop the reference so the backing array does not pin it.
	m.items[0] = zero
	if len(m.items) == 1 {
		m.items = m.items[:0]
	} else {
		m.items = m.items[1:]
	}
	return item, true
}

// wait signals that items may be available. The channel is closed with the mailbox.
func (m *mailbox[T]) wait() <-chan struct{} {
	return m.signal
}

// len counts the items still queued.
func (m *mailbox[T]) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// drained reports whether the mailbox is closed and empty.
func (m *mailbox[T]) drained() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed && len(m.items) == 0
}

// close stops intake. Items already queued can still be dequeued.
func (m *mailbox[T]) close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	m.closed = true
	close(m.signal)
}
