// Package dedupe tracks settled prediction records so that each one is paid
// at most once.
package dedupe

import (
	"container/list"
	"context"
	"sync"
)

// Ledger records settled prediction ids.
type Ledger interface {
	// SeenAndRecord reports whether id was already settled and records it
	// if it was not. The check and the write are atomic.
	SeenAndRecord(ctx context.Context, id string) bool

	// Unrecord forgets id so that it can be settled again later. It is used
	// when a record was claimed but its settlement was cancelled.
	Unrecord(ctx context.Context, id string)

	Size() int64
}

// memoryLedger keeps ids in insertion order. When bounded, the oldest id is
// evicted first.
type memoryLedger struct {
	mu      sync.Mutex
	seen    map[string]*list.Element
	order   *list.List
	maxSize int
}

// NewLedger creates an in-memory ledger.
func NewLedger(opts ...Option) Ledger {
	l := &memoryLedger{
		maxSize: 50000,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.seen = make(map[string]*list.Element)
	l.order = list.New()
	return l
}

func (l *memoryLedger) SeenAndRecord(_ context.Context, id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.seen[id]; ok {
		return true
	}
	if l.maxSize > 0 && l.order.Len() >= l.maxSize {
		oldest := l.order.Front()
		l.order.Remove(oldest)
		delete(l.seen, oldest.Value.(string))
	}
	l.seen[id] = l.order.PushBack(id)
	return false
}

func (l *memoryLedger) Unrecord(_ context.Context, id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if el, ok := l.seen[id]; ok {
		l.order.Remove(el)
		delete(l.seen, id)
	}
}

func (l *memoryLedger) Size() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return int64(l.order.Len())
}
