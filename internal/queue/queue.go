// Package queue buffers records for batched writes.
package queue

import (
	"sync"
)

// Batch collects items until a size threshold is reached.
type Batch[T any] struct {
	mu    sync.Mutex
	size  int
	items []T
}

// NewBatch creates a buffer that fills up at size items.
func NewBatch[T any](size int) *Batch[T] {
	if size < 1 {
		size = 1
	}
	return &Batch[T]{
		size:  size,
		items: make([]T, 0, size),
	}
}

// Add appends an item. When that fills the buffer, the full batch is
// returned with ok set and the buffer starts over.
func (b *Batch[T]) Add(item T) (full []T, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = append(b.items, item)
	if len(b.items) < b.size {
		return nil, false
	}
	full = b.items
	b.items = make([]T, 0, b.size)
	return full, true
}

// Drain returns whatever is buffered and empties the buffer.
func (b *Batch[T]) Drain() []T {
	b.mu.Lock()
	defer b.mu.Unlock()
	result := b.items
	b.items = make([]T, 0, b.size)
	return result
}

// Len returns the number of buffered items.
func (b *Batch[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

// Size returns the fill threshold.
func (b *Batch[T]) Size() int {
	return b.size
}
