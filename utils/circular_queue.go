package utils

import (
	"iter"

	"github.com/oomph-ac/strafe/oerror"
)

// CircularQueue is a fixed capacity FIFO. Appending to a full queue drops its oldest item.
type CircularQueue[T any] struct {
	items []T
	head  int
	tail  int
	size  int
}

// NewCircularQueue returns an empty queue holding at most capacity items.
func NewCircularQueue[T any](capacity int) *CircularQueue[T] {
	return &CircularQueue[T]{items: make([]T, max(capacity, 0))}
}

// Get returns the item at logical position index (0 = oldest).
func (q *CircularQueue[T]) Get(index int) (T, error) {
	var zero T
	if index < 0 || index >= q.size {
		return zero, oerror.New("circularqueue: index %d out of range [0, %d)", index, q.size)
	}
	return q.items[(q.head+index)%len(q.items)], nil
}

// Iter yields the items from oldest to newest.
func (q *CircularQueue[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for index := range q.size {
			if !yield(q.items[(q.head+index)%len(q.items)]) {
				return
			}
		}
	}
}

// Len returns the number of items in the queue.
func (q *CircularQueue[T]) Len() int {
	return q.size
}

// Cap returns the maximum number of items the queue can hold.
func (q *CircularQueue[T]) Cap() int {
	return len(q.items)
}

// Full reports whether the next Append drops an item.
func (q *CircularQueue[T]) Full() bool {
	return q.size == len(q.items)
}

// Pop removes and returns the oldest item. ok is false if the queue is empty.
func (q *CircularQueue[T]) Pop() (item T, ok bool) {
	if q.size == 0 {
		return item, false
	}
	item = q.items[q.head]
	q.head = (q.head + 1) % len(q.items)
	q.size--
	return item, true
}

// Append adds an item, dropping the oldest one if the queue is full.
func (q *CircularQueue[T]) Append(item T) error {
	if len(q.items) == 0 {
		return oerror.New("circularqueue: append on zero-capacity queue")
	}
	q.items[q.tail] = item
	if q.size == len(q.items) {
		q.head = (q.head + 1) % len(q.items)
	} else {
		q.size++
	}
	q.tail = (q.tail + 1) % len(q.items)
	return nil
}
