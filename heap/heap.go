// Package heap provides a binary min-heap priority queue.
//
// Unlike container/heap, the queue owns its backing array and is generic
// over the element type; ordering comes from a less function supplied at
// construction.
package heap

import (
	"iter"

	"golang.org/x/exp/constraints"
)

// defaultCapacity is the initial backing array capacity.
const defaultCapacity = 10

// Heap is a min-heap: FindMin and DeleteMin return the element for which
// less reports true against every other element. Elements that compare
// equal are returned in unspecified order.
//
// A Heap is not safe for concurrent use.
type Heap[T any] struct {
	items []T
	less  func(a, b T) bool
}

// New creates an empty heap ordered by less.
func New[T any](less func(a, b T) bool) *Heap[T] {
	return &Heap[T]{
		items: make([]T, 0, defaultCapacity),
		less:  less,
	}
}

// NewOrdered creates an empty heap ordered by the < operator.
func NewOrdered[T constraints.Ordered]() *Heap[T] {
	return New(func(a, b T) bool { return a < b })
}

// From builds a heap from a copy of items in O(n) using Floyd's bottom-up
// construction.
func From[T any](less func(a, b T) bool, items []T) *Heap[T] {
	h := &Heap[T]{
		items: make([]T, len(items), max(len(items), defaultCapacity)),
		less:  less,
	}
	copy(h.items, items)
	for i := len(h.items)/2 - 1; i >= 0; i-- {
		h.sink(i)
	}
	return h
}

// Insert adds x to the heap in O(log n).
func (h *Heap[T]) Insert(x T) {
	h.items = append(h.items, x)
	h.swim(len(h.items) - 1)
}

// DeleteMin removes and returns the minimum element. The ok result is
// false if the heap is empty.
func (h *Heap[T]) DeleteMin() (item T, ok bool) {
	n := len(h.items) - 1
	if n < 0 {
		return item, false
	}
	item = h.items[0]
	h.items[0] = h.items[n]
	h.items[n] = *new(T)
	h.items = h.items[:n]
	h.sink(0)
	return item, true
}

// FindMin returns the minimum element without removing it.
func (h *Heap[T]) FindMin() (item T, ok bool) {
	if len(h.items) == 0 {
		return item, false
	}
	return h.items[0], true
}

// Size returns the number of elements.
func (h *Heap[T]) Size() int {
	return len(h.items)
}

// IsEmpty reports whether the heap has no elements.
func (h *Heap[T]) IsEmpty() bool {
	return len(h.items) == 0
}

// Clear removes all elements and releases the backing array.
func (h *Heap[T]) Clear() {
	h.items = make([]T, 0, defaultCapacity)
}

// ContainsFunc reports whether some element satisfies match. It is a
// linear scan.
func (h *Heap[T]) ContainsFunc(match func(T) bool) bool {
	for _, x := range h.items {
		if match(x) {
			return true
		}
	}
	return false
}

// All returns an iterator over the elements in backing array order, which
// satisfies the heap property but is not sorted. The heap must not be
// modified during the loop.
func (h *Heap[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, x := range h.items {
			if !yield(x) {
				return
			}
		}
	}
}

// Drain returns an iterator that removes and yields elements in ascending
// order until the heap is empty or the loop stops.
func (h *Heap[T]) Drain() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			x, ok := h.DeleteMin()
			if !ok || !yield(x) {
				return
			}
		}
	}
}

// swim moves the element at i up while it is less than its parent.
func (h *Heap[T]) swim(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !h.less(h.items[i], h.items[parent]) {
			break
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

// sink moves the element at i down while a child is less than it.
func (h *Heap[T]) sink(i int) {
	n := len(h.items)
	for {
		child := 2*i + 1
		if child >= n {
			return
		}
		if right := child + 1; right < n && h.less(h.items[right], h.items[child]) {
			child = right
		}
		if !h.less(h.items[child], h.items[i]) {
			return
		}
		h.items[i], h.items[child] = h.items[child], h.items[i]
		i = child
	}
}
