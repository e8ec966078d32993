package lptable

import (
	"iter"

	"github.com/pkg/errors"
)

// Iterator walks the live entries of a Table in ascending slot order,
// which is neither insertion order nor key order.
//
// An Iterator is forward-only and cannot be restarted. It records the
// table generation when created; if the table is structurally modified
// afterwards (new key, delete, resize, clear, and optionally overwrite),
// the next call to Next returns false and Err reports
// ErrConcurrentModification.
//
//	it := t.Iterator()
//	for it.Next() {
//		use(it.Key(), it.Value())
//	}
//	if err := it.Err(); err != nil {
//		...
//	}
type Iterator[K comparable, V any] struct {
	t          *Table[K, V]
	generation uint64
	next       int
	key        K
	value      V
	err        error
}

// Iterator returns an iterator positioned before the first live entry.
func (t *Table[K, V]) Iterator() *Iterator[K, V] {
	return &Iterator[K, V]{t: t, generation: t.generation}
}

// Next advances to the next live entry. It returns false when the entries
// are exhausted or the table was modified since the iterator was created.
func (it *Iterator[K, V]) Next() bool {
	if it.err != nil {
		return false
	}
	if it.generation != it.t.generation {
		it.err = errors.Wrapf(ErrConcurrentModification,
			"table generation moved from %d to %d", it.generation, it.t.generation)
		it.key, it.value = *new(K), *new(V)
		return false
	}
	slots := it.t.slots
	for it.next < len(slots) {
		s := &slots[it.next]
		it.next++
		if s.state == slotOccupied {
			it.key, it.value = s.key, s.value
			return true
		}
	}
	it.key, it.value = *new(K), *new(V)
	return false
}

// Key returns the key of the current entry.
func (it *Iterator[K, V]) Key() K {
	return it.key
}

// Value returns a copy of the value of the current entry.
func (it *Iterator[K, V]) Value() V {
	return it.value
}

// Err returns the error that stopped the iteration, if any.
func (it *Iterator[K, V]) Err() error {
	return it.err
}

// All returns an iterator function for use with range-over-func.
// The loop panics with an error wrapping ErrConcurrentModification if the
// table is structurally modified while it runs.
func (t *Table[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		it := t.Iterator()
		for it.Next() {
			if !yield(it.Key(), it.Value()) {
				return
			}
		}
		if err := it.Err(); err != nil {
			panic(err)
		}
	}
}

// Keys returns an iterator over the live keys, with the same ordering and
// failure behavior as All.
func (t *Table[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k := range t.All() {
			if !yield(k) {
				return
			}
		}
	}
}

// Values returns an iterator over the live values, with the same ordering
// and failure behavior as All.
func (t *Table[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range t.All() {
			if !yield(v) {
				return
			}
		}
	}
}
