// Package lptable provides Table, a generic hash table that resolves
// collisions by linear probing over a flat slot array.
//
// Deletion is lazy: a removed entry leaves a tombstone that keeps probe
// sequences of other keys intact until the next resize rebuilds the array.
// The table grows by a constant factor before an insertion would push the
// fraction of used slots (live entries plus tombstones) to the configured
// load factor, so every probe sequence reaches an empty slot.
//
// Key features of lptable.Table:
//   - Explicit three-state slots (empty, occupied, deleted)
//   - Identity hashing for integer keys, xxhash for strings, and the
//     runtime hash for any other comparable type, customizable on creation
//   - Fail-fast iteration in slot order, driven by a generation counter
//   - Functional options, optionally loaded from a TOML file
//   - Resize events reported through a zap logger
//
// A Table is not safe for concurrent use. The generation counter detects
// a mutation interleaved with an iteration on the same goroutine; it does
// not detect data races.
package lptable

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Table maps unique keys to values using open addressing with linear
// probing.
//
// The zero Table is not usable; create tables with New.
type Table[K comparable, V any] struct {
	slots      []slot[K, V]
	live       int    // occupied slots
	tombstones int    // deleted slots not yet swept by a resize
	generation uint64 // bumped on every structural change
	growths    int

	keyHash      func(key K) uint64
	nilKey       func(key K) bool
	sentinel     K
	hasSentinel  bool
	minCapacity  int
	loadFactor   float64
	growthFactor float64
	updateBumps  bool
	logger       *zap.Logger
}

// New creates an empty Table.
//
// Parameters:
//   - WithCapacity option for the initial number of slots (default 7)
//   - WithLoadFactor and WithGrowthFactor options for the resize policy
//   - WithKeyHasher option to replace the default hash function
//   - WithSentinelKey option to reject a reserved key
//   - WithUpdateInvalidatesIterators option to fail iterators on overwrite
//   - WithLogger option to observe resizes
//   - WithConfig option to apply a Config loaded from a file
//
// New panics if WithKeyHasher or WithSentinelKey was instantiated for a
// different key type.
func New[K comparable, V any](options ...func(*Config)) *Table[K, V] {
	var cfg Config
	for _, opt := range options {
		opt(&cfg)
	}
	cfg.normalize()

	t := &Table[K, V]{
		minCapacity:  cfg.Capacity,
		loadFactor:   cfg.LoadFactor,
		growthFactor: cfg.GrowthFactor,
		updateBumps:  cfg.UpdateInvalidatesIterators,
		logger:       cfg.logger,
		nilKey:       nilKeyCheck[K](),
	}
	t.keyHash = defaultHasher[K]()
	if cfg.keyHash != nil {
		keyHash, ok := cfg.keyHash.(func(key K) uint64)
		if !ok {
			panic(errors.Wrapf(ErrInvalidArgument,
				"key hasher %T does not accept keys of type %T", cfg.keyHash, t.sentinel))
		}
		t.keyHash = keyHash
	}
	if cfg.hasSentinel {
		sentinel, ok := cfg.sentinelKey.(K)
		if !ok {
			panic(errors.Wrapf(ErrInvalidArgument,
				"sentinel key %T does not match key type %T", cfg.sentinelKey, t.sentinel))
		}
		t.sentinel, t.hasSentinel = sentinel, true
	}
	t.slots = make([]slot[K, V], t.minCapacity)
	return t
}

// checkKey rejects nil keys and the configured sentinel before any state
// is touched.
func (t *Table[K, V]) checkKey(key K) error {
	if t.nilKey != nil && t.nilKey(key) {
		return errors.Wrapf(ErrInvalidArgument, "nil key of type %T", key)
	}
	if t.hasSentinel && key == t.sentinel {
		return errors.Wrapf(ErrInvalidArgument, "key %v is the sentinel key", key)
	}
	return nil
}

// findPosition walks the probe sequence of key. It returns the index of
// the occupied slot holding key and true, or the index where key would be
// inserted and false. The insert index is the first tombstone met, else
// the empty slot that ended the walk; it is -1 only when a whole cycle
// found neither.
func (t *Table[K, V]) findPosition(key K) (int, bool) {
	capacity := len(t.slots)
	base := baseIndex(t.keyHash(key), capacity)
	insertAt := -1
	for attempt := 0; attempt < capacity; attempt++ {
		i := probe(base, attempt, capacity)
		s := &t.slots[i]
		switch s.state {
		case slotEmpty:
			if insertAt < 0 {
				insertAt = i
			}
			return insertAt, false
		case slotDeleted:
			if insertAt < 0 {
				insertAt = i
			}
		case slotOccupied:
			if s.key == key {
				return i, true
			}
		}
	}
	return insertAt, false
}

// Insert stores value under key. It returns true if key was not present
// before the call, and false if an existing value was overwritten.
//
// Insert grows the table first when a new entry would reach the load
// factor; overwrites never resize. It returns an error wrapping
// ErrInvalidArgument for nil or sentinel keys.
func (t *Table[K, V]) Insert(key K, value V) (inserted bool, err error) {
	if err := t.checkKey(key); err != nil {
		return false, err
	}

	i, found := t.findPosition(key)
	if found {
		t.slots[i].value = value
		if t.updateBumps {
			t.generation++
		}
		return false, nil
	}
	if t.exceedsLoadFactor() {
		t.grow()
		i, _ = t.findPosition(key)
	}
	if i < 0 {
		panic(fmt.Sprintf("lptable: no free slot among %d (live %d, tombstones %d)",
			len(t.slots), t.live, t.tombstones))
	}
	t.place(i, key, value)
	t.generation++
	return true, nil
}

// place fills slot i, which must be empty or deleted.
func (t *Table[K, V]) place(i int, key K, value V) {
	s := &t.slots[i]
	if s.state == slotDeleted {
		t.tombstones--
	}
	s.key, s.value, s.state = key, value, slotOccupied
	t.live++
}

// Find returns the value stored under key. The ok result reports whether
// key was present.
func (t *Table[K, V]) Find(key K) (value V, ok bool) {
	if t.nilKey != nil && t.nilKey(key) {
		return value, false
	}
	i, found := t.findPosition(key)
	if !found {
		return value, false
	}
	return t.slots[i].value, true
}

// Contains reports whether key is present.
func (t *Table[K, V]) Contains(key K) bool {
	_, ok := t.Find(key)
	return ok
}

// Delete removes key, leaving a tombstone in its slot. It returns true if
// a live entry was removed. The table never shrinks on delete.
//
// Delete returns an error wrapping ErrInvalidArgument for nil or sentinel
// keys.
func (t *Table[K, V]) Delete(key K) (deleted bool, err error) {
	if err := t.checkKey(key); err != nil {
		return false, err
	}
	i, found := t.findPosition(key)
	if !found {
		return false, nil
	}
	t.slots[i] = slot[K, V]{state: slotDeleted}
	t.live--
	t.tombstones++
	t.generation++
	return true, nil
}

// Size returns the number of live entries.
func (t *Table[K, V]) Size() int {
	return t.live
}

// IsEmpty reports whether the table holds no live entries.
func (t *Table[K, V]) IsEmpty() bool {
	return t.live == 0
}

// Capacity returns the current number of slots.
func (t *Table[K, V]) Capacity() int {
	return len(t.slots)
}

// Tombstones returns the number of deleted slots awaiting the next resize.
func (t *Table[K, V]) Tombstones() int {
	return t.tombstones
}

// Clear discards every entry and returns the table to its initial
// capacity.
func (t *Table[K, V]) Clear() {
	t.ClearWithCapacity(t.minCapacity)
}

// ClearWithCapacity discards every entry and reallocates the table with
// capacity slots. Zero or negative capacities select the initial capacity
// the table was created with.
func (t *Table[K, V]) ClearWithCapacity(capacity int) {
	if capacity <= 0 {
		capacity = t.minCapacity
	}
	t.slots = make([]slot[K, V], capacity)
	t.live = 0
	t.tombstones = 0
	t.generation++
}

// exceedsLoadFactor reports whether placing one more entry would bring the
// used fraction to the load factor.
func (t *Table[K, V]) exceedsLoadFactor() bool {
	used := t.live + t.tombstones + 1
	return float64(used)/float64(len(t.slots)) >= t.loadFactor
}

// grow multiplies the capacity by the growth factor until one more live
// entry fits below the load factor, then rehashes.
func (t *Table[K, V]) grow() {
	capacity := len(t.slots)
	for {
		next := int(float64(capacity) * t.growthFactor)
		if next <= capacity {
			next = capacity + 1
		}
		capacity = next
		if float64(t.live+1)/float64(capacity) < t.loadFactor {
			break
		}
	}
	t.resize(capacity)
}

// resize rebuilds the slot array with newCapacity slots. Live entries are
// re-placed along their probe sequences in the new array; tombstones are
// dropped. The generation moves once for the whole rebuild.
func (t *Table[K, V]) resize(newCapacity int) {
	oldSlots := t.slots
	dropped := t.tombstones

	t.slots = make([]slot[K, V], newCapacity)
	t.live = 0
	t.tombstones = 0
	for i := range oldSlots {
		s := &oldSlots[i]
		if s.state != slotOccupied {
			continue
		}
		j, found := t.findPosition(s.key)
		if found || j < 0 {
			panic(fmt.Sprintf("lptable: rehash of %d slots into %d failed", len(oldSlots), newCapacity))
		}
		t.place(j, s.key, s.value)
	}
	t.generation++
	t.growths++

	t.logger.Debug("resized table",
		zap.Int("oldCapacity", len(oldSlots)),
		zap.Int("newCapacity", newCapacity),
		zap.Int("live", t.live),
		zap.Int("droppedTombstones", dropped),
		zap.Uint64("generation", t.generation),
	)
}

// ToMap collects all live entries into a map[K]V.
func (t *Table[K, V]) ToMap() map[K]V {
	m := make(map[K]V, t.live)
	for i := range t.slots {
		if s := &t.slots[i]; s.state == slotOccupied {
			m[s.key] = s.value
		}
	}
	return m
}

// String implement the formatting output interface fmt.Stringer
func (t *Table[K, V]) String() string {
	return strings.Replace(fmt.Sprint(t.ToMap()), "map[", "Table[", 1)
}
