package lptable

// slotState is the lifecycle state of a single slot.
type slotState uint8

const (
	// slotEmpty has never held a live entry since the last resize or
	// clear. It terminates every probe sequence.
	slotEmpty slotState = iota
	// slotOccupied holds a live key and value.
	slotOccupied
	// slotDeleted is a tombstone. It holds nothing but keeps probe
	// sequences running past it.
	slotDeleted
)

func (s slotState) String() string {
	switch s {
	case slotEmpty:
		return "empty"
	case slotOccupied:
		return "occupied"
	case slotDeleted:
		return "deleted"
	default:
		return "invalid"
	}
}

// slot is one cell of the table. key and value are meaningful only while
// state is slotOccupied; they are zeroed on delete so the table does not
// keep removed values reachable.
type slot[K comparable, V any] struct {
	key   K
	value V
	state slotState
}

// probe returns the index examined on the given attempt of a linear probe
// sequence starting at base. base must already be reduced modulo capacity.
//
//go:nosplit
func probe(base, attempt, capacity int) int {
	i := base + attempt
	if i >= capacity {
		i %= capacity
	}
	return i
}

// baseIndex reduces a hash to the first slot of its probe sequence.
//
//go:nosplit
func baseIndex(hash uint64, capacity int) int {
	return int(hash % uint64(capacity))
}
