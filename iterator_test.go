package lptable

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIterator_Completeness(t *testing.T) {
	tbl := New[string, int]()
	want := map[string]int{"A": 1, "B": 2, "C": 3}
	for k, v := range want {
		_, err := tbl.Insert(k, v)
		require.NoError(t, err)
	}

	got := make(map[string]int)
	it := tbl.Iterator()
	for it.Next() {
		_, dup := got[it.Key()]
		require.Falsef(t, dup, "key %q yielded twice", it.Key())
		got[it.Key()] = it.Value()
	}
	require.NoError(t, it.Err())
	require.Equal(t, want, got)

	// Exhausted iterators stay exhausted.
	require.False(t, it.Next())
	require.NoError(t, it.Err())
}

func TestIterator_SlotOrder(t *testing.T) {
	tbl := New[int, string](WithCapacity(7))
	for _, k := range []int{5, 1, 3} {
		_, err := tbl.Insert(k, string(rune('a'+k)))
		require.NoError(t, err)
	}
	var keys []int
	var values []string
	it := tbl.Iterator()
	for it.Next() {
		keys = append(keys, it.Key())
		values = append(values, it.Value())
	}
	require.NoError(t, it.Err())
	require.Equal(t, []int{1, 3, 5}, keys)
	require.Equal(t, []string{"b", "d", "f"}, values)
}

func TestIterator_FailsOnDelete(t *testing.T) {
	tbl := New[int, int]()
	for i := 1; i <= 3; i++ {
		_, err := tbl.Insert(i, i*100)
		require.NoError(t, err)
	}
	it := tbl.Iterator()
	require.True(t, it.Next())

	deleted, err := tbl.Delete(2)
	require.NoError(t, err)
	require.True(t, deleted)

	require.False(t, it.Next())
	require.ErrorIs(t, it.Err(), ErrConcurrentModification)
	require.Zero(t, it.Value())

	// The failure is sticky and the table is still usable.
	require.False(t, it.Next())
	require.ErrorIs(t, it.Err(), ErrConcurrentModification)
	v, ok := tbl.Find(3)
	require.True(t, ok)
	require.Equal(t, 300, v)

	fresh := tbl.Iterator()
	n := 0
	for fresh.Next() {
		n++
	}
	require.NoError(t, fresh.Err())
	require.Equal(t, 2, n)
}

func TestIterator_FailsOnInsertAndResize(t *testing.T) {
	tbl := New[int, int](WithCapacity(4))
	_, err := tbl.Insert(0, 0)
	require.NoError(t, err)

	it := tbl.Iterator()
	_, err = tbl.Insert(1, 1)
	require.NoError(t, err)
	require.False(t, it.Next())
	require.ErrorIs(t, it.Err(), ErrConcurrentModification)

	before := tbl.Stats().Generation
	_, err = tbl.Insert(2, 2) // grows from 4 to 8, then inserts
	require.NoError(t, err)
	require.Equal(t, 8, tbl.Capacity())
	require.Equal(t, before+2, tbl.Stats().Generation, "resize counts once, the insertion once")
}

func TestIterator_NoOpMutationsKeepIteratorValid(t *testing.T) {
	tbl := New[int, int]()
	for i := 0; i < 3; i++ {
		_, err := tbl.Insert(i, i)
		require.NoError(t, err)
	}
	it := tbl.Iterator()
	require.True(t, it.Next())

	// Failed lookups and deletes of absent keys are not structural.
	_, _ = tbl.Find(42)
	deleted, err := tbl.Delete(42)
	require.NoError(t, err)
	require.False(t, deleted)
	// Neither is a plain overwrite under the default policy.
	inserted, err := tbl.Insert(1, 10)
	require.NoError(t, err)
	require.False(t, inserted)

	n := 1
	for it.Next() {
		n++
	}
	require.NoError(t, it.Err())
	require.Equal(t, 3, n)
}

func TestIterator_UpdateInvalidatesIteratorsPolicy(t *testing.T) {
	tbl := New[int, int](WithUpdateInvalidatesIterators())
	for i := 0; i < 3; i++ {
		_, err := tbl.Insert(i, i)
		require.NoError(t, err)
	}
	it := tbl.Iterator()
	require.True(t, it.Next())
	_, err := tbl.Insert(1, 10)
	require.NoError(t, err)
	require.False(t, it.Next())
	require.ErrorIs(t, it.Err(), ErrConcurrentModification)
}

func TestTable_RangeOverFunc(t *testing.T) {
	tbl := New[int, string](WithCapacity(7))
	for _, k := range []int{4, 2, 6} {
		_, err := tbl.Insert(k, string(rune('0'+k)))
		require.NoError(t, err)
	}

	var keys []int
	for k := range tbl.Keys() {
		keys = append(keys, k)
	}
	require.Equal(t, []int{2, 4, 6}, keys)

	var values []string
	for v := range tbl.Values() {
		values = append(values, v)
	}
	require.Equal(t, []string{"2", "4", "6"}, values)

	got := map[int]string{}
	for k, v := range tbl.All() {
		got[k] = v
		if len(got) == 2 {
			break
		}
	}
	require.Len(t, got, 2)
}

func TestTable_RangeOverFuncPanicsOnMutation(t *testing.T) {
	tbl := New[int, int]()
	for i := 0; i < 3; i++ {
		_, err := tbl.Insert(i, i)
		require.NoError(t, err)
	}
	require.PanicsWithError(t, "table generation moved from 3 to 4: concurrent modification", func() {
		for k := range tbl.Keys() {
			_, _ = tbl.Delete(k)
		}
	})
}

func TestIterator_OverwriteAtThresholdDoesNotResize(t *testing.T) {
	tbl := New[int, int]()
	for i := 0; i < 4; i++ {
		_, err := tbl.Insert(i, i)
		require.NoError(t, err)
	}
	it := tbl.Iterator()
	require.True(t, it.Next())

	// The next new key would grow the table; an overwrite must not.
	inserted, err := tbl.Insert(0, 100)
	require.NoError(t, err)
	require.False(t, inserted)
	require.Equal(t, DefaultCapacity, tbl.Capacity())
	for it.Next() {
	}
	require.NoError(t, it.Err())

	inserted, err = tbl.Insert(4, 4)
	require.NoError(t, err)
	require.True(t, inserted)
	require.Equal(t, 2*DefaultCapacity, tbl.Capacity())
}
