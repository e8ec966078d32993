package lptable

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_Stats(t *testing.T) {
	tbl := New[int, int](WithKeyHasher(collide[int]))
	for i := 1; i <= 3; i++ {
		_, err := tbl.Insert(i, i)
		require.NoError(t, err)
	}
	_, err := tbl.Delete(2)
	require.NoError(t, err)

	stats := tbl.Stats()
	assert.Equal(t, 7, stats.Capacity)
	assert.Equal(t, 2, stats.Size)
	assert.Equal(t, 1, stats.Tombstones)
	assert.Equal(t, 4, stats.EmptySlots)
	assert.Equal(t, uint64(4), stats.Generation)
	assert.Equal(t, 0, stats.TotalGrowths)
	assert.Equal(t, 3, stats.MaxProbes)
	assert.InDelta(t, 2.0, stats.MeanProbes, 1e-9)
	assert.InDelta(t, 3.0/7.0, stats.LoadFactor(), 1e-9)
	assert.Positive(t, stats.SlotBytes)
	assert.Positive(t, stats.CacheLines)
	assert.LessOrEqual(t, stats.CacheLines*int(CacheLineSize), stats.SlotBytes*7+int(CacheLineSize))

	s := stats.ToString()
	assert.True(t, strings.HasPrefix(s, "TableStats{\n"))
	assert.Contains(t, s, "Tombstones:   1\n")
}

func TestTable_StatsEmpty(t *testing.T) {
	stats := New[string, string]().Stats()
	assert.Equal(t, DefaultCapacity, stats.EmptySlots)
	assert.Zero(t, stats.MaxProbes)
	assert.Zero(t, stats.MeanProbes)
	assert.Zero(t, (&TableStats{}).LoadFactor())
}

func TestTable_JSON(t *testing.T) {
	tbl := New[string, int]()
	_, _ = tbl.Insert("a", 1)
	_, _ = tbl.Insert("b", 2)

	data, err := json.Marshal(tbl)
	require.NoError(t, err)
	require.JSONEq(t, `{"a":1,"b":2}`, string(data))

	var decoded Table[string, int]
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, 2, decoded.Size())
	v, ok := decoded.Find("b")
	require.True(t, ok)
	require.Equal(t, 2, v)

	require.Error(t, json.Unmarshal([]byte(`{"a":"x"}`), &decoded))
}

func TestTable_FromMapRejectsSentinel(t *testing.T) {
	tbl := New[string, int](WithSentinelKey(""))
	err := tbl.FromMap(map[string]int{"": 1})
	require.ErrorIs(t, err, ErrInvalidArgument)
	require.True(t, tbl.IsEmpty())
}
