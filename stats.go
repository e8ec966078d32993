package lptable

import (
	"fmt"
	"strings"
	"unsafe"
)

// Stats returns statistics for the Table. It is an O(capacity) operation,
// so it should be used only for diagnostics or debugging purposes.
func (t *Table[K, V]) Stats() *TableStats {
	capacity := len(t.slots)
	stats := &TableStats{
		Capacity:     capacity,
		Size:         t.live,
		Tombstones:   t.tombstones,
		Generation:   t.generation,
		TotalGrowths: t.growths,
		SlotBytes:    int(unsafe.Sizeof(slot[K, V]{})),
	}
	stats.CacheLines = (stats.SlotBytes*capacity + int(CacheLineSize) - 1) / int(CacheLineSize)

	var totalProbes int
	for i := range t.slots {
		s := &t.slots[i]
		switch s.state {
		case slotEmpty:
			stats.EmptySlots++
		case slotOccupied:
			base := baseIndex(t.keyHash(s.key), capacity)
			probes := (i-base+capacity)%capacity + 1
			totalProbes += probes
			if probes > stats.MaxProbes {
				stats.MaxProbes = probes
			}
		}
	}
	if t.live > 0 {
		stats.MeanProbes = float64(totalProbes) / float64(t.live)
	}
	return stats
}

// TableStats is Table statistics.
//
// Warning: table statistics are intended to be used for diagnostic
// purposes, not for production code. Fields may be added or changed
// between minor releases.
type TableStats struct {
	// Capacity is the number of slots.
	Capacity int
	// Size is the number of live entries.
	Size int
	// Tombstones is the number of deleted slots not yet swept by a resize.
	Tombstones int
	// EmptySlots is the number of slots that terminate probe sequences.
	EmptySlots int
	// Generation is the structural modification counter.
	Generation uint64
	// TotalGrowths is the number of times the table grew.
	TotalGrowths int
	// MaxProbes is the longest probe sequence a successful lookup of a
	// live key currently walks, counting the slot holding the key.
	MaxProbes int
	// MeanProbes is the average probe sequence length over live keys.
	MeanProbes float64
	// SlotBytes is the in-memory size of one slot.
	SlotBytes int
	// CacheLines is the number of cache lines spanned by the slot array.
	CacheLines int
}

// LoadFactor returns the fraction of slots holding live entries or
// tombstones.
func (s *TableStats) LoadFactor() float64 {
	if s.Capacity == 0 {
		return 0
	}
	return float64(s.Size+s.Tombstones) / float64(s.Capacity)
}

// ToString returns string representation of table stats.
func (s *TableStats) ToString() string {
	var sb strings.Builder
	sb.WriteString("TableStats{\n")
	sb.WriteString(fmt.Sprintf("Capacity:     %d\n", s.Capacity))
	sb.WriteString(fmt.Sprintf("Size:         %d\n", s.Size))
	sb.WriteString(fmt.Sprintf("Tombstones:   %d\n", s.Tombstones))
	sb.WriteString(fmt.Sprintf("EmptySlots:   %d\n", s.EmptySlots))
	sb.WriteString(fmt.Sprintf("LoadFactor:   %.3f\n", s.LoadFactor()))
	sb.WriteString(fmt.Sprintf("Generation:   %d\n", s.Generation))
	sb.WriteString(fmt.Sprintf("TotalGrowths: %d\n", s.TotalGrowths))
	sb.WriteString(fmt.Sprintf("MaxProbes:    %d\n", s.MaxProbes))
	sb.WriteString(fmt.Sprintf("MeanProbes:   %.3f\n", s.MeanProbes))
	sb.WriteString(fmt.Sprintf("SlotBytes:    %d\n", s.SlotBytes))
	sb.WriteString(fmt.Sprintf("CacheLines:   %d\n", s.CacheLines))
	sb.WriteString("}\n")
	return sb.String()
}
