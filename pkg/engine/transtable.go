package engine

import (
	"github.com/pbnjay/memory"

	. "github.com/pawnstorm/pawnstorm/pkg/common"
)

type Bound uint8

const (
	BoundLower Bound = 1 << iota
	BoundUpper
)

const BoundExact = BoundLower | BoundUpper

func (b Bound) String() string {
	switch b {
	case BoundLower:
		return "lower"
	case BoundUpper:
		return "upper"
	case BoundExact:
		return "exact"
	}
	return "none"
}

func roundPowerOfTwo(size int) int {
	var x = 1
	for (x << 1) <= size {
		x <<= 1
	}
	return x
}

// TransEntry is 16 bytes. A zero Bound marks an empty slot.
type TransEntry struct {
	Key   uint64
	Move  Move
	Score int16
	Depth int8
	Bound Bound
}

type TransStats struct {
	Probes     int64
	Hits       int64
	Collisions int64
	Stores     int64
}

// TransTable is a fixed-size, always-replace cache of search results.
// The full key is stored, so an index collision reads as a miss.
type TransTable struct {
	megabytes int
	entries   []TransEntry
	mask      uint64
	stats     TransStats
}

const transEntrySize = 16

// NewTransTable sizes the table to at most half of physical memory.
func NewTransTable(megabytes int) *TransTable {
	var bytes = uint64(Max(megabytes, 1)) << 20
	if total := memory.TotalMemory(); total != 0 && bytes > total/2 {
		bytes = total / 2
	}
	var size = roundPowerOfTwo(int(bytes / transEntrySize))
	return &TransTable{
		megabytes: megabytes,
		entries:   make([]TransEntry, size),
		mask:      uint64(size - 1),
	}
}

// Size returns the requested size in megabytes.
func (tt *TransTable) Size() int {
	return tt.megabytes
}

func (tt *TransTable) Len() int {
	return len(tt.entries)
}

func (tt *TransTable) Stats() TransStats {
	return tt.stats
}

func (tt *TransTable) Clear() {
	clear(tt.entries)
	tt.stats = TransStats{}
}

func (tt *TransTable) Probe(key uint64) (TransEntry, bool) {
	tt.stats.Probes++
	var entry = &tt.entries[key&tt.mask]
	if entry.Bound == 0 {
		return TransEntry{}, false
	}
	if entry.Key != key {
		tt.stats.Collisions++
		return TransEntry{}, false
	}
	tt.stats.Hits++
	return *entry, true
}

func (tt *TransTable) Store(key uint64, depth, score int, bound Bound, move Move) {
	tt.stats.Stores++
	tt.entries[key&tt.mask] = TransEntry{
		Key:   key,
		Move:  move,
		Score: int16(score),
		Depth: int8(Min(depth, maxHeight)),
		Bound: bound,
	}
}
