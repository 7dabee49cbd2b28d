package piecerng

import (
	"runtime"
	"sync"
)

const (
	// Number of repeat selectors (the high nybble of the third seed byte).
	tableRows = 16

	// Number of 16-bit roll values per row.
	rowSize = 1 << 16

	// Total number of precomputed repeat entries.
	tableItems = tableRows * rowSize
)

// Table caches Shuffle applied Repeats(selector) times for every selector
// and every 16-bit input, plus the single application used by re-rolls.
//
// A Table is immutable once built and safe for concurrent readers.
type Table struct {
	single  []uint16 // Shuffle(x), 65536 entries
	repeats []uint16 // row-major [selector][x], 16*65536 entries
}

// Repeats returns how many times the shuffle is applied for a selector.
// Selector 0 encodes 16 repeats, so it maps to 19 rather than 3.
func Repeats(selector uint8) int {
	n := int(selector)
	if n == 0 {
		n = 0x10
	}
	return n + 3
}

// BuildTable computes the full repeat table.
// This performs on the order of ten million shuffles and is meant to run once
// per process; see LoadOrBuildTable for a file-backed variant.
func BuildTable() *Table {
	t := &Table{
		single:  make([]uint16, rowSize),
		repeats: make([]uint16, tableItems),
	}
	t.fillSingle()
	t.generate()
	return t
}

func (t *Table) fillSingle() {
	for x := 0; x < rowSize; x++ {
		t.single[x] = Shuffle(uint16(x))
	}
}

// generate fills the repeat rows using parallel workers.
func (t *Table) generate() {
	numWorkers := runtime.NumCPU()
	itemsPerWorker := tableItems / numWorkers

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()

			start := workerID * itemsPerWorker
			end := start + itemsPerWorker
			if workerID == numWorkers-1 {
				end = tableItems
			}

			for item := start; item < end; item++ {
				t.repeats[item] = t.applySingle(uint16(item&0xFFFF), Repeats(uint8(item>>16)))
			}
		}(w)
	}
	wg.Wait()
}

func (t *Table) applySingle(x uint16, n int) uint16 {
	for i := 0; i < n; i++ {
		x = t.single[x]
	}
	return x
}

// Repeat returns Shuffle applied Repeats(selector) times to x.
// Selectors above 15 are a caller bug and panic.
func (t *Table) Repeat(selector uint8, x uint16) uint16 {
	return t.repeats[int(selector)<<16|int(x)]
}

// Shuffle1 returns the cached single application of Shuffle.
func (t *Table) Shuffle1(x uint16) uint16 {
	return t.single[x]
}

// Row returns a read-only view of one repeat row.
func (t *Table) Row(selector uint8) []uint16 {
	off := int(selector) << 16
	return t.repeats[off : off+rowSize : off+rowSize]
}
