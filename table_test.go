package piecerng

import (
	"sync"
	"testing"
)

// sharedTable is built once and reused by every test in the package.
var sharedTable = sync.OnceValue(BuildTable)

func testTable(tb testing.TB) *Table {
	tb.Helper()
	return sharedTable()
}

func TestRepeats(t *testing.T) {
	tests := []struct {
		selector uint8
		want     int
	}{
		{0, 19},
		{1, 4},
		{2, 5},
		{8, 11},
		{15, 18},
	}

	for _, tt := range tests {
		if got := Repeats(tt.selector); got != tt.want {
			t.Errorf("Repeats(%d) = %d, want %d", tt.selector, got, tt.want)
		}
	}
}

func TestTable_KnownEntries(t *testing.T) {
	tab := testTable(t)

	tests := []struct {
		selector uint8
		x, want  uint16
	}{
		{1, 0x1111, 0x0111},
		{0, 0x1234, 0x3812},
		{15, 0xABCD, 0xF30C},
		{7, 0x0000, 0x0000},
	}
	for _, tt := range tests {
		if got := tab.Repeat(tt.selector, tt.x); got != tt.want {
			t.Errorf("Repeat(%d, %04X) = %04X, want %04X", tt.selector, tt.x, got, tt.want)
		}
	}
}

// Every row agrees with applying Shuffle directly. Sampled with a stride to
// keep the test fast; the full check runs outside -short.
func TestTable_MatchesShuffle(t *testing.T) {
	tab := testTable(t)
	stride := 1
	if testing.Short() {
		stride = 97
	}

	for sel := uint8(0); sel < tableRows; sel++ {
		row := tab.Row(sel)
		if len(row) != rowSize {
			t.Fatalf("Row(%d) has %d entries", sel, len(row))
		}
		n := Repeats(sel)
		for x := 0; x < rowSize; x += stride {
			if got, want := row[x], ShuffleN(uint16(x), n); got != want {
				t.Fatalf("row %d [%04X] = %04X, want %04X", sel, x, got, want)
			}
		}
	}
}

func TestTable_Shuffle1(t *testing.T) {
	tab := testTable(t)
	for x := 0; x < rowSize; x += 13 {
		if got, want := tab.Shuffle1(uint16(x)), Shuffle(uint16(x)); got != want {
			t.Fatalf("Shuffle1(%04X) = %04X, want %04X", x, got, want)
		}
	}
}

func TestTable_RepeatPanicsOnBadSelector(t *testing.T) {
	tab := testTable(t)
	defer func() {
		if recover() == nil {
			t.Error("Repeat(16, x) should panic")
		}
	}()
	tab.Repeat(16, 0)
}

func BenchmarkBuildTable(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = BuildTable()
	}
}
