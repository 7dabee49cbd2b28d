package piecerng

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountPieces(t *testing.T) {
	tab := testTable(t)
	want := PieceCounts(GenerateSequence(tab, 0x111111, 1000))
	assert.Equal(t, want, CountPieces(tab, 0x111111, 1000))
	assert.Equal(t, Counts{}, CountPieces(tab, 0x111111, 0))
}

func TestScanExtremes(t *testing.T) {
	tab := testTable(t)
	r := SeedRange{From: 0x111000, To: 0x1110FF, SkipInvalid: true, SkipRedundant: true}

	for _, workers := range []int{0, 1, 4} {
		x, err := ScanExtremes(context.Background(), tab, 100, r, workers)
		require.NoError(t, err)

		assert.Equal(t, 100, x.Length)
		assert.Equal(t, 128, x.Seeds)
		assert.Equal(t, Extreme{Seed: 0x111015, Count: 22, Found: true}, x.MostI)
		assert.Equal(t, Extreme{Seed: 0x1110F4, Count: 7, Found: true}, x.LeastI)
		assert.Equal(t, Extreme{Seed: 0x111052, Count: 25, Found: true}, x.MostO)
	}
}

// Extremes from a range spanning several first bytes merge correctly.
func TestScanExtremes_MatchesSequential(t *testing.T) {
	tab := testTable(t)
	r := SeedRange{From: 0x0EFF80, To: 0x110080, SkipInvalid: true, SkipRedundant: true}
	if testing.Short() {
		r.To = 0x0F0080
	}

	var want Extremes
	want.Length = 50
	for s := range r.All() {
		want.observe(s, CountPieces(tab, s, 50))
	}

	got, err := ScanExtremes(context.Background(), tab, 50, r, 3)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestScanExtremes_EmptyRange(t *testing.T) {
	x, err := ScanExtremes(context.Background(), testTable(t), 10, SeedRange{From: 2, To: 1}, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, x.Seeds)
	assert.False(t, x.MostI.Found)
}

func TestScanExtremes_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ScanExtremes(ctx, testTable(t), 10, FullRange(), 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtreme_TiesPreferLowerSeed(t *testing.T) {
	var e Extreme
	e.consider(0x500, 10, greater)
	e.consider(0x200, 10, greater)
	e.consider(0x300, 10, greater)
	assert.Equal(t, Extreme{Seed: 0x200, Count: 10, Found: true}, e)

	e.consider(0x900, 11, greater)
	assert.Equal(t, Extreme{Seed: 0x900, Count: 11, Found: true}, e)

	var lo Extreme
	lo.consider(0x100, 5, less)
	lo.consider(0x050, 6, less)
	assert.Equal(t, Extreme{Seed: 0x100, Count: 5, Found: true}, lo)
}
