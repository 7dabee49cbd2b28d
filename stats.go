package piecerng

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Extreme is the best seed found for one criterion.
type Extreme struct {
	Seed  Seed
	Count int
	Found bool
}

// consider replaces e when count beats it; on a tie the lower seed wins.
func (e *Extreme) consider(seed Seed, count int, better func(a, b int) bool) {
	if !e.Found || better(count, e.Count) || (count == e.Count && seed < e.Seed) {
		*e = Extreme{Seed: seed, Count: count, Found: true}
	}
}

// Extremes summarizes piece counts over a seed range.
type Extremes struct {
	Length int
	Seeds  int

	MostI  Extreme
	LeastI Extreme
	MostO  Extreme
}

func (x *Extremes) observe(seed Seed, c Counts) {
	x.Seeds++
	x.MostI.consider(seed, c.Of(I), greater)
	x.LeastI.consider(seed, c.Of(I), less)
	x.MostO.consider(seed, c.Of(O), greater)
}

func (x *Extremes) merge(o Extremes) {
	x.Seeds += o.Seeds
	if o.MostI.Found {
		x.MostI.consider(o.MostI.Seed, o.MostI.Count, greater)
	}
	if o.LeastI.Found {
		x.LeastI.consider(o.LeastI.Seed, o.LeastI.Count, less)
	}
	if o.MostO.Found {
		x.MostO.consider(o.MostO.Seed, o.MostO.Count, greater)
	}
}

func greater(a, b int) bool { return a > b }
func less(a, b int) bool    { return a < b }

// CountPieces tallies the first n pieces of seed without keeping the
// sequence.
func CountPieces(t *Table, seed Seed, n int) Counts {
	var c Counts
	s := StateFromSeed(seed)
	for i := 0; i < n; i++ {
		var p Piece
		s, p = Next(t, s)
		c[p.Index()]++
	}
	return c
}

// ScanExtremes finds the seeds with the most and fewest I pieces and the
// most O pieces within the first length spawns. Work is split by the first
// seed byte across workers goroutines; zero means runtime.NumCPU().
func ScanExtremes(ctx context.Context, t *Table, length int, r SeedRange, workers int) (Extremes, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if r.From > r.To {
		return Extremes{Length: length}, nil
	}

	lo, hi := int(r.From>>16), int(min(r.To, MaxSeed)>>16)
	parts := make([]Extremes, hi-lo+1)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range parts {
		sub := r
		sub.From = max(r.From, Seed(lo+i)<<16)
		sub.To = min(r.To, Seed(lo+i)<<16|0xFFFF)
		g.Go(func() error {
			n := 0
			for s := range sub.All() {
				if n%ctxCheckInterval == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				parts[i].observe(s, CountPieces(t, s, length))
				n++
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Extremes{}, err
	}

	out := Extremes{Length: length}
	for _, p := range parts {
		out.merge(p)
	}
	return out, nil
}
