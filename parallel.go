package piecerng

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// ExploreSeedSpace classifies every seed of r.
//
// The repeat selector never changes during a walk and is part of every
// canonical state, so the state graph splits into one independent component
// per selector. Each selector is explored by its own Explorer, in ascending
// seed order, and the partial results are merged. The result is identical to
// a sequential Explorer run over the same range.
func ExploreSeedSpace(ctx context.Context, t *Table, r SeedRange, cfg ExploreConfig) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	workers := cfg.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	logger := cfg.logger()

	sels := r.Selectors()
	parts := make([]*Result, len(sels))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, sel := range sels {
		g.Go(func() error {
			start := time.Now()
			e := NewExplorer(t, cfg)
			if err := e.exploreSeq(gctx, r.BySelector(sel)); err != nil {
				return fmt.Errorf("piecerng: explore selector %X: %w", sel, err)
			}
			parts[i] = e.Result()
			cfg.Metrics.partitionCompleted(sel)
			logger.Info("selector explored",
				"selector", hexNybble(sel),
				"seeds", len(parts[i].Seeds),
				"loops", len(parts[i].Loops),
				"elapsed", time.Since(start).Round(time.Millisecond))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{
		Seeds: make(map[Seed]SeedResult),
		Loops: make(map[CanonicalState]*Loop),
	}
	for _, p := range parts {
		result.merge(p)
	}
	return result, nil
}
