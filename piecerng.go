// Package piecerng reproduces the piece randomizer of a falling-block game
// from its three seed bytes, and classifies the seed space by the cycle each
// seed's randomizer state eventually enters.
//
// The randomizer is driven by a 16-bit shuffle applied a seed-dependent
// number of times per spawn. Those repeated applications are precomputed
// into a Table, which every other operation reads.
//
// Example usage:
//
//	gen, err := piecerng.New(piecerng.Config{TablePath: "table.bin"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	seed, _ := piecerng.ParseValidSeed("111111")
//	fmt.Println(piecerng.FormatPieces(gen.Sequence(seed, 20)))
package piecerng

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Config specifies how a Generator obtains its table.
type Config struct {
	// TablePath optionally caches the repeat table on disk. When empty the
	// table is built in memory.
	TablePath string

	// Workers bounds parallel scans. Zero means runtime.NumCPU().
	Workers int

	// Logger receives table and scan progress. Optional.
	Logger *slog.Logger

	// Metrics receives exploration counters. Optional.
	Metrics *Metrics
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("piecerng: workers must not be negative: %d", c.Workers)
	}
	return nil
}

// Generator bundles a Table with scan settings. It is safe for concurrent
// use: the table is never modified after New returns.
type Generator struct {
	config Config
	table  *Table
	logger *slog.Logger
}

// New creates a Generator, loading or building its table.
func New(config Config) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	logger := config.Logger
	if logger == nil {
		logger = discardLogger()
	}

	start := time.Now()
	t, err := LoadOrBuildTable(config.TablePath, logger)
	if err != nil {
		return nil, fmt.Errorf("piecerng: table initialization: %w", err)
	}
	logger.Debug("repeat table ready", "elapsed", time.Since(start).Round(time.Millisecond))

	return &Generator{config: config, table: t, logger: logger}, nil
}

// NewWithTable creates a Generator around an existing table.
func NewWithTable(t *Table, config Config) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	logger := config.Logger
	if logger == nil {
		logger = discardLogger()
	}
	return &Generator{config: config, table: t, logger: logger}, nil
}

// Table returns the generator's repeat table.
func (g *Generator) Table() *Table { return g.table }

// Sequence returns the first n pieces of seed.
func (g *Generator) Sequence(seed Seed, n int) []Piece {
	return GenerateSequence(g.table, seed, n)
}

// Explore classifies every seed of r.
func (g *Generator) Explore(ctx context.Context, r SeedRange) (*Result, error) {
	return ExploreSeedSpace(ctx, g.table, r, ExploreConfig{
		Workers: g.config.Workers,
		Metrics: g.config.Metrics,
		Logger:  g.logger,
	})
}

// Extremes scans r for the seeds with unusual I and O counts.
func (g *Generator) Extremes(ctx context.Context, length int, r SeedRange) (Extremes, error) {
	return ScanExtremes(ctx, g.table, length, r, g.config.Workers)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
