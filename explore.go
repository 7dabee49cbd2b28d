package piecerng

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"sort"
)

// ctxCheckInterval is how many seeds are explored between context checks.
const ctxCheckInterval = 1 << 12

// SeedResult classifies one seed.
type SeedResult struct {
	// StepsToCycle is the number of spawns from the seed's initial state to
	// the first state that lies on a loop.
	StepsToCycle uint32

	// LoopID identifies the loop the seed falls into.
	LoopID CanonicalState

	// EntryIndex is the insertion position, within that loop, of the first
	// loop state the seed reaches.
	EntryIndex uint32
}

// ExploreConfig configures an exploration pass.
type ExploreConfig struct {
	// Workers bounds how many selector partitions ExploreSeedSpace explores
	// at once. Zero means runtime.NumCPU().
	Workers int

	// Metrics receives work counters. Optional.
	Metrics *Metrics

	// Logger receives progress messages. Optional.
	Logger *slog.Logger
}

// Validate checks if the configuration is valid.
func (c *ExploreConfig) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("piecerng: workers must not be negative: %d", c.Workers)
	}
	return nil
}

func (c *ExploreConfig) logger() *slog.Logger {
	if c.Logger == nil {
		return discardLogger()
	}
	return c.Logger
}

// Explorer classifies seeds by the loop their transition chain ends in.
// Loops found by one walk are reused by every later walk that reaches them.
//
// An Explorer is not safe for concurrent use; see ExploreSeedSpace for the
// parallel form.
type Explorer struct {
	table   *Table
	seeds   map[Seed]SeedResult
	loops   map[CanonicalState]*Loop
	order   []CanonicalState                  // loop ids in discovery order
	members map[CanonicalState]CanonicalState // loop state -> loop id
	metrics *Metrics
	logger  *slog.Logger
}

// NewExplorer creates an explorer with no known seeds or loops.
func NewExplorer(t *Table, cfg ExploreConfig) *Explorer {
	return &Explorer{
		table:   t,
		seeds:   make(map[Seed]SeedResult),
		loops:   make(map[CanonicalState]*Loop),
		members: make(map[CanonicalState]CanonicalState),
		metrics: cfg.Metrics,
		logger:  cfg.logger(),
	}
}

// Explore classifies seed, walking its chain only if its canonical seed has
// not been classified before.
func (e *Explorer) Explore(seed Seed) SeedResult {
	key := seed.Canonical()
	if r, ok := e.seeds[key]; ok {
		e.metrics.seedKnown()
		return r
	}
	r := e.walk(StateFromSeed(key))
	e.seeds[key] = r
	return r
}

// walk follows the chain from s until it stands on a known loop or repeats
// a state of its own.
func (e *Explorer) walk(s RawState) SeedResult {
	w := getWalkScratch()
	defer putWalkScratch(w)

	cur := s.Canonical()
	var steps uint32
	for {
		if id, ok := e.members[cur]; ok {
			i, _ := e.loops[id].Index(cur)
			e.metrics.walked(len(w.path), steps, true)
			return SeedResult{StepsToCycle: steps, LoopID: id, EntryIndex: uint32(i)}
		}

		next, _ := Next(e.table, s)
		n := next.Canonical()
		w.push(cur)

		if i, ok := w.position(n); ok {
			l := e.addLoop(w.path[i:])
			e.metrics.walked(len(w.path), uint32(i), false)
			return SeedResult{StepsToCycle: uint32(i), LoopID: l.ID(), EntryIndex: 0}
		}

		steps++
		s, cur = next, n
	}
}

func (e *Explorer) addLoop(states []CanonicalState) *Loop {
	l := NewLoop(states)
	id := l.ID()
	e.loops[id] = l
	e.order = append(e.order, id)
	for _, s := range l.states {
		e.members[s] = id
	}
	e.metrics.loopFound(l.Len())
	e.logger.Debug("loop discovered", "loop", id.String(), "states", l.Len())
	return l
}

// ExploreRange explores every seed of r in order. It stops early with the
// context's error if ctx is cancelled.
func (e *Explorer) ExploreRange(ctx context.Context, r SeedRange) error {
	return e.exploreSeq(ctx, r.All())
}

func (e *Explorer) exploreSeq(ctx context.Context, seeds iter.Seq[Seed]) error {
	n := 0
	for s := range seeds {
		if n%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		e.Explore(s)
		n++
	}
	return nil
}

// Lookup returns the classification of seed, if known.
func (e *Explorer) Lookup(seed Seed) (SeedResult, bool) {
	r, ok := e.seeds[seed.Canonical()]
	return r, ok
}

// Loop returns a known loop by id.
func (e *Explorer) Loop(id CanonicalState) (*Loop, bool) {
	l, ok := e.loops[id]
	return l, ok
}

// Loops returns the known loops in discovery order.
func (e *Explorer) Loops() []*Loop {
	out := make([]*Loop, len(e.order))
	for i, id := range e.order {
		out[i] = e.loops[id]
	}
	return out
}

// NumSeeds returns how many canonical seeds have been classified.
func (e *Explorer) NumSeeds() int { return len(e.seeds) }

// Result returns the classification gathered so far. The result shares
// storage with the explorer, so the explorer must not be used afterwards.
func (e *Explorer) Result() *Result {
	return &Result{Seeds: e.seeds, Loops: e.loops}
}

// Result holds the outcome of an exploration pass.
type Result struct {
	// Seeds maps each canonical seed to its classification.
	Seeds map[Seed]SeedResult

	// Loops maps each loop id to the loop.
	Loops map[CanonicalState]*Loop
}

// ErrResultMismatch is returned by Verify when a recorded classification
// does not agree with a replayed walk.
var ErrResultMismatch = errors.New("piecerng: exploration result mismatch")

// Lookup returns the classification of seed, if present.
func (r *Result) Lookup(seed Seed) (SeedResult, bool) {
	sr, ok := r.Seeds[seed.Canonical()]
	return sr, ok
}

// LoopIDs returns the loop ids in ascending order.
func (r *Result) LoopIDs() []CanonicalState {
	ids := make([]CanonicalState, 0, len(r.Loops))
	for id := range r.Loops {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// SeedsByLoop counts classified seeds per loop.
func (r *Result) SeedsByLoop() map[CanonicalState]int {
	counts := make(map[CanonicalState]int, len(r.Loops))
	for _, sr := range r.Seeds {
		counts[sr.LoopID]++
	}
	return counts
}

// merge adds other into r. Callers guarantee the key sets are disjoint.
func (r *Result) merge(other *Result) {
	for k, v := range other.Seeds {
		r.Seeds[k] = v
	}
	for k, v := range other.Loops {
		r.Loops[k] = v
	}
}

// Verify replays the transition function to check that every loop is
// closed and every seed reaches its recorded loop state after exactly its
// recorded number of steps, without touching a loop state earlier.
func (r *Result) Verify(t *Table) error {
	owner := make(map[CanonicalState]CanonicalState)
	for id, l := range r.Loops {
		if l.ID() != id {
			return fmt.Errorf("%w: loop keyed %s has id %s", ErrResultMismatch, id, l.ID())
		}
		for i, s := range l.States() {
			next, _ := Next(t, s.Raw())
			if want := l.At(i + 1); next.Canonical() != want {
				return fmt.Errorf("%w: loop %s breaks after %s", ErrResultMismatch, id, s)
			}
			owner[s] = id
		}
	}

	for seed, sr := range r.Seeds {
		l, ok := r.Loops[sr.LoopID]
		if !ok {
			return fmt.Errorf("%w: seed %s names unknown loop %s", ErrResultMismatch, seed, sr.LoopID)
		}
		if int(sr.EntryIndex) >= l.Len() {
			return fmt.Errorf("%w: seed %s entry %d beyond loop length %d",
				ErrResultMismatch, seed, sr.EntryIndex, l.Len())
		}

		s := StateFromSeed(seed)
		for i := uint32(0); i < sr.StepsToCycle; i++ {
			if _, onLoop := owner[s.Canonical()]; onLoop {
				return fmt.Errorf("%w: seed %s reaches a loop after %d steps, recorded %d",
					ErrResultMismatch, seed, i, sr.StepsToCycle)
			}
			s, _ = Next(t, s)
		}
		if got, want := s.Canonical(), l.At(int(sr.EntryIndex)); got != want {
			return fmt.Errorf("%w: seed %s enters at %s, recorded %s", ErrResultMismatch, seed, got, want)
		}
	}
	return nil
}
