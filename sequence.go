package piecerng

// GenerateSequence returns the first n pieces the game spawns for seed.
// The result is never nil; n <= 0 yields an empty sequence.
func GenerateSequence(t *Table, seed Seed, n int) []Piece {
	seq := make([]Piece, 0, max(n, 0))
	s := StateFromSeed(seed)
	for i := 0; i < n; i++ {
		var p Piece
		s, p = Next(t, s)
		seq = append(seq, p)
	}
	return seq
}

// Sequencer yields the pieces of one seed incrementally.
// It is not safe for concurrent use.
type Sequencer struct {
	table *Table
	seed  Seed
	state RawState
	count int
}

// NewSequencer creates a Sequencer positioned before the first spawn.
func NewSequencer(t *Table, seed Seed) *Sequencer {
	return &Sequencer{table: t, seed: seed, state: StateFromSeed(seed)}
}

// Next spawns one piece.
func (q *Sequencer) Next() Piece {
	var p Piece
	q.state, p = Next(q.table, q.state)
	q.count++
	return p
}

// State returns the current working state.
func (q *Sequencer) State() RawState { return q.state }

// Count returns how many pieces have been spawned since the last reset.
func (q *Sequencer) Count() int { return q.count }

// Seed returns the seed the sequencer was started from.
func (q *Sequencer) Seed() Seed { return q.seed }

// Reset rewinds to the first spawn of the current seed.
func (q *Sequencer) Reset() {
	q.state = StateFromSeed(q.seed)
	q.count = 0
}

// SetSeed switches to a new seed and rewinds.
func (q *Sequencer) SetSeed(seed Seed) {
	q.seed = seed
	q.Reset()
}
