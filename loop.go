package piecerng

// Loop is a cycle of canonical states, stored in the order the discovering
// walk visited them. The first state is the loop's identity: the state at
// which the walk closed the cycle. The successor of the last state is the
// first.
type Loop struct {
	states []CanonicalState
	index  map[CanonicalState]int
}

// NewLoop builds a loop from its states in order. It panics on an empty
// slice. The caller is responsible for the states actually forming a cycle;
// Result.Verify checks that.
func NewLoop(states []CanonicalState) *Loop {
	if len(states) == 0 {
		panic("piecerng: empty loop")
	}
	l := &Loop{
		states: append([]CanonicalState(nil), states...),
		index:  make(map[CanonicalState]int, len(states)),
	}
	for i, s := range l.states {
		l.index[s] = i
	}
	return l
}

// ID returns the state the loop was closed on.
func (l *Loop) ID() CanonicalState { return l.states[0] }

// Len returns the number of states on the loop.
func (l *Loop) Len() int { return len(l.states) }

// States returns the members in insertion order. The slice must not be
// modified.
func (l *Loop) States() []CanonicalState { return l.states }

// Index returns the insertion position of s.
func (l *Loop) Index(s CanonicalState) (int, bool) {
	i, ok := l.index[s]
	return i, ok
}

// Contains reports whether s is on the loop.
func (l *Loop) Contains(s CanonicalState) bool {
	_, ok := l.index[s]
	return ok
}

// Successor returns the state following s on the loop.
func (l *Loop) Successor(s CanonicalState) (CanonicalState, bool) {
	i, ok := l.index[s]
	if !ok {
		return 0, false
	}
	return l.states[(i+1)%len(l.states)], true
}

// At returns the state at insertion position i, wrapping around the loop.
func (l *Loop) At(i int) CanonicalState {
	i %= len(l.states)
	if i < 0 {
		i += len(l.states)
	}
	return l.states[i]
}

// Pieces returns the pieces spawned while going once around the loop,
// starting with the piece that leads into States()[0].
func (l *Loop) Pieces() []Piece {
	seq := make([]Piece, len(l.states))
	// Each canonical state carries the piece that produced it.
	for i, s := range l.states {
		seq[i] = s.Last()
	}
	return seq
}
