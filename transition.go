package piecerng

// Step records everything one spawn computed. It is what the trace facility
// prints and what tests use to check which branch was taken.
type Step struct {
	From      RawState
	To        RawState
	Roll      uint16 // repeat table result
	Candidate uint8  // primary pick, (A' + counter') & 7
	Rerolled  bool
	Piece     Piece
}

// Next advances s by one spawn and returns the new state and spawned piece.
func Next(t *Table, s RawState) (RawState, Piece) {
	st := step(t, s)
	return st.To, st.Piece
}

func step(t *Table, s RawState) Step {
	counter := s.Counter + 1

	roll := t.Repeat(s.Selector, s.rollIndex())
	a := uint8(roll >> 8)
	b := uint8(roll)

	candidate := (a + counter) & 0x07
	pick := candidate
	rerolled := candidate == 7 || OrientationIDs[candidate] == s.Last
	if rerolled {
		// The re-roll mixes in the previous piece instead of the counter.
		reroll := t.Shuffle1(roll)
		a = uint8(reroll >> 8)
		b = uint8(reroll)
		pick = uint8((uint(a&0x07) + uint(s.Last)) % 7)
	}
	piece := OrientationIDs[pick]

	return Step{
		From: s,
		To: RawState{
			Selector: s.Selector,
			A:        a,
			B:        b,
			Counter:  counter,
			Last:     piece,
		},
		Roll:      roll,
		Candidate: candidate,
		Rerolled:  rerolled,
		Piece:     piece,
	}
}
