package piecerng

import "testing"

func TestNext_KnownStep(t *testing.T) {
	tab := testTable(t)
	from := RawState{Selector: 1, A: 0x11, B: 0x11, Counter: 0x11, Last: NoPiece}

	st := step(tab, from)
	if st.Roll != 0x0111 {
		t.Errorf("Roll = %04X, want 0111", st.Roll)
	}
	if st.Rerolled {
		t.Error("first spawn of 111111 should not re-roll")
	}
	want := RawState{Selector: 1, A: 0x01, B: 0x11, Counter: 0x12, Last: O}
	if st.To != want {
		t.Errorf("To = %+v, want %+v", st.To, want)
	}
	if c := st.To.Canonical(); c.A() != 0x01 || c.B() != 0x10 || c.Counter() != 0x02 || c.Last() != O {
		t.Errorf("canonical = %s", c)
	}

	next, p := Next(tab, from)
	if next != st.To || p != st.Piece {
		t.Errorf("Next() = %+v, %s; step() = %+v, %s", next, p, st.To, st.Piece)
	}
}

// The re-roll branch is taken exactly when the primary candidate is 7 or
// repeats the previous piece, and its pick is (A' + last) mod 7.
func TestNext_RerollRule(t *testing.T) {
	tab := testTable(t)
	seeds := []Seed{0x111111, 0xFFFFFF, 0x888888, 0x100011, 0x000011, 0xABCDEF}

	for _, seed := range seeds {
		for i, st := range Trace(tab, seed, 500) {
			wantReroll := st.Candidate == 7 || OrientationIDs[st.Candidate] == st.From.Last
			if st.Rerolled != wantReroll {
				t.Fatalf("%s step %d: Rerolled = %v, candidate %d, last %s", seed, i, st.Rerolled, st.Candidate, st.From.Last)
			}
			if st.To.Counter != st.From.Counter+1 {
				t.Fatalf("%s step %d: counter %d -> %d", seed, i, st.From.Counter, st.To.Counter)
			}
			if st.Roll != tab.Repeat(st.From.Selector, st.From.rollIndex()) {
				t.Fatalf("%s step %d: roll %04X does not match table", seed, i, st.Roll)
			}

			var want Piece
			if st.Rerolled {
				reroll := Shuffle(st.Roll)
				if st.To.A != uint8(reroll>>8) || st.To.B != uint8(reroll) {
					t.Fatalf("%s step %d: re-roll state %02X%02X, want %04X", seed, i, st.To.A, st.To.B, reroll)
				}
				want = OrientationIDs[(int(st.To.A&7)+int(st.From.Last))%7]
			} else {
				want = OrientationIDs[st.Candidate]
				if st.To.A != uint8(st.Roll>>8) || st.To.B != uint8(st.Roll) {
					t.Fatalf("%s step %d: state %02X%02X, want %04X", seed, i, st.To.A, st.To.B, st.Roll)
				}
			}
			if st.Piece != want || st.To.Last != want {
				t.Fatalf("%s step %d: piece %s, want %s", seed, i, st.Piece, want)
			}
		}
	}
}

// The re-roll can repeat the previous piece; the primary pick never does.
func TestNext_RerollMayRepeat(t *testing.T) {
	tab := testTable(t)
	var primaryRepeats, rerolls int
	for _, st := range Trace(tab, 0x111111, 1000) {
		if st.Rerolled {
			rerolls++
			continue
		}
		if st.Piece == st.From.Last {
			primaryRepeats++
		}
	}
	if primaryRepeats != 0 {
		t.Errorf("primary pick repeated the previous piece %d times", primaryRepeats)
	}
	if rerolls != 256 {
		t.Errorf("re-rolls in 1000 spawns of 111111 = %d, want 256", rerolls)
	}
}

func BenchmarkNext(b *testing.B) {
	tab := testTable(b)
	s := StateFromSeed(0x111111)
	for i := 0; i < b.N; i++ {
		s, _ = Next(tab, s)
	}
}
