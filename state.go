package piecerng

import "fmt"

// RawState is the randomizer's working state between two spawns.
//
// Selector is fixed for a run. A and B form the 16-bit roll index. Counter
// increments every spawn; only its low three bits affect the pick. Last is
// the previously spawned piece, NoPiece before the first spawn.
type RawState struct {
	Selector uint8
	A        uint8
	B        uint8
	Counter  uint8
	Last     Piece
}

// StateFromSeed returns the state before the first spawn.
func StateFromSeed(s Seed) RawState {
	s1, s2, s3 := s.Bytes()
	return RawState{
		Selector: s3 >> 4,
		A:        s1,
		B:        s2,
		Counter:  s3,
		Last:     NoPiece,
	}
}

// rollIndex is the unmasked repeat table index for the next spawn.
func (s RawState) rollIndex() uint16 {
	return uint16(s.A)<<8 | uint16(s.B)
}

// Canonical reduces s to the bits that influence future output.
func (s RawState) Canonical() CanonicalState {
	return CanonicalState(uint32(s.Selector&0x0F)<<24 |
		uint32(s.A)<<16 |
		uint32(s.B&0xFE)<<8 |
		uint32(s.Counter&0x07)<<5 |
		uint32(s.Last&0x1F))
}

// CanonicalState packs (selector, A, B&0xFE, Counter&7, Last) into 28 bits:
//
//	bits 24-27 selector
//	bits 16-23 A
//	bits  8-15 B with bit 0 clear
//	bits  5-7  counter
//	bits  0-4  last piece id
//
// Raw states with equal canonical states produce identical futures.
type CanonicalState uint32

func (c CanonicalState) Selector() uint8 { return uint8(c>>24) & 0x0F }
func (c CanonicalState) A() uint8        { return uint8(c >> 16) }
func (c CanonicalState) B() uint8        { return uint8(c >> 8) }
func (c CanonicalState) Counter() uint8  { return uint8(c>>5) & 0x07 }
func (c CanonicalState) Last() Piece     { return Piece(c & 0x1F) }

// Raw expands c into a RawState that behaves identically.
func (c CanonicalState) Raw() RawState {
	return RawState{
		Selector: c.Selector(),
		A:        c.A(),
		B:        c.B(),
		Counter:  c.Counter(),
		Last:     c.Last(),
	}
}

func (c CanonicalState) String() string {
	return fmt.Sprintf("%X:%02X%02X:%d:%s", c.Selector(), c.A(), c.B(), c.Counter(), c.Last())
}
