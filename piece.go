package piecerng

import (
	"errors"
	"fmt"
	"strings"
)

// Piece is a spawn orientation id as the game stores it.
type Piece uint8

// Spawn orientation ids for the seven pieces.
const (
	NoPiece Piece = 0x00
	T       Piece = 0x02
	J       Piece = 0x07
	Z       Piece = 0x08
	O       Piece = 0x0A
	S       Piece = 0x0B
	L       Piece = 0x0E
	I       Piece = 0x12
)

// OrientationIDs is the fixed pick order used by the randomizer.
var OrientationIDs = [7]Piece{T, J, Z, O, S, L, I}

// ErrPieceFormat is returned by ParsePieces for unknown letters.
var ErrPieceFormat = errors.New("piecerng: invalid piece letter")

func (p Piece) String() string {
	switch p {
	case NoPiece:
		return "-"
	case T:
		return "T"
	case J:
		return "J"
	case Z:
		return "Z"
	case O:
		return "O"
	case S:
		return "S"
	case L:
		return "L"
	case I:
		return "I"
	}
	return fmt.Sprintf("Piece(0x%02X)", uint8(p))
}

// Index returns the position of p in OrientationIDs, or -1.
func (p Piece) Index() int {
	for i, id := range OrientationIDs {
		if id == p {
			return i
		}
	}
	return -1
}

// FormatPieces renders a sequence as one letter per piece.
func FormatPieces(seq []Piece) string {
	var b strings.Builder
	b.Grow(len(seq))
	for _, p := range seq {
		b.WriteString(p.String())
	}
	return b.String()
}

// ParsePieces is the inverse of FormatPieces.
func ParsePieces(s string) ([]Piece, error) {
	seq := make([]Piece, 0, len(s))
	for i, r := range s {
		var p Piece
		switch r {
		case 'T':
			p = T
		case 'J':
			p = J
		case 'Z':
			p = Z
		case 'O':
			p = O
		case 'S':
			p = S
		case 'L':
			p = L
		case 'I':
			p = I
		default:
			return nil, fmt.Errorf("%w: %q at offset %d", ErrPieceFormat, r, i)
		}
		seq = append(seq, p)
	}
	return seq, nil
}

// Counts tallies pieces by their index in OrientationIDs.
type Counts [7]int

// PieceCounts counts each piece in seq. Ids outside OrientationIDs are ignored.
func PieceCounts(seq []Piece) Counts {
	var c Counts
	for _, p := range seq {
		if i := p.Index(); i >= 0 {
			c[i]++
		}
	}
	return c
}

// Of returns the count for one piece.
func (c Counts) Of(p Piece) int {
	if i := p.Index(); i >= 0 {
		return c[i]
	}
	return 0
}
