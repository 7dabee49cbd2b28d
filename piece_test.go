package piecerng

import (
	"errors"
	"testing"
)

func TestPieceString(t *testing.T) {
	tests := []struct {
		piece Piece
		want  string
	}{
		{T, "T"},
		{J, "J"},
		{Z, "Z"},
		{O, "O"},
		{S, "S"},
		{L, "L"},
		{I, "I"},
		{NoPiece, "-"},
		{Piece(0x13), "Piece(0x13)"},
	}

	for _, tt := range tests {
		if got := tt.piece.String(); got != tt.want {
			t.Errorf("Piece(%d).String() = %v, want %v", uint8(tt.piece), got, tt.want)
		}
	}
}

func TestPieceIndex(t *testing.T) {
	for i, p := range OrientationIDs {
		if got := p.Index(); got != i {
			t.Errorf("%s.Index() = %d, want %d", p, got, i)
		}
	}
	if got := NoPiece.Index(); got != -1 {
		t.Errorf("NoPiece.Index() = %d, want -1", got)
	}
}

func TestParsePieces(t *testing.T) {
	const s = "TJZOSLI"
	seq, err := ParsePieces(s)
	if err != nil {
		t.Fatalf("ParsePieces() error = %v", err)
	}
	for i, p := range OrientationIDs {
		if seq[i] != p {
			t.Errorf("piece %d = %s, want %s", i, seq[i], p)
		}
	}
	if got := FormatPieces(seq); got != s {
		t.Errorf("FormatPieces() = %q, want %q", got, s)
	}

	if _, err := ParsePieces("TJX"); !errors.Is(err, ErrPieceFormat) {
		t.Errorf("ParsePieces(TJX) error = %v, want ErrPieceFormat", err)
	}

	empty, err := ParsePieces("")
	if err != nil || len(empty) != 0 {
		t.Errorf("ParsePieces(\"\") = %v, %v", empty, err)
	}
}

func TestPieceCounts(t *testing.T) {
	seq, _ := ParsePieces("OOTJTJOSZT")
	seq = append(seq, NoPiece)
	c := PieceCounts(seq)

	want := map[Piece]int{T: 3, J: 2, Z: 1, O: 3, S: 1, L: 0, I: 0}
	for p, n := range want {
		if got := c.Of(p); got != n {
			t.Errorf("count of %s = %d, want %d", p, got, n)
		}
	}
	if got := c.Of(NoPiece); got != 0 {
		t.Errorf("count of NoPiece = %d, want 0", got)
	}
}
