package piecerng

import (
	"encoding/json"
	"fmt"
	"os"
)

// SequenceVector is one reference sequence for a seed.
type SequenceVector struct {
	Name     string `json:"name"`
	Seed     string `json:"seed"`     // hex, as the game displays it
	Length   int    `json:"length"`   // number of pieces in Expected
	Expected string `json:"expected"` // one letter per piece
}

// SequenceSuite contains reference sequences with metadata about their source.
type SequenceSuite struct {
	Version     string           `json:"version"`
	Description string           `json:"description"`
	Source      string           `json:"source,omitempty"`
	Vectors     []SequenceVector `json:"vectors"`
}

// LoadSequenceVectors loads reference sequences from a JSON file.
func LoadSequenceVectors(path string) (*SequenceSuite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sequence vectors: %w", err)
	}

	var suite SequenceSuite
	if err := json.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("failed to parse sequence vectors: %w", err)
	}

	return &suite, nil
}

// GetSeed returns the parsed seed of the vector.
func (v *SequenceVector) GetSeed() (Seed, error) {
	return ParseSeed(v.Seed)
}

// GetExpected returns the decoded expected sequence.
func (v *SequenceVector) GetExpected() ([]Piece, error) {
	seq, err := ParsePieces(v.Expected)
	if err != nil {
		return nil, err
	}
	if len(seq) != v.Length {
		return nil, fmt.Errorf("expected sequence has %d pieces, vector declares %d", len(seq), v.Length)
	}
	return seq, nil
}

// Check regenerates the sequence with t and reports the first divergence.
func (v *SequenceVector) Check(t *Table) error {
	seed, err := v.GetSeed()
	if err != nil {
		return err
	}
	want, err := v.GetExpected()
	if err != nil {
		return err
	}
	got := GenerateSequence(t, seed, v.Length)
	for i := range want {
		if got[i] != want[i] {
			return fmt.Errorf("%s: piece %d = %s, want %s", v.Name, i, got[i], want[i])
		}
	}
	return nil
}
