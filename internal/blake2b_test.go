package internal

import (
	"encoding/binary"
	"testing"
)

func TestBlake2bStream_WriteUint16s(t *testing.T) {
	words := make([]uint16, 5000)
	for i := range words {
		words[i] = uint16(i * 7919)
	}
	raw := make([]byte, 2*len(words))
	for i, w := range words {
		binary.LittleEndian.PutUint16(raw[2*i:], w)
	}

	s := NewBlake2bStream()
	s.WriteUint16s(words[:1234])
	s.WriteUint16s(words[1234:])
	if got, want := s.Sum256(), Blake2b256(raw); got != want {
		t.Errorf("streamed digest %x, want %x", got, want)
	}

	s.Reset()
	if _, err := s.Write(raw); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if got, want := s.Sum256(), Blake2b256(raw); got != want {
		t.Errorf("digest after Reset %x, want %x", got, want)
	}
}

func TestBlake2b256_Empty(t *testing.T) {
	a := Blake2b256(nil)
	b := NewBlake2bStream().Sum256()
	if a != b {
		t.Errorf("empty digests differ: %x vs %x", a, b)
	}
	if len(a) != FingerprintSize {
		t.Errorf("digest size %d, want %d", len(a), FingerprintSize)
	}
}
