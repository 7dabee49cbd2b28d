// Package internal provides the hashing primitive used to fingerprint
// repeat tables. It wraps golang.org/x/crypto/blake2b.
package internal

import (
	"encoding/binary"
	"hash"

	"golang.org/x/crypto/blake2b"
)

// FingerprintSize is the length of a table fingerprint in bytes.
const FingerprintSize = blake2b.Size256

// Blake2b256 computes a 256-bit Blake2b hash (32 bytes).
func Blake2b256(data []byte) [32]byte {
	return blake2b.Sum256(data)
}

// Blake2bStream provides streaming Blake2b-256 hashing of uint16 words.
type Blake2bStream struct {
	hasher hash.Hash
	buf    []byte
}

// NewBlake2bStream creates a new streaming Blake2b-256 hasher.
func NewBlake2bStream() *Blake2bStream {
	// blake2b.New256 only fails for keys longer than 64 bytes.
	hasher, _ := blake2b.New256(nil)
	return &Blake2bStream{hasher: hasher, buf: make([]byte, 0, 4096)}
}

// Write adds raw bytes to the hash.
func (b *Blake2bStream) Write(data []byte) (int, error) {
	return b.hasher.Write(data)
}

// WriteUint16s adds words to the hash in little-endian order, which is the
// same byte layout the table file uses.
func (b *Blake2bStream) WriteUint16s(words []uint16) {
	for len(words) > 0 {
		n := min(len(words), cap(b.buf)/2)
		b.buf = b.buf[:n*2]
		for i, w := range words[:n] {
			binary.LittleEndian.PutUint16(b.buf[i*2:], w)
		}
		b.hasher.Write(b.buf)
		words = words[n:]
	}
}

// Sum256 returns the current hash value.
func (b *Blake2bStream) Sum256() [32]byte {
	var out [32]byte
	copy(out[:], b.hasher.Sum(nil))
	return out
}

// Reset resets the hasher to initial state.
func (b *Blake2bStream) Reset() {
	b.hasher.Reset()
}
