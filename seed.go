package piecerng

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Seed is the game's three seed bytes packed as 0xS1S2S3.
type Seed uint32

// MaxSeed is the largest 24-bit seed.
const MaxSeed Seed = 0xFFFFFF

var (
	// ErrSeedFormat is returned for seeds that are not 1-6 hex digits.
	ErrSeedFormat = errors.New("piecerng: malformed seed")

	// ErrInvalidSeed is returned for seeds the game can never produce.
	ErrInvalidSeed = errors.New("piecerng: invalid seed")
)

// NewSeed packs three seed bytes.
func NewSeed(s1, s2, s3 uint8) Seed {
	return Seed(s1)<<16 | Seed(s2)<<8 | Seed(s3)
}

// Bytes unpacks the seed.
func (s Seed) Bytes() (s1, s2, s3 uint8) {
	return uint8(s >> 16), uint8(s >> 8), uint8(s)
}

// Selector returns the repeat selector, the high nybble of the third byte.
func (s Seed) Selector() uint8 {
	return uint8(s) >> 4
}

// Canonical clears the seed bits that never influence the piece sequence:
// bit 0 of the second byte and bit 3 of the third.
func (s Seed) Canonical() Seed {
	return s & 0xFFFEF7
}

// Valid reports whether the game can produce s. A seed whose first byte is
// zero and whose second byte is zero apart from bit 0 is never generated.
func (s Seed) Valid() bool {
	s1, s2, _ := s.Bytes()
	return !(s1 == 0 && s2&0xFE == 0)
}

// Redundant reports whether s has a masked-away bit set, making it
// behaviorally identical to s.Canonical().
func (s Seed) Redundant() bool {
	return s != s.Canonical()
}

func (s Seed) String() string {
	return fmt.Sprintf("%06X", uint32(s)&0xFFFFFF)
}

// ParseSeed parses up to six hex digits, with an optional 0x prefix.
func ParseSeed(str string) (Seed, error) {
	str = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(str), "0x"), "0X")
	if str == "" || len(str) > 6 {
		return 0, fmt.Errorf("%w: %q", ErrSeedFormat, str)
	}
	v, err := strconv.ParseUint(str, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrSeedFormat, str)
	}
	return Seed(v), nil
}

// ParseValidSeed parses a seed and rejects ones that fail Valid.
func ParseValidSeed(str string) (Seed, error) {
	s, err := ParseSeed(str)
	if err != nil {
		return 0, err
	}
	if !s.Valid() {
		return 0, fmt.Errorf("%w: %s", ErrInvalidSeed, s)
	}
	return s, nil
}
