package piecerng

// Shuffle applies the game's 16-bit feedback shuffle once.
//
// The high and low bytes are shifted right as one 16-bit register, and the
// vacated top bit is filled with bit 1 of (hi XOR lo). Zero is a fixed point.
func Shuffle(x uint16) uint16 {
	hi := x >> 8
	lo := x & 0xFF

	newBit := ((hi ^ lo) & 0x02) << 6
	newHi := newBit | hi>>1
	newLo := (hi&0x01)<<7 | lo>>1

	return newHi<<8 | newLo
}

// ShuffleN applies Shuffle n times. Values of n below one return x unchanged.
func ShuffleN(x uint16, n int) uint16 {
	for i := 0; i < n; i++ {
		x = Shuffle(x)
	}
	return x
}
