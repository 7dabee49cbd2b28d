package piecerng

import "iter"

// SeedRange is an inclusive range of seeds with the optional filters used
// when scanning: invalid seeds and seeds that only differ from a canonical
// seed in masked-away bits.
type SeedRange struct {
	From          Seed
	To            Seed
	SkipInvalid   bool
	SkipRedundant bool
}

// FullRange covers every seed the game can produce, once per behavior.
func FullRange() SeedRange {
	return SeedRange{From: 0, To: MaxSeed, SkipInvalid: true, SkipRedundant: true}
}

// SingleSeed is a range of one seed with no filtering.
func SingleSeed(s Seed) SeedRange {
	return SeedRange{From: s, To: s}
}

func (r SeedRange) accepts(s Seed) bool {
	if r.SkipInvalid && !s.Valid() {
		return false
	}
	if r.SkipRedundant && s.Redundant() {
		return false
	}
	return true
}

// All yields the seeds of the range in ascending order.
func (r SeedRange) All() iter.Seq[Seed] {
	return func(yield func(Seed) bool) {
		if r.From > r.To {
			return
		}
		for s := r.From; ; s++ {
			if r.accepts(s) && !yield(s) {
				return
			}
			if s >= r.To || s >= MaxSeed {
				return
			}
		}
	}
}

// BySelector yields, in ascending order, the seeds of the range whose repeat
// selector is sel.
func (r SeedRange) BySelector(sel uint8) iter.Seq[Seed] {
	return func(yield func(Seed) bool) {
		if r.From > r.To || sel > 0x0F {
			return
		}
		for prefix := r.From >> 8; prefix <= r.To>>8 && prefix <= MaxSeed>>8; prefix++ {
			for lo := Seed(sel) << 4; lo <= Seed(sel)<<4|0x0F; lo++ {
				s := prefix<<8 | lo
				if s < r.From || s > r.To || !r.accepts(s) {
					continue
				}
				if !yield(s) {
					return
				}
			}
		}
	}
}

// Selectors returns the repeat selectors with at least one seed in range.
func (r SeedRange) Selectors() []uint8 {
	var sels []uint8
	for sel := uint8(0); sel < tableRows; sel++ {
		for range r.BySelector(sel) {
			sels = append(sels, sel)
			break
		}
	}
	return sels
}

// Count returns the number of seeds the range yields.
func (r SeedRange) Count() int {
	n := 0
	for range r.All() {
		n++
	}
	return n
}
