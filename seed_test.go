package piecerng

import (
	"errors"
	"testing"
)

func TestSeedBytes(t *testing.T) {
	s := NewSeed(0x12, 0x34, 0x56)
	if s != 0x123456 {
		t.Fatalf("NewSeed() = %s, want 123456", s)
	}
	s1, s2, s3 := s.Bytes()
	if s1 != 0x12 || s2 != 0x34 || s3 != 0x56 {
		t.Errorf("Bytes() = %02X %02X %02X", s1, s2, s3)
	}
	if got := s.Selector(); got != 5 {
		t.Errorf("Selector() = %d, want 5", got)
	}
	if got := s.String(); got != "123456" {
		t.Errorf("String() = %q", got)
	}
}

func TestSeedCanonical(t *testing.T) {
	tests := []struct {
		seed      Seed
		canonical Seed
		redundant bool
	}{
		{0x111111, 0x111011, true},
		{0x111011, 0x111011, false},
		{0x111119, 0x111011, true},
		{0xFFFFFF, 0xFFFEF7, true},
		{0x100011, 0x100011, false},
		{0x000000, 0x000000, false},
	}

	for _, tt := range tests {
		if got := tt.seed.Canonical(); got != tt.canonical {
			t.Errorf("%s.Canonical() = %s, want %s", tt.seed, got, tt.canonical)
		}
		if got := tt.seed.Redundant(); got != tt.redundant {
			t.Errorf("%s.Redundant() = %v, want %v", tt.seed, got, tt.redundant)
		}
	}
}

func TestSeedValid(t *testing.T) {
	tests := []struct {
		seed Seed
		want bool
	}{
		{0x000000, false},
		{0x000011, false},
		{0x0001FF, false},
		{0x000200, true},
		{0x010000, true},
		{0x111111, true},
	}

	for _, tt := range tests {
		if got := tt.seed.Valid(); got != tt.want {
			t.Errorf("%s.Valid() = %v, want %v", tt.seed, got, tt.want)
		}
	}
}

func TestParseSeed(t *testing.T) {
	tests := []struct {
		in      string
		want    Seed
		wantErr bool
	}{
		{"111111", 0x111111, false},
		{"0x111111", 0x111111, false},
		{"ffffff", 0xFFFFFF, false},
		{" 11 ", 0x11, false},
		{"1", 0x1, false},
		{"", 0, true},
		{"0x", 0, true},
		{"1000000", 0, true},
		{"12345G", 0, true},
		{"-1", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseSeed(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSeed(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrSeedFormat) {
			t.Errorf("ParseSeed(%q) error = %v, want ErrSeedFormat", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseSeed(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParseValidSeed(t *testing.T) {
	if _, err := ParseValidSeed("000011"); !errors.Is(err, ErrInvalidSeed) {
		t.Errorf("ParseValidSeed(000011) error = %v, want ErrInvalidSeed", err)
	}
	if s, err := ParseValidSeed("111111"); err != nil || s != 0x111111 {
		t.Errorf("ParseValidSeed(111111) = %s, %v", s, err)
	}
	if _, err := ParseValidSeed("xyz"); !errors.Is(err, ErrSeedFormat) {
		t.Errorf("ParseValidSeed(xyz) error = %v, want ErrSeedFormat", err)
	}
}
