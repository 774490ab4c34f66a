package bitconv

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ByteBits is the widest sequence accepted by ToByte, ToHexString and ToBitString.
	ByteBits = 8
	// IntBits is the widest sequence accepted by ToInt.
	IntBits = 32
)

var (
	ErrInvalidLength = errors.New("invalid sequence length")
)

// Sequence is a fixed-length run of bits. Index 0 is the least significant bit.
type Sequence struct {
	bits []bool
}

// New returns an all-zero sequence of n bits.
func New(n int) *Sequence {
	if n < 0 {
		n = 0
	}
	return &Sequence{bits: make([]bool, n)}
}

// Filled returns a sequence of n bits all set to v.
func Filled(n int, v bool) *Sequence {
	s := New(n)
	for i := range s.bits {
		s.bits[i] = v
	}
	return s
}

// FromByte returns the 8-bit sequence of b, LSB at index 0.
func FromByte(b byte) *Sequence {
	s := New(ByteBits)
	for i := range s.bits {
		s.bits[i] = (b>>uint(i))&1 == 1
	}
	return s
}

// FromBools copies bits into a new sequence; bits[0] becomes the LSB.
func FromBools(bits ...bool) *Sequence {
	s := New(len(bits))
	copy(s.bits, bits)
	return s
}

func (s *Sequence) Len() int {
	if s == nil {
		return 0
	}
	return len(s.bits)
}

// Get reports the bit at i. Positions outside the sequence read as false.
func (s *Sequence) Get(i int) bool {
	if i < 0 || i >= s.Len() {
		return false
	}
	return s.bits[i]
}

// Set writes the bit at i.
func (s *Sequence) Set(i int, v bool) error {
	if i < 0 || i >= s.Len() {
		return fmt.Errorf("%w: position %d outside 0..%d", ErrInvalidLength, i, s.Len()-1)
	}
	s.bits[i] = v
	return nil
}

func (s *Sequence) Clone() *Sequence {
	return FromBools(s.Bools()...)
}

// Bools returns a copy of the bits, LSB first.
func (s *Sequence) Bools() []bool {
	out := make([]bool, s.Len())
	if s != nil {
		copy(out, s.bits)
	}
	return out
}

// Not inverts every bit in place and returns s.
func (s *Sequence) Not() *Sequence {
	for i := 0; i < s.Len(); i++ {
		s.bits[i] = !s.bits[i]
	}
	return s
}

// Or merges o into s bit by bit. Both must have the same length.
func (s *Sequence) Or(o *Sequence) error {
	if err := sameLen(s, o); err != nil {
		return err
	}
	for i := 0; i < s.Len(); i++ {
		s.bits[i] = s.bits[i] || o.bits[i]
	}
	return nil
}

// And masks s with o bit by bit. Both must have the same length.
func (s *Sequence) And(o *Sequence) error {
	if err := sameLen(s, o); err != nil {
		return err
	}
	for i := 0; i < s.Len(); i++ {
		s.bits[i] = s.bits[i] && o.bits[i]
	}
	return nil
}

func sameLen(a, b *Sequence) error {
	if a.Len() != b.Len() {
		return fmt.Errorf("%w: %d and %d bits", ErrInvalidLength, a.Len(), b.Len())
	}
	return nil
}

func checkLen(s *Sequence, max int) error {
	if n := s.Len(); n > max {
		return fmt.Errorf("%w: %d bits, must be at most %d", ErrInvalidLength, n, max)
	}
	return nil
}

// ToByte packs up to 8 bits LSB-first. Missing high bits are zero.
func ToByte(s *Sequence) (byte, error) {
	if err := checkLen(s, ByteBits); err != nil {
		return 0, err
	}
	var v byte
	for i := 0; i < s.Len(); i++ {
		if s.bits[i] {
			v |= 1 << uint(i)
		}
	}
	return v, nil
}

// ToInt packs up to 32 bits LSB-first.
func ToInt(s *Sequence) (uint32, error) {
	if err := checkLen(s, IntBits); err != nil {
		return 0, err
	}
	var v uint32
	for i := 0; i < s.Len(); i++ {
		if s.bits[i] {
			v |= 1 << uint(i)
		}
	}
	return v, nil
}

// ToHexString formats ToByte as two uppercase hex digits, e.g. "05".
func ToHexString(s *Sequence) (string, error) {
	b, err := ToByte(s)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02X", b), nil
}

// ToBitString renders the bits most significant first.
// With grouped set, an underscore follows the bit at index 4,
// which splits an 8-bit sequence into nibbles: "1011_0100".
func ToBitString(s *Sequence, grouped bool) (string, error) {
	if err := checkLen(s, ByteBits); err != nil {
		return "", err
	}
	var sb strings.Builder
	for i := s.Len() - 1; i >= 0; i-- {
		if s.bits[i] {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
		if i == 4 && grouped {
			sb.WriteByte('_')
		}
	}
	return sb.String(), nil
}
