package binconv

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/yyyoichi/binconv/hexedit"
	"github.com/yyyoichi/binconv/internal/bitconv"
)

// MaskBits is the width of a Mask.
const MaskBits = bitconv.ByteBits

var (
	ErrOutOfRange = errors.New("bit position out of range")
	ErrValidation = errors.New("value out of byte range")
	// ErrInvalidLength reports a bit sequence wider than an operation supports.
	ErrInvalidLength = bitconv.ErrInvalidLength
)

type (
	// Edit requests a single bit change. Position 0 is the least significant bit.
	Edit struct {
		Position int
		Value    bool
	}

	// View is every representation of a mask, computed from one read.
	View struct {
		Decimal           byte
		InvertedDecimal   byte
		BitString         string
		InvertedBitString string
		HexString         string
	}
)

// Mask is an 8-bit mask. Its decimal, inverted, bit string and hex views are
// derived from the bits on every read, so they always agree.
// A Mask is not safe for concurrent use.
type Mask struct {
	bits     *bitconv.Sequence
	grouped  bool
	onChange func(View)
}

// New returns an all-zero Mask.
func New(opts ...Option) *Mask {
	m := &Mask{
		bits:    bitconv.New(MaskBits),
		grouped: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetBit sets the bit at position, which must be in 0..7.
func (m *Mask) SetBit(position int, value bool) error {
	if err := checkPosition(position); err != nil {
		return err
	}
	m.set(position, value)
	m.changed()
	return nil
}

// Toggle flips the bit at position, which must be in 0..7.
func (m *Mask) Toggle(position int) error {
	if err := checkPosition(position); err != nil {
		return err
	}
	m.set(position, !m.bits.Get(position))
	m.changed()
	return nil
}

// Apply applies edits in order. Edits with a bad position are skipped and
// reported together; the others still take effect.
func (m *Mask) Apply(edits ...Edit) error {
	var errs *multierror.Error
	applied := 0
	for _, e := range edits {
		if err := checkPosition(e.Position); err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		m.set(e.Position, e.Value)
		applied++
	}
	if applied > 0 {
		m.changed()
	}
	return errs.ErrorOrNil()
}

// SetAll sets every bit by OR-ing the mask with all ones.
func (m *Mask) SetAll() {
	must(m.bits.Or(bitconv.Filled(MaskBits, true)))
	m.changed()
}

// ClearAll clears every bit by AND-ing the mask with all zeros.
func (m *Mask) ClearAll() {
	must(m.bits.And(bitconv.Filled(MaskBits, false)))
	m.changed()
}

// Invert replaces the mask with its inverse.
func (m *Mask) Invert() {
	m.bits.Not()
	m.changed()
}

// SetDecimal replaces the whole mask with value.
func (m *Mask) SetDecimal(value byte) {
	m.bits = bitconv.FromByte(value)
	m.changed()
}

// SetDecimalInt is SetDecimal for callers holding an int.
// Values outside 0..255 are rejected, never wrapped.
func (m *Mask) SetDecimalInt(value int) error {
	if value < 0 || value > 0xFF {
		return fmt.Errorf("%w: %d", ErrValidation, value)
	}
	m.SetDecimal(byte(value))
	return nil
}

// SetHex feeds the raw text of a hex edit field through p and applies the result.
// It returns the byte that was applied.
func (m *Mask) SetHex(p *hexedit.Parser, text string) byte {
	v := p.Parse(text)
	m.SetDecimal(v)
	return v
}

// Pack writes the mask into a word-packed bit stream, most significant bit first,
// for embedding into a larger stream. It returns the data and the bit count.
func (m *Mask) Pack() ([]uint64, int) {
	return bitconv.Pack(m.bits)
}

// Unpack replaces the mask with the first n bits of a stream written by Pack.
// n must be 8.
func (m *Mask) Unpack(data []uint64, n int) error {
	if n != MaskBits {
		return fmt.Errorf("%w: %d bits, want %d", ErrInvalidLength, n, MaskBits)
	}
	m.bits = bitconv.Unpack(data, n)
	m.changed()
	return nil
}

// Bit reports the bit at position. Positions outside 0..7 read as false.
func (m *Mask) Bit(position int) bool {
	return m.bits.Get(position)
}

// Decimal returns the mask as an unsigned value, bit 0 being the LSB.
func (m *Mask) Decimal() byte {
	v, err := bitconv.ToByte(m.bits)
	must(err)
	return v
}

// InvertedDecimal returns 255 - Decimal.
func (m *Mask) InvertedDecimal() byte {
	return 0xFF - m.Decimal()
}

// Bits returns the mask bits, LSB first.
func (m *Mask) Bits() []bool {
	return m.bits.Bools()
}

// Inverted returns the mask bits with every bit flipped, LSB first.
func (m *Mask) Inverted() []bool {
	return m.bits.Clone().Not().Bools()
}

// BitString renders the mask most significant bit first, "0101_1010" when grouped.
func (m *Mask) BitString(grouped bool) string {
	s, err := bitconv.ToBitString(m.bits, grouped)
	must(err)
	return s
}

// InvertedBitString renders the inverted mask like BitString.
func (m *Mask) InvertedBitString(grouped bool) string {
	s, err := bitconv.ToBitString(m.bits.Clone().Not(), grouped)
	must(err)
	return s
}

// HexString returns the mask as two uppercase hex digits.
func (m *Mask) HexString() string {
	s, err := bitconv.ToHexString(m.bits)
	must(err)
	return s
}

// Snapshot returns every view of the mask, using the grouping set by WithGrouped.
func (m *Mask) Snapshot() View {
	return m.view(m.bits.Clone())
}

func (m *Mask) view(bits *bitconv.Sequence) View {
	v := View{}
	v.Decimal, _ = bitconv.ToByte(bits)
	v.BitString, _ = bitconv.ToBitString(bits, m.grouped)
	v.HexString, _ = bitconv.ToHexString(bits)
	bits.Not()
	v.InvertedDecimal, _ = bitconv.ToByte(bits)
	v.InvertedBitString, _ = bitconv.ToBitString(bits, m.grouped)
	return v
}

func (m *Mask) set(position int, value bool) {
	must(m.bits.Set(position, value))
}

func (m *Mask) changed() {
	if m.onChange != nil {
		m.onChange(m.Snapshot())
	}
}

func checkPosition(position int) error {
	if position < 0 || position >= MaskBits {
		return fmt.Errorf("%w: %d not in 0..%d", ErrOutOfRange, position, MaskBits-1)
	}
	return nil
}

// must panics on errors that only a broken 8-bit invariant can produce.
func must(err error) {
	if err != nil {
		panic(err)
	}
}
