package binconv

import "github.com/yyyoichi/binconv/internal/bitconv"

type Option func(*Mask)

// WithGrouped sets whether Snapshot renders bit strings with a nibble separator.
// Defaults to true.
func WithGrouped(grouped bool) Option {
	return func(m *Mask) {
		m.grouped = grouped
	}
}

// WithOnChange registers fn to be called after every successful mutation
// with the views of the new mask. fn runs synchronously on the caller's goroutine.
func WithOnChange(fn func(View)) Option {
	return func(m *Mask) {
		m.onChange = fn
	}
}

// WithDecimal starts the mask at value instead of zero.
func WithDecimal(value byte) Option {
	return func(m *Mask) {
		m.bits = bitconv.FromByte(value)
	}
}
