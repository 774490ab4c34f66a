// Package hexedit turns the raw text of a hex entry field into a byte,
// one keystroke at a time.
//
// The field is allowed to hold junk while the user types. A Parser remembers
// the last text that looked like a 1 or 2 digit hex number and keeps using it
// until a new valid text arrives, so the parsed value never goes invalid
// mid-edit. When even that text cannot be parsed, the result falls back to a
// fixed value: 0xFF for format and overflow failures, 0x00 for range failures.
package hexedit

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	// FormatFloor is returned when the text is not a hex number or overflows a byte.
	FormatFloor byte = 0xFF
	// RangeFloor is returned when the text is a number outside the byte range on the low side.
	RangeFloor byte = 0x00

	maxDigits = 2
)

var (
	ErrFormat   = errors.New("invalid hex format")
	ErrOverflow = errors.New("hex value overflows a byte")
	ErrRange    = errors.New("hex value out of range")
)

var hexPattern = regexp.MustCompile(`^[0-9A-Fa-f]{1,2}$`)

// Parser holds the last known good text of one edit field.
// It is not safe for concurrent use.
type Parser struct {
	lastGood string
	seen     bool
}

// NewParser returns a Parser with no last known good text.
func NewParser() *Parser {
	return &Parser{}
}

// Parse normalizes text, updates the last known good text and returns
// the byte it denotes. Parse always returns some byte.
//
// Spaces are dropped and letters uppercased. Only the last two characters are
// considered, so typing over a full field replaces its value. Text that is not
// 1 or 2 hex digits is ignored in favor of the previous good text. Before any
// good text has been seen the previous text is empty, which parses to FormatFloor.
func (p *Parser) Parse(text string) byte {
	s := Normalize(text)
	if IsHex(s) {
		p.lastGood = s
		p.seen = true
	}
	b, err := ParseByte(p.lastGood)
	if err != nil {
		return Floor(err)
	}
	return b
}

// LastGood returns the last accepted text and whether one has been accepted yet.
func (p *Parser) LastGood() (string, bool) {
	return p.lastGood, p.seen
}

// Reset forgets the last known good text.
func (p *Parser) Reset() {
	p.lastGood = ""
	p.seen = false
}

// Normalize strips spaces, uppercases, and keeps at most the last two characters.
func Normalize(text string) string {
	s := strings.ToUpper(strings.ReplaceAll(text, " ", ""))
	if len(s) > maxDigits {
		s = s[len(s)-maxDigits:]
	}
	return s
}

// IsHex reports whether s is exactly 1 or 2 hex digits.
func IsHex(s string) bool {
	return hexPattern.MatchString(s)
}

// ParseByte parses s as a base 16 byte.
// The error wraps ErrFormat, ErrOverflow or ErrRange.
func ParseByte(s string) (byte, error) {
	if strings.HasPrefix(s, "-") {
		if _, err := strconv.ParseUint(s[1:], 16, 64); err == nil {
			return 0, fmt.Errorf("%w: %q", ErrRange, s)
		}
	}
	v, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %q", ErrOverflow, s)
		}
		return 0, fmt.Errorf("%w: %q", ErrFormat, s)
	}
	return byte(v), nil
}

// Floor maps a ParseByte failure to the value an edit field falls back to.
func Floor(err error) byte {
	if errors.Is(err, ErrRange) {
		return RangeFloor
	}
	return FormatFloor
}

// Format renders b the way the edit field displays it: uppercase, no padding.
func Format(b byte) string {
	return fmt.Sprintf("%X", b)
}
