package hexedit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser(t *testing.T) {
	t.Run("keystrokes", func(t *testing.T) {
		type step struct {
			text     string
			exp      byte
			lastGood string
		}
		test := []struct {
			name  string
			steps []step
		}{
			{"single digit", []step{
				{"A", 0x0A, "A"},
			}},
			{"malformed after good", []step{
				{"A", 0x0A, "A"},
				{"1G", 0x0A, "A"},
			}},
			{"empty first", []step{
				{"", FormatFloor, ""},
			}},
			{"malformed first", []step{
				{"ZZ", FormatFloor, ""},
				{"7", 0x07, "7"},
			}},
			{"type over", []step{
				{"5F", 0x5F, "5F"},
				{"5F3", 0xF3, "F3"},
			}},
			{"spaces and case", []step{
				{" a b ", 0xAB, "AB"},
				{"c", 0x0C, "C"},
			}},
			{"cleared field keeps value", []step{
				{"FF", 0xFF, "FF"},
				{"", 0xFF, "FF"},
				{"0", 0x00, "0"},
			}},
			{"long text uses tail", []step{
				{"deadbeef", 0xEF, "EF"},
				{"12345G", 0xEF, "EF"},
			}},
		}
		for _, tt := range test {
			t.Run(tt.name, func(t *testing.T) {
				p := NewParser()
				for _, s := range tt.steps {
					assert.Equal(t, s.exp, p.Parse(s.text), "text %q", s.text)
					got, _ := p.LastGood()
					assert.Equal(t, s.lastGood, got, "text %q", s.text)
				}
			})
		}
	})

	t.Run("Reset", func(t *testing.T) {
		p := NewParser()
		assert.Equal(t, byte(0x12), p.Parse("12"))
		_, ok := p.LastGood()
		assert.True(t, ok)

		p.Reset()
		_, ok = p.LastGood()
		assert.False(t, ok)
		assert.Equal(t, FormatFloor, p.Parse("xx"))
	})
}

func TestParseByte(t *testing.T) {
	test := []struct {
		name    string
		text    string
		exp     byte
		wantErr error
	}{
		{"one digit", "7", 0x07, nil},
		{"two digits", "C3", 0xC3, nil},
		{"lower", "c3", 0xC3, nil},
		{"empty", "", 0, ErrFormat},
		{"not hex", "G1", 0, ErrFormat},
		{"overflow", "100", 0, ErrOverflow},
		{"negative", "-1", 0, ErrRange},
		{"bare sign", "-", 0, ErrFormat},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseByte(tt.text)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.exp, got)
		})
	}
}

func TestFloor(t *testing.T) {
	_, err := ParseByte("xyz")
	assert.Equal(t, byte(0xFF), Floor(err))
	_, err = ParseByte("1FF")
	assert.Equal(t, byte(0xFF), Floor(err))
	_, err = ParseByte("-A")
	assert.Equal(t, byte(0x00), Floor(err))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "", Normalize("   "))
	assert.Equal(t, "AB", Normalize("a b"))
	assert.Equal(t, "F3", Normalize("5f3"))
	assert.True(t, IsHex("F"))
	assert.True(t, IsHex("f3"))
	assert.False(t, IsHex(""))
	assert.False(t, IsHex("F33"))
	assert.False(t, IsHex("1G"))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "0", Format(0))
	assert.Equal(t, "5", Format(5))
	assert.Equal(t, "5A", Format(0x5A))
	assert.Equal(t, "FF", Format(0xFF))
}
