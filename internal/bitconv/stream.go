package bitconv

import "github.com/yyyoichi/bitstream-go"

// Pack writes s into a word-packed bit stream, most significant bit first.
// It returns the stream data and the number of bits written.
func Pack(s *Sequence) ([]uint64, int) {
	w := bitstream.NewBitWriter[uint64](0, 0)
	for i := s.Len() - 1; i >= 0; i-- {
		w.WriteBool(s.bits[i])
	}
	return w.Data(), w.Bits()
}

// Unpack reads the first n bits of a stream produced by Pack back into a sequence.
// Bits beyond the end of data read as zero.
func Unpack(data []uint64, n int) *Sequence {
	s := New(n)
	if n == 0 {
		return s
	}
	avail := n
	if max := len(data) * 64; max < avail {
		avail = max
	}
	if avail == 0 {
		return s
	}
	r := bitstream.NewBitReader(data, 0, 0)
	r.SetBits(avail)
	for i := 0; i < avail; i++ {
		s.bits[n-1-i], _ = r.ReadBitAt(i)
	}
	return s
}
