package runlength

import (
	"github.com/spacemeshos/rle/bitstream"
)

// Expand replays the runs into the original bit sequence.
func (r Runs) Expand() []bitstream.Bit {
	bits := make([]bitstream.Bit, 0, r.NumBits())
	for i, l := range r {
		symbol := Symbol(i)
		for j := uint32(0); j < l; j++ {
			bits = append(bits, symbol)
		}
	}
	return bits
}

// ExpandTo writes the expanded bits to dst and returns how many were written.
func (r Runs) ExpandTo(dst BitSink) (uint64, error) {
	var n uint64
	for i, l := range r {
		symbol := Symbol(i)
		for j := uint32(0); j < l; j++ {
			if err := dst.WriteBit(symbol); err != nil {
				return n, err
			}
			n++
		}
	}
	return n, nil
}
