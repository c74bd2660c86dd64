// Package runlength converts bit sequences to alternating run lengths and back.
//
// A run sequence never stores its symbols. Run i holds bits of value i mod 2,
// so the first run always counts zeros. Whenever a run would exceed the
// field width, it is split and a zero-length run of the other symbol is
// inserted to keep the alternation.
package runlength

import (
	"fmt"

	"github.com/spacemeshos/rle/bitstream"
	"github.com/spacemeshos/rle/shared"
)

// Runs is an ordered sequence of alternating run lengths, starting with zeros.
type Runs []uint32

type BitSource interface {
	ReadBit() (bitstream.Bit, error)
}

type BitSink interface {
	WriteBit(bitstream.Bit) error
}

// Symbol returns the bit value counted by the run at index i.
func Symbol(i int) bitstream.Bit {
	return i%2 == 1
}

// MaxRun returns the longest run representable in a field of width bits.
func MaxRun(width uint8) uint32 {
	return shared.MaxRun(width)
}

// NumBits returns the length of the bit sequence the runs expand to.
func (r Runs) NumBits() uint64 {
	var n uint64
	for _, l := range r {
		n += uint64(l)
	}
	return n
}

// Validate checks that every run fits into a field of width bits.
func (r Runs) Validate(width uint8) error {
	if err := shared.ValidateWidth(width); err != nil {
		return err
	}
	limit := shared.MaxRun(width)
	for i, l := range r {
		if l > limit {
			return fmt.Errorf("%w; run %d: %d > %d", shared.ErrRunOverflow, i, l, limit)
		}
	}
	return nil
}
