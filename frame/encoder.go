package frame

import (
	"fmt"
	"math"

	"github.com/spacemeshos/rle/runlength"
	"github.com/spacemeshos/rle/shared"
)

// Encode writes the header and every run as a width-bit field, in order.
// The caller owns w and is responsible for closing it, which pads the frame.
//
// With implicit framing, trailing zero-length runs are not written since the
// decoder cannot tell them apart from padding; they expand to no bits.
func Encode(w BitWriter, width uint8, framing Framing, runs runlength.Runs) (Header, error) {
	if framing == Implicit {
		runs = trimTrailingZeros(runs)
	}
	if uint64(len(runs)) > math.MaxUint32 {
		return Header{}, fmt.Errorf("%w: %d", shared.ErrTooManyRuns, len(runs))
	}

	h := Header{Width: width, Framing: framing, Count: uint32(len(runs))}
	if err := h.validate(); err != nil {
		return Header{}, err
	}
	if err := runs.Validate(width); err != nil {
		return Header{}, err
	}

	if err := h.encode(w); err != nil {
		return Header{}, fmt.Errorf("failed to write header: %w", err)
	}
	for i, l := range runs {
		if err := w.WriteUint(uint64(l), int(width)); err != nil {
			return Header{}, fmt.Errorf("failed to write run %d: %w", i, err)
		}
	}

	return h, nil
}

// trimTrailingZeros drops zero-length runs from the tail, keeping at least one run.
func trimTrailingZeros(runs runlength.Runs) runlength.Runs {
	n := len(runs)
	for n > 1 && runs[n-1] == 0 {
		n--
	}
	if n == 0 {
		return runlength.Runs{0}
	}
	return runs[:n]
}
