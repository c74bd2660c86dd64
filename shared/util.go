package shared

import (
	"fmt"
	"math/bits"
)

// NumBits returns the number of bits needed to represent val.
func NumBits(val uint64) int {
	return bits.Len64(val)
}

// MaxRun returns the longest run representable in a field of width bits.
func MaxRun(width uint8) uint32 {
	return uint32(1)<<width - 1
}

func ValidateWidth(width uint8) error {
	if width < MinWidth || width > MaxWidth {
		return fmt.Errorf("%w; expected: %d-%d, given: %d", ErrInvalidWidth, MinWidth, MaxWidth, width)
	}
	return nil
}
