package shared

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNumBits(t *testing.T) {
	r := require.New(t)

	r.Equal(0, NumBits(0))
	r.Equal(1, NumBits(1))
	r.Equal(2, NumBits(2))
	r.Equal(2, NumBits(3))
	r.Equal(8, NumBits(255))
	r.Equal(9, NumBits(256))
	r.Equal(64, NumBits(1<<63))
}

func TestMaxRun(t *testing.T) {
	r := require.New(t)

	r.Equal(uint32(1), MaxRun(1))
	r.Equal(uint32(255), MaxRun(8))
	r.Equal(uint32(65535), MaxRun(16))
	r.Equal(uint32(1<<31-1), MaxRun(MaxWidth))
}

func TestValidateWidth(t *testing.T) {
	r := require.New(t)

	for w := MinWidth; w <= MaxWidth; w++ {
		r.NoError(ValidateWidth(uint8(w)))
	}

	err := ValidateWidth(0)
	r.True(errors.Is(err, ErrInvalidWidth))
	r.EqualError(err, "invalid run width; expected: 1-31, given: 0")

	r.ErrorIs(ValidateWidth(MaxWidth+1), ErrInvalidWidth)
}

func TestHeaderError(t *testing.T) {
	r := require.New(t)

	err := HeaderError{Field: "width", Expected: "1-31", Found: "40"}
	r.EqualError(err, "malformed frame header: `width`; expected: 1-31, found: 40")
}
