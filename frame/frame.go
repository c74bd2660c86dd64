// Package frame serializes run sequences into a self-describing bit frame.
//
// Layout, MSB first:
//
//	byte 0      bit 7: framing flag (0 explicit, 1 implicit), bits 0-6: run width W
//	explicit    32-bit big-endian run count
//	body        one W-bit field per run
//	trailer     zero padding up to the byte boundary
//
// Explicit-count frames therefore start with a byte holding W itself.
// Implicit-count frames carry no count, the decoder reads fields until the
// stream is exhausted and drops the padding.
package frame

import (
	"fmt"
	"strings"

	"github.com/spacemeshos/rle/shared"
)

type Framing uint8

const (
	Explicit Framing = iota
	Implicit
)

const (
	implicitFlag = 0x80
	widthMask    = 0x7F
)

func (f Framing) String() string {
	switch f {
	case Explicit:
		return "explicit"
	case Implicit:
		return "implicit"
	default:
		return fmt.Sprintf("framing(%d)", uint8(f))
	}
}

// ParseFraming parses the textual name of a framing mode.
func ParseFraming(s string) (Framing, error) {
	switch strings.ToLower(s) {
	case "explicit", "":
		return Explicit, nil
	case "implicit":
		return Implicit, nil
	default:
		return 0, fmt.Errorf("invalid framing %q; expected: explicit or implicit", s)
	}
}

// BitWriter is the subset of bitstream.BitWriter used by the encoder.
type BitWriter interface {
	WriteUint(val uint64, numBits int) error
}

// BitReader is the subset of bitstream.BitReader used by the decoder.
type BitReader interface {
	ReadUint(numBits int) (uint64, error)
}

type Header struct {
	Width   uint8
	Framing Framing
	// Count is the number of runs in the body.
	// It is serialized for explicit framing only.
	Count uint32
}

func (h Header) validate() error {
	if err := shared.ValidateWidth(h.Width); err != nil {
		return err
	}
	if h.Framing != Explicit && h.Framing != Implicit {
		return fmt.Errorf("unsupported framing: %v", h.Framing)
	}
	return nil
}

func (h Header) encode(w BitWriter) error {
	field := h.Width
	if h.Framing == Implicit {
		field |= implicitFlag
	}
	if err := w.WriteUint(uint64(field), shared.HeaderFieldSize); err != nil {
		return err
	}
	if h.Framing == Explicit {
		return w.WriteUint(uint64(h.Count), shared.CountFieldSize)
	}
	return nil
}

// BodySize returns the number of bits the body of the frame occupies.
func (h Header) BodySize() uint64 {
	return uint64(h.Count) * uint64(h.Width)
}

// Size returns the number of bits of the whole frame, padding excluded.
func (h Header) Size() uint64 {
	size := uint64(shared.HeaderFieldSize)
	if h.Framing == Explicit {
		size += shared.CountFieldSize
	}
	return size + h.BodySize()
}
