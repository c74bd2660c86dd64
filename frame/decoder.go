package frame

import (
	"errors"
	"fmt"
	"io"

	"github.com/spacemeshos/rle/runlength"
	"github.com/spacemeshos/rle/shared"
)

// maxPrealloc bounds the capacity reserved from an untrusted count field.
const maxPrealloc = 1 << 16

func isEOF(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}

// DecodeHeader reads the frame header. For implicit framing, Count is left zero.
func DecodeHeader(r BitReader) (Header, error) {
	field, err := r.ReadUint(shared.HeaderFieldSize)
	if err != nil {
		if isEOF(err) {
			return Header{}, fmt.Errorf("%w: missing header: %w", shared.ErrEndOfStream, err)
		}
		return Header{}, err
	}

	h := Header{Width: uint8(field) & widthMask, Framing: Explicit}
	if field&implicitFlag != 0 {
		h.Framing = Implicit
	}

	if err := shared.ValidateWidth(h.Width); err != nil {
		return Header{}, shared.HeaderError{
			Field:    "width",
			Expected: fmt.Sprintf("%d-%d", shared.MinWidth, shared.MaxWidth),
			Found:    fmt.Sprintf("%d", h.Width),
		}
	}

	if h.Framing == Explicit {
		count, err := r.ReadUint(shared.CountFieldSize)
		if err != nil {
			if isEOF(err) {
				return Header{}, fmt.Errorf("%w: missing run count: %w", shared.ErrEndOfStream, err)
			}
			return Header{}, err
		}
		h.Count = uint32(count)
	}

	return h, nil
}

// Decode reads a whole frame and returns its header and runs.
// The returned header Count always holds the number of decoded runs.
func Decode(r BitReader) (Header, runlength.Runs, error) {
	h, err := DecodeHeader(r)
	if err != nil {
		return Header{}, nil, err
	}

	var runs runlength.Runs
	switch h.Framing {
	case Explicit:
		runs, err = decodeExplicit(r, h)
	default:
		runs, err = decodeImplicit(r, h)
		h.Count = uint32(len(runs))
	}
	if err != nil {
		return Header{}, nil, err
	}

	return h, runs, nil
}

func decodeExplicit(r BitReader, h Header) (runlength.Runs, error) {
	runs := make(runlength.Runs, 0, min(h.Count, maxPrealloc))
	for i := uint32(0); i < h.Count; i++ {
		l, err := r.ReadUint(int(h.Width))
		if err != nil {
			if isEOF(err) {
				return nil, fmt.Errorf("%w: run %d of %d: %w", shared.ErrEndOfStream, i, h.Count, err)
			}
			return nil, err
		}
		runs = append(runs, uint32(l))
	}
	return runs, nil
}

func decodeImplicit(r BitReader, h Header) (runlength.Runs, error) {
	var runs runlength.Runs
	for {
		l, err := r.ReadUint(int(h.Width))
		if isEOF(err) {
			// A partial field is padding.
			break
		}
		if err != nil {
			return nil, err
		}
		runs = append(runs, uint32(l))
	}

	// Whole fields made of padding decode as trailing zero-length runs.
	return trimTrailingZeros(runs), nil
}
