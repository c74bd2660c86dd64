package runlength

import (
	"io"

	"github.com/spacemeshos/rle/bitstream"
	"github.com/spacemeshos/rle/shared"
)

type extractor struct {
	runs     Runs
	max      uint32
	previous bitstream.Bit
	count    uint32
}

func newExtractor(width uint8) (*extractor, error) {
	if err := shared.ValidateWidth(width); err != nil {
		return nil, err
	}
	return &extractor{max: shared.MaxRun(width), previous: bitstream.Zero}, nil
}

func (e *extractor) add(bit bitstream.Bit) {
	if bit != e.previous {
		e.runs = append(e.runs, e.count)
		e.count = 1
		e.previous = bit
		return
	}

	e.count++
	if e.count > e.max {
		// Split the run, the zero-length run of the other symbol keeps the parity.
		e.runs = append(e.runs, e.max, 0)
		e.count = 1
	}
}

func (e *extractor) done() Runs {
	return append(e.runs, e.count)
}

// Extract returns the runs of bits, each one fitting into width bits.
// An empty input yields a single zero-length run.
func Extract(bits []bitstream.Bit, width uint8) (Runs, error) {
	e, err := newExtractor(width)
	if err != nil {
		return nil, err
	}
	for _, bit := range bits {
		e.add(bit)
	}
	return e.done(), nil
}

// ExtractFrom reads bits from src until io.EOF and returns their runs.
func ExtractFrom(src BitSource, width uint8) (Runs, error) {
	e, err := newExtractor(width)
	if err != nil {
		return nil, err
	}
	for {
		bit, err := src.ReadBit()
		if err == io.EOF {
			return e.done(), nil
		}
		if err != nil {
			return nil, err
		}
		e.add(bit)
	}
}
