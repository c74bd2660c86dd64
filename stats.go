package rle

import (
	"github.com/spacemeshos/rle/frame"
	"github.com/spacemeshos/rle/runlength"
)

// Stats describes a single Compress or Expand invocation.
type Stats struct {
	Mode   Mode
	Header frame.Header
	Runs   int
	// Splits is the number of runs that were longer than the width allows.
	Splits int

	// InputBits and OutputBits count the bits read and written,
	// output padding included.
	InputBits  uint64
	OutputBits uint64
}

// Ratio returns the size of the compressed side relative to the bitmap side.
func (s *Stats) Ratio() float64 {
	compressed, bitmap := s.OutputBits, s.InputBits
	if s.Mode == ModeExpand {
		compressed, bitmap = s.InputBits, s.OutputBits
	}
	if bitmap == 0 {
		return 0
	}
	return float64(compressed) / float64(bitmap)
}

// countSplits counts the zero-length runs inserted past the first run.
// A leading zero-length run only means the bitmap starts with a one.
func countSplits(runs runlength.Runs) int {
	var n int
	for i := 1; i < len(runs); i++ {
		if runs[i] == 0 {
			n++
		}
	}
	return n
}
