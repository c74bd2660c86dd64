// Package bitstream provides wrappers for io.Writer and io.Reader to allow
// bit-granularity access to the stream, following the MSB pattern, where
// most-significant bits are written/read first.
package bitstream

import "errors"

type Bit bool

const (
	Zero Bit = false
	One  Bit = true
)

// MaxUintWidth is the widest field ReadUint and WriteUint accept.
const MaxUintWidth = 64

var (
	ErrInvalidWidth = errors.New("bitstream: invalid field width")
	ErrClosed       = errors.New("bitstream: write on closed writer")
)
