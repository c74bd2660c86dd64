package bitstream

import (
	"io"
)

// BitWriter writes bits to an io.Writer.
type BitWriter struct {
	stream  io.Writer
	pending [1]byte
	// alignment is the number of bits of pending already filled.
	alignment   uint8
	bitsWritten uint64
	closed      bool
}

// NewWriter returns a new instance of BitWriter.
func NewWriter(w io.Writer) *BitWriter {
	bw := new(BitWriter)
	bw.stream = w
	bw.alignment = 0 // most-significant bit
	return bw
}

// BitsWritten returns the number of bits accepted so far, padding included.
func (bw *BitWriter) BitsWritten() uint64 {
	return bw.bitsWritten
}

func (bw *BitWriter) emit() error {
	n, err := bw.stream.Write(bw.pending[:])
	if err != nil {
		return err
	}
	if n != 1 {
		return io.ErrShortWrite
	}
	return nil
}

// WriteUint writes the numBits LS bits of val, MSB first, regardless of the alignment.
func (bw *BitWriter) WriteUint(val uint64, numBits int) error {
	if numBits < 0 || numBits > MaxUintWidth {
		return ErrInvalidWidth
	}
	if numBits == 0 {
		return nil
	}

	// Eliminate unnecessary MS bits.
	val <<= 64 - uint(numBits)

	for numBits >= 8 {
		if err := bw.WriteByte(byte(val >> 56)); err != nil {
			return err
		}
		val <<= 8
		numBits -= 8
	}

	for numBits > 0 {
		if err := bw.WriteBit((val >> 63) == 1); err != nil {
			return err
		}
		val <<= 1
		numBits--
	}

	return nil
}

// WriteByte writes a single byte to the stream, regardless of the alignment.
func (bw *BitWriter) WriteByte(b byte) error {
	if bw.closed {
		return ErrClosed
	}

	// Fill the pending byte LS bits with the MS bits of b.
	bw.pending[0] |= b >> bw.alignment
	if err := bw.emit(); err != nil {
		return err
	}

	// Fill the new pending byte MS bits with the LS bits of b.
	bw.pending[0] = b << (8 - bw.alignment)
	bw.bitsWritten += 8

	return nil
}

// WriteBit writes a single bit to the stream, MSB first.
func (bw *BitWriter) WriteBit(bit Bit) error {
	if bw.closed {
		return ErrClosed
	}

	if bit {
		bw.pending[0] |= 0x80 >> bw.alignment
	}
	bw.alignment++
	bw.bitsWritten++

	if bw.alignment == 8 {
		if err := bw.emit(); err != nil {
			return err
		}
		bw.pending[0] = 0
		bw.alignment = 0
	}

	return nil
}

// Flush flushes the currently pending byte to the stream by filling it with bit.
func (bw *BitWriter) Flush(bit Bit) error {
	for bw.alignment != 0 {
		if err := bw.WriteBit(bit); err != nil {
			return err
		}
	}

	return nil
}

// Close zero-pads the pending byte and flushes it, then flushes the
// underlying stream if it buffers. Calling Close more than once is a no-op.
// The underlying stream is not closed.
func (bw *BitWriter) Close() error {
	if bw.closed {
		return nil
	}
	if err := bw.Flush(Zero); err != nil {
		return err
	}
	bw.closed = true

	if f, ok := bw.stream.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}
