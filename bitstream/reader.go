package bitstream

import (
	"io"
)

// BitReader reads bits from an io.Reader.
type BitReader struct {
	stream  io.Reader
	pending [1]byte
	// alignment is the number of bits of pending already consumed.
	alignment uint8
	bitsRead  uint64
}

// NewReader returns a new instance of BitReader.
func NewReader(r io.Reader) *BitReader {
	br := new(BitReader)
	br.stream = r
	br.alignment = 8
	return br
}

// fill loads the next byte into pending if all of its bits were consumed.
func (br *BitReader) fill() error {
	if br.alignment < 8 {
		return nil
	}
	if _, err := io.ReadFull(br.stream, br.pending[:]); err != nil {
		return err
	}
	br.alignment = 0
	return nil
}

// AtEnd reports whether the stream has no more bits to read.
// It may block on the underlying reader to find out.
func (br *BitReader) AtEnd() bool {
	return br.fill() != nil
}

// BitsRead returns the number of bits consumed so far.
func (br *BitReader) BitsRead() uint64 {
	return br.bitsRead
}

// ReadBit reads the next single bit from the stream, MSB first.
// It returns io.EOF when no bits are left.
func (br *BitReader) ReadBit() (Bit, error) {
	if err := br.fill(); err != nil {
		return Zero, err
	}

	msb := Bit(br.pending[0]&0x80 != 0)
	br.pending[0] <<= 1
	br.alignment++
	br.bitsRead++

	return msb, nil
}

// ReadByte reads the next 8 bits from the stream, regardless of the alignment.
func (br *BitReader) ReadByte() (byte, error) {
	if br.alignment == 8 {
		if _, err := io.ReadFull(br.stream, br.pending[:]); err != nil {
			return 0, err
		}
		br.bitsRead += 8
		return br.pending[0], nil
	}

	// The byte stream is not aligned.
	// Use the remaining MS bits of the current byte, followed by the MS bits of the next one.
	current := br.pending[0]
	if _, err := io.ReadFull(br.stream, br.pending[:]); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return 0, err
	}

	current |= br.pending[0] >> (8 - br.alignment)
	br.pending[0] <<= br.alignment
	br.bitsRead += 8

	return current, nil
}

// ReadUint reads the next numBits from the stream as an unsigned integer, MSB first.
// It returns io.EOF if the stream was exhausted before the first bit, and
// io.ErrUnexpectedEOF if it was exhausted in the middle of the field.
func (br *BitReader) ReadUint(numBits int) (uint64, error) {
	if numBits < 0 || numBits > MaxUintWidth {
		return 0, ErrInvalidWidth
	}

	var val uint64
	first := true
	eof := func(err error) error {
		if err == io.EOF && !first {
			return io.ErrUnexpectedEOF
		}
		return err
	}

	for numBits >= 8 {
		byt, err := br.ReadByte()
		if err != nil {
			return 0, eof(err)
		}
		val = val<<8 | uint64(byt)
		numBits -= 8
		first = false
	}

	for numBits > 0 {
		bit, err := br.ReadBit()
		if err != nil {
			return 0, eof(err)
		}
		val <<= 1
		if bit {
			val |= 1
		}
		numBits--
		first = false
	}

	return val, nil
}
