package frame

import (
	"bytes"
	"errors"
	"io"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spacemeshos/rle/bitstream"
	"github.com/spacemeshos/rle/runlength"
	"github.com/spacemeshos/rle/shared"
)

func encode(t *testing.T, width uint8, framing Framing, runs runlength.Runs) []byte {
	t.Helper()

	buf := bytes.NewBuffer(nil)
	w := bitstream.NewWriter(buf)
	_, err := Encode(w, width, framing, runs)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func decode(data []byte) (Header, runlength.Runs, error) {
	return Decode(bitstream.NewReader(bytes.NewReader(data)))
}

func TestEncode_Layout(t *testing.T) {
	tests := []struct {
		name    string
		width   uint8
		framing Framing
		runs    runlength.Runs
		data    []byte
	}{
		{
			name:    "explicit width 8",
			width:   8,
			framing: Explicit,
			runs:    runlength.Runs{8, 8, 1},
			data:    []byte{0x08, 0x00, 0x00, 0x00, 0x03, 0x08, 0x08, 0x01},
		},
		{
			name:    "explicit width 3",
			width:   3,
			framing: Explicit,
			runs:    runlength.Runs{1, 2, 3},
			// 001 010 011 0000000
			data: []byte{0x03, 0x00, 0x00, 0x00, 0x03, 0x29, 0x80},
		},
		{
			name:    "explicit empty",
			width:   8,
			framing: Explicit,
			runs:    runlength.Runs{0},
			data:    []byte{0x08, 0x00, 0x00, 0x00, 0x01, 0x00},
		},
		{
			name:    "implicit width 8",
			width:   8,
			framing: Implicit,
			runs:    runlength.Runs{255, 0, 45},
			data:    []byte{0x88, 0xFF, 0x00, 0x2D},
		},
		{
			name:    "implicit width 2",
			width:   2,
			framing: Implicit,
			runs:    runlength.Runs{3, 1},
			// 11 01 0000
			data: []byte{0x82, 0xD0},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := require.New(t)

			data := encode(t, tc.width, tc.framing, tc.runs)
			req.Equal(tc.data, data)

			h, runs, err := decode(data)
			req.NoError(err)
			req.Equal(tc.runs, runs)
			req.Equal(tc.width, h.Width)
			req.Equal(tc.framing, h.Framing)
			req.Equal(uint32(len(tc.runs)), h.Count)
		})
	}
}

func TestEncode_Header(t *testing.T) {
	req := require.New(t)

	buf := bytes.NewBuffer(nil)
	h, err := Encode(bitstream.NewWriter(buf), 4, Explicit, runlength.Runs{1, 2, 3})
	req.NoError(err)
	req.Equal(Header{Width: 4, Framing: Explicit, Count: 3}, h)
	req.Equal(uint64(12), h.BodySize())
	req.Equal(uint64(8+32+12), h.Size())

	h, err = Encode(bitstream.NewWriter(buf), 4, Implicit, runlength.Runs{1, 2, 3})
	req.NoError(err)
	req.Equal(uint64(8+12), h.Size())
}

func TestEncode_Errors(t *testing.T) {
	req := require.New(t)

	w := bitstream.NewWriter(io.Discard)

	_, err := Encode(w, 0, Explicit, runlength.Runs{0})
	req.ErrorIs(err, shared.ErrInvalidWidth)

	_, err = Encode(w, shared.MaxWidth+1, Explicit, runlength.Runs{0})
	req.ErrorIs(err, shared.ErrInvalidWidth)

	_, err = Encode(w, 8, Explicit, runlength.Runs{256})
	req.ErrorIs(err, shared.ErrRunOverflow)

	_, err = Encode(w, 8, Framing(7), runlength.Runs{0})
	req.Error(err)
}

func TestImplicit_TrailingZeros(t *testing.T) {
	req := require.New(t)

	// Trailing zero-length runs expand to nothing and are indistinguishable from padding.
	data := encode(t, 3, Implicit, runlength.Runs{1, 0, 0})
	req.Equal([]byte{0x83, 0x20}, data)

	_, runs, err := decode(data)
	req.NoError(err)
	req.Equal(runlength.Runs{1}, runs)

	data = encode(t, 1, Implicit, runlength.Runs{0})
	_, runs, err = decode(data)
	req.NoError(err)
	req.Equal(runlength.Runs{0}, runs)
}

func TestDecode_Errors(t *testing.T) {
	req := require.New(t)

	_, _, err := decode(nil)
	req.ErrorIs(err, shared.ErrEndOfStream)

	_, _, err = decode([]byte{0x08})
	req.ErrorIs(err, shared.ErrEndOfStream)

	_, _, err = decode([]byte{0x08, 0x00, 0x00})
	req.ErrorIs(err, shared.ErrEndOfStream)
	req.ErrorIs(err, io.ErrUnexpectedEOF)

	// Truncated body.
	_, _, err = decode([]byte{0x08, 0x00, 0x00, 0x00, 0x03, 0x08})
	req.ErrorIs(err, shared.ErrEndOfStream)
	req.EqualError(err, "unexpected end of stream: run 1 of 3: EOF")

	for _, b := range []byte{0x00, 0x20, 0x80, 0xFF} {
		_, _, err = decode([]byte{b, 0x00, 0x00, 0x00, 0x00})
		var herr shared.HeaderError
		req.True(errors.As(err, &herr), "header byte %#x", b)
		req.Equal("width", herr.Field)
	}
}

func TestDecodeHeader(t *testing.T) {
	req := require.New(t)

	h, err := DecodeHeader(bitstream.NewReader(bytes.NewReader([]byte{0x9F})))
	req.NoError(err)
	req.Equal(Header{Width: 31, Framing: Implicit}, h)

	h, err = DecodeHeader(bitstream.NewReader(bytes.NewReader([]byte{0x10, 0x00, 0x00, 0x01, 0x00})))
	req.NoError(err)
	req.Equal(Header{Width: 16, Framing: Explicit, Count: 256}, h)
}

func TestIdempotence(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for _, framing := range []Framing{Explicit, Implicit} {
		for width := uint8(shared.MinWidth); width <= shared.MaxWidth; width++ {
			bits := make([]bitstream.Bit, rng.Intn(2048))
			for i := range bits {
				bits[i] = rng.Intn(8) == 0
			}
			runs, err := runlength.Extract(bits, width)
			require.NoError(t, err)

			data := encode(t, width, framing, runs)
			h, decoded, err := decode(data)
			require.NoError(t, err, "%v width %d", framing, width)
			require.Equal(t, runs, decoded, "%v width %d", framing, width)
			require.Equal(t, width, h.Width)

			// Re-encoding the decoded runs reproduces the frame byte for byte.
			require.Equal(t, data, encode(t, h.Width, h.Framing, decoded), "%v width %d", framing, width)
		}
	}
}

func TestParseFraming(t *testing.T) {
	req := require.New(t)

	f, err := ParseFraming("explicit")
	req.NoError(err)
	req.Equal(Explicit, f)

	f, err = ParseFraming("Implicit")
	req.NoError(err)
	req.Equal(Implicit, f)

	f, err = ParseFraming("")
	req.NoError(err)
	req.Equal(Explicit, f)

	_, err = ParseFraming("legacy")
	req.EqualError(err, `invalid framing "legacy"; expected: explicit or implicit`)

	req.Equal("explicit", Explicit.String())
	req.Equal("implicit", Implicit.String())
	req.Equal("framing(9)", Framing(9).String())
}
