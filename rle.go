// Package rle compresses binary bitmaps by run-length encoding, and expands them back.
//
// Compress reads every bit of the input, MSB first, extracts the alternating
// runs starting with zeros and writes them as a self-describing frame.
// Expand decodes such a frame and writes back the original bits.
// Both operate in a single synchronous pass.
package rle

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/spacemeshos/rle/bitstream"
	"github.com/spacemeshos/rle/frame"
	"github.com/spacemeshos/rle/runlength"
)

type (
	Runs    = runlength.Runs
	Framing = frame.Framing
	Header  = frame.Header
)

const (
	Explicit = frame.Explicit
	Implicit = frame.Implicit
)

// Mode is the direction of the transform.
type Mode uint8

const (
	ModeCompress Mode = iota
	ModeExpand
)

func (m Mode) String() string {
	if m == ModeExpand {
		return "expand"
	}
	return "compress"
}

// ctxReader fails reads once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

// ctxWriter fails writes once ctx is done.
type ctxWriter struct {
	ctx context.Context
	w   io.Writer
}

func (c ctxWriter) Write(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.w.Write(p)
}

func applyOpts(opts []OptionFunc) (*option, error) {
	options := defaultOption()
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// Compress reads all bits from r and writes their run-length frame to w.
// The frame is zero-padded to a byte boundary and buffered writes are flushed
// on every return path.
func Compress(ctx context.Context, r io.Reader, w io.Writer, opts ...OptionFunc) (stats *Stats, err error) {
	options, err := applyOpts(opts)
	if err != nil {
		return nil, err
	}
	logger := options.logger

	br := bitstream.NewReader(bufio.NewReader(ctxReader{ctx, r}))
	bw := bitstream.NewWriter(bufio.NewWriter(ctxWriter{ctx, w}))
	defer func() {
		if cerr := bw.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to flush output: %w", cerr)
		}
	}()

	runs, err := runlength.ExtractFrom(br, options.width)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	logger.Debug("extracted runs",
		zap.Uint64("bits", br.BitsRead()),
		zap.Int("runs", len(runs)),
		zap.Uint8("width", options.width),
	)

	h, err := frame.Encode(bw, options.width, options.framing, runs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode frame: %w", err)
	}
	if err := bw.Close(); err != nil {
		return nil, fmt.Errorf("failed to flush output: %w", err)
	}

	stats = &Stats{
		Mode:       ModeCompress,
		Header:     h,
		Runs:       len(runs),
		Splits:     countSplits(runs),
		InputBits:  br.BitsRead(),
		OutputBits: bw.BitsWritten(),
	}
	logger.Info("compressed",
		zap.Uint64("input_bits", stats.InputBits),
		zap.Uint64("output_bits", stats.OutputBits),
		zap.Stringer("framing", h.Framing),
		zap.Float64("ratio", stats.Ratio()),
	)
	return stats, nil
}

// Expand decodes a frame from r and writes the original bits to w.
// A truncated or malformed frame fails with shared.ErrEndOfStream or
// shared.HeaderError, output written so far is not guaranteed to be complete.
func Expand(ctx context.Context, r io.Reader, w io.Writer, opts ...OptionFunc) (stats *Stats, err error) {
	options, err := applyOpts(opts)
	if err != nil {
		return nil, err
	}
	logger := options.logger

	br := bitstream.NewReader(bufio.NewReader(ctxReader{ctx, r}))
	bw := bitstream.NewWriter(bufio.NewWriter(ctxWriter{ctx, w}))
	defer func() {
		if cerr := bw.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to flush output: %w", cerr)
		}
	}()

	h, runs, err := frame.Decode(br)
	if err != nil {
		return nil, fmt.Errorf("failed to decode frame: %w", err)
	}
	if options.widthSet && options.width != h.Width {
		logger.Warn("ignoring requested width, using the frame width",
			zap.Uint8("requested", options.width),
			zap.Uint8("frame", h.Width),
		)
	}
	logger.Debug("decoded frame",
		zap.Uint8("width", h.Width),
		zap.Stringer("framing", h.Framing),
		zap.Uint32("runs", h.Count),
	)

	n, err := runs.ExpandTo(bw)
	if err != nil {
		return nil, fmt.Errorf("failed to write output: %w", err)
	}
	if err := bw.Close(); err != nil {
		return nil, fmt.Errorf("failed to flush output: %w", err)
	}

	stats = &Stats{
		Mode:       ModeExpand,
		Header:     h,
		Runs:       len(runs),
		Splits:     countSplits(runs),
		InputBits:  br.BitsRead(),
		OutputBits: n,
	}
	logger.Info("expanded",
		zap.Uint64("input_bits", stats.InputBits),
		zap.Uint64("output_bits", stats.OutputBits),
		zap.Stringer("framing", h.Framing),
	)
	return stats, nil
}
