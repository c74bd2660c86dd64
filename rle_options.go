package rle

import (
	"errors"

	"go.uber.org/zap"

	"github.com/spacemeshos/rle/frame"
	"github.com/spacemeshos/rle/shared"
)

type option struct {
	width uint8
	// widthSet tells whether the caller chose a width explicitly.
	widthSet bool
	framing  frame.Framing
	logger   *zap.Logger
}

func defaultOption() *option {
	return &option{
		width:   shared.DefaultWidth,
		framing: frame.Explicit,
		logger:  zap.NewNop(),
	}
}

type OptionFunc func(*option) error

// WithWidth sets the number of bits per run field.
// Expand reads the width from the frame and only uses it to report a mismatch.
func WithWidth(width uint8) OptionFunc {
	return func(o *option) error {
		if err := shared.ValidateWidth(width); err != nil {
			return err
		}
		o.width = width
		o.widthSet = true
		return nil
	}
}

// WithFraming sets the framing used by Compress.
func WithFraming(framing frame.Framing) OptionFunc {
	return func(o *option) error {
		if framing != frame.Explicit && framing != frame.Implicit {
			return errors.New("`framing` must be explicit or implicit")
		}
		o.framing = framing
		return nil
	}
}

func WithLogger(logger *zap.Logger) OptionFunc {
	return func(o *option) error {
		if logger == nil {
			return errors.New("`logger` is required")
		}
		o.logger = logger
		return nil
	}
}
