package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/spacemeshos/rle/config"
	"github.com/spacemeshos/rle/frame"
	"github.com/spacemeshos/rle/shared"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()
	cfg := config.DefaultConfig()

	require.NoError(t, config.Validate(cfg))
	require.Equal(t, uint8(8), cfg.Width)

	f, err := cfg.FramingMode()
	require.NoError(t, err)
	require.Equal(t, frame.Explicit, f)

	lvl, err := cfg.Level()
	require.NoError(t, err)
	require.Equal(t, zapcore.InfoLevel, lvl)
}

func TestValidateWidth(t *testing.T) {
	t.Parallel()
	cfg := config.DefaultConfig()

	cfg.Width = 0
	err := config.Validate(cfg)
	require.ErrorIs(t, err, shared.ErrInvalidWidth)

	cfg.Width = shared.MaxWidth
	require.NoError(t, config.Validate(cfg))
}

func TestValidateFraming(t *testing.T) {
	t.Parallel()
	cfg := config.DefaultConfig()

	cfg.Framing = "implicit"
	require.NoError(t, config.Validate(cfg))

	cfg.Framing = "zigzag"
	require.ErrorContains(t, config.Validate(cfg), "invalid `Framing`")
}

func TestValidateLogLevel(t *testing.T) {
	t.Parallel()
	cfg := config.DefaultConfig()

	cfg.LogLevel = "debug"
	require.NoError(t, config.Validate(cfg))

	cfg.LogLevel = "loud"
	require.ErrorContains(t, config.Validate(cfg), "invalid `LogLevel`")
}
