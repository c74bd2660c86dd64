package config

import (
	"fmt"
	"path/filepath"

	"github.com/spacemeshos/smutil"
	"go.uber.org/zap/zapcore"

	"github.com/spacemeshos/rle/frame"
	"github.com/spacemeshos/rle/shared"
)

const (
	DefaultHomeDirName    = ".bitmapcompressor"
	DefaultConfigFileName = "config.toml"
	DefaultWidth          = shared.DefaultWidth
	DefaultFraming        = "explicit"
	DefaultLogLevel       = "info"

	// EnvPrefix prefixes the environment variables overriding the config, e.g. BMC_WIDTH.
	EnvPrefix = "BMC"
)

var (
	DefaultHomeDir    = filepath.Join(smutil.GetUserHomeDirectory(), DefaultHomeDirName)
	DefaultConfigFile = filepath.Join(DefaultHomeDir, DefaultConfigFileName)
)

type Config struct {
	// Width is the number of bits per run field. Used when compressing only,
	// expanded frames carry their own width.
	Width   uint8  `mapstructure:"width"`
	Framing string `mapstructure:"framing"`

	// Input and Output are file paths. Empty or "-" means stdin / stdout.
	Input  string `mapstructure:"input"`
	Output string `mapstructure:"output"`

	LogLevel string `mapstructure:"loglevel"`
	Stats    bool   `mapstructure:"stats"`
}

func DefaultConfig() Config {
	return Config{
		Width:    DefaultWidth,
		Framing:  DefaultFraming,
		LogLevel: DefaultLogLevel,
	}
}

// FramingMode returns the parsed framing mode.
func (cfg *Config) FramingMode() (frame.Framing, error) {
	return frame.ParseFraming(cfg.Framing)
}

// Level returns the parsed log level.
func (cfg *Config) Level() (zapcore.Level, error) {
	return zapcore.ParseLevel(cfg.LogLevel)
}

func Validate(cfg Config) error {
	if err := shared.ValidateWidth(cfg.Width); err != nil {
		return fmt.Errorf("invalid `Width`: %w", err)
	}

	if _, err := cfg.FramingMode(); err != nil {
		return fmt.Errorf("invalid `Framing`: %w", err)
	}

	if _, err := cfg.Level(); err != nil {
		return fmt.Errorf("invalid `LogLevel`: %w", err)
	}

	return nil
}
