package cmd

import (
	"errors"
	"io/fs"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/spacemeshos/smutil"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/spacemeshos/rle/config"
)

const (
	configFlag      = "config"
	printConfigFlag = "print-config"
)

func setFlags(flags *pflag.FlagSet, cfg config.Config) {
	flags.String(configFlag, "", "Path to configuration file (default "+config.DefaultConfigFile+")")
	flags.Bool(printConfigFlag, false, "Print the resolved configuration and exit")

	flags.Uint8("width", cfg.Width, "Number of bits per run, used when compressing (1-31)")
	flags.String("framing", cfg.Framing, "Frame layout written when compressing {explicit, implicit}")
	flags.StringP("input", "i", cfg.Input, "Input file (default stdin)")
	flags.StringP("output", "o", cfg.Output, "Output file, replaced atomically (default stdout)")
	flags.String("loglevel", cfg.LogLevel, "Log level {debug, info, warn, error}")
	flags.Bool("stats", cfg.Stats, "Print a compression report to stderr")
}

// loadConfig resolves the configuration, in increasing priority:
// defaults, configuration file, BMC_* environment variables, flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.DefaultConfig()

	vip := viper.New()
	if err := vip.BindPFlags(cmd.Flags()); err != nil {
		return cfg, pkgerrors.Wrap(err, "failed to bind flags")
	}
	vip.SetEnvPrefix(config.EnvPrefix)
	vip.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	vip.AutomaticEnv()

	if err := loadConfigFile(vip, vip.GetString(configFlag)); err != nil {
		return cfg, err
	}

	if err := vip.Unmarshal(&cfg); err != nil {
		return cfg, pkgerrors.Wrap(err, "failed to parse config")
	}
	return cfg, nil
}

// loadConfigFile reads fileLocation into vip. A missing default file is not an error.
func loadConfigFile(vip *viper.Viper, fileLocation string) error {
	explicit := fileLocation != ""
	if !explicit {
		fileLocation = config.DefaultConfigFile
	}

	vip.SetConfigFile(smutil.GetCanonicalPath(fileLocation))
	if err := vip.ReadInConfig(); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return pkgerrors.Wrapf(err, "failed to read config file %s", fileLocation)
	}
	return nil
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Encoding = "console"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}
	return zcfg.Build()
}
