package cmd

import (
	"bytes"
	"io"
	"os"
	"strconv"

	"github.com/davecgh/go-spew/spew"
	"github.com/natefinch/atomic"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spacemeshos/rle"
	"github.com/spacemeshos/rle/config"
	"github.com/spacemeshos/rle/shared"
)

var (
	// Version is the version of the binary, set by main.
	Version = "0.0.0"

	// Commit is the commit hash of the binary, set by main.
	Commit = ""
)

const (
	compressArg = "-"
	expandArg   = "+"
)

var rootCmd = NewRootCmd()

// NewRootCmd returns the bitmapcompressor command with its flags registered.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bitmapcompressor (-|+) [width]",
		Short: "Compress or expand a binary bitmap",
		Long: `bitmapcompressor reads a binary bitmap and encodes the runs of identical bits
as fixed-width counts (mode "-"), or expands such an encoding back to the
original bitmap (mode "+"). It reads stdin and writes stdout unless --input
or --output are given.

The optional width argument sets the number of bits per run (1-31, default 8).
Expanded frames carry their own width, so expand does not need it.`,
		Example: `  bitmapcompressor - < q64x96.bin > q64x96.rle
  bitmapcompressor - 4 --stats < q64x96.bin > q64x96.rle
  bitmapcompressor + < q64x96.rle > q64x96.bin`,
		Args:    validateArgs,
		Version: Version,
		RunE:    run,
	}
	setFlags(cmd.Flags(), config.DefaultConfig())
	return cmd
}

// Execute runs the root command and exits with a non-zero code on failure.
func Execute() {
	rootCmd.Version = versionString()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func versionString() string {
	if Commit == "" {
		return Version
	}
	return Version + " (" + Commit + ")"
}

func parseMode(arg string) (rle.Mode, error) {
	switch arg {
	case compressArg:
		return rle.ModeCompress, nil
	case expandArg:
		return rle.ModeExpand, nil
	default:
		return 0, errors.Wrapf(shared.ErrInvalidMode, "given: %q", arg)
	}
}

func parseWidth(arg string) (uint8, error) {
	w, err := strconv.ParseUint(arg, 10, 8)
	if err != nil {
		return 0, errors.Wrapf(shared.ErrInvalidWidth, "given: %q", arg)
	}
	if err := shared.ValidateWidth(uint8(w)); err != nil {
		return 0, err
	}
	return uint8(w), nil
}

func validateArgs(cmd *cobra.Command, args []string) error {
	if printConfig, _ := cmd.Flags().GetBool(printConfigFlag); printConfig {
		return nil
	}
	if len(args) == 0 {
		return errors.Wrap(shared.ErrInvalidMode, "missing mode")
	}
	if len(args) > 2 {
		return errors.Errorf("accepts at most 2 arg(s), received %d", len(args))
	}
	if _, err := parseMode(args[0]); err != nil {
		return err
	}
	if len(args) == 2 {
		if _, err := parseWidth(args[1]); err != nil {
			return err
		}
	}
	return nil
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if printConfig, _ := cmd.Flags().GetBool(printConfigFlag); printConfig {
		spew.Fdump(cmd.OutOrStdout(), cfg)
		return nil
	}

	// Arguments were validated already, what is left are runtime failures.
	cmd.SilenceUsage = true

	mode, _ := parseMode(args[0])
	widthSet := cmd.Flags().Changed("width")
	if len(args) == 2 {
		cfg.Width, _ = parseWidth(args[1])
		widthSet = true
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	framing, _ := cfg.FramingMode()
	opts := []rle.OptionFunc{
		rle.WithFraming(framing),
		rle.WithLogger(logger.Named(mode.String())),
	}
	if mode == rle.ModeCompress || widthSet {
		opts = append(opts, rle.WithWidth(cfg.Width))
	}

	in, closeIn, err := openInput(cmd, cfg.Input)
	if err != nil {
		return err
	}
	defer closeIn()

	out := cmd.OutOrStdout()
	var buf *bytes.Buffer
	if toFile(cfg.Output) {
		buf = bytes.NewBuffer(nil)
		out = buf
	}

	var stats *rle.Stats
	if mode == rle.ModeCompress {
		stats, err = rle.Compress(cmd.Context(), in, out, opts...)
	} else {
		stats, err = rle.Expand(cmd.Context(), in, out, opts...)
	}
	if err != nil {
		return errors.Wrap(err, mode.String())
	}

	if buf != nil {
		if err := atomic.WriteFile(cfg.Output, buf); err != nil {
			return errors.Wrapf(err, "failed to write output %s", cfg.Output)
		}
		logger.Debug("output written", zap.String("path", cfg.Output))
	}

	if cfg.Stats {
		report(cmd.ErrOrStderr(), stats)
	}
	return nil
}

func toFile(path string) bool {
	return path != "" && path != "-"
}

func openInput(cmd *cobra.Command, path string) (io.Reader, func(), error) {
	if !toFile(path) {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to open input %s", path)
	}
	return f, func() { _ = f.Close() }, nil
}
