package main

import (
	"fmt"
	"io"
	"os"

	"feasth/src/config"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type app struct {
	configPath string
	verbose    bool
	output     string

	cfg    *config.Config
	logger *zap.Logger
}

func newLogger(level string, verbose bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.Sampling = nil
	return zc.Build()
}

// withOutput runs write against the report destination. A file output
// is closed exactly once and its close error is kept unless write failed.
func (a *app) withOutput(cmd *cobra.Command, write func(w io.Writer) error) (err error) {
	path := a.cfg.Output
	if a.output != "" {
		path = a.output
	}
	if path == "" {
		return write(cmd.OutOrStdout())
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "cannot create output file")
	}
	a.logger.Debug("writing report", zap.String("path", path))
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "cannot close output file")
		}
	}()
	return write(f)
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "feasth_run",
		Short: "Compute usage ratios, IFT and CFT",
		Long: `feasth_run reads the CSV log written by a kernel search run and the MPS
model it solved, and reports how large the solved sub-models were
compared to the whole model.

The model size is either given directly (--size) or counted from the
COLUMNS section of the MPS file (--instance).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg

			logger, err := newLogger(cfg.Logging.Level, a.verbose)
			if err != nil {
				return errors.Wrap(err, "failed to initialize logger")
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", "", "Specify output file")

	root.AddCommand(
		newThreshCmd(a),
		newRatioCmd(a),
		newSizeCmd(a),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
