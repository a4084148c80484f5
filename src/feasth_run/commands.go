package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"feasth/src/feasth"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const sizeWarning = `Model is smaller than the average sub model size
Possible Causes:
	MPS is not standard
	MPS and CSV are not for the same problem
Consider to provide the model size directly
`

type modelFlags struct {
	size     uint64
	instance string
}

func (m *modelFlags) register(cmd *cobra.Command) {
	cmd.Flags().Uint64VarP(&m.size, "size", "s", 0, "Specify model size directly")
	cmd.Flags().StringVarP(&m.instance, "instance", "i", "", "Specify MPS file and compute model size automatically")
	cmd.MarkFlagsMutuallyExclusive("size", "instance")
}

// modelSize resolves the model size from the flags, falling back to the
// config file.
func (a *app) modelSize(cmd *cobra.Command, m *modelFlags) (uint64, error) {
	var size uint64
	switch {
	case cmd.Flags().Changed("size"):
		size = m.size
	case m.instance != "":
		count, err := feasth.GetVariableCount(m.instance)
		if err != nil {
			return 0, err
		}
		a.logger.Debug("counted model variables", zap.String("instance", m.instance), zap.Int("count", count))
		size = uint64(count)
	case a.cfg.ModelSize > 0:
		size = a.cfg.ModelSize
	default:
		return 0, errors.New("must specify either --size or --instance")
	}
	if size == 0 {
		return 0, errors.New("model size is zero")
	}
	return size, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func printIndex(w io.Writer, name string, value *float64) error {
	if value == nil {
		_, err := fmt.Fprintf(w, "%s: UNDEFINED\n", name)
		return err
	}
	_, err := fmt.Fprintf(w, "%s: %s\n", name, formatFloat(*value))
	return err
}

func newThreshCmd(a *app) *cobra.Command {
	var model modelFlags
	cmd := &cobra.Command{
		Use:   "thresh LOG_FILE",
		Short: "Compute IFT and CFT",
		Long: `Compute the continuous (CFT) and integer (IFT) feasibility thresholds:
the average size of the sub-models solved with status 1 and 0 respectively,
divided by the model size.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			size, err := a.modelSize(cmd, &model)
			if err != nil {
				return err
			}
			stats, err := feasth.GetAverageSizes(args[0])
			if err != nil {
				return err
			}
			a.logger.Debug("aggregated log",
				zap.String("log", args[0]),
				zap.Uint64("continuous_count", stats.Continuous.Count),
				zap.Uint64("integer_count", stats.Integer.Count),
			)

			th := feasth.ComputeThresholds(size, stats)
			if th.Oversized(a.cfg.WarnLimit) {
				largest, _ := th.Largest()
				a.logger.Warn("average sub model exceeds model size", zap.Float64("threshold", largest))
				fmt.Fprint(cmd.ErrOrStderr(), sizeWarning)
			}
			return a.withOutput(cmd, func(w io.Writer) error {
				if _, err := fmt.Fprintf(w, "Model Size: %d\n", size); err != nil {
					return err
				}
				if err := printIndex(w, "CFT", th.Continuous); err != nil {
					return err
				}
				return printIndex(w, "IFT", th.Integer)
			})
		},
	}
	model.register(cmd)
	return cmd
}

func newRatioCmd(a *app) *cobra.Command {
	var (
		model   modelFlags
		summary bool
		top     int
	)
	cmd := &cobra.Command{
		Use:   "ratio LOG_FILE",
		Short: "Compute usage ratios",
		Long: `Print, for every record of the log, the sub-model size divided by the
model size followed by the record status.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if top < 0 {
				return errors.Errorf("--top must not be negative, got %d", top)
			}
			size, err := a.modelSize(cmd, &model)
			if err != nil {
				return err
			}
			records, err := feasth.GetModelSizes(args[0])
			if err != nil {
				return err
			}
			if mean, ok := feasth.MeanSize(records); ok {
				a.logger.Debug("loaded records", zap.String("log", args[0]), zap.Int("records", len(records)), zap.Float64("mean_size", mean))
			}

			ratios := feasth.UsageRatios(size, records)
			return a.withOutput(cmd, func(w io.Writer) error {
				for _, r := range ratios {
					if err := writeRatio(w, r); err != nil {
						return err
					}
				}
				if summary {
					if err := writeSummary(w, feasth.SummarizeRatios(ratios)); err != nil {
						return err
					}
				}
				if top > 0 {
					return writeTop(w, ratios, feasth.TopRatios(ratios, top))
				}
				return nil
			})
		},
	}
	model.register(cmd)
	cmd.Flags().BoolVar(&summary, "summary", false, "Append mean and standard deviation of the ratios per status")
	cmd.Flags().IntVar(&top, "top", 0, "Append the N largest usage ratios")
	return cmd
}

func statusField(status uint64, ok bool) string {
	if !ok {
		return ""
	}
	return strconv.FormatUint(status, 10)
}

func writeRatio(w io.Writer, r feasth.UsageRatio) error {
	_, err := fmt.Fprintf(w, "%s,%s\n", formatFloat(r.Ratio), statusField(r.Status, r.HasStatus))
	return err
}

func writeSummary(w io.Writer, summaries []feasth.RatioSummary) error {
	if _, err := fmt.Fprintln(w, "# status,count,mean,stddev"); err != nil {
		return err
	}
	for _, s := range summaries {
		_, err := fmt.Fprintf(w, "# %s,%d,%s,%s\n",
			statusField(s.Status, s.HasStatus), s.Count, formatFloat(s.Mean), formatFloat(s.StdDev))
		if err != nil {
			return err
		}
	}
	return nil
}

func writeTop(w io.Writer, ratios []feasth.UsageRatio, top []int) error {
	if _, err := fmt.Fprintln(w, "# record,ratio,status"); err != nil {
		return err
	}
	for _, i := range top {
		r := ratios[i]
		_, err := fmt.Fprintf(w, "# %d,%s,%s\n", i, formatFloat(r.Ratio), statusField(r.Status, r.HasStatus))
		if err != nil {
			return err
		}
	}
	return nil
}

func newSizeCmd(a *app) *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:   "size MPS_FILE",
		Short: "Count the variables of an MPS model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := feasth.LoadFile(args[0])
			if err != nil {
				return err
			}
			names := feasth.ColumnNames(data)

			return a.withOutput(cmd, func(w io.Writer) error {
				if _, err := fmt.Fprintf(w, "Model Size: %d\n", len(names)); err != nil {
					return err
				}
				if !list {
					return nil
				}
				for _, name := range names {
					if _, err := fmt.Fprintln(w, strings.TrimRight(name, " ")); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "Also print the variable names")
	return cmd
}
