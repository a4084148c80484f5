package main

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"strings"
	"time"

	"feasth/src/feasth"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type modelParams struct {
	NumVars      int
	NumRows      int
	IntegerShare float64 // fraction of the variables inside MARKER blocks
	MeanDensity  float64 // mean fraction of rows a variable appears in
}

type logParams struct {
	NumRecords int
	MeanShare  float64 // mean sub-model size relative to the model
	MissRate   float64 // fraction of records without a status
}

func varName(j int) string {
	return fmt.Sprintf("X%07d", j)
}

func rowName(i int) string {
	return fmt.Sprintf("R%07d", i)
}

func writeMarker(s *strings.Builder, kind string) {
	fmt.Fprintf(s, "    %-8s  %-8s  %s\n", "MARKER", feasth.MarkerTag, kind)
}

// GenerateMPS writes a fixed format MPS model. Every variable gets a cost
// plus one coefficient per row it appears in, on consecutive lines.
func GenerateMPS(rng *rand.Rand, p modelParams) string {
	s := new(strings.Builder)
	fmt.Fprintf(s, "NAME          GEN%d\n", p.NumVars)
	s.WriteString("ROWS\n N  COST\n")
	for i := range p.NumRows {
		fmt.Fprintf(s, " L  %s\n", rowName(i))
	}

	s.WriteString(feasth.ColumnsMarker + "\n")
	numInt := int(math.Round(float64(p.NumVars) * p.IntegerShare))
	for j := range p.NumVars {
		if j == 0 && numInt > 0 {
			writeMarker(s, "'INTORG'")
		}
		fmt.Fprintf(s, "    %-8s  %-8s  %12d\n", varName(j), "COST", 1+rng.Intn(20))
		if p.NumRows > 0 {
			density := math.Max(0, math.Min(1, p.MeanDensity+0.1*rng.NormFloat64()))
			count := int(math.Max(1, float64(p.NumRows)*density))
			rows := rng.Perm(p.NumRows)[:count]
			for _, i := range rows {
				fmt.Fprintf(s, "    %-8s  %-8s  %12d\n", varName(j), rowName(i), 1+rng.Intn(9))
			}
		}
		if j == numInt-1 {
			writeMarker(s, "'INTEND'")
		}
	}

	s.WriteString("RHS\n")
	for i := range p.NumRows {
		fmt.Fprintf(s, "    %-8s  %-8s  %12d\n", "RHS", rowName(i), p.NumVars)
	}
	s.WriteString("BOUNDS\n")
	for j := range numInt {
		fmt.Fprintf(s, " UP %-8s  %-8s  %12d\n", "BND", varName(j), 1)
	}
	s.WriteString("ENDATA\n")
	return s.String()
}

// GenerateLog writes a kernel search run log for a model of modelSize
// variables. Statuses are 0, 1 or 2; a record may have none.
func GenerateLog(rng *rand.Rand, modelSize int, p logParams) string {
	s := new(strings.Builder)
	for k := range p.NumRecords {
		share := math.Max(0, math.Min(1, p.MeanShare+0.15*rng.NormFloat64()))
		size := int(float64(modelSize) * share)
		if rng.Float64() < p.MissRate {
			fmt.Fprintf(s, "%d,%d,\n", k, size)
			continue
		}
		fmt.Fprintf(s, "%d,%d,%d\n", k, size, rng.Intn(3))
	}
	return s.String()
}

func newGeneratorCmd() *cobra.Command {
	var (
		mpsPath, logPath string
		seed             int64
		model            modelParams
		log              logParams
	)
	cmd := &cobra.Command{
		Use:          "generator",
		Short:        "Generate a random MPS model and a matching run log",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if model.NumVars <= 0 {
				return errors.New("must specify the number of variables")
			}
			if model.IntegerShare < 0 || model.IntegerShare > 1 {
				return errors.Errorf("integer share must be within [0, 1], got %v", model.IntegerShare)
			}
			if !cmd.Flags().Changed("seed") {
				seed = time.Now().UnixNano()
			}
			rng := rand.New(rand.NewSource(seed))

			if err := os.WriteFile(mpsPath, []byte(GenerateMPS(rng, model)), 0o666); err != nil {
				return errors.Wrap(err, "cannot write model")
			}
			if log.NumRecords > 0 {
				if err := os.WriteFile(logPath, []byte(GenerateLog(rng, model.NumVars, log)), 0o666); err != nil {
					return errors.Wrap(err, "cannot write log")
				}
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&mpsPath, "mps", "out.mps", "The output model file")
	f.StringVar(&logPath, "log", "out.csv", "The output log file")
	f.Int64Var(&seed, "seed", 0, "Random seed, defaults to the current time")
	f.IntVar(&model.NumVars, "vars", 0, "The number of variables")
	f.IntVar(&model.NumRows, "rows", 10, "The number of constraints")
	f.Float64Var(&model.IntegerShare, "int", 0.5, "The share of integer variables")
	f.Float64Var(&model.MeanDensity, "meand", 0.2, "The mean constraint density of a variable")
	f.IntVar(&log.NumRecords, "records", 0, "The number of log records, 0 for no log")
	f.Float64Var(&log.MeanShare, "share", 0.3, "The mean sub-model size relative to the model")
	f.Float64Var(&log.MissRate, "miss", 0.1, "The share of records without a status")
	return cmd
}

func main() {
	if err := newGeneratorCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
