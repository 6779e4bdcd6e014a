// Package commands wires the cobra.Command surface for types3-stat: the
// full Monte-Carlo driver exposed as flags (category/measures/iter/
// restrictions) alongside the period-slicing knobs (offset/start/end/
// window/step).
package commands

import (
	"github.com/spf13/cobra"

	"types3go/internal/categories"
	"types3go/internal/driver"
	"types3go/internal/jsonio"
	"types3go/internal/logging"
	"types3go/internal/output"
	"types3go/internal/sample"
)

var flags struct {
	offset          int32
	start           int32
	end             int32
	window          int32
	step            int32
	errorFile       string
	compact         bool
	verbosity       int
	category        string
	measureY        string
	measureX        string
	iter            uint64
	restrictSamples string
	restrictTokens  string
	markTokens      string
	splitSamples    bool
}

var rootCmd = &cobra.Command{
	Use:   "types3-stat infile outfile",
	Short: "Estimate and compare type-accumulation curves across periods and categories",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		err := run(args[0], args[1])
		if err != nil && flags.errorFile != "" {
			if werr := jsonio.WriteErrorFile(flags.errorFile, err); werr != nil {
				return werr
			}
		}
		return err
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	f := rootCmd.Flags()
	f.Int32Var(&flags.offset, "offset", 0, "starting offset")
	f.Int32Var(&flags.start, "start", 0, "starting year (default: earliest year in data)")
	f.Int32Var(&flags.end, "end", 9999, "ending year (inclusive)")
	f.Int32Var(&flags.window, "window", 0, "window length in years")
	f.Int32Var(&flags.step, "step", 0, "step length in years")
	f.StringVar(&flags.errorFile, "error-file", "", "report errors as a JSON file")
	f.BoolVar(&flags.compact, "compact", false, "produce compact JSON output")
	f.CountVarP(&flags.verbosity, "verbose", "v", "increase verbosity (-v, -vv)")
	f.StringVar(&flags.category, "category", "", "metadata key to split curves by")
	f.StringVar(&flags.measureY, "measure-y", "types", "Y-axis measure: types, tokens, hapaxes, samples, marked_types")
	f.StringVar(&flags.measureX, "measure-x", "tokens", "X-axis measure: tokens, words")
	f.Uint64Var(&flags.iter, "iter", 10000, "number of Monte-Carlo iterations")
	f.StringVar(&flags.restrictSamples, "restrict-samples", "", "keep only samples matching key=value")
	f.StringVar(&flags.restrictTokens, "restrict-tokens", "", "keep only tokens matching key=value")
	f.StringVar(&flags.markTokens, "mark-tokens", "", "mark tokens matching key=value for the marked_types measure")
	f.BoolVar(&flags.splitSamples, "split-samples", false, "emit one sample per token (requires measure-x=tokens)")
	_ = rootCmd.MarkFlagRequired("window")
	_ = rootCmd.MarkFlagRequired("step")
}

func run(infile, outfile string) error {
	log := logging.New(logging.Verbosity(flags.verbosity))

	measureY, err := output.ParseMeasureY(flags.measureY)
	if err != nil {
		return err
	}
	measureX, err := output.ParseMeasureX(flags.measureX)
	if err != nil {
		return err
	}
	restrictSamples, err := categories.ParseRestriction(flags.restrictSamples)
	if err != nil {
		return err
	}
	restrictTokens, err := categories.ParseRestriction(flags.restrictTokens)
	if err != nil {
		return err
	}
	markTokens, err := categories.ParseRestriction(flags.markTokens)
	if err != nil {
		return err
	}

	log.Info("read: %s", infile)
	var input sample.Input
	if err := jsonio.ReadFile(infile, &input); err != nil {
		return err
	}

	args := driver.Args{
		Category:        flags.category,
		MeasureY:        measureY,
		MeasureX:        measureX,
		Iter:            flags.iter,
		Offset:          sample.Year(flags.offset),
		Window:          sample.Year(flags.window),
		Step:            sample.Year(flags.step),
		RestrictSamples: restrictSamples,
		RestrictTokens:  restrictTokens,
		MarkTokens:      markTokens,
		SplitSamples:    flags.splitSamples,
	}
	start := sample.Year(flags.start)
	args.Start = &start
	end := sample.Year(flags.end) + 1
	args.End = &end

	calc, err := driver.NewCalc(args, input.Samples, log)
	if err != nil {
		return err
	}
	out := calc.Calc()

	log.Info("write: %s", outfile)
	return jsonio.WriteFile(outfile, out, !flags.compact)
}
