// Package commands wires the cobra.Command surface for types3-calc:
// iter, infile, outfile, a pretty flag, and a verbosity flag.
package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"types3go/internal/denscalc"
	"types3go/internal/errs"
	"types3go/internal/jsonio"
	"types3go/internal/logging"
	"types3go/internal/sample"
)

var flags struct {
	pretty    bool
	verbosity int
}

var rootCmd = &cobra.Command{
	Use:   "types3-calc iter infile outfile",
	Short: "Trace Monte-Carlo type-accumulation curves into a density grid",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(args[0], args[1], args[2])
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	f := rootCmd.Flags()
	f.BoolVarP(&flags.pretty, "pretty", "p", false, "pretty-print the output JSON")
	f.CountVarP(&flags.verbosity, "verbose", "v", "increase verbosity (-v, -vv)")
}

func run(iterArg, infile, outfile string) error {
	log := logging.New(logging.Verbosity(flags.verbosity))

	iter, err := parseIter(iterArg)
	if err != nil {
		return err
	}

	log.Info("read: %s", infile)
	var samples []sample.Sample
	if err := jsonio.ReadFile(infile, &samples); err != nil {
		return err
	}

	sums, effIter := denscalc.Count(samples, iter)
	log.Info("finished: %d iterations, %d result points", effIter, sums.TotalPoints())

	log.Info("write: %s", outfile)
	return jsonio.WriteFile(outfile, sums, flags.pretty)
}

func parseIter(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errs.NewInvalidArgument("iter must be a non-negative integer, got %q", s)
	}
	return n, nil
}
