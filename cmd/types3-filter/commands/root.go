// Package commands wires the cobra.Command surface for types3-filter: an
// interactive restriction-stack editor over a raw Input. No
// interactive-TUI prompt library is available to import here, so the
// menu/select flow is built on bufio.Scanner-driven numbered prompts
// instead.
package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"types3go/internal/errs"
	"types3go/internal/filter"
	"types3go/internal/jsonio"
	"types3go/internal/logging"
	"types3go/internal/sample"
)

var flags struct {
	errorFile string
	verbosity int
}

var rootCmd = &cobra.Command{
	Use:   "types3-filter infile outfile",
	Short: "Interactively stack keep/remove restrictions over a corpus and save the result",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		err := run(args[0], args[1], os.Stdin, os.Stdout)
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
	f.StringVar(&flags.errorFile, "error-file", "", "report errors as a JSON file")
	f.CountVarP(&flags.verbosity, "verbose", "v", "increase verbosity (-v, -vv)")
}

// session holds the editor's live state: the original samples, the
// restriction stack applied so far, and whether it has been saved since
// the last change.
type session struct {
	log          *logging.Logger
	original     []sample.ISample
	restrictions []filter.Restriction
	dirty        bool
}

func run(infile, outfile string, in io.Reader, out io.Writer) error {
	log := logging.New(logging.Verbosity(flags.verbosity))

	log.Info("read: %s", infile)
	var input sample.Input
	if err := jsonio.ReadFile(infile, &input); err != nil {
		return err
	}

	s := &session{log: log, original: input.Samples}
	scanner := bufio.NewScanner(in)

	for {
		current := filter.Apply(s.restrictions, s.original)
		nsamples, ntokens := filter.Summarize(current)
		fmt.Fprintf(out, "\n%d samples, %d tokens (%d restriction(s) applied)\n", nsamples, ntokens, len(s.restrictions))

		choices := []string{
			"Restrict tokens by metadata",
			"Restrict samples by metadata",
			"Undo last restriction",
			"Save and quit",
			"Quit without saving",
		}
		choice, err := menu(out, scanner, "Choose an action", choices)
		if err != nil {
			return err
		}

		switch choice {
		case 0:
			if err := addRestriction(out, scanner, s, current, filter.Tokens); err != nil {
				return err
			}
		case 1:
			if err := addRestriction(out, scanner, s, current, filter.Samples); err != nil {
				return err
			}
		case 2:
			if len(s.restrictions) == 0 {
				fmt.Fprintln(out, "nothing to undo")
				continue
			}
			s.restrictions = s.restrictions[:len(s.restrictions)-1]
			s.dirty = true
		case 3:
			final := filter.Apply(s.restrictions, s.original)
			log.Info("write: %s", outfile)
			if err := jsonio.WriteFile(outfile, sample.Input{Samples: final}, true); err != nil {
				return err
			}
			return nil
		case 4:
			return nil
		}
	}
}

// addRestriction walks the operator through picking a metadata key, then
// values under it, then keep-or-remove, and pushes the resulting
// restriction onto the stack.
func addRestriction(out io.Writer, scanner *bufio.Scanner, s *session, current []sample.ISample, what filter.What) error {
	keys := filter.KeyCounts(current, what)
	if len(keys) == 0 {
		fmt.Fprintln(out, "no metadata keys available")
		return nil
	}
	keyLabels := make([]string, len(keys))
	for i, k := range keys {
		keyLabels[i] = fmt.Sprintf("%s (%d)", k.Value, k.N)
	}
	ki, err := menu(out, scanner, "Choose a metadata key", keyLabels)
	if err != nil {
		return err
	}
	key := keys[ki].Value

	values := filter.ValueCounts(current, what, key)
	if len(values) == 0 {
		fmt.Fprintln(out, "no values available for that key")
		return nil
	}
	valueLabels := make([]string, len(values))
	for i, v := range values {
		valueLabels[i] = fmt.Sprintf("%s (%d)", v.Value, v.N)
	}
	selected, err := multiSelect(out, scanner, "Choose value(s) (comma-separated, e.g. 1,3)", valueLabels)
	if err != nil {
		return err
	}
	if len(selected) == 0 {
		fmt.Fprintln(out, "no values selected, restriction not applied")
		return nil
	}
	chosenValues := make([]string, len(selected))
	for i, idx := range selected {
		chosenValues[i] = values[idx].Value
	}

	how, err := menu(out, scanner, "Keep or remove matches", []string{"Keep", "Remove"})
	if err != nil {
		return err
	}
	r := filter.Restriction{
		What:      what,
		How:       filter.Keep,
		Selection: filter.Selection{Key: key, Values: chosenValues},
	}
	if how == 1 {
		r.How = filter.Remove
	}
	s.restrictions = append(s.restrictions, r)
	s.dirty = true
	return nil
}

// menu prints a numbered list of choices and reads one selection,
// returning its zero-based index.
func menu(out io.Writer, scanner *bufio.Scanner, prompt string, choices []string) (int, error) {
	fmt.Fprintln(out, prompt+":")
	for i, c := range choices {
		fmt.Fprintf(out, "  %d) %s\n", i+1, c)
	}
	fmt.Fprint(out, "> ")
	line, err := readLine(scanner)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || n < 1 || n > len(choices) {
		return 0, errs.NewInvalidInput("expected a number between 1 and %d, got %q", len(choices), line)
	}
	return n - 1, nil
}

// multiSelect reads a comma-separated list of 1-based indices into
// choices and returns the matching zero-based indices.
func multiSelect(out io.Writer, scanner *bufio.Scanner, prompt string, choices []string) ([]int, error) {
	fmt.Fprintln(out, prompt+":")
	for i, c := range choices {
		fmt.Fprintf(out, "  %d) %s\n", i+1, c)
	}
	fmt.Fprint(out, "> ")
	line, err := readLine(scanner)
	if err != nil {
		return nil, err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, nil
	}
	parts := strings.Split(line, ",")
	out2 := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 1 || n > len(choices) {
			return nil, errs.NewInvalidInput("expected numbers between 1 and %d, got %q", len(choices), line)
		}
		out2 = append(out2, n-1)
	}
	return out2, nil
}

func readLine(scanner *bufio.Scanner) (string, error) {
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", err
		}
		return "", errs.NewInvalidInput("unexpected end of input")
	}
	return scanner.Text(), nil
}
