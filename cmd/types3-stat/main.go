// Command types3-stat is the driver's CLI entry point: reads a JSON
// corpus, slices it into curves x periods, runs the Monte-Carlo
// average-at-limit and compare-with-points reducers over every subset,
// and writes the assembled Output document.
package main

import (
	"fmt"
	"os"

	"types3go/cmd/types3-stat/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
