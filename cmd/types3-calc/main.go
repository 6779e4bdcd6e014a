// Command types3-calc is the standalone density-curve tool: it reads
// canonical numeric Samples directly (not raw ISamples) and runs
// internal/denscalc's Monte-Carlo type-accumulation trace, writing the
// resulting density.Sums document.
package main

import (
	"fmt"
	"os"

	"types3go/cmd/types3-calc/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
