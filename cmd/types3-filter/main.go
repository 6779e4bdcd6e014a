// Command types3-filter is the interactive restriction editor: it walks
// the operator through stacking keep/remove restrictions over a
// corpus's metadata, then saves the filtered result.
package main

import (
	"fmt"
	"os"

	"types3go/cmd/types3-filter/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
