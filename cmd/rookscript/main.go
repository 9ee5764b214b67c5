// Command rookscript is the minimal embedder demo for the RookScript
// engine (SPEC_FULL.md §A): a Cobra CLI exercising the Builder's public
// API.
package main

import (
	"fmt"
	"os"

	"github.com/blackrooksoftware/rookscript/cmd/rookscript/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
