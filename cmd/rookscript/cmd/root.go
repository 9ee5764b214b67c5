// Package cmd implements the rookscript command-line demo, mirroring the
// teacher's cmd/dwscript/cmd Cobra command tree (spec SPEC_FULL.md §A):
// root.go carries persistent flags and version templating, subcommands
// live in their own files.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "rookscript",
	Short: "RookScript bytecode compiler and VM",
	Long: `rookscript is a minimal embedder demo for the RookScript scripting
engine: a lexer/compiler that lowers source directly to bytecode, an
optimizer, and a stack-based VM, all reachable through the fluent
Builder in internal/builder.

This CLI is not a feature-complete script runner; it exists to exercise
the library's public API end to end.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
