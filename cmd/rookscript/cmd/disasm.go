package cmd

import (
	"fmt"
	"os"

	"github.com/blackrooksoftware/rookscript/internal/bytecode"
	"github.com/blackrooksoftware/rookscript/internal/compiler"
	"github.com/blackrooksoftware/rookscript/internal/optimizer"
	"github.com/spf13/cobra"
)

var disasmEval string

var disasmCmd = &cobra.Command{
	Use:   "disasm [file]",
	Short: "Compile a RookScript file and print its disassembly",
	Long: `Compile and optimize a RookScript program, then render it in the
diagnostic disassembly text format of spec §6.4 (one label per line, one
indented command per line). Disassembly is deterministic for a given
source, which makes it suitable for golden-file comparisons.`,
	Args: cobra.MaximumNArgs(1),
	RunE: disasmScript,
}

func init() {
	rootCmd.AddCommand(disasmCmd)
	disasmCmd.Flags().StringVarP(&disasmEval, "eval", "e", "", "disassemble inline source instead of reading from file")
}

func disasmScript(_ *cobra.Command, args []string) error {
	var source, filename string
	switch {
	case disasmEval != "":
		source, filename = disasmEval, "<eval>"
	case len(args) == 1:
		filename = args[0]
		content, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", filename, err)
		}
		source = string(content)
	default:
		return fmt.Errorf("either provide a file path or use -e for inline source")
	}

	compiled, err := compiler.Compile(source, compiler.WithFilename(filename))
	if err != nil {
		return fmt.Errorf("compile error: %w", err)
	}
	script := optimizer.Optimize(compiled)
	fmt.Print(bytecode.Disassemble(script))
	return nil
}
