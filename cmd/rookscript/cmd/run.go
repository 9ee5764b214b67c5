package cmd

import (
	"fmt"
	"os"

	"github.com/blackrooksoftware/rookscript/cmd/rookscript/config"
	"github.com/blackrooksoftware/rookscript/internal/builder"
	"github.com/blackrooksoftware/rookscript/internal/builtins/corelib"
	"github.com/blackrooksoftware/rookscript/internal/builtins/iolib"
	"github.com/blackrooksoftware/rookscript/internal/builtins/jsonlib"
	"github.com/blackrooksoftware/rookscript/internal/env"
	"github.com/blackrooksoftware/rookscript/internal/resolver"
	"github.com/blackrooksoftware/rookscript/internal/value"
	"github.com/spf13/cobra"
)

var (
	evalExpr   string
	entryName  string
	configPath string
)

var runCmd = &cobra.Command{
	Use:   "run [file] [args...]",
	Short: "Compile and run a RookScript file or expression",
	Long: `Compile a RookScript program and call one of its entries.

Examples:
  # Run a script file's main entry
  rookscript run script.rook

  # Evaluate inline source
  rookscript run -e "main() { return 1 + 2; }"

  # Call a specific entry with arguments
  rookscript run --entry greet script.rook World`,
	Args: cobra.MinimumNArgs(0),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline source instead of reading from file")
	runCmd.Flags().StringVar(&entryName, "entry", "main", "entry to call after compiling")
	runCmd.Flags().StringVar(&configPath, "config", "", "optional engine configuration file (YAML)")
}

func runScript(_ *cobra.Command, args []string) error {
	var source, filename string
	var entryArgs []string

	switch {
	case evalExpr != "":
		source = evalExpr
		filename = "<eval>"
		entryArgs = args
	case len(args) >= 1:
		filename = args[0]
		content, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", filename, err)
		}
		source = string(content)
		entryArgs = args[1:]
	default:
		return fmt.Errorf("either provide a file path or use -e for inline source")
	}

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config %s: %w", configPath, err)
		}
		cfg = loaded
	}

	b := builder.New().
		WithSource(source).
		WithFilename(filename).
		WithStackSizes(cfg.ValueStackSize, cfg.ActivationStackSize).
		WithRunawayLimit(cfg.RunawayLimit).
		WithEnvironment(env.New(os.Stdin, os.Stdout, os.Stderr))

	for _, r := range bundlesFor(cfg.Bundles) {
		b = b.WithHostResolver(r)
	}

	inst, err := b.Build()
	if err != nil {
		return fmt.Errorf("compile error: %w", err)
	}

	values := make([]value.Value, len(entryArgs))
	for i, a := range entryArgs {
		values[i] = value.NewString(a)
	}

	result, err := inst.Call(entryName, values...)
	if err != nil {
		return fmt.Errorf("execution error: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "commands executed: %d\n", inst.CommandsExecuted())
	}
	fmt.Println(result.AsString())
	return nil
}

// bundlesFor resolves the configured bundle names to their registries,
// matching SPEC_FULL.md §C.3/§C.4's two illustrative host-function
// bundles plus the JSON demo bundle from §B.
func bundlesFor(names []string) []resolver.HostFunctionResolver {
	var out []resolver.HostFunctionResolver
	for _, name := range names {
		switch name {
		case "corelib":
			out = append(out, corelib.New())
		case "jsonlib":
			out = append(out, jsonlib.New())
		case "iolib":
			out = append(out, iolib.New())
		}
	}
	return out
}
