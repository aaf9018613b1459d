package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/exinc/internal/cli"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// bare marks an optional-value flag given without a value.
const bare = "\x00bare"

// defaultBinary is what -c builds when no name is given.
const defaultBinary = "a.out"

var rootCmd = &cobra.Command{
	Use:   "exinc [flags]",
	Short: "exinc expands #include directives into a single self-contained file",
	Long: `exinc reads a C++ document (from -i or stdin), inlines every
#include "file" it can resolve against the search paths and writes
the flattened document to stdout or to the -o file.

Each file is inlined at most once. Missing files, unreadable files and
include cycles are all reported together and nothing is written.`,
	Example: `  exinc -i main.cpp > submit.cpp
  exinc -i main.cpp -o           # writes main.pre.cpp
  exinc -i main.cpp -p ~/lib -c  # also checks it compiles to a.out
  cat main.cpp | exinc -p ~/lib`,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := expandOptions(cmd)

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		streams := cli.Streams{In: cmd.InOrStdin(), Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr()}
		if opts.Watch {
			return cli.RunWatch(ctx, opts, streams)
		}
		return cli.Execute(ctx, opts, streams)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	rootCmd.SetArgs(attachOptionalValues(os.Args[1:]))
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, cli.ErrReported) {
			fmt.Fprintln(os.Stderr, cli.Message(err))
		}
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	addGlobalFlags(rootCmd.PersistentFlags())
	addExpandFlags(rootCmd.Flags())
}

func addGlobalFlags(f *pflag.FlagSet) {
	f.String("config", "", "Configuration file (default $EXINC_CONFIG or ~/.exinc.yaml)")
	f.Bool("debug", false, "Write debug logs to stderr")
}

func addExpandFlags(f *pflag.FlagSet) {
	f.StringP("input", "i", "", "Input C++ file (default stdin)")
	f.StringP("output", "o", "", "Output file; given without a value writes <input>.pre<ext>")
	f.Lookup("output").NoOptDefVal = bare
	f.StringSliceP("path", "p", nil, "Include search paths, searched in order (repeatable)")
	f.StringP("compile", "c", "", "Also compile the result; given without a value builds "+defaultBinary)
	f.Lookup("compile").NoOptDefVal = bare
	f.Bool("caide", false, "Use the caide optimizer instead of the built-in inliner")
	f.String("flags", "", "Compiler flags appended to the configured ones")
	f.BoolP("watch", "w", false, "Expand again whenever the input or an inlined file changes")
}

// optionalValue lists the flags whose value is optional.
var optionalValue = map[string]bool{"-o": true, "--output": true, "-c": true, "--compile": true}

// attachOptionalValues rewrites "-o out.cpp" as "-o=out.cpp" so the value is not
// taken for a positional argument. A following token that starts with "-" is a flag,
// which leaves the option bare.
func attachOptionalValues(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			return append(out, args[i:]...)
		}
		if optionalValue[a] && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, a+"="+args[i+1])
			i++
			continue
		}
		out = append(out, a)
	}
	return out
}

// expandOptions collects the root flags.
func expandOptions(cmd *cobra.Command) cli.Options {
	f := cmd.Flags()
	input, _ := f.GetString("input")
	output, _ := f.GetString("output")
	paths, _ := f.GetStringSlice("path")
	compile, _ := f.GetString("compile")
	caide, _ := f.GetBool("caide")
	flags, _ := f.GetString("flags")
	watch, _ := f.GetBool("watch")
	debug, _ := f.GetBool("debug")
	configPath, _ := f.GetString("config")

	opts := cli.Options{
		Input:      input,
		Output:     output,
		Paths:      paths,
		Compile:    compile,
		Caide:      caide,
		Flags:      flags,
		Watch:      watch,
		Debug:      debug,
		ConfigPath: configPath,
	}
	if output == bare {
		opts.Output = ""
		opts.DeriveOutput = true
	}
	if compile == bare {
		opts.Compile = defaultBinary
	}
	return opts
}
