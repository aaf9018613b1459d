package cli

import (
	"io"
	"os"
)

// Options contains all the configuration for an expansion from the command line.
type Options struct {
	// Input is the root file. Empty reads stdin.
	Input string
	// Output is the destination file. Empty writes stdout unless DeriveOutput is set.
	Output string
	// DeriveOutput writes <stem>.pre<ext> beside the input (bare -o).
	DeriveOutput bool
	// Paths are extra search paths, searched before the configured defaults.
	Paths []string
	// Compile is the binary to build. Empty skips compilation.
	Compile string
	// Caide selects the caide preprocessor.
	Caide bool
	// Flags are extra compiler flags, appended to the configured ones.
	Flags string
	// Watch re-expands whenever the root or an inlined file changes.
	Watch bool
	// Debug enables structured logs on stderr.
	Debug bool
	// ConfigPath overrides the configuration file location.
	ConfigPath string
}

// Streams are the standard streams of a command.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdStreams returns the process standard streams.
func StdStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}
