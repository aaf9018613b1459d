// Package compiler checks that a document still compiles after expansion.
//
// A compilation runs up to three steps: a pre-compilation of the original file
// (inliner only), the expansion itself, and a compilation of the expanded text.
// The first failing step decides the result.
package compiler

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/exinc/internal/logging"
	"github.com/aretw0/exinc/pkg/adapters/process"
	"github.com/aretw0/exinc/pkg/domain"
	"github.com/aretw0/exinc/pkg/ports"
)

const (
	expandedName = "exinc_in.cpp"
	defaultOut   = "exinc_out"
)

// Request describes one compilation.
type Request struct {
	// Text is the root document.
	Text string
	// Input is the root file on disk. Empty when Text came from stdin.
	Input string
	// Parent is the name directives of the root document are reported against.
	Parent string
	// Paths are passed as -I to the pre-compilation step.
	Paths []string
	// Compiler is the compiler command line. Entries are split with shell quoting,
	// so ["g++ -xc++"] and ["g++", "-xc++"] are the same command.
	Compiler []string
	// Flags follow the compiler command line in both steps.
	Flags []string
	// Output is the binary to produce. Empty means <TempDir>/exinc_out.
	Output string
	// Dir is the working directory of the compiler processes.
	Dir string
	// TempDir holds the expanded source. Defaults to os.TempDir().
	TempDir string
	// Preprocessor performs the expansion.
	Preprocessor ports.Preprocessor
}

// Compiler runs compilation requests.
type Compiler struct {
	runner *process.Runner
	logger *slog.Logger
}

// New creates a Compiler. A nil runner or logger gets a default.
func New(runner *process.Runner, logger *slog.Logger) *Compiler {
	if runner == nil {
		runner = process.NewRunner()
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Compiler{runner: runner, logger: logger}
}

// Compile runs the steps of req. On success the result carries the expanded text.
func (c *Compiler) Compile(ctx context.Context, req Request) domain.Result {
	if req.Preprocessor == nil {
		return domain.FailedStep(domain.StageCompile, domain.ErrUnknownPreprocessor.Error())
	}
	command, err := process.SplitAll(req.Compiler)
	if err != nil {
		return domain.FailedStep(domain.StageCompile, err.Error())
	}
	if len(command) == 0 {
		return domain.FailedStep(domain.StageCompile, "no compiler configured")
	}

	tmp := req.TempDir
	if tmp == "" {
		tmp = os.TempDir()
	}
	expanded := filepath.Join(tmp, expandedName)

	// Both steps see the search paths, so angle-bracket includes left in the
	// expanded text still resolve.
	includes := make([]string, 0, 2*len(req.Paths))
	for _, path := range req.Paths {
		includes = append(includes, "-I", path)
	}

	if req.Preprocessor.Name() == domain.PreprocessorInliner {
		input := req.Input
		if input == "" {
			if err := os.WriteFile(expanded, []byte(req.Text), 0644); err != nil {
				return domain.FailedStep(domain.StagePrecompile, fmt.Sprintf("failed to write %s: %v", expanded, err))
			}
			input = expanded
		}
		args := append(append([]string(nil), req.Flags...), includes...)
		args = append(args, input)
		if res := c.step(ctx, domain.StagePrecompile, command, req.Dir, args); res != nil {
			return *res
		}
	}

	result := req.Preprocessor.Expand(ctx, req.Text, req.Parent)
	if result.HasErrors() {
		return result
	}

	if err := os.WriteFile(expanded, []byte(result.Output), 0644); err != nil {
		return domain.FailedStep(domain.StageCompile, fmt.Sprintf("failed to write %s: %v", expanded, err))
	}

	output := req.Output
	if output == "" {
		output = filepath.Join(tmp, defaultOut)
	}
	args := append(append([]string(nil), req.Flags...), includes...)
	args = append(args, "-o", output, expanded)
	if res := c.step(ctx, domain.StageCompile, command, req.Dir, args); res != nil {
		return *res
	}

	return result
}

// step runs the compiler with args and returns a failed result, or nil when it succeeded.
func (c *Compiler) step(ctx context.Context, stage domain.Stage, command []string, dir string, args []string) *domain.Result {
	cmd := process.Command{
		Path: command[0],
		Args: append(append([]string(nil), command[1:]...), args...),
		Dir:  dir,
	}
	c.logger.Debug("Compiler step", "stage", stage, "cmd", cmd.String())

	res, err := c.runner.Run(ctx, cmd)
	if err != nil {
		failed := domain.FailedStep(stage, err.Error())
		return &failed
	}
	if !res.Success() {
		c.logger.Debug("Compiler step failed", "stage", stage, "exit_code", res.ExitCode)
		failed := domain.FailedStep(stage, res.Stderr)
		return &failed
	}
	return nil
}
