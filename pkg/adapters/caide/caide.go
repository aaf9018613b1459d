// Package caide implements a ports.Preprocessor backed by the caide C++ optimizer,
// a clang tool that inlines includes and drops unused code.
package caide

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/aretw0/exinc/internal/logging"
	"github.com/aretw0/exinc/pkg/adapters/process"
	"github.com/aretw0/exinc/pkg/domain"
	"github.com/aretw0/exinc/pkg/ports"
)

const (
	inputName  = "input.cpp"
	outputName = "output.cpp"
)

// Options configures the optimizer invocation.
type Options struct {
	// CmdPath is the caide command-line tool.
	CmdPath string
	// ClangIncludes is clang's builtin include directory, passed as -isystem.
	ClangIncludes string
	// ClangOptions are placed right after the command (e.g. -std=c++11).
	ClangOptions []string
	// Paths are extra include directories, each passed as -I.
	Paths []string
	// Cwd is the directory of the root file, passed as -I (default ".").
	Cwd string
	// Lines is the number of lines of context kept by the optimizer (default 1).
	Lines int
}

// Preprocessor runs caide on a document.
type Preprocessor struct {
	opts   Options
	runner *process.Runner
	logger *slog.Logger
}

var _ ports.Preprocessor = (*Preprocessor)(nil)

// New validates opts and creates the backend.
func New(opts Options, runner *process.Runner, logger *slog.Logger) (*Preprocessor, error) {
	if fi, err := os.Stat(opts.CmdPath); err != nil || fi.IsDir() {
		return nil, errors.New("caide cmd executable is not accessible")
	}
	if fi, err := os.Stat(opts.ClangIncludes); err != nil || !fi.IsDir() {
		return nil, errors.New("clang include dir is not accessible")
	}
	if opts.Cwd == "" {
		opts.Cwd = "."
	}
	if opts.Lines <= 0 {
		opts.Lines = 1
	}
	if runner == nil {
		runner = process.NewRunner()
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Preprocessor{opts: opts, runner: runner, logger: logger}, nil
}

// Name implements ports.Preprocessor.
func (p *Preprocessor) Name() string {
	return domain.PreprocessorCaide
}

// Expand implements ports.Preprocessor. The parent name is not used by caide.
func (p *Preprocessor) Expand(ctx context.Context, text, parent string) domain.Result {
	dir, err := os.MkdirTemp("", "exinc-caide-")
	if err != nil {
		return domain.FailedStep(domain.StageCaide, err.Error())
	}
	defer os.RemoveAll(dir)

	input := filepath.Join(dir, inputName)
	output := filepath.Join(dir, outputName)
	if err := os.WriteFile(input, []byte(text), 0644); err != nil {
		return domain.FailedStep(domain.StageCaide, err.Error())
	}

	res, err := p.runner.Run(ctx, process.Command{
		Path: p.opts.CmdPath,
		Args: p.args(dir, input, output),
	})
	if err != nil {
		return domain.FailedStep(domain.StageCaide, err.Error())
	}
	if !res.Success() {
		p.logger.Debug("Caide failed", "exit_code", res.ExitCode, "parent", parent)
		return domain.FailedStep(domain.StageCaide, res.Stderr)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		return domain.FailedStep(domain.StageCaide, fmt.Sprintf("missing optimizer output: %v", err))
	}
	return domain.Succeeded(string(data))
}

func (p *Preprocessor) args(dir, input, output string) []string {
	args := append([]string(nil), p.opts.ClangOptions...)
	for _, path := range p.opts.Paths {
		args = append(args, "-I"+path)
	}
	args = append(args,
		"-I"+p.opts.Cwd,
		"-isystem"+p.opts.ClangIncludes,
		"-fcolor-diagnostics",
		"-fparse-all-comments",
		"--",
		"-l", strconv.Itoa(p.opts.Lines),
		"-d", dir,
		"-o", output,
		input,
	)
	return args
}
