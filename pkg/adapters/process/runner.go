package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/aretw0/exinc/internal/logging"
)

// Command describes one external process invocation.
type Command struct {
	Path  string
	Args  []string
	Dir   string    // Overrides the runner's base directory when set
	Stdin io.Reader // Nil means no input
}

// String renders the command line for logs and error messages.
func (c Command) String() string {
	return strings.Join(append([]string{c.Path}, c.Args...), " ")
}

// Result is what a finished process produced.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports whether the process exited with status 0.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Runner executes local processes, capturing their output.
type Runner struct {
	baseDir string
	env     []string
	logger  *slog.Logger
}

// RunnerOption configures the runner.
type RunnerOption func(*Runner)

// WithBaseDir sets the working directory for executed processes.
func WithBaseDir(dir string) RunnerOption {
	return func(r *Runner) {
		r.baseDir = dir
	}
}

// WithEnv appends KEY=VALUE entries to the inherited environment.
func WithEnv(env ...string) RunnerOption {
	return func(r *Runner) {
		r.env = append(r.env, env...)
	}
}

// WithLogger sets the logger used to trace executions.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner creates a new process Runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logging.NewNop()
	}
	return r
}

// Run executes cmd and waits for it.
// A non-zero exit is reported through Result.ExitCode, not as an error; the error
// is reserved for processes that could not be started or were cancelled.
func (r *Runner) Run(ctx context.Context, cmd Command) (Result, error) {
	c := exec.CommandContext(ctx, cmd.Path, cmd.Args...)
	c.Dir = r.baseDir
	if cmd.Dir != "" {
		c.Dir = cmd.Dir
	}
	if len(r.env) > 0 {
		c.Env = append(c.Environ(), r.env...)
	}
	c.Stdin = cmd.Stdin

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	r.logger.Debug("Process start", "cmd", cmd.String(), "dir", c.Dir)
	err := c.Run()

	result := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case ctx.Err() != nil:
		return result, fmt.Errorf("%s: %w", cmd.Path, ctx.Err())
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	default:
		return result, fmt.Errorf("failed to run %s: %w", cmd.Path, err)
	}

	r.logger.Debug("Process done", "cmd", cmd.Path, "exit_code", result.ExitCode)
	return result, nil
}
