package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/exinc/internal/config"
	"github.com/aretw0/exinc/internal/logging"
	"github.com/aretw0/exinc/pkg/domain"
	"golang.org/x/term"
)

// ErrReported means the failure was already written to stderr; only the exit code is left.
var ErrReported = errors.New("failure already reported")

var (
	errOutputNeedsInput  = errors.New("empty output requires an input file")
	errOutputDirNotFound = errors.New("output directory not found")
	errOutputUnwritable  = errors.New("output file not writable")
	errWatchNeedsInput   = errors.New("watch requires an input file")
)

// messages are the lines printed for user errors, in the wording users know.
var messages = []struct {
	err error
	msg string
}{
	{domain.ErrInputNotFound, "Input file could not be found"},
	{domain.ErrInputUnreadable, "Input file could not be read [IO issue]"},
	{errOutputNeedsInput, "An input file must be provided if an empty output file is given."},
	{errOutputDirNotFound, "Output directory was not found"},
	{errOutputUnwritable, "Output file could not be written"},
	{errWatchNeedsInput, "An input file must be provided to watch for changes."},
}

// Message returns the line to print for err.
func Message(err error) string {
	for _, m := range messages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	return err.Error()
}

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// createLogger configures the application logger.
// Logs go to stderr, and only in debug mode, so stdout carries nothing but the document.
func createLogger(debug bool, w io.Writer) *slog.Logger {
	if debug {
		return logging.New(logging.Options{Level: slog.LevelDebug, Output: w})
	}
	return logging.NewNop()
}

// printSystemMessage prints a standardized system message to w.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r any) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// LoadConfig bootstraps and loads the configuration, from path or the default location.
func LoadConfig(path string, notices io.Writer) (*config.Config, error) {
	if path == "" {
		var err error
		if path, err = config.Path(); err != nil {
			return nil, err
		}
	}
	return config.Bootstrap(path, notices)
}
