package exinc

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/exinc/internal/compiler"
	"github.com/aretw0/exinc/internal/config"
	"github.com/aretw0/exinc/internal/logging"
	"github.com/aretw0/exinc/pkg/adapters/caide"
	"github.com/aretw0/exinc/pkg/adapters/osfs"
	"github.com/aretw0/exinc/pkg/adapters/process"
	"github.com/aretw0/exinc/pkg/domain"
	"github.com/aretw0/exinc/pkg/inliner"
	"github.com/aretw0/exinc/pkg/ports"
)

// Engine is the high-level entry point for the exinc library.
// It binds one root document to its search paths and preprocessor.
type Engine struct {
	text         string
	filename     string
	paths        []string
	cfg          *config.Config
	preprocessor string
	logger       *slog.Logger
	hooks        domain.Hooks
	fs           ports.SourceFS
	runner       *process.Runner
	tempDir      string
	confined     bool
	roots        []string

	backend ports.Preprocessor
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithFilename sets the file the text was read from. Without it the document is
// anonymous and directives are reported against "root_file".
func WithFilename(name string) Option {
	return func(e *Engine) {
		e.filename = name
	}
}

// WithPaths sets the caller search paths, searched before the configured defaults.
func WithPaths(paths ...string) Option {
	return func(e *Engine) {
		e.paths = append(e.paths, paths...)
	}
}

// WithConfig sets the configuration (default: config.Default()).
func WithConfig(cfg *config.Config) Option {
	return func(e *Engine) {
		e.cfg = cfg
	}
}

// WithPreprocessor selects the expansion backend by name ("inliner" or "caide").
func WithPreprocessor(name string) Option {
	return func(e *Engine) {
		e.preprocessor = name
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithHooks registers observability hooks on the inliner.
func WithHooks(hooks domain.Hooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithFS sets the file access used by the inliner (default: the OS filesystem).
func WithFS(fs ports.SourceFS) Option {
	return func(e *Engine) {
		e.fs = fs
	}
}

// WithRunner sets the process runner used for compilation and caide.
func WithRunner(runner *process.Runner) Option {
	return func(e *Engine) {
		e.runner = runner
	}
}

// WithTempDir sets where Compile writes the expanded source (default: os.TempDir()).
func WithTempDir(dir string) Option {
	return func(e *Engine) {
		e.tempDir = dir
	}
}

// WithRoots confines the engine to files below roots and the configured default
// paths. Caller paths must lie inside them, absolute include names are not
// resolved, and only the inliner preprocessor is allowed.
func WithRoots(roots ...string) Option {
	return func(e *Engine) {
		e.confined = true
		e.roots = append(e.roots, roots...)
	}
}

// New initializes an Engine for text.
// Caller paths that are not directories are dropped and the configured default
// paths are appended. A confined engine fails with domain.ErrPathOutsideRoots
// when a caller path leaves its roots.
func New(text string, opts ...Option) (*Engine, error) {
	eng := &Engine{text: text, preprocessor: domain.PreprocessorInliner}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.cfg == nil {
		eng.cfg = config.Default()
	}
	if eng.fs == nil {
		eng.fs = osfs.New()
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.runner == nil {
		eng.runner = process.NewRunner(process.WithLogger(eng.logger))
	}

	if eng.confined {
		eng.roots = append(eng.roots, eng.cfg.DefaultPaths...)
	}

	paths := make([]string, 0, len(eng.paths)+len(eng.cfg.DefaultPaths))
	for _, p := range eng.paths {
		if eng.confined && !inliner.Within(eng.fs, eng.roots, p) {
			return nil, fmt.Errorf("%w: %s", domain.ErrPathOutsideRoots, p)
		}
		if eng.fs.IsDir(p) {
			paths = append(paths, p)
		} else {
			eng.logger.Debug("Search path dropped", "path", p)
		}
	}
	eng.paths = append(paths, eng.cfg.DefaultPaths...)

	backend, err := eng.newBackend()
	if err != nil {
		return nil, err
	}
	eng.backend = backend
	return eng, nil
}

func (e *Engine) newBackend() (ports.Preprocessor, error) {
	switch e.preprocessor {
	case domain.PreprocessorInliner:
		opts := []inliner.Option{
			inliner.WithFS(e.fs),
			inliner.WithLogger(e.logger),
			inliner.WithHooks(e.hooks),
		}
		if e.confined {
			opts = append(opts, inliner.WithRoots(e.roots...))
		}
		in := inliner.New(opts...)
		return inliner.NewPreprocessor(in, e.paths), nil
	case domain.PreprocessorCaide:
		if e.confined {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnconfinable, e.preprocessor)
		}
		cwd := ""
		if e.filename != "" {
			cwd = filepath.Dir(e.filename)
		}
		return caide.New(caide.Options{
			CmdPath:       e.cfg.Caide.CmdPath,
			ClangIncludes: e.cfg.Caide.ClangIncludes,
			ClangOptions:  append(append([]string(nil), e.cfg.DefaultFlags...), e.cfg.Caide.Options...),
			Paths:         e.paths,
			Cwd:           cwd,
		}, e.runner, e.logger)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownPreprocessor, e.preprocessor)
	}
}

// Parent returns the name directives of the root document are reported against.
func (e *Engine) Parent() string {
	if e.filename == "" {
		return domain.RootParent
	}
	return filepath.Base(e.filename)
}

// Paths returns the effective search paths.
func (e *Engine) Paths() []string {
	return append([]string(nil), e.paths...)
}

// Preprocessor returns the backend performing expansions.
func (e *Engine) Preprocessor() ports.Preprocessor {
	return e.backend
}

// Run expands the document.
func (e *Engine) Run(ctx context.Context) domain.Result {
	return e.backend.Expand(ctx, e.text, e.Parent())
}

// Compile expands the document and checks that the result compiles.
// A nil flags uses the configured default flags. An empty output leaves the binary
// in the temporary directory. The compiler runs in cwd.
func (e *Engine) Compile(ctx context.Context, flags []string, output, cwd string) domain.Result {
	if flags == nil {
		flags = e.cfg.DefaultFlags
	}
	return compiler.New(e.runner, e.logger).Compile(ctx, compiler.Request{
		Text:         e.text,
		Input:        e.filename,
		Parent:       e.Parent(),
		Paths:        e.paths,
		Compiler:     e.cfg.Compiler,
		Flags:        flags,
		Output:       output,
		Dir:          cwd,
		TempDir:      e.tempDir,
		Preprocessor: e.backend,
	})
}
