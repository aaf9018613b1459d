package inliner

import (
	"context"
	"log/slog"

	"github.com/aretw0/exinc/internal/logging"
	"github.com/aretw0/exinc/pkg/adapters/osfs"
	"github.com/aretw0/exinc/pkg/domain"
	"github.com/aretw0/exinc/pkg/ports"
)

// Inliner creates expansion runs. It holds no per-run state.
type Inliner struct {
	fs     ports.SourceFS
	logger *slog.Logger
	hooks  domain.Hooks

	confined bool
	roots    []string
}

// Option defines a functional option for configuring the Inliner.
type Option func(*Inliner)

// WithFS sets the file access used to resolve and read includes (default: the OS filesystem).
func WithFS(fs ports.SourceFS) Option {
	return func(in *Inliner) {
		in.fs = fs
	}
}

// WithLogger sets a structured logger. Runs log at debug level only.
func WithLogger(logger *slog.Logger) Option {
	return func(in *Inliner) {
		in.logger = logger
	}
}

// WithHooks registers observability hooks, merged with any registered before.
func WithHooks(hooks domain.Hooks) Option {
	return func(in *Inliner) {
		in.hooks = in.hooks.Merge(hooks)
	}
}

// New creates an Inliner.
func New(opts ...Option) *Inliner {
	in := &Inliner{}
	for _, opt := range opts {
		opt(in)
	}
	if in.fs == nil {
		in.fs = osfs.New()
	}
	if in.logger == nil {
		in.logger = logging.NewNop()
	}
	if in.confined {
		in.roots = canonicalRoots(in.fs, in.roots)
	}
	return in
}

// NewRun starts a fresh run searching paths in order. The slice is copied.
func (in *Inliner) NewRun(paths []string) *Run {
	return &Run{
		fs:       in.fs,
		logger:   in.logger,
		hooks:    in.hooks,
		confined: in.confined,
		roots:    in.roots,
		paths:    append([]string(nil), paths...),
		seen:     make(map[string]struct{}),
		active:   make(map[string]struct{}),
	}
}

// Expand runs a complete expansion of text and returns its Result.
func (in *Inliner) Expand(ctx context.Context, text, parent string, paths []string) domain.Result {
	run := in.NewRun(paths)
	run.Expand(ctx, text, parent)
	return run.Result()
}

// Preprocessor adapts the Inliner to ports.Preprocessor with a fixed set of search paths.
type Preprocessor struct {
	inliner *Inliner
	paths   []string
}

var _ ports.Preprocessor = (*Preprocessor)(nil)

// NewPreprocessor binds the inliner to the search paths every expansion starts from.
func NewPreprocessor(in *Inliner, paths []string) *Preprocessor {
	return &Preprocessor{
		inliner: in,
		paths:   append([]string(nil), paths...),
	}
}

// Name implements ports.Preprocessor.
func (p *Preprocessor) Name() string {
	return domain.PreprocessorInliner
}

// Expand implements ports.Preprocessor. Each call is an independent run.
func (p *Preprocessor) Expand(ctx context.Context, text, parent string) domain.Result {
	return p.inliner.Expand(ctx, text, parent, p.paths)
}
