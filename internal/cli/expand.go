package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aretw0/exinc"
	"github.com/aretw0/exinc/internal/config"
	"github.com/aretw0/exinc/internal/presentation/tui"
	"github.com/aretw0/exinc/pkg/adapters/process"
	"github.com/aretw0/exinc/pkg/domain"
	"github.com/aretw0/exinc/pkg/observability"
)

// Execute runs one expansion (or compilation) as described by opts.
// Diagnostics and failed steps are printed to the error stream and reported as ErrReported.
func Execute(ctx context.Context, opts Options, s Streams) error {
	logger := createLogger(opts.Debug, s.Err)
	cfg, err := LoadConfig(opts.ConfigPath, s.Err)
	if err != nil {
		return err
	}
	_, err = expand(ctx, opts, s, cfg, logger)
	return err
}

// pass is what one expansion touched.
type pass struct {
	files   []string // canonical paths of the inlined files
	missing []string // absolute paths where a missing include would be found next time
}

// expand performs a single pass.
func expand(ctx context.Context, opts Options, s Streams, cfg *config.Config, logger *slog.Logger) (pass, error) {
	var p pass
	if opts.DeriveOutput && opts.Input == "" {
		return p, errOutputNeedsInput
	}

	text, err := readInput(opts.Input, s)
	if err != nil {
		return p, err
	}

	var missing []string
	engineOpts := []exinc.Option{
		exinc.WithConfig(cfg),
		exinc.WithLogger(logger),
		exinc.WithPaths(opts.Paths...),
		exinc.WithHooks(domain.Hooks{
			OnFileEnter: func(_ context.Context, ev *domain.FileEvent) {
				p.files = append(p.files, ev.Path)
			},
			OnDiagnostic: func(_ context.Context, d domain.Diagnostic) {
				if d.Kind == domain.KindNotFound {
					missing = append(missing, d.File)
				}
			},
		}.Merge(observability.LogHooks(logger))),
	}
	if opts.Input != "" {
		dir, err := filepath.Abs(filepath.Dir(opts.Input))
		if err != nil {
			return p, err
		}
		engineOpts = append(engineOpts, exinc.WithFilename(opts.Input), exinc.WithPaths(dir))
	}
	if opts.Caide {
		engineOpts = append(engineOpts, exinc.WithPreprocessor(domain.PreprocessorCaide))
	}

	engine, err := exinc.New(text, engineOpts...)
	if err != nil {
		return p, err
	}
	logger.Debug("Expansion started", "parent", engine.Parent(), "paths", engine.Paths(), "preprocessor", engine.Preprocessor().Name())

	var res domain.Result
	if opts.Compile != "" {
		extra, err := process.SplitCommand(opts.Flags)
		if err != nil {
			return p, fmt.Errorf("invalid compiler flags: %w", err)
		}
		flags := append(append([]string{}, cfg.DefaultFlags...), extra...)
		res = engine.Compile(ctx, flags, opts.Compile, "")
	} else {
		res = engine.Run(ctx)
	}

	p.missing = missingCandidates(missing, engine.Paths(), p.files)

	if res.HasErrors() {
		tui.NewReportPrinter(s.Err).Print(res)
		return p, ErrReported
	}
	return p, writeOutput(opts, s.Out, res.Output)
}

// missingCandidates joins every name with every directory the run searched: the
// engine paths and the directories of the inlined files.
func missingCandidates(names, paths, files []string) []string {
	if len(names) == 0 {
		return nil
	}
	dirs := slices.Clone(paths)
	for _, f := range files {
		dirs = append(dirs, filepath.Dir(f))
	}

	var out []string
	seen := make(map[string]struct{})
	for _, name := range names {
		for _, dir := range dirs {
			candidate := name
			if !filepath.IsAbs(name) {
				candidate = filepath.Join(dir, name)
			}
			if abs, err := filepath.Abs(candidate); err == nil {
				candidate = abs
			}
			if _, ok := seen[candidate]; ok {
				continue
			}
			seen[candidate] = struct{}{}
			out = append(out, candidate)
		}
	}
	return out
}

// readInput returns the root document, from the input file or from stdin.
func readInput(path string, s Streams) (string, error) {
	if path == "" {
		if isTerminal(s.In) {
			printSystemMessage(s.Err, "Reading from stdin, end with Ctrl-D.")
		}
		data, err := io.ReadAll(s.In)
		if err != nil {
			return "", fmt.Errorf("%w: %w", domain.ErrInputUnreadable, err)
		}
		return string(data), nil
	}

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s", domain.ErrInputNotFound, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrInputUnreadable, err)
	}
	return string(data), nil
}

// writeOutput sends text to stdout, to the derived path or to the -o file.
func writeOutput(opts Options, stdout io.Writer, text string) error {
	target := opts.Output
	if opts.DeriveOutput {
		target = DerivedOutputPath(opts.Input)
	}
	if target == "" {
		_, err := io.WriteString(stdout, text)
		return err
	}

	abs, err := filepath.Abs(target)
	if err != nil {
		return fmt.Errorf("%w: %w", errOutputUnwritable, err)
	}
	if info, err := os.Stat(filepath.Dir(abs)); err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", errOutputDirNotFound, filepath.Dir(abs))
	}
	if err := os.WriteFile(abs, []byte(text), 0o644); err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return fmt.Errorf("%w: permission denied", errOutputUnwritable)
		}
		return fmt.Errorf("%w: %w", errOutputUnwritable, err)
	}
	return nil
}

// DerivedOutputPath returns the file written by a bare -o: <stem>.pre<ext> beside input.
// An input without extension yields <name>.pre.
func DerivedOutputPath(input string) string {
	base := filepath.Base(input)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(filepath.Dir(input), stem+".pre"+ext)
}
