package inliner

import (
	"context"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aretw0/exinc/pkg/domain"
	"github.com/aretw0/exinc/pkg/ports"
)

// Run is the traversal context of one expansion.
// Paths, seen and active only grow or shrink through Expand; nothing is shared between runs.
type Run struct {
	fs     ports.SourceFS
	logger *slog.Logger
	hooks  domain.Hooks

	confined bool
	roots    []string

	paths  []string
	seen   map[string]struct{}
	active map[string]struct{}
	files  []string
	depth  int

	out   strings.Builder
	diags domain.Diagnostics
}

// Expand processes text line by line, appending to the run output.
// Include directives are replaced by the expansion of the referenced file.
// Problems are recorded as diagnostics and never stop the scan.
func (r *Run) Expand(ctx context.Context, text, parent string) {
	for i, line := range splitLines(text) {
		name, ok := parseDirective(line)
		if !ok {
			r.out.WriteString(line)
			r.out.WriteByte('\n')
			continue
		}
		r.include(ctx, name, i+1, parent)
	}
}

// include resolves one directive found on line of parent and splices its expansion.
func (r *Run) include(ctx context.Context, name string, line int, parent string) {
	found, ok := r.resolve(name)
	if !ok {
		r.report(ctx, domain.Diagnostic{Kind: domain.KindNotFound, File: name, Line: line, Parent: parent})
		return
	}

	path, err := r.fs.Canonical(found)
	if err != nil {
		r.report(ctx, domain.Diagnostic{Kind: domain.KindUnreadable, File: name, Line: line, Parent: parent, Cause: err})
		return
	}

	if r.confined && !within(r.roots, path) {
		r.logger.Debug("Include outside roots", "file", name, "path", path, "parent", parent, "line", line)
		r.report(ctx, domain.Diagnostic{Kind: domain.KindNotFound, File: name, Line: line, Parent: parent})
		return
	}

	if _, ok := r.active[path]; ok {
		r.report(ctx, domain.Diagnostic{Kind: domain.KindCycle, File: name, Line: line, Parent: parent})
		return
	}
	if _, ok := r.seen[path]; ok {
		r.logger.Debug("Include skipped", "file", name, "path", path, "parent", parent, "line", line)
		return
	}

	content, err := r.fs.ReadFile(path)
	if err != nil {
		r.report(ctx, domain.Diagnostic{Kind: domain.KindUnreadable, File: name, Line: line, Parent: parent, Cause: err})
		return
	}

	r.seen[path] = struct{}{}
	r.active[path] = struct{}{}
	r.files = append(r.files, path)
	r.addPath(filepath.Dir(path))

	r.depth++
	event := &domain.FileEvent{Path: path, Name: name, Parent: parent, Line: line, Depth: r.depth}
	r.logger.Debug("Include enter", "file", name, "path", path, "parent", parent, "line", line, "depth", r.depth)
	if r.hooks.OnFileEnter != nil {
		r.hooks.OnFileEnter(ctx, event)
	}

	r.Expand(ctx, string(content), filepath.Base(path))

	if r.hooks.OnFileLeave != nil {
		r.hooks.OnFileLeave(ctx, event)
	}
	r.logger.Debug("Include leave", "path", path, "depth", r.depth)
	r.depth--
	delete(r.active, path)
}

// resolve returns the first candidate across the current search paths that is a file.
// A confined run never resolves absolute names.
func (r *Run) resolve(name string) (string, bool) {
	if r.confined && filepath.IsAbs(name) {
		return "", false
	}
	for _, dir := range r.paths {
		candidate := name
		if !filepath.IsAbs(name) {
			candidate = filepath.Join(dir, name)
		}
		if r.fs.IsFile(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// addPath appends dir to the search paths. A directory already listed is not added
// again since the earlier entry always matches first.
func (r *Run) addPath(dir string) {
	if slices.Contains(r.paths, dir) {
		return
	}
	r.paths = append(r.paths, dir)
}

func (r *Run) report(ctx context.Context, d domain.Diagnostic) {
	r.diags = append(r.diags, d)
	r.logger.Debug("Include diagnostic", "kind", d.Kind, "file", d.File, "line", d.Line, "parent", d.Parent, "err", d.Cause)
	if r.hooks.OnDiagnostic != nil {
		r.hooks.OnDiagnostic(ctx, d)
	}
}

// HasErrors reports whether any diagnostic was recorded.
func (r *Run) HasErrors() bool {
	return len(r.diags) > 0
}

// Diagnostics returns the problems recorded so far, in discovery order.
func (r *Run) Diagnostics() domain.Diagnostics {
	return slices.Clone(r.diags)
}

// Output returns the text produced so far. It is only usable when HasErrors is false.
func (r *Run) Output() string {
	return r.out.String()
}

// Paths returns the current search paths, including directories added by the run.
func (r *Run) Paths() []string {
	return slices.Clone(r.paths)
}

// Files returns the canonical paths of every file inlined, in first-visit order.
func (r *Run) Files() []string {
	return slices.Clone(r.files)
}

// Result returns the outcome: the output, or the diagnostics if there are any.
func (r *Run) Result() domain.Result {
	if r.HasErrors() {
		return domain.Failed(r.Diagnostics())
	}
	return domain.Succeeded(r.Output())
}
