package inliner

import (
	"path/filepath"

	"github.com/aretw0/exinc/pkg/ports"
)

// WithRoots confines the inliner to files below roots, even when roots is empty.
// Absolute names are then reported as not found, and so is any file whose
// canonical path leaves the roots, whether it climbs out with ".." or through a link.
func WithRoots(roots ...string) Option {
	return func(in *Inliner) {
		in.confined = true
		in.roots = append(in.roots, roots...)
	}
}

// Within reports whether path lies below one of roots. Both sides are compared
// in their canonical form, so a link pointing out of a root is outside.
func Within(fs ports.SourceFS, roots []string, path string) bool {
	p, err := fs.Canonical(path)
	if err != nil {
		return false
	}
	return within(canonicalRoots(fs, roots), p)
}

func canonicalRoots(fs ports.SourceFS, roots []string) []string {
	out := make([]string, 0, len(roots))
	for _, root := range roots {
		c, err := fs.Canonical(root)
		if err != nil {
			continue
		}
		out = append(out, c)
	}
	return out
}

func within(roots []string, path string) bool {
	for _, root := range roots {
		rel, err := filepath.Rel(root, path)
		if err == nil && (rel == "." || filepath.IsLocal(rel)) {
			return true
		}
	}
	return false
}
