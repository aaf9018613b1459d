// Package osfs implements ports.SourceFS on top of the operating system filesystem.
package osfs

import (
	"os"
	"path/filepath"

	"github.com/aretw0/exinc/pkg/ports"
)

// FS reads include files from disk.
type FS struct{}

var _ ports.SourceFS = FS{}

// New returns the disk-backed SourceFS.
func New() FS {
	return FS{}
}

// IsFile reports whether name is a regular file, following symlinks.
func (FS) IsFile(name string) bool {
	fi, err := os.Stat(name)
	return err == nil && fi.Mode().IsRegular()
}

// IsDir reports whether name is a directory, following symlinks.
func (FS) IsDir(name string) bool {
	fi, err := os.Stat(name)
	return err == nil && fi.IsDir()
}

// Canonical returns the absolute path of name with symlinks resolved.
// If links cannot be evaluated the cleaned absolute path is returned.
func (FS) Canonical(name string) (string, error) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return abs, nil
	}
	return resolved, nil
}

// ReadFile implements ports.SourceFS.
func (FS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}
