// Package testutils holds filesystem fixtures shared by the package tests.
package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TempTree creates a temporary directory holding files, keyed by slash-separated
// relative path. It returns the absolute path of the directory and fails the test
// immediately on error.
func TempTree(t testing.TB, files map[string]string) string {
	t.Helper()

	dir, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	for name, content := range files {
		WriteFile(t, dir, name, content)
	}
	return dir
}

// WriteFile writes content to dir/name, creating missing parent directories,
// and returns the full path.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755), "Failed to create %s", filepath.Dir(path))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "Failed to write %s", path)
	return path
}
