package tests

import (
	"path/filepath"
	"testing"

	"github.com/aretw0/exinc/pkg/ports"
)

// SourceFSContractTest is a reusable test suite that verifies if an adapter complies with ports.SourceFS.
// Every key of files must exist in fsys with the given content and live below dir.
func SourceFSContractTest(t *testing.T, fsys ports.SourceFS, dir string, files map[string][]byte) {
	t.Helper()

	// 1. Test ReadFile (Success)
	t.Run("ReadFile_Success", func(t *testing.T) {
		for name, expected := range files {
			content, err := fsys.ReadFile(name)
			if err != nil {
				t.Fatalf("unexpected error reading %s: %v", name, err)
			}
			if string(content) != string(expected) {
				t.Errorf("content mismatch for %s. got %q, want %q", name, content, expected)
			}
		}
	})

	// 2. Test ReadFile (NotFound)
	t.Run("ReadFile_NotFound", func(t *testing.T) {
		missing := filepath.Join(dir, "non-existent-file.h")
		if _, err := fsys.ReadFile(missing); err == nil {
			t.Error("expected error for non-existent file, got nil")
		}
		if fsys.IsFile(missing) {
			t.Error("IsFile reported a non-existent file")
		}
	})

	// 3. Test file and directory kinds
	t.Run("Kinds", func(t *testing.T) {
		if !fsys.IsDir(dir) {
			t.Errorf("expected %s to be a directory", dir)
		}
		if fsys.IsFile(dir) {
			t.Errorf("expected %s not to be a file", dir)
		}
		for name := range files {
			if !fsys.IsFile(name) {
				t.Errorf("expected %s to be a file", name)
			}
			if fsys.IsDir(name) {
				t.Errorf("expected %s not to be a directory", name)
			}
		}
	})

	// 4. Test Canonical is absolute and stable
	t.Run("Canonical", func(t *testing.T) {
		for name := range files {
			first, err := fsys.Canonical(name)
			if err != nil {
				t.Fatalf("unexpected error canonicalizing %s: %v", name, err)
			}
			if !filepath.IsAbs(first) {
				t.Errorf("canonical path %q is not absolute", first)
			}
			second, err := fsys.Canonical(first)
			if err != nil {
				t.Fatalf("unexpected error canonicalizing %s: %v", first, err)
			}
			if first != second {
				t.Errorf("canonical path is not stable: %q then %q", first, second)
			}
		}
	})
}
