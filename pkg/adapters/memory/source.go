package memory

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aretw0/exinc/pkg/ports"
)

// SourceFS implements ports.SourceFS over an in-memory set of files.
// Paths are cleaned; relative names are resolved against "/".
// Safe for concurrent use.
type SourceFS struct {
	mu     sync.RWMutex
	files  map[string][]byte
	links  map[string]string
	denied map[string]bool
}

var _ ports.SourceFS = (*SourceFS)(nil)

// NewSourceFS creates an in-memory filesystem holding files (path -> content).
func NewSourceFS(files map[string]string) *SourceFS {
	s := &SourceFS{
		files:  make(map[string][]byte),
		links:  make(map[string]string),
		denied: make(map[string]bool),
	}
	for name, content := range files {
		s.files[clean(name)] = []byte(content)
	}
	return s
}

// Write adds or replaces a file.
func (s *SourceFS) Write(name, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[clean(name)] = []byte(content)
}

// Link makes alias behave like a symlink to target.
func (s *SourceFS) Link(alias, target string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.links[clean(alias)] = clean(target)
}

// Deny keeps name visible as a file but makes reading it fail with fs.ErrPermission.
func (s *SourceFS) Deny(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.denied[clean(name)] = true
}

// IsFile implements ports.SourceFS.
func (s *SourceFS) IsFile(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, err := s.follow(clean(name))
	if err != nil {
		return false
	}
	_, ok := s.files[p]
	return ok
}

// IsDir implements ports.SourceFS. A directory exists when some file lives below it.
func (s *SourceFS) IsDir(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, err := s.follow(clean(name))
	if err != nil {
		return false
	}
	prefix := p
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	for f := range s.files {
		if strings.HasPrefix(f, prefix) {
			return true
		}
	}
	return false
}

// Canonical implements ports.SourceFS.
func (s *SourceFS) Canonical(name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.follow(clean(name))
}

// ReadFile implements ports.SourceFS.
func (s *SourceFS) ReadFile(name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, err := s.follow(clean(name))
	if err != nil {
		return nil, err
	}
	if s.denied[p] {
		return nil, &fs.PathError{Op: "open", Path: p, Err: fs.ErrPermission}
	}
	content, ok := s.files[p]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: p, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), content...), nil
}

// follow resolves link chains. Caller must hold the lock.
func (s *SourceFS) follow(p string) (string, error) {
	for range len(s.links) + 1 {
		target, ok := s.links[p]
		if !ok {
			return p, nil
		}
		p = target
	}
	return "", fmt.Errorf("memory: too many levels of symbolic links at %s", p)
}

func clean(name string) string {
	if !filepath.IsAbs(name) {
		name = filepath.Join(string(filepath.Separator), name)
	}
	return filepath.Clean(name)
}
