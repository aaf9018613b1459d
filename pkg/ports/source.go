package ports

// SourceFS abstracts the file access the inliner needs.
// Implementations must be safe for concurrent use when shared by several runs.
type SourceFS interface {
	// IsFile reports whether name exists and is a regular file (following symlinks).
	IsFile(name string) bool

	// IsDir reports whether name exists and is a directory (following symlinks).
	IsDir(name string) bool

	// Canonical returns the absolute, symlink-resolved form of name.
	// It is used as the identity of a file within a run.
	Canonical(name string) (string, error)

	// ReadFile returns the whole content of the file.
	ReadFile(name string) ([]byte, error)
}
