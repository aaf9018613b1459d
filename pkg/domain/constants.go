package domain

const (
	// RootParent is the parent name used for documents that do not come from a file (stdin, HTTP).
	RootParent = "root_file"

	// PreprocessorInliner selects the built-in recursive inliner.
	PreprocessorInliner = "inliner"

	// PreprocessorCaide selects the external caide optimizer backend.
	PreprocessorCaide = "caide"
)
