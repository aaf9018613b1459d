package ports

import (
	"context"

	"github.com/aretw0/exinc/pkg/domain"
)

// Preprocessor turns a root document into a flattened Result.
type Preprocessor interface {
	// Name identifies the backend (see domain.PreprocessorInliner, domain.PreprocessorCaide).
	Name() string

	// Expand processes text, using parent as the document name in diagnostics.
	Expand(ctx context.Context, text, parent string) domain.Result
}
