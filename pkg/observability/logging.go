package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/exinc/pkg/domain"
)

// LogHooks returns hooks writing the traversal to logger at info level.
func LogHooks(logger *slog.Logger) domain.Hooks {
	return domain.Hooks{
		OnFileEnter: func(ctx context.Context, e *domain.FileEvent) {
			logger.InfoContext(ctx, "file_enter",
				"file", e.Name,
				"path", e.Path,
				"parent", e.Parent,
				"line", e.Line,
				"depth", e.Depth,
			)
		},
		OnFileLeave: func(ctx context.Context, e *domain.FileEvent) {
			logger.InfoContext(ctx, "file_leave", "path", e.Path)
		},
		OnDiagnostic: func(ctx context.Context, d domain.Diagnostic) {
			logger.WarnContext(ctx, "diagnostic",
				"kind", d.Kind,
				"file", d.File,
				"line", d.Line,
				"parent", d.Parent,
			)
		},
	}
}
