package domain

import "context"

// FileEvent is emitted when a run starts or finishes expanding an included file.
type FileEvent struct {
	// Path is the canonical path of the included file.
	Path string `json:"path"`
	// Name is the name as written in the directive.
	Name string `json:"name"`
	// Parent is the document holding the directive.
	Parent string `json:"parent"`
	// Line is the 1-based line of the directive in Parent.
	Line int `json:"line"`
	// Depth is the nesting level, 1 for files included by the root document.
	Depth int `json:"depth"`
}

// Hooks defines callbacks for run observability.
// They are invoked synchronously from the goroutine executing the run.
type Hooks struct {
	OnFileEnter  func(context.Context, *FileEvent)
	OnFileLeave  func(context.Context, *FileEvent)
	OnDiagnostic func(context.Context, Diagnostic)
}

// Merge returns hooks that call h first and then other.
func (h Hooks) Merge(other Hooks) Hooks {
	return Hooks{
		OnFileEnter:  chainFile(h.OnFileEnter, other.OnFileEnter),
		OnFileLeave:  chainFile(h.OnFileLeave, other.OnFileLeave),
		OnDiagnostic: chainDiag(h.OnDiagnostic, other.OnDiagnostic),
	}
}

func chainFile(a, b func(context.Context, *FileEvent)) func(context.Context, *FileEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *FileEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

func chainDiag(a, b func(context.Context, Diagnostic)) func(context.Context, Diagnostic) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, d Diagnostic) {
		a(ctx, d)
		b(ctx, d)
	}
}
