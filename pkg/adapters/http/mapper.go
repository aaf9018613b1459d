package http

import "github.com/aretw0/exinc/pkg/domain"

func mapReportFromDomain(r domain.Report) ExpansionReport {
	out := ExpansionReport{
		Id:        r.ID,
		HasErrors: r.HasErrors,
	}
	if r.Output != "" {
		out.Output = ptr(r.Output)
	}
	if r.Report != "" {
		out.Report = ptr(r.Report)
	}
	if len(r.Diagnostics) > 0 {
		diags := make([]Diagnostic, len(r.Diagnostics))
		for i, d := range r.Diagnostics {
			diags[i] = mapDiagnosticFromDomain(d)
		}
		out.Diagnostics = &diags
	}
	return out
}

func mapDiagnosticFromDomain(d domain.Diagnostic) Diagnostic {
	return Diagnostic{
		Kind:   DiagnosticKind(d.Kind),
		File:   d.File,
		Line:   d.Line,
		Parent: d.Parent,
	}
}

func mapFileEventFromDomain(e *domain.FileEvent) *FileEvent {
	return &FileEvent{
		Path:   e.Path,
		Name:   e.Name,
		Parent: e.Parent,
		Line:   e.Line,
		Depth:  e.Depth,
	}
}

func ptr[T any](v T) *T {
	return &v
}
