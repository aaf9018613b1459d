package tui

import (
	"fmt"
	"io"

	"github.com/aretw0/exinc/pkg/domain"
	"github.com/muesli/termenv"
)

// ReportPrinter writes failed results to a terminal, colored when it supports it.
// On other writers the text is exactly domain.Result.Report followed by a newline.
type ReportPrinter struct {
	w   io.Writer
	out *termenv.Output
}

// NewReportPrinter creates a printer for w.
func NewReportPrinter(w io.Writer) *ReportPrinter {
	return &ReportPrinter{w: w, out: termenv.NewOutput(w)}
}

// Print writes the report of res. Successful results print nothing.
func (p *ReportPrinter) Print(res domain.Result) {
	if !res.HasErrors() {
		return
	}
	if res.Failure != nil {
		fmt.Fprintln(p.w, p.out.String(res.Failure.Stage.Header()).Foreground(p.out.Color("#f87171")).Bold())
		fmt.Fprintln(p.w, res.Failure.Stderr)
		return
	}
	for _, d := range res.Diagnostics {
		fmt.Fprintln(p.w, p.out.String(d.String()).Foreground(p.color(d.Kind)))
	}
}

// Message writes a single error line.
func (p *ReportPrinter) Message(msg string) {
	fmt.Fprintln(p.w, p.out.String(msg).Foreground(p.out.Color("#f87171")))
}

func (p *ReportPrinter) color(kind domain.DiagnosticKind) termenv.Color {
	if kind == domain.KindCycle {
		return p.out.Color("#fbbf24")
	}
	return p.out.Color("#f87171")
}
