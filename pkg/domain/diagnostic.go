package domain

import (
	"fmt"
	"strings"
)

// DiagnosticKind enumerates the problems an expansion run can report.
type DiagnosticKind string

const (
	KindNotFound   DiagnosticKind = "file-not-found"   // No search path holds the file
	KindUnreadable DiagnosticKind = "file-unreadable"  // The file exists but reading it failed
	KindCycle      DiagnosticKind = "cyclic-reference" // The file is still being expanded higher up the stack
)

// Diagnostic describes a single include directive that could not be inlined.
// Rendering is left to String/Error so adapters can format the fields however they need.
type Diagnostic struct {
	Kind DiagnosticKind `json:"kind"`

	// File is the name exactly as written between the quotes of the directive.
	File string `json:"file"`

	// Line is the 1-based line of the directive inside Parent.
	Line int `json:"line"`

	// Parent is the name of the document that holds the directive.
	Parent string `json:"parent"`

	// Cause is the underlying I/O error for KindUnreadable. It is not serialized.
	Cause error `json:"-"`
}

func (d Diagnostic) String() string {
	var what string
	switch d.Kind {
	case KindNotFound:
		what = fmt.Sprintf("File %s could not be found", d.File)
	case KindUnreadable:
		what = fmt.Sprintf("File %s could not be read [IO issue]", d.File)
	case KindCycle:
		what = fmt.Sprintf("Found back-edge to file %s", d.File)
	default:
		what = fmt.Sprintf("Unknown problem %q with file %s", d.Kind, d.File)
	}
	return fmt.Sprintf("%s (on line %d of file %s)", what, d.Line, d.Parent)
}

func (d Diagnostic) Error() string {
	return d.String()
}

func (d Diagnostic) Unwrap() error {
	return d.Cause
}

// Diagnostics is the ordered list of problems accumulated by a run.
type Diagnostics []Diagnostic

// Error joins every message with a newline, in the order they were recorded.
func (ds Diagnostics) Error() string {
	lines := make([]string, len(ds))
	for i, d := range ds {
		lines[i] = d.String()
	}
	return strings.Join(lines, "\n")
}

// Count returns how many diagnostics of the given kind were recorded.
func (ds Diagnostics) Count(kind DiagnosticKind) int {
	n := 0
	for _, d := range ds {
		if d.Kind == kind {
			n++
		}
	}
	return n
}
