package domain

import "time"

// Record is a persisted expansion, as kept by result stores.
type Record struct {
	ID           string    `json:"id"`
	Parent       string    `json:"parent"`
	Preprocessor string    `json:"preprocessor"`
	CreatedAt    time.Time `json:"created_at"`
	Result       Result    `json:"result"`
}

// Report is the wire form of a record, shared by the HTTP and MCP servers.
type Report struct {
	ID          string      `json:"id"`
	HasErrors   bool        `json:"has_errors"`
	Output      string      `json:"output,omitempty"`
	Diagnostics Diagnostics `json:"diagnostics,omitempty"`
	Report      string      `json:"report,omitempty"`
}

// NewReport renders a record for clients.
func NewReport(rec *Record) Report {
	return Report{
		ID:          rec.ID,
		HasErrors:   rec.Result.HasErrors(),
		Output:      rec.Result.Output,
		Diagnostics: rec.Result.Diagnostics,
		Report:      rec.Result.Report(),
	}
}
