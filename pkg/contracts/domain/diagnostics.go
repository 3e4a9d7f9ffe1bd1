package domain

import "time"

// DiagnosticLevel classifies a per-file or per-sheet processing outcome.
type DiagnosticLevel string

const (
	DiagInfo  DiagnosticLevel = "info"
	DiagWarn  DiagnosticLevel = "warn"
	DiagError DiagnosticLevel = "error"
)

// Diagnostic is one human-readable entry explaining how a file or sheet
// was handled during an extraction run. Extraction never fails the run;
// every skip or error becomes one of these instead.
type Diagnostic struct {
	Level   DiagnosticLevel `json:"level"`
	File    string          `json:"file,omitempty"`
	Sheet   string          `json:"sheet,omitempty"`
	Message string          `json:"message"`
}

// RunReport summarizes the most recent extraction run.
type RunReport struct {
	GeneratedAt  time.Time    `json:"generated_at"`
	StoreVersion string       `json:"store_version"`
	FilesSeen    int          `json:"files_seen"`
	SheetsUsed   int          `json:"sheets_used"`
	RowsSeen     int          `json:"rows_seen"`
	RowsKept     int          `json:"rows_kept"`
	Students     int          `json:"students"`
	RosterSize   int          `json:"roster_size"`
	IgnoredFiles []string     `json:"ignored_files,omitempty"`
	Diagnostics  []Diagnostic `json:"diagnostics"`
}

// Add appends a diagnostic entry.
func (r *RunReport) Add(level DiagnosticLevel, file, sheet, message string) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{
		Level:   level,
		File:    file,
		Sheet:   sheet,
		Message: message,
	})
}
