package models

import "time"

// Tool names used in report metadata and artifact file names.
const (
	ToolPreCheck  = "precheck"
	ToolPostCheck = "postcheck"
)

// Metadata describes the run that produced a report.
type Metadata struct {
	RunID            string    `json:"run_id"`
	Tool             string    `json:"tool"`
	OperationType    string    `json:"operation_type,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
	Target           string    `json:"target"`
	Platform         string    `json:"platform"`
	GoVersion        string    `json:"go_version"`
	WorkingDirectory string    `json:"working_directory,omitempty"`
}

// Summary is derived from the tally when the report is built.
type Summary struct {
	TotalChecks int     `json:"total_checks"`
	Passed      int     `json:"passed"`
	Failed      int     `json:"failed"`
	Warnings    int     `json:"warnings"`
	SuccessRate float64 `json:"success_rate"`
}

// NewSummary derives the summary block from a tally.
func NewSummary(t Tally) Summary {
	return Summary{
		TotalChecks: t.Total(),
		Passed:      t.Passed,
		Failed:      t.Failed,
		Warnings:    t.Warnings,
		SuccessRate: t.SuccessRate(),
	}
}

// Report is the immutable snapshot of a finished run.
type Report struct {
	Metadata        Metadata      `json:"metadata"`
	Summary         Summary       `json:"summary"`
	Metrics         Metrics       `json:"metrics"`
	Checks          []CheckRecord `json:"checks"`
	DetailedResults []string      `json:"detailed_results"`
	Recommendations []string      `json:"recommendations"`
}
