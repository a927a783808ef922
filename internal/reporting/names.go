package reporting

import (
	"fmt"
	"time"

	"github.com/arunsidharrth/SDWAN/internal/models"
)

// TimestampLayout is the file-name timestamp, e.g. 20240315_101500.
const TimestampLayout = "20060102_150405"

// Artifact kinds written by the sink.
const (
	KindReport  = "report"
	KindSummary = "summary"
	KindResults = "results"
	KindJUnit   = "junit"
	KindMD      = "markdown"
	KindHTML    = "html"
)

var extensions = map[string]string{
	KindReport:  ".json",
	KindSummary: ".txt",
	KindResults: ".txt",
	KindJUnit:   ".xml",
	KindMD:      ".md",
	KindHTML:    ".html",
}

// ArtifactName returns the deterministic file name of one artifact, e.g.
// postcheck_report_backup_20240315_101500.json or precheck_results_20240315_101500.txt.
func ArtifactName(meta models.Metadata, kind string) string {
	ts := meta.Timestamp.Format(TimestampLayout)
	if meta.Timestamp.IsZero() {
		ts = time.Now().Format(TimestampLayout)
	}
	if meta.OperationType != "" {
		return fmt.Sprintf("%s_%s_%s_%s%s", meta.Tool, kind, meta.OperationType, ts, extensions[kind])
	}
	return fmt.Sprintf("%s_%s_%s%s", meta.Tool, kind, ts, extensions[kind])
}

// TextKind returns the plain-text artifact kind for a tool: the post-check
// writes a summary, the pre-check a results log.
func TextKind(tool string) string {
	if tool == models.ToolPreCheck {
		return KindResults
	}
	return KindSummary
}
