package reporting

import (
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/arunsidharrth/SDWAN/internal/models"
)

var titleCaser = cases.Title(language.English)

// MetricTitle turns a metric key into a display label, e.g. "archive_size"
// becomes "Archive Size".
func MetricTitle(key string) string {
	return titleCaser.String(strings.ReplaceAll(key, "_", " "))
}

// FormatMetric renders a metric value for human-readable output.
func FormatMetric(e models.MetricEntry) string {
	switch v := e.Value.(type) {
	case int64:
		if strings.HasSuffix(e.Key, "_size") {
			return fmt.Sprintf("%s (%d bytes)", FormatSize(v), v)
		}
		return fmt.Sprint(v)
	case float64:
		if e.Key == "duration_minutes" {
			return FormatDuration(v)
		}
		return fmt.Sprintf("%.2f", v)
	case time.Time:
		return v.Format(time.RFC3339)
	case models.BackupStats:
		parts := make([]string, 0, 5)
		for _, s := range v.Breakdown() {
			parts = append(parts, fmt.Sprintf("%s: %d", s.Label, s.Count))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(v)
	}
}

func textHeader(meta models.Metadata) (title string, rule int) {
	if meta.Tool == models.ToolPreCheck {
		return "SD-WAN Automation Pre-Check Results", 40
	}
	op := meta.OperationType
	if op == "" {
		op = "operation"
	}
	return fmt.Sprintf("SD-WAN %s Post-Check Summary", titleCaser.String(op)), 50
}

// WriteText writes the plain-text report. Sections always appear in the
// same order: header, summary, key metrics, recommendations, detailed results.
// Empty metric and recommendation sections are omitted.
func WriteText(w io.Writer, r *models.Report) error {
	var b strings.Builder

	title, rule := textHeader(r.Metadata)
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", rule) + "\n\n")

	b.WriteString(fmt.Sprintf("Timestamp: %s\n", r.Metadata.Timestamp.Format(time.DateTime)))
	if r.Metadata.OperationType != "" {
		b.WriteString(fmt.Sprintf("Operation: %s\n", strings.ToUpper(r.Metadata.OperationType)))
		b.WriteString(fmt.Sprintf("Directory: %s\n", r.Metadata.Target))
	} else {
		b.WriteString(fmt.Sprintf("Target: %s\n", r.Metadata.Target))
	}
	b.WriteString(fmt.Sprintf("Platform: %s\n", r.Metadata.Platform))
	b.WriteString(fmt.Sprintf("Go: %s\n", r.Metadata.GoVersion))
	b.WriteString(fmt.Sprintf("Run ID: %s\n\n", r.Metadata.RunID))

	s := r.Summary
	b.WriteString("SUMMARY:\n")
	b.WriteString(fmt.Sprintf("- Total Checks: %d\n", s.TotalChecks))
	b.WriteString(fmt.Sprintf("- Passed: %d\n", s.Passed))
	b.WriteString(fmt.Sprintf("- Failed: %d\n", s.Failed))
	b.WriteString(fmt.Sprintf("- Warnings: %d\n", s.Warnings))
	b.WriteString(fmt.Sprintf("- Success Rate: %.2f%%\n\n", s.SuccessRate))

	if !r.Metrics.Empty() {
		b.WriteString("KEY METRICS:\n")
		for _, e := range r.Metrics.Entries() {
			b.WriteString(fmt.Sprintf("- %s: %s\n", MetricTitle(e.Key), FormatMetric(e)))
		}
		b.WriteString("\n")
	}

	if len(r.Recommendations) > 0 {
		b.WriteString("RECOMMENDATIONS:\n")
		for i, rec := range r.Recommendations {
			b.WriteString(fmt.Sprintf("%d. %s\n", i+1, rec))
		}
		b.WriteString("\n")
	}

	b.WriteString("DETAILED RESULTS:\n")
	for _, d := range r.DetailedResults {
		b.WriteString(fmt.Sprintf("- %s\n", d))
	}

	_, err := io.WriteString(w, b.String())
	return err
}
