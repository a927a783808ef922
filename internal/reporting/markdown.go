package reporting

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/arunsidharrth/SDWAN/internal/models"
)

// RenderMarkdown renders the report as a Markdown document with summary,
// metric and check tables.
func RenderMarkdown(r *models.Report) string {
	var b strings.Builder

	title, _ := textHeader(r.Metadata)
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "- **Run ID:** `%s`\n", r.Metadata.RunID)
	fmt.Fprintf(&b, "- **Timestamp:** %s\n", r.Metadata.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "- **Target:** `%s`\n", r.Metadata.Target)
	fmt.Fprintf(&b, "- **Platform:** %s\n\n", r.Metadata.Platform)

	s := r.Summary
	b.WriteString("## Summary\n\n")
	b.WriteString("| Total | Passed | Failed | Warnings | Success Rate |\n")
	b.WriteString("|---:|---:|---:|---:|---:|\n")
	fmt.Fprintf(&b, "| %d | %d | %d | %d | %.2f%% |\n\n", s.TotalChecks, s.Passed, s.Failed, s.Warnings, s.SuccessRate)

	if entries := r.Metrics.Entries(); len(entries) > 0 {
		b.WriteString("## Key Metrics\n\n| Metric | Value |\n|---|---|\n")
		for _, e := range entries {
			fmt.Fprintf(&b, "| %s | %s |\n", MetricTitle(e.Key), escapeCell(FormatMetric(e)))
		}
		b.WriteString("\n")
	}

	if len(r.Recommendations) > 0 {
		b.WriteString("## Recommendations\n\n")
		for i, rec := range r.Recommendations {
			fmt.Fprintf(&b, "%d. %s\n", i+1, rec)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Checks\n\n| Status | Check | Message |\n|---|---|---|\n")
	for _, c := range r.Checks {
		fmt.Fprintf(&b, "| %s %s | %s | %s |\n", statusIcon(c.Status), c.Status.Label(), escapeCell(c.Name), escapeCell(c.Message))
	}
	return b.String()
}

// WriteMarkdown writes the Markdown rendering of r to w.
func WriteMarkdown(w io.Writer, r *models.Report) error {
	_, err := io.WriteString(w, RenderMarkdown(r))
	return err
}

// WriteHTML converts the Markdown rendering to a standalone HTML page.
func WriteHTML(w io.Writer, r *models.Report) error {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))

	var body bytes.Buffer
	if err := md.Convert([]byte(RenderMarkdown(r)), &body); err != nil {
		return fmt.Errorf("rendering HTML: %w", err)
	}

	title, _ := textHeader(r.Metadata)
	_, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n%s</body>\n</html>\n", html.EscapeString(title), body.String())
	return err
}

func statusIcon(s models.CheckStatus) string {
	switch s {
	case models.StatusPass:
		return "✅"
	case models.StatusFail:
		return "❌"
	default:
		return "⚠️"
	}
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
