package reporting

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/arunsidharrth/SDWAN/internal/checks"
	"github.com/arunsidharrth/SDWAN/internal/models"
)

// PrintSummary writes the end-of-run summary block: counts, key metrics,
// the overall verdict and the numbered recommendations.
func PrintSummary(w io.Writer, r *models.Report, p checks.Palette) {
	var b strings.Builder

	rule := strings.Repeat("=", 60)
	fmt.Fprintf(&b, "\n%s\n%s\n%s\n\n", p.Header(rule), p.Header(center("SUMMARY", 60)), p.Header(rule))

	s := r.Summary
	b.WriteString(p.Green(fmt.Sprintf("✓  Passed: %d", s.Passed)) + "\n")
	b.WriteString(p.Red(fmt.Sprintf("✗  Failed: %d", s.Failed)) + "\n")
	b.WriteString(p.Yellow(fmt.Sprintf("⚠  Warnings: %d", s.Warnings)) + "\n")
	fmt.Fprintf(&b, "📊 Total Checks: %d\n", s.TotalChecks)
	fmt.Fprintf(&b, "🎯 Success Rate: %.1f%% (%s)\n", s.SuccessRate, InterpretSuccessRate(s.SuccessRate))

	if lines := keyMetrics(&r.Metrics); len(lines) > 0 {
		fmt.Fprintf(&b, "\n%s\n", p.Cyan("📈 Key Metrics:"))
		width := 0
		for _, l := range lines {
			width = max(width, runewidth.StringWidth(l[0]))
		}
		for _, l := range lines {
			fmt.Fprintf(&b, "  • %s %s\n", padRight(l[0]+":", width+1), l[1])
		}
	}

	writeVerdict(&b, r, p)

	if len(r.Recommendations) > 0 {
		fmt.Fprintf(&b, "\n%s\n", p.Header("💡 RECOMMENDATIONS:"))
		for i, rec := range r.Recommendations {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, rec)
		}
	}

	io.WriteString(w, b.String()) //nolint:errcheck
}

func writeVerdict(b *strings.Builder, r *models.Report, p checks.Palette) {
	s := r.Summary
	op := r.Metadata.OperationType

	var headline, detail string
	switch {
	case r.Metadata.Tool == models.ToolPreCheck && s.Failed == 0:
		headline = p.Green(p.Bold("🎉 ALL CRITICAL CHECKS PASSED!"))
		detail = p.Green("Your environment is ready for SD-WAN automation!")
	case r.Metadata.Tool == models.ToolPreCheck:
		headline = p.Red(p.Bold("❌ CRITICAL ISSUES DETECTED!"))
		detail = p.Red(fmt.Sprintf("Please resolve the %d failed check(s) before proceeding.", s.Failed))
	case s.Failed == 0:
		headline = p.Green(p.Bold(fmt.Sprintf("🎉 %s VALIDATION SUCCESSFUL!", strings.ToUpper(op))))
		detail = p.Green(fmt.Sprintf("Your %s operation completed successfully!", op))
	default:
		headline = p.Red(p.Bold(fmt.Sprintf("❌ ISSUES DETECTED IN %s!", strings.ToUpper(op))))
		detail = p.Red(fmt.Sprintf("Please review the %d failed check(s) above.", s.Failed))
	}

	fmt.Fprintf(b, "\n%s\n%s\n", headline, detail)
	if s.Failed == 0 && s.Warnings > 0 {
		b.WriteString(p.Yellow(fmt.Sprintf("Note: %d warning(s) detected. Review recommendations below.", s.Warnings)) + "\n")
	}
}

// keyMetrics picks the metrics worth repeating in the console summary.
func keyMetrics(m *models.Metrics) [][2]string {
	var out [][2]string
	if m.TotalSize != nil {
		out = append(out, [2]string{"Total Size", FormatSize(*m.TotalSize)})
	}
	if m.TotalFiles != nil {
		out = append(out, [2]string{"Total Files", fmt.Sprint(*m.TotalFiles)})
	}
	if m.TotalItems != nil {
		out = append(out, [2]string{"Config Items", fmt.Sprint(*m.TotalItems)})
	}
	if m.DurationMinutes != nil {
		out = append(out, [2]string{"Duration", FormatDuration(*m.DurationMinutes)})
	}
	if m.ArchiveFiles != nil {
		out = append(out, [2]string{"Archive Files", fmt.Sprint(*m.ArchiveFiles)})
	}
	if m.Controllers != nil {
		out = append(out, [2]string{"Controllers", fmt.Sprint(*m.Controllers)})
	}
	return out
}

func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

func center(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return strings.Repeat(" ", (width-sw)/2) + s
}
