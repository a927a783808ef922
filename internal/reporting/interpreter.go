package reporting

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// InterpretDuration returns the performance label for an operation that
// took the given number of minutes.
func InterpretDuration(minutes float64) string {
	switch {
	case minutes < 5:
		return "Excellent"
	case minutes < 15:
		return "Good"
	case minutes < 30:
		return "Acceptable"
	default:
		return "Slow"
	}
}

// InterpretSuccessRate returns a plain-language label for a success rate (0–100).
func InterpretSuccessRate(rate float64) string {
	switch {
	case rate >= 100:
		return "All checks passed"
	case rate >= 80:
		return "Most checks passed"
	case rate >= 50:
		return "About half the checks passed"
	case rate > 0:
		return "Few checks passed"
	default:
		return "No checks passed"
	}
}

// FormatSize renders a byte count with binary units, e.g. "1.5 MiB".
func FormatSize(n int64) string {
	if n <= 0 {
		return "0 B"
	}
	return humanize.IBytes(uint64(n))
}

// FormatDuration renders minutes with one decimal and the performance label.
func FormatDuration(minutes float64) string {
	return fmt.Sprintf("%.1f minutes (%s)", minutes, InterpretDuration(minutes))
}
