package checks

import (
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/arunsidharrth/SDWAN/internal/models"
)

// Palette colors console output. The zero value prints plain text.
type Palette struct {
	enabled bool
}

// NewPalette returns a palette that colors output when enabled is true.
func NewPalette(enabled bool) Palette {
	return Palette{enabled: enabled}
}

// Enabled reports whether the palette emits color escapes.
func (p Palette) Enabled() bool { return p.enabled }

func (p Palette) paint(s string, attrs ...color.Attribute) string {
	c := color.New(attrs...)
	if p.enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(s)
}

func (p Palette) Green(s string) string  { return p.paint(s, color.FgGreen) }
func (p Palette) Red(s string) string    { return p.paint(s, color.FgRed) }
func (p Palette) Yellow(s string) string { return p.paint(s, color.FgYellow) }
func (p Palette) Blue(s string) string   { return p.paint(s, color.FgBlue) }
func (p Palette) Cyan(s string) string   { return p.paint(s, color.FgCyan) }
func (p Palette) Bold(s string) string   { return p.paint(s, color.Bold) }

// Header renders a bold cyan banner line.
func (p Palette) Header(s string) string { return p.paint(s, color.FgCyan, color.Bold) }

// Status renders the glyph and label for a check status, e.g. "✓  PASS".
func (p Palette) Status(s models.CheckStatus) string {
	switch s {
	case models.StatusPass:
		return p.Green("✓  PASS")
	case models.StatusFail:
		return p.Red("✗  FAIL")
	case models.StatusWarning:
		return p.Yellow("⚠  WARNING")
	default:
		return string(s)
	}
}

// ColorEnabled decides whether output written to w should be colored.
// Color is off when disabled explicitly, when NO_COLOR is set, or when w is
// not a terminal.
func ColorEnabled(w io.Writer, disabled bool) bool {
	if disabled || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
