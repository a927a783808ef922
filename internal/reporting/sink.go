package reporting

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/arunsidharrth/SDWAN/internal/checks"
	"github.com/arunsidharrth/SDWAN/internal/models"
)

// Optional formats written in addition to the JSON and text reports.
const (
	FormatJUnit    = "junit"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

var knownFormats = []string{FormatJUnit, FormatMarkdown, FormatHTML}

// ParseFormats splits and validates comma-separated format names.
func ParseFormats(values []string) ([]string, error) {
	var out []string
	for _, v := range values {
		for _, f := range strings.Split(v, ",") {
			f = strings.ToLower(strings.TrimSpace(f))
			if f == "" {
				continue
			}
			if !slices.Contains(knownFormats, f) {
				return nil, fmt.Errorf("unknown report format %q (valid: %s)", f, strings.Join(knownFormats, ", "))
			}
			if !slices.Contains(out, f) {
				out = append(out, f)
			}
		}
	}
	return out, nil
}

// Uploader copies a written artifact to remote storage and returns its URL.
type Uploader interface {
	Upload(ctx context.Context, path string) (string, error)
}

// Sink writes a report to disk in every configured format. Every failure
// is reported to Out as a warning and never aborts the run.
type Sink struct {
	// Dir is the output directory; empty means the current directory.
	Dir      string
	Formats  []string
	Uploader Uploader
	Out      io.Writer
	Palette  checks.Palette
}

type artifact struct {
	kind  string
	label string
	write func(io.Writer, *models.Report) error
}

// Persist writes every artifact and returns the paths that were written.
func (s *Sink) Persist(ctx context.Context, r *models.Report) []string {
	out := s.Out
	if out == nil {
		out = io.Discard
	}

	var written []string
	save := func(a artifact) {
		path := filepath.Join(s.Dir, ArtifactName(r.Metadata, a.kind))
		if err := writeFile(path, func(w io.Writer) error { return a.write(w, r) }); err != nil {
			s.warn(out, fmt.Sprintf("Could not save %s: %v", strings.ToLower(a.label), err))
			return
		}
		fmt.Fprintf(out, "%s\n", s.Palette.Cyan(fmt.Sprintf("%s saved to: %s", a.label, path))) //nolint:errcheck
		written = append(written, path)
	}

	save(artifact{kind: KindReport, label: "📊 Detailed report", write: s.writeJSON(out)})
	textLabel := "📄 Summary report"
	if r.Metadata.Tool == models.ToolPreCheck {
		textLabel = "📄 Results"
	}
	save(artifact{kind: TextKind(r.Metadata.Tool), label: textLabel, write: WriteText})

	for _, f := range s.Formats {
		switch f {
		case FormatJUnit:
			save(artifact{kind: KindJUnit, label: "🧪 JUnit report", write: WriteJUnitXML})
		case FormatMarkdown:
			save(artifact{kind: KindMD, label: "📝 Markdown report", write: WriteMarkdown})
		case FormatHTML:
			save(artifact{kind: KindHTML, label: "🌐 HTML report", write: WriteHTML})
		}
	}

	if s.Uploader != nil {
		for _, path := range written {
			url, err := s.Uploader.Upload(ctx, path)
			if err != nil {
				s.warn(out, fmt.Sprintf("Could not upload %s: %v", filepath.Base(path), err))
				continue
			}
			fmt.Fprintf(out, "%s\n", s.Palette.Cyan(fmt.Sprintf("☁️  Uploaded to: %s", url))) //nolint:errcheck
		}
	}
	return written
}

func (s *Sink) writeJSON(out io.Writer) func(io.Writer, *models.Report) error {
	return func(w io.Writer, r *models.Report) error {
		data, problems, err := MarshalReport(r)
		if err != nil {
			return err
		}
		for _, p := range problems {
			s.warn(out, "Report schema: "+p)
		}
		_, err = w.Write(data)
		return err
	}
}

func (s *Sink) warn(out io.Writer, msg string) {
	slog.Debug("Report sink warning", "message", msg)
	fmt.Fprintf(out, "%s\n", s.Palette.Red("⚠️  "+msg)) //nolint:errcheck
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	return write(f)
}
