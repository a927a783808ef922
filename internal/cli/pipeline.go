package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arunsidharrth/SDWAN/internal/checks"
	"github.com/arunsidharrth/SDWAN/internal/models"
	"github.com/arunsidharrth/SDWAN/internal/recommend"
	"github.com/arunsidharrth/SDWAN/internal/reporting"
	"github.com/arunsidharrth/SDWAN/internal/runlog"
	"github.com/arunsidharrth/SDWAN/internal/utils"
)

// ChecksFailedError reports that the run completed but at least one check
// failed.
type ChecksFailedError struct {
	Tool   string
	Failed int
}

func (e *ChecksFailedError) Error() string {
	return fmt.Sprintf("%s: %d check(s) failed", e.Tool, e.Failed)
}

// NewMetadata describes a run starting now.
func NewMetadata(tool, operation, target, workDir string) models.Metadata {
	return models.Metadata{
		RunID:            uuid.NewString(),
		Tool:             tool,
		OperationType:    operation,
		Timestamp:        time.Now(),
		Target:           target,
		Platform:         Platform(),
		GoVersion:        runtime.Version(),
		WorkingDirectory: workDir,
	}
}

// Platform returns the OS and architecture, e.g. "linux/amd64".
func Platform() string {
	return runtime.GOOS + "/" + runtime.GOARCH
}

// Pipeline runs an ordered list of checks and turns the outcome into
// persisted reports and a console summary.
type Pipeline struct {
	Meta     models.Metadata
	Steps    []checks.Checker
	Engine   *recommend.Engine
	Sink     *reporting.Sink
	Out      io.Writer
	Palette  checks.Palette
	EventLog string

	// Clock overrides record timestamps, for tests.
	Clock func() time.Time
}

// Run executes the pipeline. An interrupted run returns the context error
// and writes no reports. A completed run with failed checks returns the
// report together with a *ChecksFailedError.
func (p *Pipeline) Run(ctx context.Context) (*models.Report, error) {
	out := p.Out
	if out == nil {
		out = os.Stdout
	}

	logger, err := runlog.Open(p.EventLog)
	if err != nil {
		slog.Warn("Event log disabled", "path", p.EventLog, "error", err)
		logger = runlog.NopLogger{}
	}
	defer func() {
		if err := logger.Close(); err != nil {
			slog.Warn("Closing event log", "error", err)
		}
	}()
	logEvent(logger, runlog.NewEvent(runlog.EventRunStart, p.Meta.RunID,
		runlog.RunStartData(p.Meta.Tool, p.Meta.OperationType, p.Meta.Target)))

	opts := []checks.Option{
		checks.WithPalette(p.Palette),
		checks.WithObserver(&runlog.Observer{Logger: logger, RunID: p.Meta.RunID}),
	}
	if p.Clock != nil {
		opts = append(opts, checks.WithClock(p.Clock))
	}
	rec := checks.NewRecorder(out, opts...)

	slog.Debug("Starting run", "tool", p.Meta.Tool, "run_id", p.Meta.RunID, "steps", checks.Names(p.Steps))
	if err := checks.NewRunner(rec).Run(ctx, p.Steps); err != nil {
		return nil, err
	}

	report := reporting.Build(p.Meta, rec, p.Engine)
	attrs := []any{"run_id", p.Meta.RunID, "failed", report.Summary.Failed}
	attrs = utils.AttrsIf(attrs, "total_files", report.Metrics.TotalFiles)
	attrs = utils.AttrsIf(attrs, "archive_size", report.Metrics.ArchiveSize)
	attrs = utils.AttrsIf(attrs, "duration_minutes", report.Metrics.DurationMinutes)
	slog.Debug("Report built", attrs...)
	fmt.Fprintln(out) //nolint:errcheck
	if p.Sink != nil {
		p.Sink.Persist(ctx, &report)
	}
	reporting.PrintSummary(out, &report, p.Palette)
	logEvent(logger, runlog.NewEvent(runlog.EventRunComplete, p.Meta.RunID, runlog.RunCompleteData(report.Summary)))

	if report.Summary.Failed > 0 {
		return &report, &ChecksFailedError{Tool: p.Meta.Tool, Failed: report.Summary.Failed}
	}
	return &report, nil
}

func logEvent(l runlog.Logger, ev runlog.Event) {
	if err := l.Log(ev); err != nil {
		slog.Warn("Failed to write event log entry", "type", ev.Type, "error", err)
	}
}

// PrintHeader writes the run banner, one indented line per title, followed
// by one line per detail.
func PrintHeader(w io.Writer, p checks.Palette, titles, details []string) {
	var b strings.Builder
	rule := strings.Repeat("=", 60)
	b.WriteString(p.Header(rule) + "\n")
	for _, t := range titles {
		b.WriteString(p.Header("           "+t) + "\n")
	}
	fmt.Fprintf(&b, "%s\n\n", p.Header(rule))
	for _, d := range details {
		b.WriteString(d + "\n")
	}
	b.WriteString("\n")
	io.WriteString(w, b.String()) //nolint:errcheck
}
