package checks

import (
	"fmt"
	"io"
	"time"

	"github.com/arunsidharrth/SDWAN/internal/models"
)

// Observer receives every record as soon as it is appended.
type Observer interface {
	Observe(models.CheckRecord)
}

// Recorder owns the state of a single run: the ordered check records, the
// outcome tally and the metrics populated by individual checks.
type Recorder struct {
	out       io.Writer
	palette   Palette
	now       func() time.Time
	observers []Observer

	tally   models.Tally
	records []models.CheckRecord
	metrics models.Metrics
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithPalette sets the console palette.
func WithPalette(p Palette) Option {
	return func(r *Recorder) { r.palette = p }
}

// WithObserver registers an observer for every record.
func WithObserver(o Observer) Option {
	return func(r *Recorder) {
		if o != nil {
			r.observers = append(r.observers, o)
		}
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) { r.now = now }
}

// NewRecorder creates a recorder that prints check lines to out.
func NewRecorder(out io.Writer, opts ...Option) *Recorder {
	if out == nil {
		out = io.Discard
	}
	r := &Recorder{out: out, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Record appends a check outcome, updates the tally and prints one line.
// A status other than pass, fail or warning is recorded as a failure.
func (r *Recorder) Record(name string, status models.CheckStatus, message string) {
	if !status.Valid() {
		status = models.StatusFail
	}
	rec := models.CheckRecord{
		Name:      name,
		Status:    status,
		Message:   message,
		Timestamp: r.now(),
	}
	r.records = append(r.records, rec)
	r.tally.Add(status)

	fmt.Fprintf(r.out, "%s - %s: %s\n", r.palette.Status(status), name, message) //nolint:errcheck

	for _, o := range r.observers {
		o.Observe(rec)
	}
}

// Pass records a passing check.
func (r *Recorder) Pass(name, message string) { r.Record(name, models.StatusPass, message) }

// Fail records a failed check.
func (r *Recorder) Fail(name, message string) { r.Record(name, models.StatusFail, message) }

// Warn records a warning.
func (r *Recorder) Warn(name, message string) { r.Record(name, models.StatusWarning, message) }

// Note prints an indented detail line without recording a check.
func (r *Recorder) Note(format string, args ...any) {
	fmt.Fprintf(r.out, "    "+format+"\n", args...) //nolint:errcheck
}

// Heading prints the section title for a checker.
func (r *Recorder) Heading(title string) {
	fmt.Fprintf(r.out, "\n%s\n", r.palette.Blue(fmt.Sprintf("Checking %s...", title))) //nolint:errcheck
}

// Palette returns the console palette.
func (r *Recorder) Palette() Palette { return r.palette }

// Tally returns the current outcome counts.
func (r *Recorder) Tally() models.Tally { return r.tally }

// Records returns a copy of the records in execution order.
func (r *Recorder) Records() []models.CheckRecord {
	out := make([]models.CheckRecord, len(r.records))
	copy(out, r.records)
	return out
}

// Metrics returns the run's metrics for checks to populate.
func (r *Recorder) Metrics() *models.Metrics { return &r.metrics }
