package checks

import (
	"context"
	"fmt"
	"log/slog"
)

// Runner executes checkers in order against a single Recorder.
type Runner struct {
	rec *Recorder
}

// NewRunner creates a runner that records into rec.
func NewRunner(rec *Recorder) *Runner {
	return &Runner{rec: rec}
}

// Run executes every checker in order. A failing checker never stops the
// run; only a cancelled context does, in which case ctx.Err() is returned.
func (r *Runner) Run(ctx context.Context, checkers []Checker) error {
	for _, c := range checkers {
		if err := ctx.Err(); err != nil {
			return err
		}
		if cond, ok := c.(Conditional); ok && !cond.Enabled() {
			slog.Debug("Skipping check", "check", c.Name())
			continue
		}

		r.rec.Heading(c.Name())
		before := r.rec.Tally().Total()
		r.runOne(ctx, c)
		slog.Debug("Check finished", "check", c.Name(), "records", r.rec.Tally().Total()-before)
	}
	return ctx.Err()
}

func (r *Runner) runOne(ctx context.Context, c Checker) {
	defer func() {
		if p := recover(); p != nil {
			r.rec.Fail(c.Name(), fmt.Sprintf("Unexpected error: %v", p))
		}
	}()
	c.Check(ctx, r.rec)
}
