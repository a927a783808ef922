// Package checks provides the check runner shared by the pre-check and
// post-check tools: an ordered list of checkers, a recorder that tallies
// outcomes, and the console output for each recorded line.
package checks

import "context"

// Checker probes one condition group and records its outcomes.
// Implementations handle their own errors and never return them to the runner.
type Checker interface {
	// Name is the section title printed before the checker runs.
	Name() string
	// Check probes the environment and records one or more outcomes on rec.
	Check(ctx context.Context, rec *Recorder)
}

// Conditional is implemented by checkers that may be skipped based on
// the outcome of earlier checkers.
type Conditional interface {
	Enabled() bool
}

// Step is a Checker built from a title and a probe function.
type Step struct {
	// Title is the section heading, e.g. "Backup Completion".
	Title string
	// Probe performs the check.
	Probe func(ctx context.Context, rec *Recorder)
	// When, if set, gates the step. It is evaluated right before the step runs.
	When func() bool
}

var (
	_ Checker     = Step{}
	_ Conditional = Step{}
)

func (s Step) Name() string { return s.Title }

func (s Step) Check(ctx context.Context, rec *Recorder) {
	if s.Probe != nil {
		s.Probe(ctx, rec)
	}
}

func (s Step) Enabled() bool {
	return s.When == nil || s.When()
}

// Names returns the checker titles in execution order.
func Names(checkers []Checker) []string {
	names := make([]string, 0, len(checkers))
	for _, c := range checkers {
		names = append(names, c.Name())
	}
	return names
}
