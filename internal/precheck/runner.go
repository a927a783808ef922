package precheck

//go:generate go tool mockgen -source=runner.go -destination=mock_command_runner_test.go -package=precheck

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"
)

// CommandRunner executes an external tool and returns what it printed.
type CommandRunner interface {
	// Run executes name with args and returns its standard output, or its
	// standard error when nothing was written to stdout.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// waitDelay bounds how long Run waits for I/O after the context kills the
// tool, so a child process holding the pipes open cannot stall the run.
const waitDelay = 2 * time.Second

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

var _ CommandRunner = ExecRunner{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.WaitDelay = waitDelay
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, exec.ErrNotFound) {
		return nil, ctxErr
	}

	out := stdout.Bytes()
	if len(bytes.TrimSpace(out)) == 0 {
		out = stderr.Bytes()
	}
	return out, err
}
