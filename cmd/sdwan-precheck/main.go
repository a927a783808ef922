package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/arunsidharrth/SDWAN/internal/cli"
)

// Exit codes
const (
	ExitSuccess = 0 // No check failed
	ExitFailure = 1 // Failed checks, interrupt or any other error
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCommand().ExecuteContext(ctx)
	stop()
	os.Exit(exitCode(os.Stderr, err))
}

// exitCode reports err to w and maps it to the process exit code.
func exitCode(w io.Writer, err error) int {
	if err == nil {
		return ExitSuccess
	}

	var failed *cli.ChecksFailedError
	switch {
	case errors.As(err, &failed):
		// The summary already explains the failures.
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(w, "\nPre-check interrupted by user") //nolint:errcheck
	default:
		fmt.Fprintf(w, "error: %v\n", err) //nolint:errcheck
	}
	return ExitFailure
}
