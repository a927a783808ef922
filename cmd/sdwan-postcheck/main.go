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
	ExitFailure = 1 // Failed checks, no operation directory, interrupt or any other error
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCommand().ExecuteContext(ctx)
	stop()
	os.Exit(exitCode(os.Stderr, err))
}

func exitCode(w io.Writer, err error) int {
	if err == nil {
		return ExitSuccess
	}

	var failed *cli.ChecksFailedError
	switch {
	case errors.As(err, &failed):
	case errors.Is(err, errNoOperationDir):
		// Already explained on stdout.
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(w, "\nPost-check interrupted by user") //nolint:errcheck
	default:
		fmt.Fprintf(w, "error: %v\n", err) //nolint:errcheck
	}
	return ExitFailure
}
