package precheck

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/arunsidharrth/SDWAN/internal/checks"
	"github.com/arunsidharrth/SDWAN/internal/models"
	"github.com/arunsidharrth/SDWAN/internal/projectconfig"
)

const maxVersionLine = 50

var versionPattern = regexp.MustCompile(`\d+\.\d+(?:\.\d+)?`)

// exitCoder matches *exec.ExitError.
type exitCoder interface {
	ExitCode() int
}

func (s *Suite) checkTools(ctx context.Context, rec *checks.Recorder) {
	for _, tool := range s.Config.PreCheck.Tools {
		s.checkTool(ctx, rec, tool)
	}
}

func (s *Suite) checkTool(ctx context.Context, rec *checks.Recorder, tool projectconfig.ToolConfig) {
	name := "Tool: " + tool.Name

	runCtx, cancel := context.WithTimeout(ctx, s.Config.CommandTimeout())
	defer cancel()

	out, err := s.Runner.Run(runCtx, tool.Name, "--version")
	slog.Debug("Tool probe finished", "tool", tool.Name, "error", err)

	var exitErr exitCoder
	switch {
	case err == nil:
	case errors.Is(err, exec.ErrNotFound):
		rec.Fail(name, "Tool not found - Please install")
		return
	case errors.Is(err, context.DeadlineExceeded):
		rec.Fail(name, "Tool timed out (may be installed but not responding)")
		return
	case errors.As(err, &exitErr):
		rec.Fail(name, fmt.Sprintf("Tool found but returned error code %d", exitErr.ExitCode()))
		return
	default:
		rec.Fail(name, fmt.Sprintf("Error checking tool: %v", err))
		return
	}

	line := firstLine(string(out))
	if line == "" {
		line = "Version info not available"
	}

	if tool.MinVersion == "" {
		rec.Pass(name, truncate(line, maxVersionLine))
		return
	}

	status, msg := compareVersion(line, tool.MinVersion)
	rec.Record(name, status, msg)
}

// compareVersion checks the first version number in line against minVersion.
func compareVersion(line, minVersion string) (models.CheckStatus, string) {
	short := truncate(line, maxVersionLine)

	constraint, err := semver.NewConstraint(">= " + minVersion)
	if err != nil {
		return models.StatusWarning, fmt.Sprintf("%s (invalid minimum version %q)", short, minVersion)
	}

	raw := versionPattern.FindString(line)
	if raw == "" {
		return models.StatusWarning, fmt.Sprintf("%s (could not determine version, requires %s+)", short, minVersion)
	}
	v, err := semver.NewVersion(raw)
	if err != nil {
		return models.StatusWarning, fmt.Sprintf("%s (could not parse version %q)", short, raw)
	}

	if !constraint.Check(v) {
		return models.StatusFail, fmt.Sprintf("%s (requires %s+)", short, minVersion)
	}
	return models.StatusPass, fmt.Sprintf("%s (compatible)", short)
}

func firstLine(s string) string {
	s = strings.TrimLeft(s, "\r\n")
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
