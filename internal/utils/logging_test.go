package utils

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogging_DebugDisabled(t *testing.T) {
	old := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(old)
	})

	var buf bytes.Buffer
	SetupLogging(&buf, false, true)

	slog.Debug("probe detail", "check", "DNS Resolution")
	slog.Info("run started")
	assert.Equal(t, 0, buf.Len())
	assert.False(t, slog.Default().Enabled(context.Background(), slog.LevelInfo))

	slog.Warn("could not save report")
	assert.Contains(t, buf.String(), "could not save report")
}

func TestSetupLogging_DebugEnabled(t *testing.T) {
	old := slog.Default()
	t.Cleanup(func() {
		slog.SetDefault(old)
	})

	var buf bytes.Buffer
	logger := SetupLogging(&buf, true, true)
	require.NotNil(t, logger)

	slog.Debug("probe detail", "check", "DNS Resolution")
	out := buf.String()
	assert.Contains(t, out, "probe detail")
	assert.Contains(t, out, "check=")
	assert.NotContains(t, out, "\x1b[", "NoColor must suppress escapes")
}

func TestAttrsIf(t *testing.T) {
	size := int64(42)
	var missing *int

	attrs := AttrsIf([]any{"check", "archive"}, "size", &size)
	attrs = AttrsIf(attrs, "files", missing)

	require.Len(t, attrs, 4)
	assert.Equal(t, "size", attrs[2])
	assert.Equal(t, int64(42), attrs[3])
}
