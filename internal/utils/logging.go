package utils

import (
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
)

// SetupLogging installs a tint handler on the default slog logger.
// Only warnings and errors are shown unless debug is set, which adds
// probe-level detail.
func SetupLogging(w io.Writer, debug, noColor bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}

	logger := slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    noColor,
	}))
	slog.SetDefault(logger)
	return logger
}

// AttrsIf appends name/value to attrs only when v is non-nil.
func AttrsIf[T any](attrs []any, name string, v *T) []any {
	if v != nil {
		attrs = append(attrs, name, *v)
	}
	return attrs
}
