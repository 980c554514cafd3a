// Package logging builds the colorized slog logger used for diagnostics.
// Diagnostics go to stderr so stdout stays reserved for command output.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
)

// ParseLevel converts a textual log level into a slog.Level
func ParseLevel(value string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", value)
	}
}

// Options configures NewLogger
type Options struct {
	Level   slog.Level
	NoColor bool
}

// NewLogger constructs a slog.Logger with a tint handler writing to w,
// or stderr when w is nil.
func NewLogger(w io.Writer, opts Options) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	handler := tint.NewHandler(w, &tint.Options{
		Level:      opts.Level,
		NoColor:    opts.NoColor,
		TimeFormat: "15:04:05",
	})

	return slog.New(handler)
}
