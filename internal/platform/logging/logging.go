// Package logging builds the structured logger shared by console commands.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-logr/logr"
)

// ParseLevel maps a level name to a slog level. Empty input means info.
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

// New returns a logr.Logger writing JSON lines to w at the named level.
// A nil writer logs to stdout.
func New(w io.Writer, level string) (logr.Logger, error) {
	parsed, err := ParseLevel(level)
	if err != nil {
		return logr.Discard(), err
	}
	if w == nil {
		w = os.Stdout
	}
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parsed})
	return logr.FromSlogHandler(handler), nil
}
