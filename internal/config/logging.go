package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// LogLevelEnv names the variable that selects the log level.
const LogLevelEnv = "NOTESPLIT_LOG_LEVEL"

// ParseLevel maps debug, info, warn and error to slog levels. The empty
// string means warn.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return slog.LevelWarn, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("unknown log level %q", s)
	}
}

// NewLogger returns a text logger on w. Diagnostics never go to stdout,
// which the MCP server reserves for the protocol.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
