package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

func logLevel(verbose, debug bool) slog.Level {
	switch {
	case debug:
		return slog.LevelDebug
	case verbose:
		return slog.LevelInfo
	default:
		return slog.LevelWarn
	}
}

// newFileLogger opens path for appending and returns a text logger writing to
// it. The TUI owns stdout, so nothing is logged to the terminal.
func newFileLogger(path string, verbose, debug bool) (*slog.Logger, io.Closer, error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: logLevel(verbose, debug)})
	return slog.New(handler), f, nil
}

// newStderrLogger is used by the non-interactive subcommands
func newStderrLogger(w io.Writer, verbose, debug bool) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel(verbose, debug)}))
}
