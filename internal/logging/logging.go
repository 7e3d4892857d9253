// Package logging builds the process-wide structured logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// Initialize returns a JSON logger writing debug-level records to file, or
// a discarding logger when debug is off and no file is given. When debug is
// on without a file, logs go to the user's state directory. The returned
// close function releases the log file.
func Initialize(debug bool, file string) (*slog.Logger, func() error, error) {
	noop := func() error { return nil }
	if !debug && file == "" {
		return Discard(), noop, nil
	}

	if file == "" {
		dir, err := stateDir()
		if err != nil {
			return nil, noop, fmt.Errorf("failed to get log directory: %w", err)
		}
		file = filepath.Join(dir, "cadence.log")
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return nil, noop, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, noop, fmt.Errorf("failed to open log file: %w", err)
	}
	logger := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	logger.Debug("debug logging initialized", "log_file", file)
	return logger, f.Close, nil
}

// stateDir returns $XDG_STATE_HOME/cadence, or ~/.local/state/cadence.
func stateDir() (string, error) {
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		return filepath.Join(v, "cadence"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "state", "cadence"), nil
}
