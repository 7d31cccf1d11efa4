package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/tendril/internal/logging"
)

// createLogger configures the application logger. While the canvas owns the
// terminal, logs only go to the configured file (or nowhere).
func createLogger(opts RunOptions, canvas bool) (*slog.Logger, func(), error) {
	level, err := logging.ParseLevel(opts.Config.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	if opts.Debug {
		level = slog.LevelDebug
	}
	json := opts.Config.Log.Format == "json"

	if path := opts.Config.Log.File; path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		logger := logging.NewWith(logging.Options{Level: level, JSON: json, Writer: f})
		return logger, func() { _ = f.Close() }, nil
	}

	if canvas && !opts.Debug {
		return logging.NewNop(), func() {}, nil
	}
	logger := logging.NewWith(logging.Options{Level: level, JSON: json, Writer: opts.Stderr})
	return logger, func() {}, nil
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

func isInterrupted(err error) bool {
	return errors.Is(err, context.Canceled)
}
