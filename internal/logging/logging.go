// Package logging provides the debug logger shared by all packages.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Logger is the public logger instance accessible from all packages.
// It discards everything until Initialize enables debug output.
var Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))

// Options controls where debug logs go.
type Options struct {
	Debug    bool
	File     string
	MaxFiles int
	// Dir overrides the rotating log directory. Empty means the OS state dir.
	Dir string
}

// Initialize sets up the logger. Nothing is ever written to stdout, since
// stdout is embedded in the shell prompt.
func Initialize(opts Options) (io.Closer, error) {
	if !opts.Debug && opts.File == "" {
		Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
		return nopCloser{}, nil
	}

	var logFilePath string
	if opts.File != "" {
		// Custom file, no rotation
		logFilePath = opts.File
		if err := os.MkdirAll(filepath.Dir(logFilePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	} else {
		logDir := opts.Dir
		if logDir == "" {
			var err error
			logDir, err = getLogDir()
			if err != nil {
				return nil, fmt.Errorf("failed to get log directory: %w", err)
			}
		}
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}

		if opts.MaxFiles > 0 {
			if err := rotateLogs(logDir, opts.MaxFiles); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: log rotation failed: %v\n", err)
			}
		}

		logFilePath = filepath.Join(logDir, fmt.Sprintf("%s.log", uuid.New().String()))
	}

	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	Logger = slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: slog.LevelDebug}))
	Logger.Debug("Debug logging initialized", "log_file", logFilePath, "pid", os.Getpid())

	return logFile, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// rotateLogs deletes the oldest *.log files in dir so that, once the next
// log file is created, at most maxFiles remain.
func rotateLogs(dir string, maxFiles int) error {
	paths, err := filepath.Glob(filepath.Join(dir, "*.log"))
	if err != nil {
		return fmt.Errorf("failed to list log files: %w", err)
	}

	excess := len(paths) - (maxFiles - 1)
	if excess <= 0 {
		return nil
	}

	// Unreadable files sort as oldest and go first
	modTimes := make(map[string]time.Time, len(paths))
	for _, path := range paths {
		if info, err := os.Stat(path); err == nil {
			modTimes[path] = info.ModTime()
		}
	}
	slices.SortFunc(paths, func(a, b string) int {
		return modTimes[a].Compare(modTimes[b])
	})

	var errs []error
	for _, path := range paths[:excess] {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// getLogDir returns $XDG_STATE_HOME/gitprompt, defaulting to ~/.local/state.
func getLogDir() (string, error) {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		stateHome = filepath.Join(homeDir, ".local", "state")
	}
	return filepath.Join(stateHome, "gitprompt"), nil
}
