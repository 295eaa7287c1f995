package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"mediapress/internal/config"
)

// LogFileName is the file written inside the configured log directory.
const LogFileName = "mediapress.log"

// Options describes logger construction parameters.
type Options struct {
	Level string
	// Format is "console" or "json" and applies to Console only.
	Format string
	// Console defaults to stderr so stdout stays free for summaries.
	Console io.Writer
	// FilePath, when set, receives a JSON copy of every record.
	FilePath string
}

// New constructs a slog logger using the provided options. The returned
// close function releases the log file, if any, and is never nil.
func New(opts Options) (*slog.Logger, func() error, error) {
	level := new(slog.LevelVar)
	level.Set(parseLevel(opts.Level))

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	var handlers teeHandler
	switch format := strings.ToLower(strings.TrimSpace(opts.Format)); format {
	case "", "console":
		handlers = append(handlers, newConsoleHandler(console, level))
	case "json":
		handlers = append(handlers, newJSONHandler(console, level))
	default:
		return nil, nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}

	closeFn := func() error { return nil }
	if opts.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(opts.FilePath), 0o755); err != nil {
			return nil, nil, fmt.Errorf("ensure log directory: %w", err)
		}
		file, err := os.OpenFile(opts.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file %s: %w", opts.FilePath, err)
		}
		handlers = append(handlers, newJSONHandler(file, level))
		closeFn = file.Close
	}

	if len(handlers) == 1 {
		return slog.New(handlers[0]), closeFn, nil
	}
	return slog.New(handlers), closeFn, nil
}

// NewFromConfig builds the logger described by the [logging] and
// paths.log_dir settings.
func NewFromConfig(cfg *config.Config) (*slog.Logger, func() error, error) {
	if cfg == nil {
		return New(Options{})
	}
	opts := Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	}
	if cfg.Paths.LogDir != "" {
		opts.FilePath = filepath.Join(cfg.Paths.LogDir, LogFileName)
	}
	return New(opts)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
