package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Options configures the process logger.
type Options struct {
	Service   string
	Level     string
	Path      string // empty discards output; the TUI owns stdout
	AddSource bool
}

// New builds a JSON slog logger, installs it as the default and returns a
// close func for the underlying file.
func New(opts Options) (*slog.Logger, func() error, error) {
	var w io.Writer = io.Discard
	closeFn := func() error { return nil }
	if opts.Path != "" {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("mkdir log dir: %w", err)
		}
		f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = f.Close
	}

	base := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     ParseLevel(opts.Level),
		AddSource: opts.AddSource,
	}))
	if opts.Service != "" {
		base = base.With("service", opts.Service)
	}

	slog.SetDefault(base)
	return base, closeFn, nil
}

// ParseLevel maps a config string to a slog level, defaulting to info.
func ParseLevel(lvl string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
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
