// Package logging configures the process-wide slog logger. Records fan
// out to the console and, when a logs directory is configured, to a
// per-run log file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Manager owns the configured logger and the log file handle.
type Manager struct {
	logger *slog.Logger
	file   *os.File
}

// NewManager creates an unconfigured manager; call Setup before use.
func NewManager() *Manager {
	return &Manager{}
}

func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// handlerOptions renders timestamps as UTC RFC3339.
func handlerOptions(level slog.Level) *slog.HandlerOptions {
	return &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.UTC().Format(time.RFC3339))
				}
			}
			return a
		},
	}
}

// Setup initializes console logging at the given level, plus a log file
// under logsDir when it is non-empty. The directory is created if needed.
func (m *Manager) Setup(logsDir, level string) error {
	lvl := parseLevel(level)
	opts := handlerOptions(lvl)

	handlers := []slog.Handler{slog.NewTextHandler(os.Stderr, opts)}

	if logsDir != "" {
		if err := os.MkdirAll(logsDir, 0o755); err != nil {
			return fmt.Errorf("creating logs directory: %w", err)
		}
		path := filepath.Join(logsDir, time.Now().UTC().Format("20060102T150405")+".log")
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		m.file = f
		handlers = append(handlers, slog.NewTextHandler(f, opts))
	}

	m.logger = slog.New(NewMultiHandler(handlers...))
	m.logger.Debug("Logging initialized", "level", level)
	return nil
}

// SetupWriter configures logging against an arbitrary writer. Used by
// tests to capture output.
func (m *Manager) SetupWriter(w io.Writer, level string) {
	m.logger = slog.New(NewMultiHandler(slog.NewTextHandler(w, handlerOptions(parseLevel(level)))))
}

// Logger returns the configured logger, or slog.Default before Setup.
func (m *Manager) Logger() *slog.Logger {
	if m.logger == nil {
		return slog.Default()
	}
	return m.logger
}

// Close releases the log file, if one was opened.
func (m *Manager) Close() error {
	if m.file != nil {
		return m.file.Close()
	}
	return nil
}
