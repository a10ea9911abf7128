// Package logging provides file-based logging for clientive.
// Entries go to a single append-only file under the data directory
// (<data>/logs/clientive.log) and, optionally, to a mirror writer such as
// stderr when the server runs in the foreground.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/clientive/clientive/internal/domain"
)

// Ensure Logger implements domain.Logger interface.
var _ domain.Logger = (*Logger)(nil)

// Logger writes categorized entries to the log file.
// Fields are ordered to minimize memory padding.
type Logger struct {
	file    *os.File
	mirror  io.Writer
	now     func() time.Time
	dataDir string
	mu      sync.Mutex
	level   slog.Level
}

// New creates a new Logger that writes under dataDir.
// If dataDir is empty, file logging is disabled.
func New(dataDir string, level slog.Level) *Logger {
	return &Logger{
		dataDir: dataDir,
		level:   level,
		now:     time.Now,
	}
}

// WithMirror copies every entry to w as well.
func (l *Logger) WithMirror(w io.Writer) *Logger {
	l.mirror = w
	return l
}

// ParseLevel parses a log level string into slog.Level.
func ParseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ensureFile opens or returns the log file.
func (l *Logger) ensureFile() (*os.File, error) {
	if l.file != nil {
		return l.file, nil
	}

	path := domain.LogPath(l.dataDir)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	l.file = f
	return f, nil
}

// Close closes the log file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// formatLog formats a log entry.
// Format: [2025-12-30 09:32:51] [INFO] [import] message
func formatLog(t time.Time, level slog.Level, category, msg string) string {
	return fmt.Sprintf("[%s] [%s] [%s] %s\n",
		t.Format("2006-01-02 15:04:05"),
		levelToString(level),
		category,
		msg,
	)
}

func levelToString(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelInfo:
		return "INFO"
	case slog.LevelWarn:
		return "WARN"
	case slog.LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func (l *Logger) log(level slog.Level, category, msg string) {
	if level < l.level {
		return
	}

	entry := formatLog(l.now(), level, category, msg)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.mirror != nil {
		_, _ = io.WriteString(l.mirror, entry)
	}
	if l.dataDir == "" {
		return
	}
	if f, err := l.ensureFile(); err == nil {
		_, _ = io.WriteString(f, entry)
	}
}

// Info logs an info message.
func (l *Logger) Info(category, msg string) {
	l.log(slog.LevelInfo, category, msg)
}

// Debug logs a debug message.
func (l *Logger) Debug(category, msg string) {
	l.log(slog.LevelDebug, category, msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(category, msg string) {
	l.log(slog.LevelWarn, category, msg)
}

// Error logs an error message.
func (l *Logger) Error(category, msg string) {
	l.log(slog.LevelError, category, msg)
}
