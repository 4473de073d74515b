// Package logging sets up the process-wide slog logger. A terminal UI owns
// stdout and stderr, so records go to a file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation limits of the log file.
const (
	maxSizeMB  = 10
	maxBackups = 3
	maxAgeDays = 28
)

// DefaultPath returns the log file used when none is configured.
func DefaultPath() string {
	return filepath.Join(os.TempDir(), "longview.log")
}

// Logger is a file-backed logger whose level can change at runtime.
type Logger struct {
	*slog.Logger

	level *slog.LevelVar
	file  io.Closer
}

// Open creates or appends to the log file at path (DefaultPath when empty)
// and installs the logger as slog.Default. The file is rotated once it grows
// past maxSizeMB.
func Open(path string, level slog.Level) (*Logger, error) {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	// lumberjack opens lazily, so surface permission problems here.
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	f.Close()

	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
	}
	l := New(w, level)
	l.file = w
	slog.SetDefault(l.Logger)
	l.Info("logger initialized", "path", path, "level", level)
	return l, nil
}

// New returns a logger writing text records to w.
func New(w io.Writer, level slog.Level) *Logger {
	levelVar := new(slog.LevelVar)
	levelVar.Set(level)
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: levelVar})
	return &Logger{Logger: slog.New(handler), level: levelVar}
}

// SetLevel changes the minimum level.
func (l *Logger) SetLevel(level slog.Level) {
	l.level.Set(level)
}

// Component returns a logger tagged with the component name.
func (l *Logger) Component(name string) *slog.Logger {
	return l.With(slog.String("component", name))
}

// Close closes the log file.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}
