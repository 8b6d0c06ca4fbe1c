// internal/logbook/logbook.go
//
// Journey log for the TUI. Writing goes through zap so the file gets
// structured, timestamped entries; Tail reads the same file back for the
// in-app log panel. The terminal owns stdout/stderr, so the file is the
// only sink.

package logbook

import (
	"bufio"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logbook persists application progress to a log file.
type Logbook struct {
	path   string
	logger *zap.Logger
}

// New creates a logbook that writes to the provided path.
func New(path string) (*Logbook, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.Lock(file),
		zap.DebugLevel,
	)
	return &Logbook{path: path, logger: zap.New(core)}, nil
}

// Path returns the file backing this logbook.
func (l *Logbook) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Logger exposes the underlying zap logger for packages that log fields.
func (l *Logbook) Logger() *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l.logger
}

// Sync flushes buffered entries. Called on shutdown.
func (l *Logbook) Sync() {
	if l == nil {
		return
	}
	_ = l.logger.Sync()
}

// Tail returns up to maxLines of the most recent log entries.
func (l *Logbook) Tail(maxLines int) []string {
	if l == nil || maxLines <= 0 {
		return nil
	}
	file, err := os.Open(l.path)
	if err != nil {
		return nil
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if len(lines) == 0 {
		return nil
	}
	if len(lines) > maxLines {
		lines = lines[len(lines)-maxLines:]
	}
	return lines
}

// Info appends an informational entry.
func (l *Logbook) Info(msg string, fields ...zap.Field) {
	if l == nil {
		return
	}
	l.logger.Info(msg, fields...)
}

// Warn appends a warning entry.
func (l *Logbook) Warn(msg string, fields ...zap.Field) {
	if l == nil {
		return
	}
	l.logger.Warn(msg, fields...)
}

// Error appends an error entry.
func (l *Logbook) Error(msg string, fields ...zap.Field) {
	if l == nil {
		return
	}
	l.logger.Error(msg, fields...)
}
