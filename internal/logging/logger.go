package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gethue/hue-probe/internal/util"
)

// LogFileName is the file probe runs append to inside the log directory.
const LogFileName = "backend_test_curl.log"

// LogLevel represents logging verbosity levels
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// String returns the string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case LogLevelError:
		return "error"
	case LogLevelWarn:
		return "warn"
	case LogLevelDebug:
		return "debug"
	default:
		return "info"
	}
}

// ToSlogLevel converts LogLevel to slog.Level
func (l LogLevel) ToSlogLevel() slog.Level {
	switch l {
	case LogLevelError:
		return slog.LevelError
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelDebug:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// Logger is the process-wide structured log sink.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a text logger writing to w at the given level.
func NewLogger(level LogLevel, w io.Writer) *Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level.ToSlogLevel(),
	})
	return &Logger{Logger: slog.New(handler)}
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *Logger {
	return NewLogger(LogLevelError, io.Discard)
}

// WithComponent returns a logger with component context
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger: l.Logger.With("component", component),
	}
}

// WithRun tags every record with the run identifier.
func (l *Logger) WithRun(runID string) *Logger {
	return &Logger{
		Logger: l.Logger.With("run", runID),
	}
}

// WithTest returns a logger scoped to one service test.
func (l *Logger) WithTest(service, test string) *Logger {
	return &Logger{
		Logger: l.Logger.With("service", service, "test", test),
	}
}

// WithRequest scopes records to one outgoing probe request.
func (l *Logger) WithRequest(method, url string) *Logger {
	return &Logger{
		Logger: l.Logger.With("method", method, "url", url),
	}
}

// OpenLogFile opens (creating if needed) the run log in dir for appending.
func OpenLogFile(dir string) (*os.File, error) {
	if err := util.MkdirAll(dir); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, LogFileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return f, nil
}

// NewRunLogger builds the logger for a probe run: records go to stderr and
// are appended to the log file in dir. The returned closer releases the file.
func NewRunLogger(level LogLevel, dir string, stderr io.Writer) (*Logger, string, func() error, error) {
	f, err := OpenLogFile(dir)
	if err != nil {
		return nil, "", nil, err
	}
	return NewLogger(level, io.MultiWriter(stderr, f)), f.Name(), f.Close, nil
}
