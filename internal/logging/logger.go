package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	clog "github.com/charmbracelet/log"
	"github.com/cristianoliveira/forecast-desk/internal/colors"
)

// Logger is the structured logging interface.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	// With returns a new logger with additional key-value pairs.
	With(args ...any) Logger
	// Shutdown flushes any buffered logs and releases resources.
	Shutdown() error
}

// fileLogger writes JSON lines through charmbracelet/log.
type fileLogger struct {
	clogger *clog.Logger
	file    *os.File
	fields  []any
	path    string
}

// Init opens a log file according to cfg. A disabled config yields a no-op logger.
func Init(cfg Config) (Logger, error) {
	if !cfg.Enabled {
		return Nop(), nil
	}
	logDir := cfg.Dir
	if logDir == "" {
		dir, err := LogDir()
		if err != nil {
			return nil, fmt.Errorf("logging: determine log directory: %w", err)
		}
		logDir = dir
	} else if err := os.MkdirAll(logDir, 0700); err != nil {
		return nil, fmt.Errorf("logging: create log directory: %w", err)
	}
	if err := rotate(logDir, cfg.MaxFiles); err != nil {
		fmt.Fprintf(os.Stderr, "log rotation failed: %v\n", err)
	}

	name := fmt.Sprintf("%s%s_PID%d_%s.log",
		filePrefix,
		time.Now().Format("20060102_150405"),
		cfg.PID,
		strings.ReplaceAll(cfg.Command, " ", "_"))
	path := filepath.Join(logDir, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("logging: open log file: %w", err)
	}

	clogger := clog.NewWithOptions(f, clog.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339Nano,
		Level:           parseLevel(cfg.Level),
	})
	clogger.SetFormatter(clog.JSONFormatter)
	clogger = clogger.With("pid", cfg.PID, "command", cfg.Command)

	return &fileLogger{
		clogger: clogger,
		file:    f,
		path:    path,
	}, nil
}

func parseLevel(level string) clog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return clog.DebugLevel
	case "warn", "warning":
		return clog.WarnLevel
	case "error":
		return clog.ErrorLevel
	default:
		return clog.InfoLevel
	}
}

func (l *fileLogger) Debug(msg string, args ...any) { l.log(clog.DebugLevel, msg, args) }
func (l *fileLogger) Info(msg string, args ...any)  { l.log(clog.InfoLevel, msg, args) }
func (l *fileLogger) Warn(msg string, args ...any)  { l.log(clog.WarnLevel, msg, args) }
func (l *fileLogger) Error(msg string, args ...any) { l.log(clog.ErrorLevel, msg, args) }

func (l *fileLogger) log(level clog.Level, msg string, args []any) {
	all := make([]any, 0, len(l.fields)+len(args))
	all = append(all, l.fields...)
	all = append(all, args...)
	l.clogger.Log(level, msg, all...)
}

func (l *fileLogger) With(args ...any) Logger {
	fields := make([]any, 0, len(l.fields)+len(args))
	fields = append(fields, l.fields...)
	fields = append(fields, args...)
	return &fileLogger{
		clogger: l.clogger,
		file:    l.file,
		fields:  fields,
		path:    l.path,
	}
}

// Shutdown closes the file. Loggers derived through With share it.
func (l *fileLogger) Shutdown() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
func (n nopLogger) With(...any) Logger { return n }
func (nopLogger) Shutdown() error      { return nil }

// Nop returns a logger that discards everything.
func Nop() Logger { return nopLogger{} }

var (
	globalLogger Logger
	globalMu     sync.RWMutex
)

// InitGlobal installs a global logger built from the global configuration.
// Calling it again replaces the previous logger after shutting it down.
func InitGlobal(command string) error {
	l, err := Init(FromGlobalConfig(command))
	if err != nil {
		return err
	}
	SetGlobal(l)
	if path := CurrentLogFile(); path != "" {
		colors.Debug("Logging to file:", path)
	}
	return nil
}

// SetGlobal replaces the global logger and mirrors console output into it.
func SetGlobal(l Logger) {
	globalMu.Lock()
	previous := globalLogger
	globalLogger = l
	globalMu.Unlock()
	if previous != nil && previous != l {
		_ = previous.Shutdown()
	}
	colors.SetLogger(l)
}

// GetGlobal returns the global logger, or a no-op logger if not initialized.
func GetGlobal() Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if globalLogger == nil {
		return Nop()
	}
	return globalLogger
}

// Debug logs a debug message using the global logger.
func Debug(msg string, args ...any) { GetGlobal().Debug(msg, args...) }

// Info logs an info message using the global logger.
func Info(msg string, args ...any) { GetGlobal().Info(msg, args...) }

// Warn logs a warning message using the global logger.
func Warn(msg string, args ...any) { GetGlobal().Warn(msg, args...) }

// Error logs an error message using the global logger.
func Error(msg string, args ...any) { GetGlobal().Error(msg, args...) }

// With returns a logger that resolves the global logger on every call, so it
// keeps working when the global logger is installed after it was created.
func With(args ...any) Logger {
	return deferredLogger{fields: args}
}

// ShutdownGlobal shuts down the global logger.
func ShutdownGlobal() error {
	globalMu.Lock()
	defer globalMu.Unlock()
	if globalLogger == nil {
		return nil
	}
	err := globalLogger.Shutdown()
	globalLogger = nil
	return err
}

// CurrentLogFile returns the path of the active log file, or "".
func CurrentLogFile() string {
	globalMu.RLock()
	defer globalMu.RUnlock()
	if impl, ok := globalLogger.(*fileLogger); ok {
		return impl.path
	}
	return ""
}

type deferredLogger struct {
	fields []any
}

func (d deferredLogger) Debug(msg string, args ...any) {
	GetGlobal().With(d.fields...).Debug(msg, args...)
}

func (d deferredLogger) Info(msg string, args ...any) {
	GetGlobal().With(d.fields...).Info(msg, args...)
}

func (d deferredLogger) Warn(msg string, args ...any) {
	GetGlobal().With(d.fields...).Warn(msg, args...)
}

func (d deferredLogger) Error(msg string, args ...any) {
	GetGlobal().With(d.fields...).Error(msg, args...)
}

func (d deferredLogger) With(args ...any) Logger {
	fields := make([]any, 0, len(d.fields)+len(args))
	fields = append(fields, d.fields...)
	fields = append(fields, args...)
	return deferredLogger{fields: fields}
}

func (deferredLogger) Shutdown() error { return nil }
