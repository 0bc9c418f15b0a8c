// Package log provides logging functionality to both console and file.
package log

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// FileName is the name of the log file inside the log directory.
const FileName = "trickplanner.log"

// Logger writes output to both console and a rotating log file.
type Logger struct {
	file    *lumberjack.Logger
	console io.Writer
	stderr  io.Writer
}

// New creates a new logger that writes to both console and a log file
// in logDir. The file is rotated once it grows past a few megabytes.
func New(logDir string) (*Logger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	return &Logger{
		file: &lumberjack.Logger{
			Filename:   filepath.Join(logDir, FileName),
			MaxSize:    5, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		},
		console: os.Stdout,
		stderr:  os.Stderr,
	}, nil
}

// Printf writes a formatted message to console and log file.
func (l *Logger) Printf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprint(io.MultiWriter(l.console, l.file), msg)
}

// Println writes a message to console and log file with a newline.
func (l *Logger) Println(args ...interface{}) {
	msg := fmt.Sprintln(args...)
	_, _ = fmt.Fprint(io.MultiWriter(l.console, l.file), msg)
}

// Errorf writes a formatted error message to stderr and log file.
func (l *Logger) Errorf(format string, args ...interface{}) {
	formatted := stamp(format, args...)
	_, _ = fmt.Fprint(l.stderr, formatted)
	_, _ = fmt.Fprint(l.file, formatted)
}

// Debugf writes a formatted message to the log file only.
func (l *Logger) Debugf(format string, args ...interface{}) {
	_, _ = fmt.Fprint(l.file, stamp(format, args...))
}

// Close closes the log file.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

func stamp(format string, args ...interface{}) string {
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	return fmt.Sprintf("[%s] %s\n", timestamp, fmt.Sprintf(format, args...))
}

// Global logger instance
var globalLogger *Logger

// Init initializes the global logger and redirects Go's standard log
// package to the same file.
func Init(logDir string) error {
	logger, err := New(logDir)
	if err != nil {
		return err
	}
	globalLogger = logger

	stdlog.SetOutput(logger.file)
	stdlog.SetFlags(stdlog.Ldate | stdlog.Ltime)

	return nil
}

// Printf uses the global logger to print formatted output.
func Printf(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Printf(format, args...)
	} else {
		fmt.Printf(format, args...)
	}
}

// Println uses the global logger to print output with newline.
func Println(args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Println(args...)
	} else {
		fmt.Println(args...)
	}
}

// Errorf uses the global logger to print formatted error output.
func Errorf(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Errorf(format, args...)
	} else {
		_, _ = fmt.Fprint(os.Stderr, stamp(format, args...))
	}
}

// Debugf records a message in the log file. Without an initialized
// logger it is discarded.
func Debugf(format string, args ...interface{}) {
	if globalLogger != nil {
		globalLogger.Debugf(format, args...)
	}
}

// Close closes the global logger.
func Close() error {
	if globalLogger != nil {
		err := globalLogger.Close()
		globalLogger = nil
		stdlog.SetOutput(os.Stderr)
		return err
	}
	return nil
}
