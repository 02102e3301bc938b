// Package logger provides the shared logger used across the toolkit.
package logger

import (
	"fmt"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

var (
	// logger is the global logger instance
	logger *Logger
	once   sync.Once
)

// Logger wraps logrus with color helpers for CLI output.
type Logger struct {
	*logrus.Logger
	green  *color.Color
	red    *color.Color
	yellow *color.Color
	bold   *color.Color
}

// New returns the shared logger, creating it on first use.
func New() *Logger {
	once.Do(func() {
		logger = &Logger{
			Logger: logrus.New(),
			green:  color.New(color.FgGreen),
			red:    color.New(color.FgRed),
			yellow: color.New(color.FgYellow),
			bold:   color.New(color.Bold),
		}

		logger.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: "2006/01/02 15:04:05",
			FullTimestamp:   true,
			DisableSorting:  true,
		})

		if os.Getenv("FILACT_DEBUG") == "true" {
			logger.SetLevel(logrus.DebugLevel)
		} else {
			logger.SetLevel(logrus.InfoLevel)
		}
	})
	return logger
}

// Debug logs a formatted debug message.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.Logger.Debug(fmt.Sprintf(format, args...))
}

// Info logs a formatted info message.
func (l *Logger) Info(format string, args ...interface{}) {
	l.Logger.Info(fmt.Sprintf(format, args...))
}

// Warn logs a formatted warning message.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.Logger.Warn(fmt.Sprintf(format, args...))
}

// Error logs a formatted error message.
func (l *Logger) Error(format string, args ...interface{}) {
	l.Logger.Error(fmt.Sprintf(format, args...))
}

// Fatal logs a formatted message and exits.
func (l *Logger) Fatal(format string, args ...interface{}) {
	l.Logger.Fatal(fmt.Sprintf(format, args...))
}

// Success prints a green confirmation line to stdout, outside the
// structured log stream.
func (l *Logger) Success(format string, args ...interface{}) {
	l.green.Printf(format+"\n", args...)
}

// Failure prints a red error line to stderr.
func (l *Logger) Failure(format string, args ...interface{}) {
	l.red.Fprintf(os.Stderr, format+"\n", args...)
}

// IsDebugEnabled reports whether debug logging is on.
func (l *Logger) IsDebugEnabled() bool {
	return l.GetLevel() == logrus.DebugLevel
}
