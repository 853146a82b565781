package logging

import (
	"os"
)

var globalLogger *Logger

// The global logger starts from the environment so early startup code can
// log before the config package has run. Configure replaces it once the
// real settings are loaded.
func init() {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}

	globalLogger = New(Config{
		Level:       level,
		Output:      os.Stdout,
		EnableColor: os.Getenv("LOG_COLOR") != "false",
	})
}

// Configure replaces the global logger with one built from config.
func Configure(config Config) {
	globalLogger = New(config)
}

// WithPrefix returns a logger that tags every line with the given
// component prefix.
func WithPrefix(prefix string) *Logger {
	return globalLogger.WithPrefix(prefix)
}

// Package-level logging funcs delegating to the global logger.

func Debug(args ...interface{}) {
	globalLogger.Debug(args...)
}

func Debugf(format string, args ...interface{}) {
	globalLogger.Debugf(format, args...)
}

func Info(args ...interface{}) {
	globalLogger.Info(args...)
}

func Infof(format string, args ...interface{}) {
	globalLogger.Infof(format, args...)
}

func Warn(args ...interface{}) {
	globalLogger.Warn(args...)
}

func Warnf(format string, args ...interface{}) {
	globalLogger.Warnf(format, args...)
}

func Error(args ...interface{}) {
	globalLogger.Error(args...)
}

func Errorf(format string, args ...interface{}) {
	globalLogger.Errorf(format, args...)
}

// Fatal logs at FATAL level and exits.
func Fatal(args ...interface{}) {
	globalLogger.Fatal(args...)
}

func Fatalf(format string, args ...interface{}) {
	globalLogger.Fatalf(format, args...)
}
