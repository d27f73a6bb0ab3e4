package log

import "os"

var defaultLogger *Logger = NewText(os.Stderr)

// Default returns the default logger.
func Default() *Logger {
	return defaultLogger
}

// Trace level message with a tag.
func Trace(t any, msg string, v ...any) {
	defaultLogger.log(t, msg, LevelTrace, v...)
}

// Debug level message with a tag.
func Debug(t any, msg string, v ...any) {
	defaultLogger.log(t, msg, LevelDebug, v...)
}

// Info level message with a tag.
func Info(t any, msg string, v ...any) {
	defaultLogger.log(t, msg, LevelInfo, v...)
}

// Warn level message with a tag.
func Warn(t any, msg string, v ...any) {
	defaultLogger.log(t, msg, LevelWarn, v...)
}

// Error level message with a tag.
func Error(t any, msg string, v ...any) {
	defaultLogger.log(t, msg, LevelError, v...)
}

// Fatal level message with a tag, followed by an exit.
func Fatal(t any, msg string, v ...any) {
	defaultLogger.log(t, msg, LevelFatal, v...)
	os.Exit(1)
}
