// Package logging provides structured logging using Go's slog package.
package logging

import (
	"log/slog"
	"os"
	"time"
)

var (
	// defaultLogger is the global logger instance.
	defaultLogger *slog.Logger
)

func init() {
	// Initialize with a default logger (text format, Info level).
	// Diagnostics go to stderr so stdout stays usable as the
	// conversion output stream.
	InitLogger(LevelInfo, FormatText)
}

// Level represents a log level.
type Level int

const (
	// LevelDebug is for debug messages.
	LevelDebug Level = iota
	// LevelInfo is for informational messages.
	LevelInfo
	// LevelWarn is for warning messages.
	LevelWarn
	// LevelError is for error messages.
	LevelError
)

// Format represents a log output format.
type Format int

const (
	// FormatJSON outputs logs in JSON format.
	FormatJSON Format = iota
	// FormatText outputs logs in human-readable text format.
	FormatText
)

// InitLogger initializes the global logger with the specified level and format.
func InitLogger(level Level, format Format) {
	var slogLevel slog.Level
	switch level {
	case LevelDebug:
		slogLevel = slog.LevelDebug
	case LevelInfo:
		slogLevel = slog.LevelInfo
	case LevelWarn:
		slogLevel = slog.LevelWarn
	case LevelError:
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: slogLevel,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Customize timestamp format
			if a.Key == slog.TimeKey {
				return slog.String(slog.TimeKey, a.Value.Time().Format(time.RFC3339))
			}
			return a
		},
	}

	var handler slog.Handler
	if format == FormatJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

// GetLogger returns the global logger instance.
func GetLogger() *slog.Logger {
	return defaultLogger
}

// Helper functions for common logging patterns

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, args ...any) {
	defaultLogger.Debug(msg, args...)
}

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) {
	defaultLogger.Info(msg, args...)
}

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) {
	defaultLogger.Warn(msg, args...)
}

// Error logs an error message with optional key-value pairs.
func Error(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
}

// OverlapApplied logs one application of the first-wins overlap policy.
// Truncations are informational, not errors, but they are lossy and
// deserve manual review.
func OverlapApplied(lineID, kind string, offset, length, keptOffset, keptLength int) {
	defaultLogger.Warn("overlap_policy_applied",
		"line_id", lineID,
		"kind", kind,
		"offset", offset,
		"length", length,
		"kept_offset", keptOffset,
		"kept_length", keptLength,
		"dropped", keptLength == 0,
	)
}

// AnnotationError logs an annotation the conversion had to skip.
func AnnotationError(lineID, kind string, err error) {
	defaultLogger.Warn("annotation_skipped",
		"line_id", lineID,
		"kind", kind,
		"error", err.Error(),
	)
}

// ConversionSummary logs the per-document fidelity counters.
func ConversionSummary(input string, lines, rangeErrors, unknownKinds, overlaps int, sourceHash string) {
	defaultLogger.Info("conversion_summary",
		"input", input,
		"lines", lines,
		"range_errors", rangeErrors,
		"unknown_kinds", unknownKinds,
		"overlap_truncations", overlaps,
		"source_blake3", sourceHash,
	)
}
