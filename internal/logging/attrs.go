package logging

import (
	"log/slog"
	"time"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldRunID is the standardized structured logging key for tap run identifiers.
	FieldRunID = "run_id"
	// FieldSource is the standardized structured logging key for stream source labels.
	FieldSource = "source"
	// FieldSequence is the standardized structured logging key for 1-based buffer positions.
	FieldSequence = "sequence"
	// FieldBytes is the standardized structured logging key for buffer byte counts.
	FieldBytes = "bytes"
	// FieldDigest is the standardized structured logging key for hex digest strings.
	FieldDigest = "digest"
	// FieldAlgorithm is the standardized structured logging key for digest algorithm names.
	FieldAlgorithm = "algorithm"
	// FieldTimestamp is the standardized structured logging key for pipeline-relative buffer timestamps.
	FieldTimestamp = "timestamp"
)

type Attr = slog.Attr

func Bool(key string, value bool) Attr { return slog.Bool(key, value) }

func Duration(key string, value time.Duration) Attr { return slog.Duration(key, value) }

func Int(key string, value int) Attr { return slog.Int(key, value) }

func Int64(key string, value int64) Attr { return slog.Int64(key, value) }

func Uint64(key string, value uint64) Attr { return slog.Uint64(key, value) }

func String(key string, value string) Attr { return slog.String(key, value) }

func Error(err error) Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

// Args converts attrs to the variadic any form slog methods accept.
func Args(attrs ...Attr) []any {
	args := make([]any, 0, len(attrs))
	for _, attr := range attrs {
		args = append(args, attr)
	}
	return args
}

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return slog.New(NoopHandler{})
}

// NewComponentLogger creates a logger with a standardized component attribute.
// If logger is nil, a no-op logger is used as the base.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(String(FieldComponent, component))
}
