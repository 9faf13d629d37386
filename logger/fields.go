package logger

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across pysharp.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Identity and context
	FieldTraceID   = "trace_id"
	FieldComponent = "component"
	FieldOperation = "operation"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError     = "error"
	FieldErrorType = "error_type"

	// Counts and sizes
	FieldCount   = "count"
	FieldSize    = "size"
	FieldWorkers = "workers"

	// Status
	FieldStatus = "status"

	// Files and paths
	FieldFile   = "file"
	FieldOutput = "output"
	FieldLine   = "line"
	FieldKind   = "kind"
)

// Context keys for propagating logging context
type contextKey string

const (
	traceIDKey   contextKey = "logger_trace_id"
	componentKey contextKey = "logger_component"
)

// NewTraceID returns a fresh random trace ID.
func NewTraceID() string {
	return uuid.NewString()
}

// WithTraceID adds a trace ID to the context for logging
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// TraceID returns the trace ID stored in ctx, or "".
func TraceID(ctx context.Context) string {
	traceID, _ := ctx.Value(traceIDKey).(string)
	return traceID
}

// WithComponent adds a component name to the context for logging
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, componentKey, component)
}

// FieldsFromContext extracts logging fields from context.
// Returns key-value pairs suitable for use with Infow/Errorw/etc.
func FieldsFromContext(ctx context.Context) []interface{} {
	var fields []interface{}

	if traceID, ok := ctx.Value(traceIDKey).(string); ok && traceID != "" {
		fields = append(fields, FieldTraceID, traceID)
	}
	if component, ok := ctx.Value(componentKey).(string); ok && component != "" {
		fields = append(fields, FieldComponent, component)
	}

	return fields
}

// LoggerFromContext returns a logger with fields extracted from context.
func LoggerFromContext(ctx context.Context) *zap.SugaredLogger {
	fields := FieldsFromContext(ctx)
	if len(fields) == 0 {
		return Logger
	}
	return Logger.With(fields...)
}

// ComponentLogger returns a named logger for a specific component.
// The name is bound to the global logger as it is at call time, so call it
// after Initialize.
//
//	type Generator struct {
//	    logger *zap.SugaredLogger
//	}
//
//	func NewGenerator() *Generator {
//	    return &Generator{logger: logger.ComponentLogger("csharp")}
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
//
//	fileLogger := logger.ChildLogger(baseLogger, logger.FieldFile, path)
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
