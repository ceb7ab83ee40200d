// Package logging provides a small structured-logging abstraction so the
// pipeline packages do not depend on a concrete logging framework.
package logging

// Logger is the structured logger used throughout the pipeline.
type Logger interface {
	// Debug logs a debug-level message with optional fields
	Debug(msg string, fields ...Field)

	// Info logs an info-level message with optional fields
	Info(msg string, fields ...Field)

	// Warn logs a warning-level message with optional fields
	Warn(msg string, fields ...Field)

	// Error logs an error-level message with optional fields
	Error(msg string, fields ...Field)

	// WithError returns a new logger with an error field attached
	WithError(err error) Logger

	// WithField returns a new logger with a single field attached
	WithField(key string, value interface{}) Logger
}

// Field is a key-value pair attached to a log message.
type Field struct {
	Key   string
	Value interface{}
}

// Standardized field names so log output stays consistent and filterable.
const (
	FieldBank        = "bank"
	FieldContentType = "content_type"
	FieldRows        = "rows"
	FieldBatch       = "batch"
	FieldBatchSize   = "batch_size"
	FieldCount       = "count"
	FieldCategory    = "category"
	FieldModel       = "model"
)
