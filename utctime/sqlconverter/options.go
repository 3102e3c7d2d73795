package sqlconverter

import (
	"context"
	"time"
)

// Logger interface for SQL query logging, operational summaries, warnings, and error reporting.
// *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// ContextualLogger interface for context-aware logging, e.g. with trace correlation.
// *slog.Logger satisfies it.
type ContextualLogger interface {
	DebugContext(ctx context.Context, msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}

// MetricsCollector receives query and exec durations, row counts and database errors.
// Adapt it to Prometheus, OpenTelemetry or any other backend.
type MetricsCollector interface {
	RecordDuration(metric string, duration time.Duration, labels map[string]string)
	IncrementCounter(metric string, labels map[string]string)
	RecordValue(metric string, value float64, labels map[string]string)
}

// ContextualMetricsCollector is a MetricsCollector that also takes the operation's context.
// The Executor prefers the context variants when the collector has them.
type ContextualMetricsCollector interface {
	MetricsCollector
	RecordDurationContext(ctx context.Context, metric string, duration time.Duration, labels map[string]string)
	IncrementCounterContext(ctx context.Context, metric string, labels map[string]string)
	RecordValueContext(ctx context.Context, metric string, value float64, labels map[string]string)
}

// SpanContext represents an active tracing span that can be updated with a status and attributes.
type SpanContext interface {
	SetStatus(status string)
	AddAttribute(key, value string)
}

// TracingCollector starts and finishes one span per query or exec.
type TracingCollector interface {
	StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, SpanContext)
	FinishSpan(spanCtx SpanContext, status string, attrs map[string]string)
}

// Option defines a functional option for configuring an Executor.
type Option func(*Executor) error

// WithLogger sets the logger for the Executor.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL queries with execution timing (development use)
// Info level: Row counts and durations (production-safe)
// Warn level: Non-critical issues like cleanup failures
// Error level: Failures that cause the operation to fail.
func WithLogger(logger Logger) Option {
	return func(e *Executor) error {
		e.logger = logger
		return nil
	}
}

// WithContextualLogger sets a context-aware logger for the Executor.
// When both loggers are set, messages go to both.
func WithContextualLogger(logger ContextualLogger) Option {
	return func(e *Executor) error {
		e.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Executor.
// It receives durations, queried timestamp counts, affected row counts and database errors.
func WithMetrics(collector MetricsCollector) Option {
	return func(e *Executor) error {
		e.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Executor.
func WithTracing(collector TracingCollector) Option {
	return func(e *Executor) error {
		e.tracingCollector = collector
		return nil
	}
}

// ModelOption defines a functional option for configuring a Model.
type ModelOption func(*Model) error

// WithDialect selects the SQL dialect translations are rendered for, "postgres" (default) or "mysql".
func WithDialect(dialect string) ModelOption {
	return func(m *Model) error {
		if _, ok := intervalTemplates[dialect]; !ok {
			return ErrUnsupportedDialect
		}

		m.dialect = dialect

		return nil
	}
}

// WithModelLogger sets the logger that reports registered translations at debug level.
func WithModelLogger(logger Logger) ModelOption {
	return func(m *Model) error {
		m.logger = logger
		return nil
	}
}
