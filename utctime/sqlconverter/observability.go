package sqlconverter

import (
	"context"
	"fmt"
	"math"
	"time"
)

// logQueryWithDuration logs SQL queries with execution time at debug level if a logger is configured.
func (e *Executor) logQueryWithDuration(ctx context.Context, sqlQuery string, action string, duration time.Duration) {
	args := []any{logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery}

	if e.logger != nil {
		e.logger.Debug(logMsgSQLExecuted+action, args...)
	}

	if e.contextualLogger != nil {
		e.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+action, args...)
	}
}

// logOperation logs operational information at info level if a logger is configured.
func (e *Executor) logOperation(ctx context.Context, action string, args ...any) {
	if e.logger != nil {
		e.logger.Info(logMsgOperation+action, args...)
	}

	if e.contextualLogger != nil {
		e.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
	}
}

func (e *Executor) logWarn(ctx context.Context, message string, args ...any) {
	if e.logger != nil {
		e.logger.Warn(message, args...)
	}

	if e.contextualLogger != nil {
		e.contextualLogger.WarnContext(ctx, message, args...)
	}
}

// logError logs error information at the error level if a logger is configured.
func (e *Executor) logError(ctx context.Context, message string, err error, args ...any) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if e.logger != nil {
		e.logger.Error(message, allArgs...)
	}

	if e.contextualLogger != nil {
		e.contextualLogger.ErrorContext(ctx, message, allArgs...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

// recordDurationMetric records a duration, using the context variant if the collector supports it.
func (e *Executor) recordDurationMetric(ctx context.Context, metric string, duration time.Duration, labels map[string]string) {
	if e.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := e.metricsCollector.(ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metric, duration, labels)
		return
	}

	e.metricsCollector.RecordDuration(metric, duration, labels)
}

// recordValueMetric records a value, using the context variant if the collector supports it.
func (e *Executor) recordValueMetric(ctx context.Context, metric string, value float64, labels map[string]string) {
	if e.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := e.metricsCollector.(ContextualMetricsCollector); ok {
		contextualCollector.RecordValueContext(ctx, metric, value, labels)
		return
	}

	e.metricsCollector.RecordValue(metric, value, labels)
}

// incrementCounterMetric increments a counter, using the context variant if the collector supports it.
func (e *Executor) incrementCounterMetric(ctx context.Context, metric string, labels map[string]string) {
	if e.metricsCollector == nil {
		return
	}

	if contextualCollector, ok := e.metricsCollector.(ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metric, labels)
		return
	}

	e.metricsCollector.IncrementCounter(metric, labels)
}

// operationObserver records the metrics and the tracing span of one query or exec call.
type operationObserver struct {
	e              *Executor
	ctx            context.Context
	operation      string
	durationMetric string
	span           SpanContext
}

// startObserving opens the span for operation and returns the context to run the statement with.
func (e *Executor) startObserving(
	ctx context.Context,
	operation string,
	spanName string,
	durationMetric string,
) (*operationObserver, context.Context) {
	o := &operationObserver{
		e:              e,
		ctx:            ctx,
		operation:      operation,
		durationMetric: durationMetric,
	}

	if e.tracingCollector != nil {
		ctx, o.span = e.tracingCollector.StartSpan(ctx, spanName, map[string]string{spanAttrOperation: operation})
		o.ctx = ctx
	}

	return o, ctx
}

// finishError records a failed call. A zero duration means the statement never reached the database.
func (o *operationObserver) finishError(errorType string, duration time.Duration) {
	o.e.recordDurationMetric(o.ctx, o.durationMetric, duration, o.labels(statusError))

	errorLabels := o.labels(statusError)
	errorLabels[spanAttrErrorType] = errorType
	o.e.incrementCounterMetric(o.ctx, metricDatabaseErrors, errorLabels)

	if o.span == nil {
		return
	}

	o.span.SetStatus(statusError)
	o.span.AddAttribute(spanAttrErrorType, errorType)
	if duration > 0 {
		o.span.AddAttribute(spanAttrDurationMS, formatMilliseconds(duration))
	}

	o.e.tracingCollector.FinishSpan(o.span, statusError, map[string]string{spanAttrErrorType: errorType})
}

// finishSuccess records a successful call together with the number of rows it returned or changed.
func (o *operationObserver) finishSuccess(countMetric, countAttr string, count int64, duration time.Duration) {
	o.e.recordDurationMetric(o.ctx, o.durationMetric, duration, o.labels(statusSuccess))
	o.e.recordValueMetric(o.ctx, countMetric, float64(count), o.labels(statusSuccess))

	if o.span == nil {
		return
	}

	o.span.SetStatus(statusSuccess)
	o.span.AddAttribute(countAttr, fmt.Sprintf("%d", count))
	o.span.AddAttribute(spanAttrDurationMS, formatMilliseconds(duration))

	o.e.tracingCollector.FinishSpan(o.span, statusSuccess, map[string]string{countAttr: fmt.Sprintf("%d", count)})
}

func (o *operationObserver) labels(status string) map[string]string {
	return map[string]string{
		spanAttrOperation: o.operation,
		labelStatus:       status,
	}
}

func formatMilliseconds(d time.Duration) string {
	return fmt.Sprintf("%.2f", toMilliseconds(d))
}
