package helper

import (
	"context"
	"maps"
	"sync"
	"time"
)

// MetricsCollectorSpy captures the calls of an sqlconverter.MetricsCollector for inspection in tests.
// It also implements the context variants, so tests can check which ones the Executor prefers.
type MetricsCollectorSpy struct {
	durationRecords []SpyMetricRecord
	counterRecords  []SpyMetricRecord
	valueRecords    []SpyMetricRecord
	contextCalls    int
	mu              sync.Mutex
	recordCalls     bool
}

// SpyMetricRecord is one recorded duration, counter or value call.
type SpyMetricRecord struct {
	Metric   string
	Duration time.Duration
	Value    float64
	Labels   map[string]string
}

// NewMetricsCollectorSpy creates a MetricsCollectorSpy.
// Set recordCalls to true to capture the calls for inspection in tests.
func NewMetricsCollectorSpy(recordCalls bool) *MetricsCollectorSpy {
	return &MetricsCollectorSpy{recordCalls: recordCalls}
}

func (s *MetricsCollectorSpy) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	s.record(&s.durationRecords, SpyMetricRecord{Metric: metric, Duration: duration, Labels: labels})
}

func (s *MetricsCollectorSpy) IncrementCounter(metric string, labels map[string]string) {
	s.record(&s.counterRecords, SpyMetricRecord{Metric: metric, Labels: labels})
}

func (s *MetricsCollectorSpy) RecordValue(metric string, value float64, labels map[string]string) {
	s.record(&s.valueRecords, SpyMetricRecord{Metric: metric, Value: value, Labels: labels})
}

func (s *MetricsCollectorSpy) RecordDurationContext(
	_ context.Context,
	metric string,
	duration time.Duration,
	labels map[string]string,
) {
	s.countContextCall()
	s.RecordDuration(metric, duration, labels)
}

func (s *MetricsCollectorSpy) IncrementCounterContext(_ context.Context, metric string, labels map[string]string) {
	s.countContextCall()
	s.IncrementCounter(metric, labels)
}

func (s *MetricsCollectorSpy) RecordValueContext(_ context.Context, metric string, value float64, labels map[string]string) {
	s.countContextCall()
	s.RecordValue(metric, value, labels)
}

// ContextCallCount returns how many calls went through the context variants.
func (s *MetricsCollectorSpy) ContextCallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.contextCalls
}

// CountDurationRecordsForMetric counts the duration records of metric.
func (s *MetricsCollectorSpy) CountDurationRecordsForMetric(metric string) int {
	return s.count(&s.durationRecords, metric)
}

// CountCounterRecordsForMetric counts the counter records of metric.
func (s *MetricsCollectorSpy) CountCounterRecordsForMetric(metric string) int {
	return s.count(&s.counterRecords, metric)
}

// CountValueRecordsForMetric counts the value records of metric.
func (s *MetricsCollectorSpy) CountValueRecordsForMetric(metric string) int {
	return s.count(&s.valueRecords, metric)
}

// HasDurationRecordForMetric starts a fluent chain to check a duration record.
func (s *MetricsCollectorSpy) HasDurationRecordForMetric(metric string) *MetricRecordMatcher {
	return s.match(&s.durationRecords, metric)
}

// HasCounterRecordForMetric starts a fluent chain to check a counter record.
func (s *MetricsCollectorSpy) HasCounterRecordForMetric(metric string) *MetricRecordMatcher {
	return s.match(&s.counterRecords, metric)
}

// HasValueRecordForMetric starts a fluent chain to check a value record.
func (s *MetricsCollectorSpy) HasValueRecordForMetric(metric string) *MetricRecordMatcher {
	return s.match(&s.valueRecords, metric)
}

func (s *MetricsCollectorSpy) record(records *[]SpyMetricRecord, record SpyMetricRecord) {
	if !s.recordCalls {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record.Labels = maps.Clone(record.Labels)
	*records = append(*records, record)
}

func (s *MetricsCollectorSpy) countContextCall() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.contextCalls++
}

func (s *MetricsCollectorSpy) count(records *[]SpyMetricRecord, metric string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, record := range *records {
		if record.Metric == metric {
			count++
		}
	}

	return count
}

func (s *MetricsCollectorSpy) match(records *[]SpyMetricRecord, metric string) *MetricRecordMatcher {
	s.mu.Lock()
	defer s.mu.Unlock()

	matcher := &MetricRecordMatcher{}
	for _, record := range *records {
		if record.Metric == metric {
			matcher.candidates = append(matcher.candidates, record)
		}
	}

	return matcher
}

// MetricRecordMatcher provides a fluent interface for checking metric records.
// Every With call narrows the records that still match.
type MetricRecordMatcher struct {
	candidates []SpyMetricRecord
}

// WithOperation keeps the records with the given operation label.
func (m *MetricRecordMatcher) WithOperation(operation string) *MetricRecordMatcher {
	return m.WithLabel("operation", operation)
}

// WithStatus keeps the records with the given status label.
func (m *MetricRecordMatcher) WithStatus(status string) *MetricRecordMatcher {
	return m.WithLabel("status", status)
}

// WithErrorType keeps the records with the given error_type label.
func (m *MetricRecordMatcher) WithErrorType(errorType string) *MetricRecordMatcher {
	return m.WithLabel("error_type", errorType)
}

// WithLabel keeps the records where key has the given value.
func (m *MetricRecordMatcher) WithLabel(key, value string) *MetricRecordMatcher {
	return m.filter(func(record SpyMetricRecord) bool {
		labelValue, exists := record.Labels[key]
		return exists && labelValue == value
	})
}

// WithValue keeps the value records that recorded value.
func (m *MetricRecordMatcher) WithValue(value float64) *MetricRecordMatcher {
	return m.filter(func(record SpyMetricRecord) bool { return record.Value == value })
}

// Assert returns true if at least one record met all conditions of the chain.
func (m *MetricRecordMatcher) Assert() bool {
	return len(m.candidates) > 0
}

func (m *MetricRecordMatcher) filter(keep func(SpyMetricRecord) bool) *MetricRecordMatcher {
	remaining := m.candidates[:0:0]
	for _, record := range m.candidates {
		if keep(record) {
			remaining = append(remaining, record)
		}
	}

	m.candidates = remaining

	return m
}
