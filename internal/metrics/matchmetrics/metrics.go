// Package matchmetrics defines the metrics surface of the match module.
package matchmetrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// MatchMetrics records match-module operation and handler outcomes.
type MatchMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation string, matchID string)
	RecordOperationSuccess(ctx context.Context, operation string, matchID string)
	RecordOperationFailure(ctx context.Context, operation string, matchID string)
	RecordOperationDuration(ctx context.Context, operation string, duration time.Duration)
	RecordRecompute(ctx context.Context, matchID string, closed bool, resultChanged bool)
	RecordHandlerSuccess(ctx context.Context, handler string)
	RecordHandlerFailure(ctx context.Context, handler string)
}

// NoOpMetrics discards everything; used by tests.
type NoOpMetrics struct{}

func (NoOpMetrics) RecordOperationAttempt(context.Context, string, string) {}
func (NoOpMetrics) RecordOperationSuccess(context.Context, string, string) {}
func (NoOpMetrics) RecordOperationFailure(context.Context, string, string) {}
func (NoOpMetrics) RecordOperationDuration(context.Context, string, time.Duration) {
}
func (NoOpMetrics) RecordRecompute(context.Context, string, bool, bool) {}
func (NoOpMetrics) RecordHandlerSuccess(context.Context, string)        {}
func (NoOpMetrics) RecordHandlerFailure(context.Context, string)        {}

type prometheusMetrics struct {
	operationAttempts  *prometheus.CounterVec
	operationOutcomes  *prometheus.CounterVec
	operationDurations *prometheus.HistogramVec
	recomputes         *prometheus.CounterVec
	handlerOutcomes    *prometheus.CounterVec
}

// NewPrometheusMetrics registers the match metric set on the given registry.
func NewPrometheusMetrics(registry prometheus.Registerer) MatchMetrics {
	m := &prometheusMetrics{
		operationAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "matchplay",
			Subsystem: "match",
			Name:      "operation_attempts_total",
		}, []string{"operation"}),
		operationOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "matchplay",
			Subsystem: "match",
			Name:      "operation_outcomes_total",
		}, []string{"operation", "outcome"}),
		operationDurations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "matchplay",
			Subsystem: "match",
			Name:      "operation_duration_seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		recomputes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "matchplay",
			Subsystem: "match",
			Name:      "recomputes_total",
		}, []string{"closed", "result_changed"}),
		handlerOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "matchplay",
			Subsystem: "match",
			Name:      "handler_outcomes_total",
		}, []string{"handler", "outcome"}),
	}
	registry.MustRegister(
		m.operationAttempts,
		m.operationOutcomes,
		m.operationDurations,
		m.recomputes,
		m.handlerOutcomes,
	)
	return m
}

func (m *prometheusMetrics) RecordOperationAttempt(_ context.Context, operation, _ string) {
	m.operationAttempts.WithLabelValues(operation).Inc()
}

func (m *prometheusMetrics) RecordOperationSuccess(_ context.Context, operation, _ string) {
	m.operationOutcomes.WithLabelValues(operation, "success").Inc()
}

func (m *prometheusMetrics) RecordOperationFailure(_ context.Context, operation, _ string) {
	m.operationOutcomes.WithLabelValues(operation, "failure").Inc()
}

func (m *prometheusMetrics) RecordOperationDuration(_ context.Context, operation string, duration time.Duration) {
	m.operationDurations.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *prometheusMetrics) RecordRecompute(_ context.Context, _ string, closed, resultChanged bool) {
	m.recomputes.WithLabelValues(boolLabel(closed), boolLabel(resultChanged)).Inc()
}

func (m *prometheusMetrics) RecordHandlerSuccess(_ context.Context, handler string) {
	m.handlerOutcomes.WithLabelValues(handler, "success").Inc()
}

func (m *prometheusMetrics) RecordHandlerFailure(_ context.Context, handler string) {
	m.handlerOutcomes.WithLabelValues(handler, "failure").Inc()
}

func boolLabel(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
