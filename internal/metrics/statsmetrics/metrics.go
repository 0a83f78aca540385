// Package statsmetrics defines the metrics surface of the stats module.
package statsmetrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StatsMetrics records stats-module operation and handler outcomes.
type StatsMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation string, matchID string)
	RecordOperationSuccess(ctx context.Context, operation string, matchID string)
	RecordOperationFailure(ctx context.Context, operation string, matchID string)
	RecordOperationDuration(ctx context.Context, operation string, duration time.Duration)
	RecordFactsDerived(ctx context.Context, count int)
	RecordHandlerSuccess(ctx context.Context, handler string)
	RecordHandlerFailure(ctx context.Context, handler string)
}

// NoOpMetrics discards everything; used by tests.
type NoOpMetrics struct{}

func (NoOpMetrics) RecordOperationAttempt(context.Context, string, string)         {}
func (NoOpMetrics) RecordOperationSuccess(context.Context, string, string)         {}
func (NoOpMetrics) RecordOperationFailure(context.Context, string, string)         {}
func (NoOpMetrics) RecordOperationDuration(context.Context, string, time.Duration) {}
func (NoOpMetrics) RecordFactsDerived(context.Context, int)                        {}
func (NoOpMetrics) RecordHandlerSuccess(context.Context, string)                   {}
func (NoOpMetrics) RecordHandlerFailure(context.Context, string)                   {}

type prometheusMetrics struct {
	operationAttempts  *prometheus.CounterVec
	operationOutcomes  *prometheus.CounterVec
	operationDurations *prometheus.HistogramVec
	factsDerived       prometheus.Counter
	handlerOutcomes    *prometheus.CounterVec
}

// NewPrometheusMetrics registers the stats metric set on the given registry.
func NewPrometheusMetrics(registry prometheus.Registerer) StatsMetrics {
	m := &prometheusMetrics{
		operationAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "matchplay",
			Subsystem: "stats",
			Name:      "operation_attempts_total",
		}, []string{"operation"}),
		operationOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "matchplay",
			Subsystem: "stats",
			Name:      "operation_outcomes_total",
		}, []string{"operation", "outcome"}),
		operationDurations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "matchplay",
			Subsystem: "stats",
			Name:      "operation_duration_seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		factsDerived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "matchplay",
			Subsystem: "stats",
			Name:      "player_match_facts_derived_total",
		}),
		handlerOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "matchplay",
			Subsystem: "stats",
			Name:      "handler_outcomes_total",
		}, []string{"handler", "outcome"}),
	}
	registry.MustRegister(
		m.operationAttempts,
		m.operationOutcomes,
		m.operationDurations,
		m.factsDerived,
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

func (m *prometheusMetrics) RecordFactsDerived(_ context.Context, count int) {
	m.factsDerived.Add(float64(count))
}

func (m *prometheusMetrics) RecordHandlerSuccess(_ context.Context, handler string) {
	m.handlerOutcomes.WithLabelValues(handler, "success").Inc()
}

func (m *prometheusMetrics) RecordHandlerFailure(_ context.Context, handler string) {
	m.handlerOutcomes.WithLabelValues(handler, "failure").Inc()
}
