// Package simulationmetrics defines the metrics surface of the simulation
// module.
package simulationmetrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SimulationMetrics records simulation-module operation and handler outcomes.
type SimulationMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation string, roundID string)
	RecordOperationSuccess(ctx context.Context, operation string, roundID string)
	RecordOperationFailure(ctx context.Context, operation string, roundID string)
	RecordOperationDuration(ctx context.Context, operation string, duration time.Duration)
	RecordPairsSimulated(ctx context.Context, count int)
	RecordHandlerSuccess(ctx context.Context, handler string)
	RecordHandlerFailure(ctx context.Context, handler string)
}

// NoOpMetrics discards everything; used by tests.
type NoOpMetrics struct{}

func (NoOpMetrics) RecordOperationAttempt(context.Context, string, string)         {}
func (NoOpMetrics) RecordOperationSuccess(context.Context, string, string)         {}
func (NoOpMetrics) RecordOperationFailure(context.Context, string, string)         {}
func (NoOpMetrics) RecordOperationDuration(context.Context, string, time.Duration) {}
func (NoOpMetrics) RecordPairsSimulated(context.Context, int)                      {}
func (NoOpMetrics) RecordHandlerSuccess(context.Context, string)                   {}
func (NoOpMetrics) RecordHandlerFailure(context.Context, string)                   {}

type prometheusMetrics struct {
	operationAttempts  *prometheus.CounterVec
	operationOutcomes  *prometheus.CounterVec
	operationDurations *prometheus.HistogramVec
	pairsSimulated     prometheus.Counter
	handlerOutcomes    *prometheus.CounterVec
}

// NewPrometheusMetrics registers the simulation metric set on the registry.
func NewPrometheusMetrics(registry prometheus.Registerer) SimulationMetrics {
	m := &prometheusMetrics{
		operationAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "matchplay",
			Subsystem: "simulation",
			Name:      "operation_attempts_total",
		}, []string{"operation"}),
		operationOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "matchplay",
			Subsystem: "simulation",
			Name:      "operation_outcomes_total",
		}, []string{"operation", "outcome"}),
		operationDurations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "matchplay",
			Subsystem: "simulation",
			Name:      "operation_duration_seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		pairsSimulated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "matchplay",
			Subsystem: "simulation",
			Name:      "pairs_simulated_total",
		}),
		handlerOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "matchplay",
			Subsystem: "simulation",
			Name:      "handler_outcomes_total",
		}, []string{"handler", "outcome"}),
	}
	registry.MustRegister(
		m.operationAttempts,
		m.operationOutcomes,
		m.operationDurations,
		m.pairsSimulated,
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

func (m *prometheusMetrics) RecordPairsSimulated(_ context.Context, count int) {
	m.pairsSimulated.Add(float64(count))
}

func (m *prometheusMetrics) RecordHandlerSuccess(_ context.Context, handler string) {
	m.handlerOutcomes.WithLabelValues(handler, "success").Inc()
}

func (m *prometheusMetrics) RecordHandlerFailure(_ context.Context, handler string) {
	m.handlerOutcomes.WithLabelValues(handler, "failure").Inc()
}
