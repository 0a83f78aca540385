// Package simulationservice replays recorded round performances head-to-head
// to build per-round vs-all tables.
package simulationservice

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	simulationevents "github.com/clearwater-cup/matchplay/app/modules/simulation/events"
	simulationdb "github.com/clearwater-cup/matchplay/app/modules/simulation/infrastructure/repositories"
	"github.com/clearwater-cup/matchplay/internal/attr"
	"github.com/clearwater-cup/matchplay/internal/metrics/simulationmetrics"
	"github.com/clearwater-cup/matchplay/internal/results"
)

// SimulationOperationResult pairs the vs-all success payload with its failure
// payload.
type SimulationOperationResult = results.OperationResult[simulationevents.VsAllComputedPayloadV1, simulationevents.VsAllFailedPayloadV1]

// SimulationService implements the Service interface.
type SimulationService struct {
	repo    simulationdb.Repository
	logger  *slog.Logger
	metrics simulationmetrics.SimulationMetrics
	tracer  trace.Tracer
	db      *bun.DB
}

// NewSimulationService creates a new SimulationService.
func NewSimulationService(
	repo simulationdb.Repository,
	logger *slog.Logger,
	metrics simulationmetrics.SimulationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *SimulationService {
	return &SimulationService{
		repo:    repo,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
		db:      db,
	}
}

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic
// recovery.
func withTelemetry[S any, F any](
	s *SimulationService,
	ctx context.Context,
	operationName string,
	roundID string,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("round_id", roundID),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName, roundID)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.String("round_id", roundID),
				attr.ExtractCorrelationID(ctx),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName, roundID)
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)

	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("round_id", roundID),
			attr.Error(wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName, roundID)
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("round_id", roundID),
			attr.Any("failure_payload", *result.Failure),
		)
	}

	if result.IsSuccess() {
		s.metrics.RecordOperationSuccess(ctx, operationName, roundID)
	}

	return result, nil
}

// runInTx ensures the operation runs within a transaction.
func runInTx[S any, F any](
	s *SimulationService,
	ctx context.Context,
	fn func(ctx context.Context, db bun.IDB) (results.OperationResult[S, F], error),
) (results.OperationResult[S, F], error) {
	if s.db == nil {
		return fn(ctx, nil)
	}

	var result results.OperationResult[S, F]
	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		return txErr
	})

	return result, err
}
