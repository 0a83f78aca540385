// Package matchservice implements the match module's scoring engine and the
// service operations that drive it.
package matchservice

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	matchevents "github.com/clearwater-cup/matchplay/app/modules/match/events"
	matchdb "github.com/clearwater-cup/matchplay/app/modules/match/infrastructure/repositories"
	"github.com/clearwater-cup/matchplay/internal/attr"
	"github.com/clearwater-cup/matchplay/internal/metrics/matchmetrics"
	"github.com/clearwater-cup/matchplay/internal/results"
)

// MatchOperationResult pairs the recompute success payload with its failure
// payload.
type MatchOperationResult = results.OperationResult[matchevents.MatchRecomputedPayloadV1, matchevents.MatchRecomputeFailedPayloadV1]

// MatchService implements the Service interface.
type MatchService struct {
	repo    matchdb.Repository
	logger  *slog.Logger
	metrics matchmetrics.MatchMetrics
	tracer  trace.Tracer
	db      *bun.DB
}

// NewMatchService creates a new MatchService.
func NewMatchService(
	repo matchdb.Repository,
	logger *slog.Logger,
	metrics matchmetrics.MatchMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *MatchService {
	return &MatchService{
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
	s *MatchService,
	ctx context.Context,
	operationName string,
	matchID string,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("match_id", matchID),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName, matchID)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.String("match_id", matchID),
				attr.ExtractCorrelationID(ctx),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName, matchID)
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
			attr.String("match_id", matchID),
			attr.Error(wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName, matchID)
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.String("match_id", matchID),
			attr.Any("failure_payload", *result.Failure),
		)
	}

	if result.IsSuccess() {
		s.metrics.RecordOperationSuccess(ctx, operationName, matchID)
	}

	return result, nil
}

// runInTx ensures the operation runs within a transaction.
func runInTx[S any, F any](
	s *MatchService,
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
