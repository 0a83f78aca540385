package matchservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	matchtypes "github.com/clearwater-cup/matchplay/app/modules/match/domain/types"
	matchevents "github.com/clearwater-cup/matchplay/app/modules/match/events"
	matchdb "github.com/clearwater-cup/matchplay/app/modules/match/infrastructure/repositories"
	"github.com/clearwater-cup/matchplay/internal/attr"
	"github.com/clearwater-cup/matchplay/internal/results"
)

// EnterHoleScore stores one hole entry and rederives the match. Entries for
// holes earlier than the furthest played are how corrections happen; the
// rederivation can reopen a previously closed match.
func (s *MatchService) EnterHoleScore(ctx context.Context, matchID string, holeNumber int, entry matchtypes.HoleEntry) (MatchOperationResult, error) {
	s.logger.InfoContext(ctx, "Entering hole score",
		attr.ExtractCorrelationID(ctx),
		attr.String("match_id", matchID),
		attr.Int("hole_number", holeNumber),
	)

	return withTelemetry(s, ctx, "EnterHoleScore", matchID, func(ctx context.Context) (MatchOperationResult, error) {
		if holeNumber < 1 || holeNumber > matchtypes.HoleCount {
			return results.Failure[matchevents.MatchRecomputedPayloadV1](matchevents.MatchRecomputeFailedPayloadV1{
				MatchID: matchID,
				Reason:  fmt.Sprintf("hole number %d out of range", holeNumber),
			}), nil
		}

		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (MatchOperationResult, error) {
			match, err := s.repo.UpsertHoleEntry(ctx, db, matchID, holeNumber, entry)
			if err != nil {
				if errors.Is(err, matchdb.ErrMatchNotFound) {
					return results.Failure[matchevents.MatchRecomputedPayloadV1](matchevents.MatchRecomputeFailedPayloadV1{
						MatchID: matchID,
						Reason:  "match not found",
					}), nil
				}
				return MatchOperationResult{}, err
			}
			return s.rederive(ctx, db, match)
		})
	})
}

// RecomputeMatch rederives the match state without touching the raw entries.
// Running it twice on unchanged data persists identical projections and
// reports ResultChanged=false the second time.
func (s *MatchService) RecomputeMatch(ctx context.Context, matchID string) (MatchOperationResult, error) {
	s.logger.InfoContext(ctx, "Recomputing match",
		attr.ExtractCorrelationID(ctx),
		attr.String("match_id", matchID),
	)

	return withTelemetry(s, ctx, "RecomputeMatch", matchID, func(ctx context.Context) (MatchOperationResult, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (MatchOperationResult, error) {
			match, err := s.repo.GetMatch(ctx, db, matchID)
			if err != nil {
				if errors.Is(err, matchdb.ErrMatchNotFound) {
					return results.Failure[matchevents.MatchRecomputedPayloadV1](matchevents.MatchRecomputeFailedPayloadV1{
						MatchID: matchID,
						Reason:  "match not found",
					}), nil
				}
				return MatchOperationResult{}, err
			}
			return s.rederive(ctx, db, match)
		})
	})
}

// rederive runs the full summarizer walk and persists the fresh projections.
func (s *MatchService) rederive(ctx context.Context, db bun.IDB, match *matchdb.Match) (MatchOperationResult, error) {
	summary := Summarize(match.Format, match.Data())
	status := summary.Status()
	result := summary.Result()

	resultChanged := match.Result == nil || *match.Result != result

	if err := s.repo.UpdateDerivedState(ctx, db, match.ID, status, result); err != nil {
		return MatchOperationResult{}, err
	}

	s.metrics.RecordRecompute(ctx, match.ID, summary.Closed, resultChanged)
	s.logger.InfoContext(ctx, "Match rederived",
		attr.ExtractCorrelationID(ctx),
		attr.String("match_id", match.ID),
		attr.Int("thru", summary.Thru),
		attr.Int("margin", summary.Margin),
		attr.Bool("closed", summary.Closed),
		attr.Bool("result_changed", resultChanged),
	)

	return results.Success[matchevents.MatchRecomputedPayloadV1, matchevents.MatchRecomputeFailedPayloadV1](matchevents.MatchRecomputedPayloadV1{
		MatchID:       match.ID,
		RoundID:       match.RoundID,
		Format:        match.Format,
		Status:        status,
		Result:        result,
		ResultChanged: resultChanged,
	}), nil
}
