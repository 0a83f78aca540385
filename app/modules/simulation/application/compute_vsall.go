package simulationservice

import (
	"context"
	"errors"

	"github.com/uptrace/bun"

	matchtypes "github.com/clearwater-cup/matchplay/app/modules/match/domain/types"
	simulationevents "github.com/clearwater-cup/matchplay/app/modules/simulation/events"
	simulationdb "github.com/clearwater-cup/matchplay/app/modules/simulation/infrastructure/repositories"
	"github.com/clearwater-cup/matchplay/internal/attr"
	"github.com/clearwater-cup/matchplay/internal/results"
)

// ComputeVsAllForRound loads the round's matches, replays every pairing, and
// overwrites the stored table. Pairings are quadratic in entrant count but
// CPU-bound only; the pool inside ComputeVsAll keeps the wall time bounded.
func (s *SimulationService) ComputeVsAllForRound(ctx context.Context, roundID string) (SimulationOperationResult, error) {
	s.logger.InfoContext(ctx, "Computing round vs-all table",
		attr.ExtractCorrelationID(ctx),
		attr.String("round_id", roundID),
	)

	return withTelemetry(s, ctx, "ComputeVsAllForRound", roundID, func(ctx context.Context) (SimulationOperationResult, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (SimulationOperationResult, error) {
			round, err := s.repo.GetRound(ctx, db, roundID)
			if err != nil {
				if errors.Is(err, simulationdb.ErrRoundNotFound) {
					return results.Failure[simulationevents.VsAllComputedPayloadV1](simulationevents.VsAllFailedPayloadV1{
						RoundID: roundID,
						Reason:  "round not found",
					}), nil
				}
				return SimulationOperationResult{}, err
			}

			course, err := s.repo.GetCourse(ctx, db, round.CourseID)
			if err != nil {
				if errors.Is(err, simulationdb.ErrCourseNotFound) {
					return results.Failure[simulationevents.VsAllComputedPayloadV1](simulationevents.VsAllFailedPayloadV1{
						RoundID: roundID,
						Reason:  "course not found",
					}), nil
				}
				return SimulationOperationResult{}, err
			}

			matchRows, err := s.repo.GetMatchesForRound(ctx, db, roundID)
			if err != nil {
				return SimulationOperationResult{}, err
			}

			matches := make([]matchtypes.MatchData, 0, len(matchRows))
			playerIDs := make([]string, 0, len(matchRows)*4)
			for _, row := range matchRows {
				data := row.Data()
				matches = append(matches, data)
				for _, p := range data.TeamAPlayers {
					playerIDs = append(playerIDs, p.PlayerID)
				}
				for _, p := range data.TeamBPlayers {
					playerIDs = append(playerIDs, p.PlayerID)
				}
			}

			handicaps, err := s.repo.GetHandicapIndexes(ctx, db, playerIDs)
			if err != nil {
				return SimulationOperationResult{}, err
			}

			sides := BuildSideRecords(round.Format, matches, handicaps)
			records := ComputeVsAll(ctx, round.Format, sides, course.Domain())

			// A cancelled context stops the pair fan-out mid-round; the
			// tallies are partial and must not be stored or published.
			if err := ctx.Err(); err != nil {
				return SimulationOperationResult{}, err
			}

			if err := s.repo.UpsertVsAll(ctx, db, roundID, records); err != nil {
				return SimulationOperationResult{}, err
			}

			pairCount := len(sides) * (len(sides) - 1) / 2
			s.metrics.RecordPairsSimulated(ctx, pairCount)
			s.logger.InfoContext(ctx, "Round vs-all table computed",
				attr.ExtractCorrelationID(ctx),
				attr.String("round_id", roundID),
				attr.Int("entrants", len(sides)),
				attr.Int("pairs", pairCount),
			)

			return results.Success[simulationevents.VsAllComputedPayloadV1, simulationevents.VsAllFailedPayloadV1](simulationevents.VsAllComputedPayloadV1{
				RoundID: roundID,
				Format:  round.Format,
				Records: records,
			}), nil
		})
	})
}
