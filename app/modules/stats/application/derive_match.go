package statsservice

import (
	"context"
	"errors"

	"github.com/uptrace/bun"

	matchservice "github.com/clearwater-cup/matchplay/app/modules/match/application"
	matchtypes "github.com/clearwater-cup/matchplay/app/modules/match/domain/types"
	statstypes "github.com/clearwater-cup/matchplay/app/modules/stats/domain/types"
	statsevents "github.com/clearwater-cup/matchplay/app/modules/stats/events"
	statsdb "github.com/clearwater-cup/matchplay/app/modules/stats/infrastructure/repositories"
	"github.com/clearwater-cup/matchplay/internal/attr"
	"github.com/clearwater-cup/matchplay/internal/results"
)

// DeriveMatchFacts recomputes and stores every rostered player's fact for one
// match. The summary is recomputed here rather than read back from the match
// document, so the facts always agree with the raw hole entries even if the
// stored projections lag.
func (s *StatsService) DeriveMatchFacts(ctx context.Context, matchID string) (StatsOperationResult, error) {
	s.logger.InfoContext(ctx, "Deriving player match facts",
		attr.ExtractCorrelationID(ctx),
		attr.String("match_id", matchID),
	)

	return withTelemetry(s, ctx, "DeriveMatchFacts", matchID, func(ctx context.Context) (StatsOperationResult, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (StatsOperationResult, error) {
			mc, failure, err := s.loadMatchContext(ctx, db, matchID)
			if err != nil {
				return StatsOperationResult{}, err
			}
			if failure != nil {
				return results.Failure[statsevents.PlayerMatchFactsComputedPayloadV1](*failure), nil
			}

			facts := DerivePlayerMatchFacts(*mc)
			if err := s.repo.UpsertFacts(ctx, db, facts); err != nil {
				return StatsOperationResult{}, err
			}

			aggregates, err := s.rebuildAggregates(ctx, db, facts)
			if err != nil {
				return StatsOperationResult{}, err
			}

			s.metrics.RecordFactsDerived(ctx, len(facts))
			s.logger.InfoContext(ctx, "Player match facts derived",
				attr.ExtractCorrelationID(ctx),
				attr.String("match_id", matchID),
				attr.Int("fact_count", len(facts)),
			)

			return results.Success[statsevents.PlayerMatchFactsComputedPayloadV1, statsevents.StatsDeriveFailedPayloadV1](statsevents.PlayerMatchFactsComputedPayloadV1{
				MatchID:    matchID,
				RoundID:    mc.Round.ID,
				Format:     mc.Round.Format,
				Facts:      facts,
				Aggregates: aggregates,
			}), nil
		})
	})
}

// rebuildAggregates recomputes the aggregates of every player rostered on the
// derived match from their full stored fact sets, so the published numbers
// already reflect the upsert that just ran.
func (s *StatsService) rebuildAggregates(ctx context.Context, db bun.IDB, facts []statstypes.PlayerMatchFact) (map[string]*statstypes.PlayerAggregate, error) {
	rostered := make([]string, 0, len(facts))
	for _, fact := range facts {
		rostered = append(rostered, fact.PlayerID)
	}

	allFacts, err := s.repo.GetFactsForPlayers(ctx, db, rostered)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	ids := make([]string, 0, len(allFacts))
	for _, fact := range allFacts {
		for _, id := range append([]string{fact.PlayerID}, fact.OpponentIDs...) {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}

	playerRows, err := s.repo.GetPlayers(ctx, db, ids)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(playerRows))
	tiers := make(map[string]string, len(playerRows))
	for id, row := range playerRows {
		names[id] = row.DisplayName
		tiers[id] = row.Tier
	}

	return AggregateFacts(allFacts, names, tiers), nil
}

// loadMatchContext assembles the deriver's input. Missing documents are
// business failures, not errors; the derive is retried when the data arrives.
func (s *StatsService) loadMatchContext(ctx context.Context, db bun.IDB, matchID string) (*MatchContext, *statsevents.StatsDeriveFailedPayloadV1, error) {
	match, err := s.repo.GetMatchRecord(ctx, db, matchID)
	if err != nil {
		if errors.Is(err, statsdb.ErrMatchNotFound) {
			return nil, &statsevents.StatsDeriveFailedPayloadV1{MatchID: matchID, Reason: "match not found"}, nil
		}
		return nil, nil, err
	}

	round, err := s.repo.GetRound(ctx, db, match.RoundID)
	if err != nil {
		if errors.Is(err, statsdb.ErrRoundNotFound) {
			return nil, &statsevents.StatsDeriveFailedPayloadV1{MatchID: matchID, Reason: "round not found"}, nil
		}
		return nil, nil, err
	}

	course, err := s.repo.GetCourse(ctx, db, round.CourseID)
	if err != nil {
		if errors.Is(err, statsdb.ErrCourseNotFound) {
			return nil, &statsevents.StatsDeriveFailedPayloadV1{MatchID: matchID, Reason: "course not found"}, nil
		}
		return nil, nil, err
	}

	data := match.Data()
	ids := make([]string, 0, len(data.TeamAPlayers)+len(data.TeamBPlayers))
	for _, p := range append(append([]matchtypes.PlayerInMatch{}, data.TeamAPlayers...), data.TeamBPlayers...) {
		ids = append(ids, p.PlayerID)
	}

	playerRows, err := s.repo.GetPlayers(ctx, db, ids)
	if err != nil {
		return nil, nil, err
	}
	players := make(map[string]matchtypes.Player, len(playerRows))
	for id, row := range playerRows {
		players[id] = row.Domain()
	}

	summary := matchservice.Summarize(data.Format, data)

	return &MatchContext{
		MatchID: matchID,
		Round:   round.Domain(),
		Course:  course.Domain(),
		Data:    data,
		Summary: summary,
		Players: players,
	}, nil, nil
}
