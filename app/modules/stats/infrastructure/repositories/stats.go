// Package statsdb implements the stats module's persistence on bun.
package statsdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	statstypes "github.com/clearwater-cup/matchplay/app/modules/stats/domain/types"
)

var (
	ErrMatchNotFound  = errors.New("match not found")
	ErrRoundNotFound  = errors.New("round not found")
	ErrCourseNotFound = errors.New("course not found")
)

// StatsDBImpl implements Repository on bun.
type StatsDBImpl struct {
	DB *bun.DB
}

func (r *StatsDBImpl) conn(db bun.IDB) bun.IDB {
	if db != nil {
		return db
	}
	return r.DB
}

func (r *StatsDBImpl) GetMatchRecord(ctx context.Context, db bun.IDB, matchID string) (*MatchRecord, error) {
	var match MatchRecord
	err := r.conn(db).NewSelect().
		Model(&match).
		Where("id = ?", matchID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to fetch match %s: %w", matchID, err)
	}
	return &match, nil
}

func (r *StatsDBImpl) GetRound(ctx context.Context, db bun.IDB, roundID string) (*Round, error) {
	var round Round
	err := r.conn(db).NewSelect().
		Model(&round).
		Where("id = ?", roundID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoundNotFound
		}
		return nil, fmt.Errorf("failed to fetch round %s: %w", roundID, err)
	}
	return &round, nil
}

func (r *StatsDBImpl) GetCourse(ctx context.Context, db bun.IDB, courseID string) (*Course, error) {
	var course Course
	err := r.conn(db).NewSelect().
		Model(&course).
		Where("id = ?", courseID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to fetch course %s: %w", courseID, err)
	}
	return &course, nil
}

func (r *StatsDBImpl) GetPlayers(ctx context.Context, db bun.IDB, playerIDs []string) (map[string]Player, error) {
	if len(playerIDs) == 0 {
		return map[string]Player{}, nil
	}

	var players []Player
	err := r.conn(db).NewSelect().
		Model(&players).
		Where("id IN (?)", bun.In(playerIDs)).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch players: %w", err)
	}

	byID := make(map[string]Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}
	return byID, nil
}

func (r *StatsDBImpl) UpsertFacts(ctx context.Context, db bun.IDB, facts []statstypes.PlayerMatchFact) error {
	if len(facts) == 0 {
		return nil
	}

	now := time.Now().UTC()
	rows := make([]PlayerMatchFactRow, 0, len(facts))
	for _, fact := range facts {
		rows = append(rows, PlayerMatchFactRow{
			PlayerID:  fact.PlayerID,
			MatchID:   fact.MatchID,
			RoundID:   fact.RoundID,
			Fact:      fact,
			UpdatedAt: now,
		})
	}

	_, err := r.conn(db).NewInsert().
		Model(&rows).
		On("CONFLICT (player_id, match_id) DO UPDATE").
		Set("round_id = EXCLUDED.round_id").
		Set("fact = EXCLUDED.fact").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert facts: %w", err)
	}
	return nil
}

func (r *StatsDBImpl) GetFactsForPlayers(ctx context.Context, db bun.IDB, playerIDs []string) ([]statstypes.PlayerMatchFact, error) {
	if len(playerIDs) == 0 {
		return nil, nil
	}

	var rows []PlayerMatchFactRow
	err := r.conn(db).NewSelect().
		Model(&rows).
		Where("player_id IN (?)", bun.In(playerIDs)).
		Order("match_id ASC", "player_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch facts: %w", err)
	}

	facts := make([]statstypes.PlayerMatchFact, 0, len(rows))
	for _, row := range rows {
		facts = append(facts, row.Fact)
	}
	return facts, nil
}
