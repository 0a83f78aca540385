// Package simulationdb implements the simulation module's persistence on bun.
package simulationdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	simulationtypes "github.com/clearwater-cup/matchplay/app/modules/simulation/domain/types"
)

var (
	ErrRoundNotFound  = errors.New("round not found")
	ErrCourseNotFound = errors.New("course not found")
)

// SimulationDBImpl implements Repository on bun.
type SimulationDBImpl struct {
	DB *bun.DB
}

func (r *SimulationDBImpl) conn(db bun.IDB) bun.IDB {
	if db != nil {
		return db
	}
	return r.DB
}

func (r *SimulationDBImpl) GetRound(ctx context.Context, db bun.IDB, roundID string) (*Round, error) {
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

func (r *SimulationDBImpl) GetCourse(ctx context.Context, db bun.IDB, courseID string) (*Course, error) {
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

func (r *SimulationDBImpl) GetMatchesForRound(ctx context.Context, db bun.IDB, roundID string) ([]MatchRecord, error) {
	var matches []MatchRecord
	err := r.conn(db).NewSelect().
		Model(&matches).
		Where("round_id = ?", roundID).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch matches for round %s: %w", roundID, err)
	}
	return matches, nil
}

func (r *SimulationDBImpl) GetHandicapIndexes(ctx context.Context, db bun.IDB, playerIDs []string) (map[string]float64, error) {
	if len(playerIDs) == 0 {
		return map[string]float64{}, nil
	}

	var players []Player
	err := r.conn(db).NewSelect().
		Model(&players).
		Column("id", "handicap_index").
		Where("id IN (?)", bun.In(playerIDs)).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch handicap indexes: %w", err)
	}

	byID := make(map[string]float64, len(players))
	for _, p := range players {
		byID[p.ID] = p.HandicapIndex
	}
	return byID, nil
}

func (r *SimulationDBImpl) UpsertVsAll(ctx context.Context, db bun.IDB, roundID string, records []simulationtypes.VsAllRecord) error {
	row := &RoundVsAll{
		RoundID:   roundID,
		Records:   records,
		UpdatedAt: time.Now().UTC(),
	}

	_, err := r.conn(db).NewInsert().
		Model(row).
		On("CONFLICT (round_id) DO UPDATE").
		Set("records = EXCLUDED.records").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert vs-all for round %s: %w", roundID, err)
	}
	return nil
}
