package matchdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	matchtypes "github.com/clearwater-cup/matchplay/app/modules/match/domain/types"
)

// MatchDBImpl implements Repository on bun.
type MatchDBImpl struct {
	DB *bun.DB
}

func (r *MatchDBImpl) conn(db bun.IDB) bun.IDB {
	if db != nil {
		return db
	}
	return r.DB
}

func (r *MatchDBImpl) GetMatch(ctx context.Context, db bun.IDB, matchID string) (*Match, error) {
	var match Match
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

func (r *MatchDBImpl) CreateMatch(ctx context.Context, db bun.IDB, match *Match) error {
	now := time.Now().UTC()
	match.CreatedAt = now
	match.UpdatedAt = now
	if _, err := r.conn(db).NewInsert().Model(match).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert match %s: %w", match.ID, err)
	}
	return nil
}

// UpsertHoleEntry replaces one hole's entry on the stored hole table and
// returns the updated row. The entry may target any hole, including one
// earlier than the furthest played.
func (r *MatchDBImpl) UpsertHoleEntry(ctx context.Context, db bun.IDB, matchID string, holeNumber int, entry matchtypes.HoleEntry) (*Match, error) {
	match, err := r.GetMatch(ctx, db, matchID)
	if err != nil {
		return nil, err
	}

	match.Holes.SetEntry(holeNumber, entry)
	match.UpdatedAt = time.Now().UTC()

	_, err = r.conn(db).NewUpdate().
		Model(match).
		Column("holes", "updated_at").
		Where("id = ?", matchID).
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to update holes for match %s: %w", matchID, err)
	}
	return match, nil
}

// UpdateDerivedState overwrites the status and result projections. Writing
// the same derived state twice is a no-op by construction, which keeps
// redundant recompute deliveries safe.
func (r *MatchDBImpl) UpdateDerivedState(ctx context.Context, db bun.IDB, matchID string, status matchtypes.MatchStatus, result matchtypes.MatchResult) error {
	match, err := r.GetMatch(ctx, db, matchID)
	if err != nil {
		return err
	}

	match.Status = &status
	match.Result = &result
	match.UpdatedAt = time.Now().UTC()

	_, err = r.conn(db).NewUpdate().
		Model(match).
		Column("status", "result", "updated_at").
		Where("id = ?", matchID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update derived state for match %s: %w", matchID, err)
	}
	return nil
}
