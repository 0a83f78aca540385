package statsdb

import (
	"context"

	"github.com/uptrace/bun"

	statstypes "github.com/clearwater-cup/matchplay/app/modules/stats/domain/types"
)

// Repository is the stats module's persistence surface. Passing a nil bun.IDB
// uses the repository's own connection; passing a transaction scopes the call
// to it.
type Repository interface {
	GetMatchRecord(ctx context.Context, db bun.IDB, matchID string) (*MatchRecord, error)
	GetRound(ctx context.Context, db bun.IDB, roundID string) (*Round, error)
	GetCourse(ctx context.Context, db bun.IDB, courseID string) (*Course, error)
	GetPlayers(ctx context.Context, db bun.IDB, playerIDs []string) (map[string]Player, error)
	// UpsertFacts overwrites the stored facts for one match. Safe to run
	// redundantly; identical facts produce identical rows.
	UpsertFacts(ctx context.Context, db bun.IDB, facts []statstypes.PlayerMatchFact) error
	// GetFactsForPlayers returns every stored fact involving the given players,
	// used to rebuild aggregates from scratch.
	GetFactsForPlayers(ctx context.Context, db bun.IDB, playerIDs []string) ([]statstypes.PlayerMatchFact, error)
}
