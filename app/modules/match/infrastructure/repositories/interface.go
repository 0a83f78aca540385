package matchdb

import (
	"context"

	"github.com/uptrace/bun"

	matchtypes "github.com/clearwater-cup/matchplay/app/modules/match/domain/types"
)

// Repository is the match document store. Every method accepts a bun.IDB so
// callers can run several steps inside one transaction; passing nil uses the
// repository's own connection.
type Repository interface {
	GetMatch(ctx context.Context, db bun.IDB, matchID string) (*Match, error)
	CreateMatch(ctx context.Context, db bun.IDB, match *Match) error
	UpsertHoleEntry(ctx context.Context, db bun.IDB, matchID string, holeNumber int, entry matchtypes.HoleEntry) (*Match, error)
	UpdateDerivedState(ctx context.Context, db bun.IDB, matchID string, status matchtypes.MatchStatus, result matchtypes.MatchResult) error
}
