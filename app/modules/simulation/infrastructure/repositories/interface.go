package simulationdb

import (
	"context"

	"github.com/uptrace/bun"

	simulationtypes "github.com/clearwater-cup/matchplay/app/modules/simulation/domain/types"
)

// Repository is the simulation module's persistence surface.
type Repository interface {
	GetRound(ctx context.Context, db bun.IDB, roundID string) (*Round, error)
	GetCourse(ctx context.Context, db bun.IDB, courseID string) (*Course, error)
	GetMatchesForRound(ctx context.Context, db bun.IDB, roundID string) ([]MatchRecord, error)
	GetHandicapIndexes(ctx context.Context, db bun.IDB, playerIDs []string) (map[string]float64, error)
	// UpsertVsAll overwrites the round's stored vs-all table.
	UpsertVsAll(ctx context.Context, db bun.IDB, roundID string, records []simulationtypes.VsAllRecord) error
}
