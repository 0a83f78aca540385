package matchservice

import (
	"context"

	matchtypes "github.com/clearwater-cup/matchplay/app/modules/match/domain/types"
)

// Service is the match module's application surface.
type Service interface {
	// EnterHoleScore stores one hole entry (any hole, including earlier ones)
	// and rederives the match state.
	EnterHoleScore(ctx context.Context, matchID string, holeNumber int, entry matchtypes.HoleEntry) (MatchOperationResult, error)
	// RecomputeMatch rederives the match state with no data change.
	RecomputeMatch(ctx context.Context, matchID string) (MatchOperationResult, error)
}
