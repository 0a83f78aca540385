package statsservice

import "context"

// Service is the stats module's application surface.
type Service interface {
	// DeriveMatchFacts loads a match with its round, course, and player
	// context, derives one fact per rostered player, and overwrites the stored
	// facts. Safe to run redundantly.
	DeriveMatchFacts(ctx context.Context, matchID string) (StatsOperationResult, error)
}
