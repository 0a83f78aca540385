package simulationservice

import "context"

// Service is the simulation module's application surface.
type Service interface {
	// ComputeVsAllForRound rebuilds and stores the round's vs-all table from
	// every entrant's recorded performance. Safe to run redundantly.
	ComputeVsAllForRound(ctx context.Context, roundID string) (SimulationOperationResult, error)
}
