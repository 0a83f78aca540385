// Package simulationevents defines the simulation module's event topics and
// payloads.
package simulationevents

import (
	matchtypes "github.com/clearwater-cup/matchplay/app/modules/match/domain/types"
	simulationtypes "github.com/clearwater-cup/matchplay/app/modules/simulation/domain/types"
)

const (
	// VsAllRequestedV1 asks for a round's vs-all table to be recomputed.
	VsAllRequestedV1 = "simulation.vsall.requested.v1"
	// VsAllComputedV1 carries the recomputed table.
	VsAllComputedV1 = "simulation.vsall.computed.v1"
	// VsAllFailedV1 reports a computation that could not run.
	VsAllFailedV1 = "simulation.vsall.failed.v1"
)

// VsAllRequestedPayloadV1 is the VsAllRequestedV1 payload.
type VsAllRequestedPayloadV1 struct {
	RoundID string `json:"round_id"`
}

// VsAllComputedPayloadV1 is the VsAllComputedV1 payload.
type VsAllComputedPayloadV1 struct {
	RoundID string                        `json:"round_id"`
	Format  matchtypes.Format             `json:"format"`
	Records []simulationtypes.VsAllRecord `json:"records"`
}

// VsAllFailedPayloadV1 is the VsAllFailedV1 payload.
type VsAllFailedPayloadV1 struct {
	RoundID string `json:"round_id"`
	Reason  string `json:"reason"`
}
