// Package statsevents defines the stats module's event topics and payloads.
package statsevents

import (
	matchtypes "github.com/clearwater-cup/matchplay/app/modules/match/domain/types"
	statstypes "github.com/clearwater-cup/matchplay/app/modules/stats/domain/types"
)

const (
	// PlayerMatchFactsComputedV1 carries the freshly derived facts for one
	// match, published every time the match's result changes.
	PlayerMatchFactsComputedV1 = "stats.player.match.facts.computed.v1"
	// StatsDeriveFailedV1 reports a derive that could not run.
	StatsDeriveFailedV1 = "stats.derive.failed.v1"
)

// PlayerMatchFactsComputedPayloadV1 is the PlayerMatchFactsComputedV1 payload.
// Aggregates are rebuilt from the full stored fact set of every rostered
// player on each derive; they ride the event and are never stored.
type PlayerMatchFactsComputedPayloadV1 struct {
	MatchID    string                                 `json:"match_id"`
	RoundID    string                                 `json:"round_id"`
	Format     matchtypes.Format                      `json:"format"`
	Facts      []statstypes.PlayerMatchFact           `json:"facts"`
	Aggregates map[string]*statstypes.PlayerAggregate `json:"aggregates"`
}

// StatsDeriveFailedPayloadV1 is the StatsDeriveFailedV1 payload.
type StatsDeriveFailedPayloadV1 struct {
	MatchID string `json:"match_id"`
	Reason  string `json:"reason"`
}
