// Package matchevents defines the match module's topics and payloads.
package matchevents

import (
	matchtypes "github.com/clearwater-cup/matchplay/app/modules/match/domain/types"
)

// Versioned topic constants. The recompute contract is at-least-once: every
// hole edit and every explicit recompute request replays the full derivation,
// and replaying with unchanged inputs publishes an identical status and no
// result event.
const (
	HoleScoreEnteredV1        = "match.hole.score.entered.v1"
	MatchRecomputeRequestedV1 = "match.recompute.requested.v1"
	MatchStatusUpdatedV1      = "match.status.updated.v1"
	MatchResultUpdatedV1      = "match.result.updated.v1"
	MatchRecomputeFailedV1    = "match.recompute.failed.v1"
)

// HoleScoreEnteredPayloadV1 requests that one hole entry be stored and the
// match rederived. HoleNumber may be any hole, including one earlier than the
// furthest played; that is how corrections and reopening happen.
type HoleScoreEnteredPayloadV1 struct {
	MatchID    string               `json:"matchId"`
	HoleNumber int                  `json:"holeNumber"`
	Entry      matchtypes.HoleEntry `json:"entry"`
}

// MatchRecomputeRequestedPayloadV1 requests a rederivation with no data
// change, e.g. after a bulk import.
type MatchRecomputeRequestedPayloadV1 struct {
	MatchID string `json:"matchId"`
}

// MatchStatusUpdatedPayloadV1 announces the freshly derived live state.
// Published on every successful recompute.
type MatchStatusUpdatedPayloadV1 struct {
	MatchID string                 `json:"matchId"`
	RoundID string                 `json:"roundId"`
	Format  matchtypes.Format      `json:"format"`
	Status  matchtypes.MatchStatus `json:"status"`
}

// MatchResultUpdatedPayloadV1 announces that the stored result changed,
// including a previously closed match reopening. The stats module derives
// player facts from this event.
type MatchResultUpdatedPayloadV1 struct {
	MatchID string                 `json:"matchId"`
	RoundID string                 `json:"roundId"`
	Format  matchtypes.Format      `json:"format"`
	Result  matchtypes.MatchResult `json:"result"`
}

// MatchRecomputedPayloadV1 is the service-level success payload.
type MatchRecomputedPayloadV1 struct {
	MatchID       string                 `json:"matchId"`
	RoundID       string                 `json:"roundId"`
	Format        matchtypes.Format      `json:"format"`
	Status        matchtypes.MatchStatus `json:"status"`
	Result        matchtypes.MatchResult `json:"result"`
	ResultChanged bool                   `json:"resultChanged"`
}

// MatchRecomputeFailedPayloadV1 is the service-level failure payload.
type MatchRecomputeFailedPayloadV1 struct {
	MatchID string `json:"matchId"`
	Reason  string `json:"reason"`
}
