// Package simulationtypes holds the head-to-head simulation model: recorded
// per-hole performances and the vs-all records built from them.
package simulationtypes

import (
	"sort"
	"strings"

	matchtypes "github.com/clearwater-cup/matchplay/app/modules/match/domain/types"
)

// PlayerPerformance is one player's recorded gross scores from a round, plus
// the handicap index the simulation recomputes strokes from. Holes without a
// recorded score stay absent and are skipped during simulation.
type PlayerPerformance struct {
	PlayerID      string                                 `json:"player_id"`
	HandicapIndex float64                                `json:"handicap_index"`
	HoleGross     [matchtypes.HoleCount]matchtypes.Gross `json:"hole_gross"`
}

// SideRecord is one simulated entrant: a single player for singles, a pair for
// the team formats. TeamGross carries the recorded one-ball score for
// scramble, where no per-player scores exist.
type SideRecord struct {
	Key       string                                 `json:"key"`
	PlayerIDs []string                               `json:"player_ids"`
	Players   []PlayerPerformance                    `json:"players"`
	TeamGross [matchtypes.HoleCount]matchtypes.Gross `json:"team_gross"`
}

// SideKey builds the canonical entrant key: the player ID for a single, the
// sorted-and-joined partner IDs for a team, so the same pairing always maps to
// the same record regardless of roster order.
func SideKey(playerIDs []string) string {
	ids := append([]string{}, playerIDs...)
	sort.Strings(ids)
	return strings.Join(ids, "+")
}

// HeadToHeadResult is the outcome of one simulated pairing.
type HeadToHeadResult struct {
	Winner    matchtypes.Winner `json:"winner"`
	HolesWonA int               `json:"holesWonA"`
	HolesWonB int               `json:"holesWonB"`
}

// VsAllRecord is one entrant's tally against every other entrant in the round.
// Team members share their team's record.
type VsAllRecord struct {
	Key       string   `json:"key"`
	PlayerIDs []string `json:"player_ids"`
	Wins      int      `json:"wins"`
	Losses    int      `json:"losses"`
	Ties      int      `json:"ties"`
}
