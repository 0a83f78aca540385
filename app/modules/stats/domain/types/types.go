// Package statstypes defines the derived per-player fact and aggregate types.
package statstypes

import (
	matchtypes "github.com/clearwater-cup/matchplay/app/modules/match/domain/types"
)

// Outcome is a player's result in one match.
type Outcome string

const (
	OutcomeWin   Outcome = "win"
	OutcomeLoss  Outcome = "loss"
	OutcomeHalve Outcome = "halve"
)

// PlayerMatchFact is the wide per-player per-match record derived from a
// finished (or reopened and re-finished) match. It is a pure projection:
// recomputing it from the same match data always yields the same fact, so it
// is safe to overwrite on every result change.
//
// Pointer fields distinguish "not applicable" from a real zero or false.
// won18thHole stays nil unless the 18th hole actually decided the match, and
// the ball-usage block stays nil outside best-ball and shamble.
type PlayerMatchFact struct {
	PlayerID    string              `json:"player_id"`
	DisplayName string              `json:"display_name"`
	Tier        string              `json:"tier"`
	MatchID     string              `json:"match_id"`
	RoundID     string              `json:"round_id"`
	Format      matchtypes.Format   `json:"format"`
	Side        matchtypes.TeamSide `json:"side"`
	PartnerID   *string             `json:"partner_id,omitempty"`
	OpponentIDs []string            `json:"opponent_ids"`

	Outcome      Outcome `json:"outcome"`
	PointsEarned float64 `json:"points_earned"`

	HolesWon    int `json:"holes_won"`
	HolesLost   int `json:"holes_lost"`
	HolesHalved int `json:"holes_halved"`

	WasNeverBehind bool `json:"was_never_behind"`
	LeadChanges    int  `json:"lead_changes"`
	ComebackWin    bool `json:"comeback_win"`
	BlownLead      bool `json:"blown_lead"`

	DecidedOn18 bool  `json:"decided_on_18"`
	Won18thHole *bool `json:"won_18th_hole,omitempty"`

	BallsUsed            *int  `json:"balls_used,omitempty"`
	BallsUsedSolo        *int  `json:"balls_used_solo,omitempty"`
	BallsUsedShared      *int  `json:"balls_used_shared,omitempty"`
	BallsUsedSoloWonHole *int  `json:"balls_used_solo_won_hole,omitempty"`
	BallsUsedSoloPush    *int  `json:"balls_used_solo_push,omitempty"`
	BallUsedOn18         *bool `json:"ball_used_on_18,omitempty"`

	HolesRecorded     int  `json:"holes_recorded"`
	TotalGross        *int `json:"total_gross,omitempty"`
	TotalNet          *int `json:"total_net,omitempty"`
	StrokesVsParGross *int `json:"strokes_vs_par_gross,omitempty"`
	StrokesVsParNet   *int `json:"strokes_vs_par_net,omitempty"`

	TeamHolesRecorded     int  `json:"team_holes_recorded"`
	TeamTotalGross        *int `json:"team_total_gross,omitempty"`
	TeamStrokesVsParGross *int `json:"team_strokes_vs_par_gross,omitempty"`
}

// Record is a win/loss/tie tally.
type Record struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Halves int `json:"halves"`
}

// Add folds one outcome into the record.
func (r *Record) Add(o Outcome) {
	switch o {
	case OutcomeWin:
		r.Wins++
	case OutcomeLoss:
		r.Losses++
	case OutcomeHalve:
		r.Halves++
	}
}

// PlayerAggregate is the idempotent reduction of a player's facts: a lifetime
// tally plus breakdowns by opponent tier and by individual opponent. It is
// rebuilt from scratch from all of a player's facts, never patched.
type PlayerAggregate struct {
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`

	Lifetime     Record  `json:"lifetime"`
	Points       float64 `json:"points"`
	HolesWon     int     `json:"holes_won"`
	HolesLost    int     `json:"holes_lost"`
	HolesHalved  int     `json:"holes_halved"`
	ComebackWins int     `json:"comeback_wins"`
	BlownLeads   int     `json:"blown_leads"`
	Clutch18Wins int     `json:"clutch_18_wins"`

	ByTier     map[string]*Record `json:"by_tier"`
	ByOpponent map[string]*Record `json:"by_opponent"`
}

// NewPlayerAggregate returns an empty aggregate for a player.
func NewPlayerAggregate(playerID, displayName string) *PlayerAggregate {
	return &PlayerAggregate{
		PlayerID:    playerID,
		DisplayName: displayName,
		ByTier:      make(map[string]*Record),
		ByOpponent:  make(map[string]*Record),
	}
}
