package statsdb

import (
	"time"

	"github.com/uptrace/bun"

	matchtypes "github.com/clearwater-cup/matchplay/app/modules/match/domain/types"
	statstypes "github.com/clearwater-cup/matchplay/app/modules/stats/domain/types"
)

// MatchRecord is the stats module's read model of a stored match. It reads the
// same table the match module writes but never mutates it.
type MatchRecord struct {
	bun.BaseModel `bun:"table:matches,alias:m"`

	ID           string                     `bun:"id,pk"`
	RoundID      string                     `bun:"round_id,notnull"`
	Format       matchtypes.Format          `bun:"format,notnull"`
	TeamAPlayers []matchtypes.PlayerInMatch `bun:"team_a_players,type:jsonb"`
	TeamBPlayers []matchtypes.PlayerInMatch `bun:"team_b_players,type:jsonb"`
	Holes        matchtypes.Holes           `bun:"holes,type:jsonb"`
}

// Data projects the stored row into the engine's input snapshot.
func (m *MatchRecord) Data() matchtypes.MatchData {
	return matchtypes.MatchData{
		Format:       m.Format,
		TeamAPlayers: m.TeamAPlayers,
		TeamBPlayers: m.TeamBPlayers,
		Holes:        m.Holes,
	}
}

// Round is a stored round.
type Round struct {
	bun.BaseModel `bun:"table:rounds,alias:r"`

	ID         string            `bun:"id,pk"`
	Name       string            `bun:"name,notnull"`
	Format     matchtypes.Format `bun:"format,notnull"`
	PointValue float64           `bun:"point_value,notnull"`
	CourseID   string            `bun:"course_id,notnull"`
}

// Domain projects the row into the domain round.
func (r *Round) Domain() matchtypes.Round {
	return matchtypes.Round{
		ID:         r.ID,
		Name:       r.Name,
		Format:     r.Format,
		PointValue: r.PointValue,
		CourseID:   r.CourseID,
	}
}

// Course is a stored course.
type Course struct {
	bun.BaseModel `bun:"table:courses,alias:c"`

	ID     string                  `bun:"id,pk"`
	Name   string                  `bun:"name,notnull"`
	Slope  float64                 `bun:"slope,notnull"`
	Rating float64                 `bun:"rating,notnull"`
	Holes  []matchtypes.CourseHole `bun:"holes,type:jsonb"`
}

// Domain projects the row into the domain course.
func (c *Course) Domain() matchtypes.Course {
	return matchtypes.Course{
		ID:     c.ID,
		Name:   c.Name,
		Slope:  c.Slope,
		Rating: c.Rating,
		Holes:  c.Holes,
	}
}

// Player is a stored tournament player.
type Player struct {
	bun.BaseModel `bun:"table:players,alias:p"`

	ID            string  `bun:"id,pk"`
	DisplayName   string  `bun:"display_name,notnull"`
	Tier          string  `bun:"tier,notnull"`
	HandicapIndex float64 `bun:"handicap_index,notnull"`
}

// Domain projects the row into the domain player.
func (p *Player) Domain() matchtypes.Player {
	return matchtypes.Player{
		ID:            p.ID,
		DisplayName:   p.DisplayName,
		Tier:          p.Tier,
		HandicapIndex: p.HandicapIndex,
	}
}

// PlayerMatchFactRow stores one derived fact. The whole fact lives in a jsonb
// column; the row is keyed by (player, match) and overwritten wholesale on
// every derive.
type PlayerMatchFactRow struct {
	bun.BaseModel `bun:"table:player_match_facts,alias:pmf"`

	PlayerID  string                     `bun:"player_id,pk"`
	MatchID   string                     `bun:"match_id,pk"`
	RoundID   string                     `bun:"round_id,notnull"`
	Fact      statstypes.PlayerMatchFact `bun:"fact,type:jsonb"`
	UpdatedAt time.Time                  `bun:"updated_at,notnull,default:current_timestamp"`
}
