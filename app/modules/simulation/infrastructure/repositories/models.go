package simulationdb

import (
	"time"

	"github.com/uptrace/bun"

	matchtypes "github.com/clearwater-cup/matchplay/app/modules/match/domain/types"
	simulationtypes "github.com/clearwater-cup/matchplay/app/modules/simulation/domain/types"
)

// MatchRecord is the simulation module's read model of a stored match.
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

// Round is the simulation module's read model of a stored round.
type Round struct {
	bun.BaseModel `bun:"table:rounds,alias:r"`

	ID         string            `bun:"id,pk"`
	Name       string            `bun:"name,notnull"`
	Format     matchtypes.Format `bun:"format,notnull"`
	PointValue float64           `bun:"point_value,notnull"`
	CourseID   string            `bun:"course_id,notnull"`
}

// Course is the simulation module's read model of a stored course.
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

// Player is the simulation module's read model of a stored player.
type Player struct {
	bun.BaseModel `bun:"table:players,alias:p"`

	ID            string  `bun:"id,pk"`
	HandicapIndex float64 `bun:"handicap_index,notnull"`
}

// RoundVsAll stores one round's vs-all table, overwritten wholesale on every
// recomputation.
type RoundVsAll struct {
	bun.BaseModel `bun:"table:round_vs_all,alias:rva"`

	RoundID   string                        `bun:"round_id,pk"`
	Records   []simulationtypes.VsAllRecord `bun:"records,type:jsonb"`
	UpdatedAt time.Time                     `bun:"updated_at,notnull,default:current_timestamp"`
}
