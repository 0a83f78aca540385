package matchdb

import (
	"time"

	"github.com/uptrace/bun"

	matchtypes "github.com/clearwater-cup/matchplay/app/modules/match/domain/types"
)

// Match is the stored match document: raw entry state plus the derived status
// and result projections. The derived columns are overwritten wholesale on
// every recompute; they are never patched in place.
type Match struct {
	bun.BaseModel `bun:"table:matches,alias:m"`

	ID           string                     `bun:"id,pk"`
	RoundID      string                     `bun:"round_id,notnull"`
	Format       matchtypes.Format          `bun:"format,notnull"`
	TeamAPlayers []matchtypes.PlayerInMatch `bun:"team_a_players,type:jsonb"`
	TeamBPlayers []matchtypes.PlayerInMatch `bun:"team_b_players,type:jsonb"`
	Holes        matchtypes.Holes           `bun:"holes,type:jsonb"`
	Status       *matchtypes.MatchStatus    `bun:"status,type:jsonb"`
	Result       *matchtypes.MatchResult    `bun:"result,type:jsonb"`
	CreatedAt    time.Time                  `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt    time.Time                  `bun:"updated_at,notnull,default:current_timestamp"`
}

// Data projects the stored row into the engine's input snapshot.
func (m *Match) Data() matchtypes.MatchData {
	return matchtypes.MatchData{
		Format:       m.Format,
		TeamAPlayers: m.TeamAPlayers,
		TeamBPlayers: m.TeamBPlayers,
		Holes:        m.Holes,
	}
}
