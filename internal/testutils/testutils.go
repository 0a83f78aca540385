// Package testutils provides seeded random domain data for tests.
package testutils

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	matchtypes "github.com/clearwater-cup/matchplay/app/modules/match/domain/types"
)

// TestDataGenerator produces random but structurally valid domain data.
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewTestDataGenerator creates a generator, seeded from the clock unless a
// seed is given. The seed is retrievable so a failing run can be replayed.
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}

	return &TestDataGenerator{
		faker: gofakeit.New(uint64(s)),
		seed:  s,
	}
}

// Seed returns the seed this generator was created with.
func (g *TestDataGenerator) Seed() int64 {
	return g.seed
}

// GeneratePlayers creates count players with distinct IDs, random tiers, and
// handicap indexes in a realistic range.
func (g *TestDataGenerator) GeneratePlayers(count int) []matchtypes.Player {
	tiers := []string{"gold", "silver", "bronze"}
	players := make([]matchtypes.Player, count)
	for i := range players {
		players[i] = matchtypes.Player{
			ID:            fmt.Sprintf("player-%d", i+1),
			DisplayName:   g.faker.Name(),
			Tier:          tiers[g.faker.Number(0, len(tiers)-1)],
			HandicapIndex: float64(g.faker.Number(0, 240)) / 10,
		}
	}
	return players
}

// GenerateCourse creates an 18-hole course with distinct handicap ranks and a
// plausible slope and rating.
func (g *TestDataGenerator) GenerateCourse() matchtypes.Course {
	ranks := sequence(matchtypes.HoleCount)
	g.faker.ShuffleInts(ranks)
	holes := make([]matchtypes.CourseHole, matchtypes.HoleCount)
	par := 0
	for i := range holes {
		holes[i] = matchtypes.CourseHole{
			Number:   i + 1,
			Par:      g.faker.Number(3, 5),
			HcpIndex: ranks[i],
		}
		par += holes[i].Par
	}

	return matchtypes.Course{
		ID:     g.faker.UUID(),
		Name:   g.faker.City(),
		Slope:  float64(g.faker.Number(95, 145)),
		Rating: float64(par) + float64(g.faker.Number(-30, 30))/10,
		Holes:  holes,
	}
}

// GenerateMatchData creates a match in the given format with rosters drawn
// from players and every hole filled in the shape the format reads. Holes may
// still decide as halved or won, but none are incomplete.
func (g *TestDataGenerator) GenerateMatchData(format matchtypes.Format, players []matchtypes.Player) matchtypes.MatchData {
	size := format.SideSize()
	data := matchtypes.MatchData{
		Format:       format,
		TeamAPlayers: g.roster(players, 0, size),
		TeamBPlayers: g.roster(players, size, size),
	}

	for n := 1; n <= matchtypes.HoleCount; n++ {
		var entry matchtypes.HoleEntry
		switch format {
		case matchtypes.FormatSingles:
			entry.TeamAPlayerGross = g.gross()
			entry.TeamBPlayerGross = g.gross()
		case matchtypes.FormatTwoManScramble:
			entry.TeamAGross = g.gross()
			entry.TeamBGross = g.gross()
		default:
			entry.TeamAPlayersGross = [2]matchtypes.Gross{g.gross(), g.gross()}
			entry.TeamBPlayersGross = [2]matchtypes.Gross{g.gross(), g.gross()}
		}
		data.Holes.SetEntry(n, entry)
	}
	return data
}

func (g *TestDataGenerator) roster(players []matchtypes.Player, offset, size int) []matchtypes.PlayerInMatch {
	roster := make([]matchtypes.PlayerInMatch, 0, size)
	for i := offset; i < offset+size; i++ {
		p := matchtypes.PlayerInMatch{PlayerID: fmt.Sprintf("player-%d", i+1)}
		if i < len(players) {
			p.PlayerID = players[i].ID
		}
		for n := 1; n <= matchtypes.HoleCount; n++ {
			if g.faker.Number(0, 3) == 0 {
				p.Strokes[n-1] = 1
			}
		}
		roster = append(roster, p)
	}
	return roster
}

func (g *TestDataGenerator) gross() matchtypes.Gross {
	return matchtypes.NewGross(float64(g.faker.Number(2, 8)))
}

func sequence(n int) []int {
	seq := make([]int, n)
	for i := range seq {
		seq[i] = i + 1
	}
	return seq
}
