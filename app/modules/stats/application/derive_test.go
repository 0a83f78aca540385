package statsservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	matchservice "github.com/clearwater-cup/matchplay/app/modules/match/application"
	matchtypes "github.com/clearwater-cup/matchplay/app/modules/match/domain/types"
	statstypes "github.com/clearwater-cup/matchplay/app/modules/stats/domain/types"
)

func flatCourse() matchtypes.Course {
	holes := make([]matchtypes.CourseHole, 0, matchtypes.HoleCount)
	for n := 1; n <= matchtypes.HoleCount; n++ {
		holes = append(holes, matchtypes.CourseHole{Number: n, Par: 4, HcpIndex: n})
	}
	return matchtypes.Course{ID: "course-1", Name: "Clearwater", Slope: 113, Rating: 72, Holes: holes}
}

func scrambleEntry(a, b float64) matchtypes.HoleEntry {
	return matchtypes.HoleEntry{TeamAGross: matchtypes.NewGross(a), TeamBGross: matchtypes.NewGross(b)}
}

func pairEntry(a1, a2, b1, b2 float64) matchtypes.HoleEntry {
	return matchtypes.HoleEntry{
		TeamAPlayersGross: [2]matchtypes.Gross{matchtypes.NewGross(a1), matchtypes.NewGross(a2)},
		TeamBPlayersGross: [2]matchtypes.Gross{matchtypes.NewGross(b1), matchtypes.NewGross(b2)},
	}
}

// testContext builds a MatchContext around the data, summarizing it the same
// way the service does before derivation.
func testContext(data matchtypes.MatchData, pointValue float64) MatchContext {
	players := make(map[string]matchtypes.Player)
	for _, p := range append(append([]matchtypes.PlayerInMatch{}, data.TeamAPlayers...), data.TeamBPlayers...) {
		players[p.PlayerID] = matchtypes.Player{ID: p.PlayerID, DisplayName: p.PlayerID, Tier: "gold"}
	}
	return MatchContext{
		MatchID: "match-1",
		Round:   matchtypes.Round{ID: "round-1", Format: data.Format, PointValue: pointValue, CourseID: "course-1"},
		Course:  flatCourse(),
		Data:    data,
		Summary: matchservice.Summarize(data.Format, data),
		Players: players,
	}
}

func findFact(t *testing.T, facts []statstypes.PlayerMatchFact, playerID string) statstypes.PlayerMatchFact {
	t.Helper()
	for _, f := range facts {
		if f.PlayerID == playerID {
			return f
		}
	}
	t.Fatalf("no fact for player %s", playerID)
	return statstypes.PlayerMatchFact{}
}

func scrambleMatch() matchtypes.MatchData {
	return matchtypes.MatchData{
		Format:       matchtypes.FormatTwoManScramble,
		TeamAPlayers: []matchtypes.PlayerInMatch{{PlayerID: "a1"}, {PlayerID: "a2"}},
		TeamBPlayers: []matchtypes.PlayerInMatch{{PlayerID: "b1"}, {PlayerID: "b2"}},
	}
}

func TestDerive_OutcomeAndPoints(t *testing.T) {
	t.Run("win takes the full point value", func(t *testing.T) {
		data := scrambleMatch()
		for n := 1; n <= 10; n++ {
			data.Holes.SetEntry(n, scrambleEntry(4, 5))
		}

		facts := DerivePlayerMatchFacts(testContext(data, 2))

		a1 := findFact(t, facts, "a1")
		assert.Equal(t, statstypes.OutcomeWin, a1.Outcome)
		assert.Equal(t, 2.0, a1.PointsEarned)
		assert.Equal(t, 10, a1.HolesWon)
		assert.Equal(t, 0, a1.HolesHalved)

		b1 := findFact(t, facts, "b1")
		assert.Equal(t, statstypes.OutcomeLoss, b1.Outcome)
		assert.Zero(t, b1.PointsEarned)
	})

	t.Run("halved match splits the point", func(t *testing.T) {
		data := scrambleMatch()
		for n := 1; n <= 18; n++ {
			data.Holes.SetEntry(n, scrambleEntry(4, 4))
		}

		facts := DerivePlayerMatchFacts(testContext(data, 2))

		for _, id := range []string{"a1", "a2", "b1", "b2"} {
			fact := findFact(t, facts, id)
			assert.Equal(t, statstypes.OutcomeHalve, fact.Outcome, id)
			assert.Equal(t, 1.0, fact.PointsEarned, id)
			assert.Equal(t, 18, fact.HolesHalved, id)
		}
	})
}

func TestDerive_DecidedOn18(t *testing.T) {
	// seed fills holes 1..17; aWins holes go to team A, the rest are halved.
	seed := func(aWins int) matchtypes.MatchData {
		data := scrambleMatch()
		for n := 1; n <= 17; n++ {
			if n <= aWins {
				data.Holes.SetEntry(n, scrambleEntry(4, 5))
			} else {
				data.Holes.SetEntry(n, scrambleEntry(4, 4))
			}
		}
		return data
	}

	t.Run("tied into 18, decisive 18th decides", func(t *testing.T) {
		data := seed(0)
		data.Holes.SetEntry(18, scrambleEntry(4, 5))

		facts := DerivePlayerMatchFacts(testContext(data, 1))

		a1 := findFact(t, facts, "a1")
		assert.True(t, a1.DecidedOn18)
		require.NotNil(t, a1.Won18thHole)
		assert.True(t, *a1.Won18thHole)

		b1 := findFact(t, facts, "b1")
		assert.True(t, b1.DecidedOn18)
		require.NotNil(t, b1.Won18thHole)
		assert.False(t, *b1.Won18thHole)
	})

	t.Run("tied into 18, halved 18th decides nothing", func(t *testing.T) {
		data := seed(0)
		data.Holes.SetEntry(18, scrambleEntry(4, 4))

		facts := DerivePlayerMatchFacts(testContext(data, 1))

		a1 := findFact(t, facts, "a1")
		assert.False(t, a1.DecidedOn18)
		assert.Nil(t, a1.Won18thHole)
	})

	t.Run("one up into 18, trailing side stealing the halve decides", func(t *testing.T) {
		data := seed(1)
		data.Holes.SetEntry(18, scrambleEntry(5, 4))

		facts := DerivePlayerMatchFacts(testContext(data, 1))

		b1 := findFact(t, facts, "b1")
		assert.True(t, b1.DecidedOn18)
		require.NotNil(t, b1.Won18thHole)
		assert.True(t, *b1.Won18thHole)

		a1 := findFact(t, facts, "a1")
		require.NotNil(t, a1.Won18thHole)
		assert.False(t, *a1.Won18thHole)
	})

	t.Run("one up into 18, leader winning 18 confirms rather than decides", func(t *testing.T) {
		data := seed(1)
		data.Holes.SetEntry(18, scrambleEntry(4, 5))

		facts := DerivePlayerMatchFacts(testContext(data, 1))

		a1 := findFact(t, facts, "a1")
		assert.False(t, a1.DecidedOn18)
		assert.Nil(t, a1.Won18thHole)
	})

	t.Run("two up into 18 was already over", func(t *testing.T) {
		data := seed(2)
		data.Holes.SetEntry(18, scrambleEntry(5, 4))

		facts := DerivePlayerMatchFacts(testContext(data, 1))

		b1 := findFact(t, facts, "b1")
		assert.False(t, b1.DecidedOn18)
		assert.Nil(t, b1.Won18thHole)
	})
}

func TestDerive_BallUsage_BestBall(t *testing.T) {
	data := matchtypes.MatchData{
		Format:       matchtypes.FormatTwoManBestBall,
		TeamAPlayers: []matchtypes.PlayerInMatch{{PlayerID: "a1"}, {PlayerID: "a2"}},
		TeamBPlayers: []matchtypes.PlayerInMatch{{PlayerID: "b1"}, {PlayerID: "b2"}},
	}

	data.Holes.SetEntry(1, pairEntry(4, 5, 5, 5)) // a1 solo, hole won
	data.Holes.SetEntry(2, pairEntry(4, 4, 4, 4)) // shared, halved
	data.Holes.SetEntry(3, pairEntry(5, 4, 6, 6)) // a2 solo, hole won
	data.Holes.SetEntry(4, pairEntry(4, 5, 4, 6)) // a1 solo, hole halved
	for n := 5; n <= 17; n++ {
		data.Holes.SetEntry(n, pairEntry(4, 4, 4, 4))
	}
	data.Holes.SetEntry(18, pairEntry(4, 4, 3, 5)) // exact tie for A, b1 solo

	facts := DerivePlayerMatchFacts(testContext(data, 1))

	a1 := findFact(t, facts, "a1")
	require.NotNil(t, a1.BallsUsed)
	assert.Equal(t, 17, *a1.BallsUsed)
	assert.Equal(t, 2, *a1.BallsUsedSolo)
	assert.Equal(t, 15, *a1.BallsUsedShared)
	assert.Equal(t, 1, *a1.BallsUsedSoloWonHole)
	assert.Equal(t, 1, *a1.BallsUsedSoloPush)

	// An exact tie on 18 counts for both partners.
	a2 := findFact(t, facts, "a2")
	require.NotNil(t, a1.BallUsedOn18)
	require.NotNil(t, a2.BallUsedOn18)
	assert.True(t, *a1.BallUsedOn18)
	assert.True(t, *a2.BallUsedOn18)

	b1 := findFact(t, facts, "b1")
	b2 := findFact(t, facts, "b2")
	require.NotNil(t, b1.BallUsedOn18)
	require.NotNil(t, b2.BallUsedOn18)
	assert.True(t, *b1.BallUsedOn18)
	assert.False(t, *b2.BallUsedOn18)

	require.NotNil(t, a1.PartnerID)
	assert.Equal(t, "a2", *a1.PartnerID)
	assert.Equal(t, []string{"b1", "b2"}, a1.OpponentIDs)
}

func TestDerive_BallUsage_StrokeShiftsTheComparison(t *testing.T) {
	data := matchtypes.MatchData{
		Format:       matchtypes.FormatTwoManBestBall,
		TeamAPlayers: []matchtypes.PlayerInMatch{{PlayerID: "a1"}, {PlayerID: "a2"}},
		TeamBPlayers: []matchtypes.PlayerInMatch{{PlayerID: "b1"}, {PlayerID: "b2"}},
	}
	data.TeamAPlayers[0].Strokes[0] = 1 // a1 strokes on hole 1
	data.Holes.SetEntry(1, pairEntry(5, 5, 4, 4))

	facts := DerivePlayerMatchFacts(testContext(data, 1))

	// a1 nets 4 against a2's gross 5: solo on net despite equal gross.
	a1 := findFact(t, facts, "a1")
	assert.Equal(t, 1, *a1.BallsUsedSolo)
	a2 := findFact(t, facts, "a2")
	assert.Equal(t, 0, *a2.BallsUsed)
}

func TestDerive_StrokesVsParNetUsesCourseHandicap(t *testing.T) {
	data := matchtypes.MatchData{
		Format:       matchtypes.FormatSingles,
		TeamAPlayers: []matchtypes.PlayerInMatch{{PlayerID: "a1"}},
		TeamBPlayers: []matchtypes.PlayerInMatch{{PlayerID: "b1"}},
	}
	// Spun-down allocation: 6 match strokes against a 12 course handicap.
	for n := 1; n <= 6; n++ {
		data.TeamAPlayers[0].Strokes[n-1] = 1
	}
	// 16 fives and 2 fours: 88 gross.
	for n := 1; n <= 18; n++ {
		gross := 5.0
		if n > 16 {
			gross = 4.0
		}
		data.Holes.SetEntry(n, matchtypes.HoleEntry{TeamAPlayerGross: matchtypes.NewGross(gross)})
	}

	mc := testContext(data, 1)
	mc.Players["a1"] = matchtypes.Player{ID: "a1", DisplayName: "a1", Tier: "gold", HandicapIndex: 12}

	a1 := findFact(t, DerivePlayerMatchFacts(mc), "a1")

	assert.Equal(t, 18, a1.HolesRecorded)
	require.NotNil(t, a1.TotalGross)
	assert.Equal(t, 88, *a1.TotalGross)
	assert.Equal(t, 82, *a1.TotalNet, "net of the match allocation")
	assert.Equal(t, 16, *a1.StrokesVsParGross)
	assert.Equal(t, 4, *a1.StrokesVsParNet, "net of the course handicap, not the allocation")
}

func TestDerive_FractionalScoresRoundInTotals(t *testing.T) {
	data := matchtypes.MatchData{
		Format:       matchtypes.FormatSingles,
		TeamAPlayers: []matchtypes.PlayerInMatch{{PlayerID: "a1"}},
		TeamBPlayers: []matchtypes.PlayerInMatch{{PlayerID: "b1"}},
	}
	for n := 1; n <= 18; n++ {
		data.Holes.SetEntry(n, matchtypes.HoleEntry{TeamAPlayerGross: matchtypes.NewGross(4.5)})
	}

	a1 := findFact(t, DerivePlayerMatchFacts(testContext(data, 1)), "a1")

	require.NotNil(t, a1.TotalGross)
	assert.Equal(t, 81, *a1.TotalGross, "fractions accumulate before rounding")
	assert.Equal(t, 81, *a1.TotalNet)
	assert.Equal(t, 9, *a1.StrokesVsParGross)
}

func TestDerive_ScrambleTotalsAreTeamOnly(t *testing.T) {
	data := scrambleMatch()
	for n := 1; n <= 18; n++ {
		data.Holes.SetEntry(n, scrambleEntry(4, 5))
	}

	a1 := findFact(t, DerivePlayerMatchFacts(testContext(data, 1)), "a1")

	assert.Zero(t, a1.HolesRecorded)
	assert.Nil(t, a1.TotalGross)
	assert.Nil(t, a1.StrokesVsParNet)
	assert.Equal(t, 18, a1.TeamHolesRecorded)
	require.NotNil(t, a1.TeamTotalGross)
	assert.Equal(t, 72, *a1.TeamTotalGross)
	assert.Equal(t, 0, *a1.TeamStrokesVsParGross)
}

func TestDerive_ComebackAndBlownLead(t *testing.T) {
	data := scrambleMatch()
	for n := 1; n <= 3; n++ {
		data.Holes.SetEntry(n, scrambleEntry(5, 4)) // B sweeps the start
	}
	for n := 4; n <= 10; n++ {
		data.Holes.SetEntry(n, scrambleEntry(4, 4)) // still 3 down at hole 10
	}
	for n := 11; n <= 18; n++ {
		data.Holes.SetEntry(n, scrambleEntry(4, 5)) // A storms home
	}

	facts := DerivePlayerMatchFacts(testContext(data, 1))

	a1 := findFact(t, facts, "a1")
	assert.Equal(t, statstypes.OutcomeWin, a1.Outcome)
	assert.True(t, a1.ComebackWin)
	assert.False(t, a1.BlownLead)
	assert.False(t, a1.WasNeverBehind)
	assert.Equal(t, 1, a1.LeadChanges)

	b1 := findFact(t, facts, "b1")
	assert.False(t, b1.ComebackWin)
	assert.True(t, b1.BlownLead)
	assert.False(t, b1.WasNeverBehind)
}
