package simulationservice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	matchtypes "github.com/clearwater-cup/matchplay/app/modules/match/domain/types"
	simulationtypes "github.com/clearwater-cup/matchplay/app/modules/simulation/domain/types"
)

func TestComputeVsAll_RoundRobinTallies(t *testing.T) {
	// Three scratch singles entrants with strictly ordered scoring: a1 beats
	// everyone, b1 beats c1.
	sides := []simulationtypes.SideRecord{
		singlesSide("a1", 0, flatScores(3)),
		singlesSide("b1", 0, flatScores(4)),
		singlesSide("c1", 0, flatScores(5)),
	}

	records := ComputeVsAll(context.Background(), matchtypes.FormatSingles, sides, simCourse())

	require.Len(t, records, 3)
	byKey := make(map[string]simulationtypes.VsAllRecord)
	for _, r := range records {
		byKey[r.Key] = r
	}

	assert.Equal(t, 2, byKey["a1"].Wins)
	assert.Equal(t, 0, byKey["a1"].Losses)
	assert.Equal(t, 1, byKey["b1"].Wins)
	assert.Equal(t, 1, byKey["b1"].Losses)
	assert.Equal(t, 0, byKey["c1"].Wins)
	assert.Equal(t, 2, byKey["c1"].Losses)

	// Output is ordered by key regardless of input order.
	assert.Equal(t, "a1", records[0].Key)
	assert.Equal(t, "b1", records[1].Key)
	assert.Equal(t, "c1", records[2].Key)
}

func TestComputeVsAll_TiesCountForBoth(t *testing.T) {
	sides := []simulationtypes.SideRecord{
		singlesSide("a1", 0, flatScores(4)),
		singlesSide("b1", 0, flatScores(4)),
	}

	records := ComputeVsAll(context.Background(), matchtypes.FormatSingles, sides, simCourse())

	require.Len(t, records, 2)
	for _, r := range records {
		assert.Equal(t, 1, r.Ties, r.Key)
		assert.Zero(t, r.Wins, r.Key)
		assert.Zero(t, r.Losses, r.Key)
	}
}

func TestComputeVsAll_SingleEntrant(t *testing.T) {
	sides := []simulationtypes.SideRecord{singlesSide("a1", 0, flatScores(4))}

	records := ComputeVsAll(context.Background(), matchtypes.FormatSingles, sides, simCourse())

	require.Len(t, records, 1)
	assert.Zero(t, records[0].Wins+records[0].Losses+records[0].Ties)
}

func TestSideKey_OrderIndependent(t *testing.T) {
	assert.Equal(t, simulationtypes.SideKey([]string{"b", "a"}), simulationtypes.SideKey([]string{"a", "b"}))
	assert.Equal(t, "a+b", simulationtypes.SideKey([]string{"b", "a"}))
}

func TestBuildSideRecords(t *testing.T) {
	match1 := matchtypes.MatchData{
		Format:       matchtypes.FormatTwoManBestBall,
		TeamAPlayers: []matchtypes.PlayerInMatch{{PlayerID: "a1"}, {PlayerID: "a2"}},
		TeamBPlayers: []matchtypes.PlayerInMatch{{PlayerID: "b1"}, {PlayerID: "b2"}},
	}
	match1.Holes.SetEntry(1, matchtypes.HoleEntry{
		TeamAPlayersGross: [2]matchtypes.Gross{matchtypes.NewGross(4), matchtypes.NewGross(5)},
		TeamBPlayersGross: [2]matchtypes.Gross{matchtypes.NewGross(6), matchtypes.NewGross(7)},
	})

	match2 := matchtypes.MatchData{
		Format:       matchtypes.FormatTwoManBestBall,
		TeamAPlayers: []matchtypes.PlayerInMatch{{PlayerID: "c1"}, {PlayerID: "c2"}},
		TeamBPlayers: []matchtypes.PlayerInMatch{{PlayerID: "a1"}, {PlayerID: "a2"}},
	}

	handicaps := map[string]float64{"a1": 4.2, "a2": 11.7}
	records := BuildSideRecords(matchtypes.FormatTwoManBestBall, []matchtypes.MatchData{match1, match2}, handicaps)

	// a1+a2 appears in both matches but yields one record, from match1.
	require.Len(t, records, 3)
	assert.Equal(t, "a1+a2", records[0].Key)
	assert.Equal(t, "b1+b2", records[1].Key)
	assert.Equal(t, "c1+c2", records[2].Key)

	aSide := records[0]
	require.Len(t, aSide.Players, 2)
	assert.Equal(t, 4.2, aSide.Players[0].HandicapIndex)
	assert.Equal(t, 11.7, aSide.Players[1].HandicapIndex)

	v, ok := aSide.Players[0].HoleGross[0].Value()
	require.True(t, ok)
	assert.Equal(t, 4.0, v)
	v, ok = aSide.Players[1].HoleGross[0].Value()
	require.True(t, ok)
	assert.Equal(t, 5.0, v)
	assert.False(t, aSide.Players[0].HoleGross[1].Valid(), "unrecorded holes stay absent")
}

func TestBuildSideRecords_ScrambleFillsTeamGross(t *testing.T) {
	match := matchtypes.MatchData{
		Format:       matchtypes.FormatTwoManScramble,
		TeamAPlayers: []matchtypes.PlayerInMatch{{PlayerID: "a1"}, {PlayerID: "a2"}},
		TeamBPlayers: []matchtypes.PlayerInMatch{{PlayerID: "b1"}, {PlayerID: "b2"}},
	}
	match.Holes.SetEntry(3, matchtypes.HoleEntry{TeamAGross: matchtypes.NewGross(4), TeamBGross: matchtypes.NewGross(5)})

	records := BuildSideRecords(matchtypes.FormatTwoManScramble, []matchtypes.MatchData{match}, nil)

	require.Len(t, records, 2)
	v, ok := records[0].TeamGross[2].Value()
	require.True(t, ok)
	assert.Equal(t, 4.0, v)
	v, ok = records[1].TeamGross[2].Value()
	require.True(t, ok)
	assert.Equal(t, 5.0, v)
}
