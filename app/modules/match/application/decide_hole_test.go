package matchservice

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	matchtypes "github.com/clearwater-cup/matchplay/app/modules/match/domain/types"
)

func singlesData(strokesA, strokesB matchtypes.StrokeAllocation) matchtypes.MatchData {
	return matchtypes.MatchData{
		Format:       matchtypes.FormatSingles,
		TeamAPlayers: []matchtypes.PlayerInMatch{{PlayerID: "a1", Strokes: strokesA}},
		TeamBPlayers: []matchtypes.PlayerInMatch{{PlayerID: "b1", Strokes: strokesB}},
	}
}

func pairData(format matchtypes.Format) matchtypes.MatchData {
	return matchtypes.MatchData{
		Format:       format,
		TeamAPlayers: []matchtypes.PlayerInMatch{{PlayerID: "a1"}, {PlayerID: "a2"}},
		TeamBPlayers: []matchtypes.PlayerInMatch{{PlayerID: "b1"}, {PlayerID: "b2"}},
	}
}

func TestDecideHole_Singles(t *testing.T) {
	var strokesA matchtypes.StrokeAllocation
	strokesA[0] = 1 // a1 strokes on hole 1

	tests := []struct {
		name  string
		entry matchtypes.HoleEntry
		want  matchtypes.HoleOutcome
	}{
		{
			name:  "lower gross wins",
			entry: matchtypes.HoleEntry{TeamAPlayerGross: matchtypes.NewGross(4), TeamBPlayerGross: matchtypes.NewGross(5)},
			want:  matchtypes.HoleOutcomeTeamA,
		},
		{
			name:  "stroke flips a tie",
			entry: matchtypes.HoleEntry{TeamAPlayerGross: matchtypes.NewGross(5), TeamBPlayerGross: matchtypes.NewGross(5)},
			want:  matchtypes.HoleOutcomeTeamA,
		},
		{
			name:  "missing side is incomplete",
			entry: matchtypes.HoleEntry{TeamAPlayerGross: matchtypes.NewGross(4)},
			want:  matchtypes.HoleOutcomeIncomplete,
		},
		{
			name:  "NaN is incomplete",
			entry: matchtypes.HoleEntry{TeamAPlayerGross: matchtypes.NewGross(math.NaN()), TeamBPlayerGross: matchtypes.NewGross(5)},
			want:  matchtypes.HoleOutcomeIncomplete,
		},
		{
			name:  "infinity is incomplete",
			entry: matchtypes.HoleEntry{TeamAPlayerGross: matchtypes.NewGross(math.Inf(1)), TeamBPlayerGross: matchtypes.NewGross(5)},
			want:  matchtypes.HoleOutcomeIncomplete,
		},
		{
			name:  "zero is a valid score",
			entry: matchtypes.HoleEntry{TeamAPlayerGross: matchtypes.NewGross(0), TeamBPlayerGross: matchtypes.NewGross(5)},
			want:  matchtypes.HoleOutcomeTeamA,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := singlesData(strokesA, matchtypes.StrokeAllocation{})
			data.Holes.SetEntry(1, tt.entry)
			assert.Equal(t, tt.want, DecideHole(matchtypes.FormatSingles, 1, data))
		})
	}
}

func TestDecideHole_BestBall(t *testing.T) {
	data := pairData(matchtypes.FormatTwoManBestBall)
	data.TeamAPlayers[1].Strokes[0] = 1 // a2 strokes on hole 1

	t.Run("best net counts", func(t *testing.T) {
		d := data
		d.Holes.SetEntry(1, matchtypes.HoleEntry{
			TeamAPlayersGross: [2]matchtypes.Gross{matchtypes.NewGross(6), matchtypes.NewGross(5)}, // a2 nets 4
			TeamBPlayersGross: [2]matchtypes.Gross{matchtypes.NewGross(5), matchtypes.NewGross(5)},
		})
		assert.Equal(t, matchtypes.HoleOutcomeTeamA, DecideHole(d.Format, 1, d))
	})

	t.Run("one missing ball makes the hole incomplete", func(t *testing.T) {
		d := data
		d.Holes.SetEntry(1, matchtypes.HoleEntry{
			TeamAPlayersGross: [2]matchtypes.Gross{matchtypes.NewGross(4), {}},
			TeamBPlayersGross: [2]matchtypes.Gross{matchtypes.NewGross(5), matchtypes.NewGross(5)},
		})
		assert.Equal(t, matchtypes.HoleOutcomeIncomplete, DecideHole(d.Format, 1, d))
	})
}

func TestDecideHole_Shamble_IgnoresStrokes(t *testing.T) {
	data := pairData(matchtypes.FormatTwoManShamble)
	// Even with a seeded stroke the comparison is gross.
	data.TeamAPlayers[0].Strokes[0] = 1
	data.Holes.SetEntry(1, matchtypes.HoleEntry{
		TeamAPlayersGross: [2]matchtypes.Gross{matchtypes.NewGross(5), matchtypes.NewGross(6)},
		TeamBPlayersGross: [2]matchtypes.Gross{matchtypes.NewGross(5), matchtypes.NewGross(7)},
	})
	assert.Equal(t, matchtypes.HoleOutcomeAllSquare, DecideHole(data.Format, 1, data))
}

func TestDecideHole_Scramble(t *testing.T) {
	data := matchtypes.MatchData{Format: matchtypes.FormatTwoManScramble}

	t.Run("team gross decides", func(t *testing.T) {
		d := data
		d.Holes.SetEntry(1, matchtypes.HoleEntry{TeamAGross: matchtypes.NewGross(4), TeamBGross: matchtypes.NewGross(5)})
		assert.Equal(t, matchtypes.HoleOutcomeTeamA, DecideHole(d.Format, 1, d))
	})

	t.Run("per-player fields are ignored", func(t *testing.T) {
		d := data
		d.Holes.SetEntry(1, matchtypes.HoleEntry{
			TeamAPlayerGross:  matchtypes.NewGross(3),
			TeamAPlayersGross: [2]matchtypes.Gross{matchtypes.NewGross(3), matchtypes.NewGross(3)},
		})
		assert.Equal(t, matchtypes.HoleOutcomeIncomplete, DecideHole(d.Format, 1, d))
	})
}

func TestDecideHole_OutOfRangeHole(t *testing.T) {
	data := singlesData(matchtypes.StrokeAllocation{}, matchtypes.StrokeAllocation{})
	assert.Equal(t, matchtypes.HoleOutcomeIncomplete, DecideHole(data.Format, 0, data))
	assert.Equal(t, matchtypes.HoleOutcomeIncomplete, DecideHole(data.Format, 19, data))
}

func TestDecideHole_UnknownFormatFallsBackToBestBall(t *testing.T) {
	data := pairData(matchtypes.Format("mystery_format"))
	data.Holes.SetEntry(1, matchtypes.HoleEntry{
		TeamAPlayersGross: [2]matchtypes.Gross{matchtypes.NewGross(4), matchtypes.NewGross(6)},
		TeamBPlayersGross: [2]matchtypes.Gross{matchtypes.NewGross(5), matchtypes.NewGross(5)},
	})
	assert.Equal(t, matchtypes.HoleOutcomeTeamA, DecideHole(data.Format, 1, data))
}
