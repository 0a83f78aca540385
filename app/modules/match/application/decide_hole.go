package matchservice

import (
	matchtypes "github.com/clearwater-cup/matchplay/app/modules/match/domain/types"
)

// DecideHole decides the outcome of one hole under the given format. It is
// pure and never panics: any missing or non-finite required score makes the
// whole hole incomplete, and incomplete holes are excluded from every
// aggregate downstream.
//
// The comparison rule is uniform across formats: strictly lower side score
// wins, equal side scores halve the hole.
func DecideHole(format matchtypes.Format, holeNumber int, data matchtypes.MatchData) matchtypes.HoleOutcome {
	if holeNumber < 1 || holeNumber > matchtypes.HoleCount {
		return matchtypes.HoleOutcomeIncomplete
	}
	entry := data.Holes.Entry(holeNumber)

	var (
		scoreA, scoreB float64
		okA, okB       bool
	)

	switch format {
	case matchtypes.FormatTwoManScramble:
		// One ball per side, gross, no handicap.
		scoreA, okA = entry.TeamAGross.Value()
		scoreB, okB = entry.TeamBGross.Value()

	case matchtypes.FormatSingles:
		scoreA, okA = singleNet(entry.TeamAPlayerGross, data.TeamAPlayers, holeNumber)
		scoreB, okB = singleNet(entry.TeamBPlayerGross, data.TeamBPlayers, holeNumber)

	case matchtypes.FormatTwoManShamble:
		// Both balls required; best gross counts, strokes ignored even when
		// seeded on the players.
		scoreA, okA = bestOfPair(entry.TeamAPlayersGross, nil, holeNumber)
		scoreB, okB = bestOfPair(entry.TeamBPlayersGross, nil, holeNumber)

	default:
		// Best ball is the fallback format: both balls required, each net of
		// its own stroke, best net counts.
		scoreA, okA = bestOfPair(entry.TeamAPlayersGross, data.TeamAPlayers, holeNumber)
		scoreB, okB = bestOfPair(entry.TeamBPlayersGross, data.TeamBPlayers, holeNumber)
	}

	if !okA || !okB {
		return matchtypes.HoleOutcomeIncomplete
	}
	switch {
	case scoreA < scoreB:
		return matchtypes.HoleOutcomeTeamA
	case scoreB < scoreA:
		return matchtypes.HoleOutcomeTeamB
	default:
		return matchtypes.HoleOutcomeAllSquare
	}
}

// singleNet returns the lone player's net score for the hole.
func singleNet(gross matchtypes.Gross, players []matchtypes.PlayerInMatch, holeNumber int) (float64, bool) {
	v, ok := gross.Value()
	if !ok {
		return 0, false
	}
	if len(players) > 0 {
		v -= float64(players[0].Strokes.At(holeNumber))
	}
	return v, true
}

// bestOfPair returns the better of the two balls, each net of its own stroke
// when players is non-nil. Both balls must be present and finite.
func bestOfPair(pair [2]matchtypes.Gross, players []matchtypes.PlayerInMatch, holeNumber int) (float64, bool) {
	var best float64
	for i := 0; i < 2; i++ {
		v, ok := pair[i].Value()
		if !ok {
			return 0, false
		}
		if players != nil && i < len(players) {
			v -= float64(players[i].Strokes.At(holeNumber))
		}
		if i == 0 || v < best {
			best = v
		}
	}
	return best, true
}
