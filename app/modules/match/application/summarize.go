package matchservice

import (
	matchtypes "github.com/clearwater-cup/matchplay/app/modules/match/domain/types"
)

// backNineStart is the first hole on which the down-3-plus momentum flags can
// trigger. The source history had both 9 and 10 here; the flag describes the
// back nine, so it starts at hole 10.
const backNineStart = 10

// momentumMargin is the deficit that sets the down-3-plus flag.
const momentumMargin = 3

// Summarize folds the hole-by-hole record into the derived match state. Every
// call walks every hole from scratch; that full re-walk is what makes editing
// an earlier hole correct with no patch logic, including flipping a closed
// match back open.
//
// Incomplete holes are skipped entirely: they win nothing, add nothing to the
// margin history, and do not advance thru. Thru is the furthest completed hole
// number, not a count, so a completed hole 12 behind an incomplete hole 7
// still puts the match "thru 12".
func Summarize(format matchtypes.Format, data matchtypes.MatchData) matchtypes.MatchSummary {
	summary := matchtypes.MatchSummary{
		Winner:        matchtypes.WinnerAllSquare,
		MarginHistory: []int{},
	}

	runningMargin := 0
	for n := 1; n <= matchtypes.HoleCount; n++ {
		outcome := DecideHole(format, n, data)
		if outcome == matchtypes.HoleOutcomeIncomplete {
			continue
		}

		switch outcome {
		case matchtypes.HoleOutcomeTeamA:
			summary.HolesWonA++
			runningMargin++
		case matchtypes.HoleOutcomeTeamB:
			summary.HolesWonB++
			runningMargin--
		}

		summary.Thru = n
		summary.MarginHistory = append(summary.MarginHistory, runningMargin)

		if n >= backNineStart {
			if runningMargin <= -momentumMargin {
				summary.WasDown3PlusBack9A = true
			}
			if runningMargin >= momentumMargin {
				summary.WasDown3PlusBack9B = true
			}
		}

		if summary.WinningHole == 0 && abs(runningMargin) > matchtypes.HoleCount-n {
			summary.WinningHole = n
		}
	}

	summary.Margin = abs(summary.HolesWonA - summary.HolesWonB)
	switch {
	case summary.HolesWonA > summary.HolesWonB:
		leader := matchtypes.TeamA
		summary.Leader = &leader
	case summary.HolesWonB > summary.HolesWonA:
		leader := matchtypes.TeamB
		summary.Leader = &leader
	}

	holesLeft := matchtypes.HoleCount - summary.Thru
	summary.Closed = (summary.Leader != nil && summary.Margin > holesLeft) ||
		summary.Thru == matchtypes.HoleCount
	summary.Dormie = summary.Leader != nil &&
		summary.Margin == holesLeft &&
		summary.Thru < matchtypes.HoleCount

	switch {
	case summary.Thru == matchtypes.HoleCount && summary.HolesWonA == summary.HolesWonB:
		summary.Winner = matchtypes.WinnerAllSquare
	case summary.Leader != nil && *summary.Leader == matchtypes.TeamA:
		summary.Winner = matchtypes.WinnerTeamA
	case summary.Leader != nil && *summary.Leader == matchtypes.TeamB:
		summary.Winner = matchtypes.WinnerTeamB
	default:
		// No leader and not through 18: "AS" is only a display default here;
		// Closed is the authoritative decided-flag.
		summary.Winner = matchtypes.WinnerAllSquare
	}

	return summary
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
