package simulationservice

import (
	matchtypes "github.com/clearwater-cup/matchplay/app/modules/match/domain/types"
	simulationtypes "github.com/clearwater-cup/matchplay/app/modules/simulation/domain/types"
)

// SimulateHeadToHead replays two recorded performances against each other
// under the round's format and scoring rules.
//
// For singles and best ball each player's course handicap is recomputed from
// their handicap index and then spun down: the lowest handicap across every
// participating player is subtracted from all of them, so the lowest plays at
// scratch and the rest keep only the differential. Stroke allocations come
// from these adjusted handicaps, independent of whatever allocation the real
// match used. Shamble and scramble are simulated gross.
//
// Holes where either side lacks a usable score are skipped. The walk stops
// early once the margin exceeds the holes remaining; that mirrors real-match
// closure but is purely an optimization here.
func SimulateHeadToHead(
	format matchtypes.Format,
	a, b simulationtypes.SideRecord,
	course matchtypes.Course,
) simulationtypes.HeadToHeadResult {
	strokesA, strokesB := spinDownStrokes(format, a, b, course)

	result := simulationtypes.HeadToHeadResult{Winner: matchtypes.WinnerAllSquare}
	margin := 0

	for n := 1; n <= matchtypes.HoleCount; n++ {
		scoreA, okA := sideScore(format, a, strokesA, n)
		scoreB, okB := sideScore(format, b, strokesB, n)
		if !okA || !okB {
			continue
		}

		switch {
		case scoreA < scoreB:
			result.HolesWonA++
			margin++
		case scoreB < scoreA:
			result.HolesWonB++
			margin--
		}

		if abs(margin) > matchtypes.HoleCount-n {
			break
		}
	}

	switch {
	case margin > 0:
		result.Winner = matchtypes.WinnerTeamA
	case margin < 0:
		result.Winner = matchtypes.WinnerTeamB
	}
	return result
}

// spinDownStrokes returns the per-player stroke allocations for both sides.
// Gross formats get empty allocations.
func spinDownStrokes(
	format matchtypes.Format,
	a, b simulationtypes.SideRecord,
	course matchtypes.Course,
) ([]matchtypes.StrokeAllocation, []matchtypes.StrokeAllocation) {
	if format != matchtypes.FormatSingles && format != matchtypes.FormatTwoManBestBall {
		return nil, nil
	}

	par := float64(course.TotalPar())
	handicapsA := courseHandicaps(a, course, par)
	handicapsB := courseHandicaps(b, course, par)

	low := 0
	first := true
	for _, h := range append(append([]int{}, handicapsA...), handicapsB...) {
		if first || h < low {
			low = h
			first = false
		}
	}

	return allocations(handicapsA, low, course), allocations(handicapsB, low, course)
}

func courseHandicaps(side simulationtypes.SideRecord, course matchtypes.Course, par float64) []int {
	handicaps := make([]int, len(side.Players))
	for i, p := range side.Players {
		handicaps[i] = matchtypes.CourseHandicap(p.HandicapIndex, course.Slope, course.Rating, par)
	}
	return handicaps
}

func allocations(handicaps []int, low int, course matchtypes.Course) []matchtypes.StrokeAllocation {
	allocs := make([]matchtypes.StrokeAllocation, len(handicaps))
	for i, h := range handicaps {
		allocs[i] = matchtypes.StrokesReceived(h-low, course.Holes)
	}
	return allocs
}

// sideScore computes one side's comparison score for the hole under the
// format's rule: lone net ball for singles, best net for best ball, best gross
// for shamble, recorded team gross for scramble.
func sideScore(
	format matchtypes.Format,
	side simulationtypes.SideRecord,
	strokes []matchtypes.StrokeAllocation,
	holeNumber int,
) (float64, bool) {
	if holeNumber < 1 || holeNumber > matchtypes.HoleCount {
		return 0, false
	}

	switch format {
	case matchtypes.FormatTwoManScramble:
		return side.TeamGross[holeNumber-1].Value()

	case matchtypes.FormatSingles:
		if len(side.Players) == 0 {
			return 0, false
		}
		v, ok := side.Players[0].HoleGross[holeNumber-1].Value()
		if !ok {
			return 0, false
		}
		if len(strokes) > 0 {
			v -= float64(strokes[0].At(holeNumber))
		}
		return v, true

	default:
		// Best ball and shamble: both balls required, better one counts,
		// each net of its own stroke when a handicap allocation applies.
		var best float64
		for i, p := range side.Players {
			v, ok := p.HoleGross[holeNumber-1].Value()
			if !ok {
				return 0, false
			}
			if i < len(strokes) {
				v -= float64(strokes[i].At(holeNumber))
			}
			if i == 0 || v < best {
				best = v
			}
		}
		if len(side.Players) == 0 {
			return 0, false
		}
		return best, true
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
