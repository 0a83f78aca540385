package matchtypes

import (
	"math"
	"sort"
)

// StandardSlope is the neutral slope rating used when none is provided.
const StandardSlope = 113

// DefaultPar stands in for the course par when the configured value is
// unusable.
const DefaultPar = 72

func finiteOr(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

// CourseHandicap converts a handicap index into a whole-number course
// handicap: round(index * slope/113 + (rating - par)). Malformed inputs fall
// back rather than fail: a non-finite or unset slope becomes 113, a non-finite
// or unset par becomes DefaultPar, a non-finite index becomes 0, and a
// non-finite or unset rating becomes the par. The function never propagates a
// non-finite value and never errors. An index of 0 is a real scratch value,
// not an absence.
func CourseHandicap(handicapIndex, slope, rating, par float64) int {
	if slope == 0 {
		slope = StandardSlope
	}
	slope = finiteOr(slope, StandardSlope)
	if par == 0 {
		par = DefaultPar
	}
	par = finiteOr(par, DefaultPar)
	handicapIndex = finiteOr(handicapIndex, 0)
	if rating == 0 {
		rating = par
	}
	rating = finiteOr(rating, par)

	result := math.Round(handicapIndex*(slope/StandardSlope) + (rating - par))
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0
	}
	return int(result)
}

// StrokesReceived distributes clamp(courseHandicap, 0, 18) strokes across the
// card, hardest holes first by ascending HcpIndex. Ties in HcpIndex cannot
// occur in valid course data; if they do, input order breaks the tie (stable
// sort).
func StrokesReceived(courseHandicap int, holes []CourseHole) StrokeAllocation {
	strokes := courseHandicap
	if strokes < 0 {
		strokes = 0
	}
	if strokes > HoleCount {
		strokes = HoleCount
	}

	ranked := make([]CourseHole, len(holes))
	copy(ranked, holes)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].HcpIndex < ranked[j].HcpIndex
	})

	var allocation StrokeAllocation
	for i := 0; i < strokes && i < len(ranked); i++ {
		n := ranked[i].Number
		if n < 1 || n > HoleCount {
			continue
		}
		allocation[n-1] = 1
	}
	return allocation
}
