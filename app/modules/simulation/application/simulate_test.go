package simulationservice

import (
	"testing"

	"github.com/stretchr/testify/assert"

	matchtypes "github.com/clearwater-cup/matchplay/app/modules/match/domain/types"
	simulationtypes "github.com/clearwater-cup/matchplay/app/modules/simulation/domain/types"
)

func simCourse() matchtypes.Course {
	holes := make([]matchtypes.CourseHole, 0, matchtypes.HoleCount)
	for n := 1; n <= matchtypes.HoleCount; n++ {
		holes = append(holes, matchtypes.CourseHole{Number: n, Par: 4, HcpIndex: n})
	}
	return matchtypes.Course{ID: "course-1", Slope: 113, Rating: 72, Holes: holes}
}

func singlesSide(playerID string, handicapIndex float64, scores [18]float64) simulationtypes.SideRecord {
	perf := simulationtypes.PlayerPerformance{PlayerID: playerID, HandicapIndex: handicapIndex}
	for i, s := range scores {
		if s > 0 {
			perf.HoleGross[i] = matchtypes.NewGross(s)
		}
	}
	return simulationtypes.SideRecord{
		Key:       simulationtypes.SideKey([]string{playerID}),
		PlayerIDs: []string{playerID},
		Players:   []simulationtypes.PlayerPerformance{perf},
	}
}

func flatScores(v float64) [18]float64 {
	var scores [18]float64
	for i := range scores {
		scores[i] = v
	}
	return scores
}

func TestSimulateHeadToHead_IdenticalRecordsTie(t *testing.T) {
	for _, format := range []matchtypes.Format{
		matchtypes.FormatSingles,
		matchtypes.FormatTwoManBestBall,
		matchtypes.FormatTwoManShamble,
		matchtypes.FormatTwoManScramble,
	} {
		t.Run(string(format), func(t *testing.T) {
			var a, b simulationtypes.SideRecord
			switch format {
			case matchtypes.FormatSingles:
				a = singlesSide("a1", 8, flatScores(4))
				b = singlesSide("b1", 8, flatScores(4))
			case matchtypes.FormatTwoManScramble:
				a = simulationtypes.SideRecord{Key: "a1+a2", PlayerIDs: []string{"a1", "a2"}}
				b = simulationtypes.SideRecord{Key: "b1+b2", PlayerIDs: []string{"b1", "b2"}}
				for i := 0; i < matchtypes.HoleCount; i++ {
					a.TeamGross[i] = matchtypes.NewGross(4)
					b.TeamGross[i] = matchtypes.NewGross(4)
				}
			default:
				a = pairSide("a1", "a2", 6, 10, flatScores(4), flatScores(5))
				b = pairSide("b1", "b2", 6, 10, flatScores(4), flatScores(5))
			}

			result := SimulateHeadToHead(format, a, b, simCourse())
			assert.Equal(t, matchtypes.WinnerAllSquare, result.Winner)
			assert.Equal(t, result.HolesWonA, result.HolesWonB)
		})
	}
}

func pairSide(id1, id2 string, h1, h2 float64, s1, s2 [18]float64) simulationtypes.SideRecord {
	p1 := simulationtypes.PlayerPerformance{PlayerID: id1, HandicapIndex: h1}
	p2 := simulationtypes.PlayerPerformance{PlayerID: id2, HandicapIndex: h2}
	for i := 0; i < 18; i++ {
		if s1[i] > 0 {
			p1.HoleGross[i] = matchtypes.NewGross(s1[i])
		}
		if s2[i] > 0 {
			p2.HoleGross[i] = matchtypes.NewGross(s2[i])
		}
	}
	return simulationtypes.SideRecord{
		Key:       simulationtypes.SideKey([]string{id1, id2}),
		PlayerIDs: []string{id1, id2},
		Players:   []simulationtypes.PlayerPerformance{p1, p2},
	}
}

func TestSimulateHeadToHead_SpinDownLeavesLowestAtScratch(t *testing.T) {
	// Equal gross everywhere; only the handicap differential separates them.
	// a1 plays at 8, b1 at 5: after spin-down a1 receives 3 strokes on the
	// three hardest holes and b1 receives none.
	a := singlesSide("a1", 8, flatScores(4))
	b := singlesSide("b1", 5, flatScores(4))

	result := SimulateHeadToHead(matchtypes.FormatSingles, a, b, simCourse())

	assert.Equal(t, matchtypes.WinnerTeamA, result.Winner)
	assert.Equal(t, 3, result.HolesWonA)
	assert.Equal(t, 0, result.HolesWonB)
}

func TestSimulateHeadToHead_ShambleIgnoresHandicaps(t *testing.T) {
	// Same shapes as the spin-down test, but shamble plays gross.
	a := pairSide("a1", "a2", 8, 8, flatScores(4), flatScores(5))
	b := pairSide("b1", "b2", 5, 5, flatScores(4), flatScores(5))

	result := SimulateHeadToHead(matchtypes.FormatTwoManShamble, a, b, simCourse())

	assert.Equal(t, matchtypes.WinnerAllSquare, result.Winner)
	assert.Zero(t, result.HolesWonA)
	assert.Zero(t, result.HolesWonB)
}

func TestSimulateHeadToHead_SkipsHolesWithoutScores(t *testing.T) {
	scoresA := flatScores(4)
	scoresB := flatScores(5)
	scoresA[6] = 0 // hole 7 never recorded for A
	scoresB[11] = 0

	a := singlesSide("a1", 0, scoresA)
	b := singlesSide("b1", 0, scoresB)

	result := SimulateHeadToHead(matchtypes.FormatSingles, a, b, simCourse())

	assert.Equal(t, matchtypes.WinnerTeamA, result.Winner)
	assert.LessOrEqual(t, result.HolesWonA+result.HolesWonB, 16)
	assert.Zero(t, result.HolesWonB)
}

func TestSimulateHeadToHead_EmptySideNeverWinsAHole(t *testing.T) {
	a := singlesSide("a1", 0, flatScores(4))
	b := simulationtypes.SideRecord{Key: "b1", PlayerIDs: []string{"b1"}}

	result := SimulateHeadToHead(matchtypes.FormatSingles, a, b, simCourse())

	assert.Equal(t, matchtypes.WinnerAllSquare, result.Winner)
	assert.Zero(t, result.HolesWonA)
	assert.Zero(t, result.HolesWonB)
}
