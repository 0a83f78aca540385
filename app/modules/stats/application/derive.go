package statsservice

import (
	"math"

	matchservice "github.com/clearwater-cup/matchplay/app/modules/match/application"
	matchtypes "github.com/clearwater-cup/matchplay/app/modules/match/domain/types"
	statstypes "github.com/clearwater-cup/matchplay/app/modules/stats/domain/types"
)

// MatchContext is everything the deriver needs about one match: the raw data,
// the already-computed summary, and the round, course, and player metadata
// that give the facts their context fields.
type MatchContext struct {
	MatchID string
	Round   matchtypes.Round
	Course  matchtypes.Course
	Data    matchtypes.MatchData
	Summary matchtypes.MatchSummary
	Players map[string]matchtypes.Player
}

// DerivePlayerMatchFacts computes one fact per rostered player. It is pure and
// idempotent: identical input yields identical facts, so facts can be
// overwritten on every recompute, including after a match reopens.
//
// The deriver re-walks the hole record itself rather than trusting anything
// beyond the summary's side-level tallies, because per-player detail (ball
// usage, the 18th-hole tie-break, scoring totals) is not retained by the
// summarizer.
func DerivePlayerMatchFacts(mc MatchContext) []statstypes.PlayerMatchFact {
	facts := make([]statstypes.PlayerMatchFact, 0, len(mc.Data.TeamAPlayers)+len(mc.Data.TeamBPlayers))

	decided, wonBy := decideOn18(mc.Round.Format, mc.Data, mc.Summary)
	leadChanges := countLeadChanges(mc.Summary.MarginHistory)

	for i, p := range mc.Data.TeamAPlayers {
		facts = append(facts, deriveFact(mc, matchtypes.TeamA, i, p, decided, wonBy, leadChanges))
	}
	for i, p := range mc.Data.TeamBPlayers {
		facts = append(facts, deriveFact(mc, matchtypes.TeamB, i, p, decided, wonBy, leadChanges))
	}
	return facts
}

func deriveFact(
	mc MatchContext,
	side matchtypes.TeamSide,
	pairIndex int,
	player matchtypes.PlayerInMatch,
	decidedOn18 bool,
	wonBy *matchtypes.TeamSide,
	leadChanges int,
) statstypes.PlayerMatchFact {
	format := mc.Round.Format
	summary := mc.Summary
	meta := mc.Players[player.PlayerID]

	fact := statstypes.PlayerMatchFact{
		PlayerID:    player.PlayerID,
		DisplayName: meta.DisplayName,
		Tier:        meta.Tier,
		MatchID:     mc.MatchID,
		RoundID:     mc.Round.ID,
		Format:      format,
		Side:        side,
		PartnerID:   partnerID(sidePlayers(mc.Data, side), pairIndex),
		OpponentIDs: playerIDs(sidePlayers(mc.Data, side.Opponent())),
		LeadChanges: leadChanges,
		DecidedOn18: decidedOn18,
	}

	// Outcome and points. The winner field is a display default for open
	// matches, but points follow it either way; aggregates are rebuilt on every
	// result change, so provisional points wash out.
	switch {
	case summary.Winner == matchtypes.Winner(side):
		fact.Outcome = statstypes.OutcomeWin
		fact.PointsEarned = mc.Round.PointValue
	case summary.Winner == matchtypes.Winner(side.Opponent()):
		fact.Outcome = statstypes.OutcomeLoss
	default:
		fact.Outcome = statstypes.OutcomeHalve
		fact.PointsEarned = mc.Round.PointValue / 2
	}

	if side == matchtypes.TeamA {
		fact.HolesWon, fact.HolesLost = summary.HolesWonA, summary.HolesWonB
	} else {
		fact.HolesWon, fact.HolesLost = summary.HolesWonB, summary.HolesWonA
	}
	fact.HolesHalved = summary.Thru - fact.HolesWon - fact.HolesLost

	fact.WasNeverBehind = wasNeverBehind(summary.MarginHistory, side)
	fact.ComebackWin = wasDown3PlusBack9(summary, side) && fact.Outcome == statstypes.OutcomeWin
	fact.BlownLead = wasDown3PlusBack9(summary, side.Opponent()) && fact.Outcome != statstypes.OutcomeWin

	if decidedOn18 && wonBy != nil {
		won := *wonBy == side
		fact.Won18thHole = &won
	}

	if format == matchtypes.FormatTwoManBestBall || format == matchtypes.FormatTwoManShamble {
		deriveBallUsage(&fact, mc, side, pairIndex, player)
	}

	deriveTotals(&fact, mc, side, pairIndex, player, meta)

	return fact
}

// decideOn18 determines whether the 18th hole itself settled the match, and if
// so which side's hole it was. A match is only decided on 18 when it went the
// distance, no earlier hole had already closed it mathematically, and the 18th
// either broke a tie or pulled the trailing side level.
func decideOn18(format matchtypes.Format, data matchtypes.MatchData, summary matchtypes.MatchSummary) (bool, *matchtypes.TeamSide) {
	if summary.Thru != matchtypes.HoleCount {
		return false, nil
	}
	if summary.WinningHole != 0 && summary.WinningHole < matchtypes.HoleCount {
		return false, nil
	}

	marginInto18 := 0
	for n := 1; n < matchtypes.HoleCount; n++ {
		switch matchservice.DecideHole(format, n, data) {
		case matchtypes.HoleOutcomeTeamA:
			marginInto18++
		case matchtypes.HoleOutcomeTeamB:
			marginInto18--
		}
	}
	hole18 := matchservice.DecideHole(format, matchtypes.HoleCount, data)

	switch {
	case marginInto18 == 0:
		// Tied going in: any decisive 18th decides the match.
		switch hole18 {
		case matchtypes.HoleOutcomeTeamA:
			side := matchtypes.TeamA
			return true, &side
		case matchtypes.HoleOutcomeTeamB:
			side := matchtypes.TeamB
			return true, &side
		}
		return false, nil

	case marginInto18 == 1:
		// A is 1-up: only B winning 18 (pulling the halve) decides anything;
		// A winning or halving just confirms the pre-18 lead.
		if hole18 == matchtypes.HoleOutcomeTeamB {
			side := matchtypes.TeamB
			return true, &side
		}
		return false, nil

	case marginInto18 == -1:
		if hole18 == matchtypes.HoleOutcomeTeamA {
			side := matchtypes.TeamA
			return true, &side
		}
		return false, nil

	default:
		// Two or more up going into 18: already closed.
		return false, nil
	}
}

// deriveBallUsage fills the best-ball/shamble usage block. The comparison
// score is net for best ball and gross for shamble, matching the hole
// decision rule for each format. Only holes where both partners hold a valid
// ball are counted.
func deriveBallUsage(fact *statstypes.PlayerMatchFact, mc MatchContext, side matchtypes.TeamSide, pairIndex int, player matchtypes.PlayerInMatch) {
	partnerIndex := 1 - pairIndex
	players := sidePlayers(mc.Data, side)

	var used, solo, shared, soloWon, soloPush int
	var usedOn18 *bool

	for n := 1; n <= matchtypes.HoleCount; n++ {
		pair := sidePairGross(mc.Data.Holes.Entry(n), side)

		mine, okMine := comparisonScore(mc.Round.Format, pair[pairIndex], player, n)
		theirs, okTheirs := comparisonScore(mc.Round.Format, pair[partnerIndex], pairPlayer(players, partnerIndex), n)
		if !okMine || !okTheirs {
			continue
		}

		if mine <= theirs {
			used++
			if mine < theirs {
				solo++
				switch matchservice.DecideHole(mc.Round.Format, n, mc.Data) {
				case matchtypes.HoleOutcome(side):
					soloWon++
				case matchtypes.HoleOutcomeAllSquare:
					soloPush++
				}
			} else {
				shared++
			}
		}

		if n == matchtypes.HoleCount {
			// Exact tie on 18 counts for both partners, never unknown.
			v := mine <= theirs
			usedOn18 = &v
		}
	}

	fact.BallsUsed = &used
	fact.BallsUsedSolo = &solo
	fact.BallsUsedShared = &shared
	fact.BallsUsedSoloWonHole = &soloWon
	fact.BallsUsedSoloPush = &soloPush
	fact.BallUsedOn18 = usedOn18
}

// deriveTotals fills the scoring totals over holes actually recorded.
//
// strokesVsParNet is gross minus the player's true course handicap minus the
// course par. That is a different quantity from gross minus the match's stroke
// allocation: spin-down against a lower-handicap opponent makes the allocation
// smaller than the handicap, and the two must never be conflated.
func deriveTotals(fact *statstypes.PlayerMatchFact, mc MatchContext, side matchtypes.TeamSide, pairIndex int, player matchtypes.PlayerInMatch, meta matchtypes.Player) {
	coursePar := mc.Course.TotalPar()
	format := mc.Round.Format

	if format != matchtypes.FormatTwoManScramble {
		var grossSum, netSum float64
		var holes int
		for n := 1; n <= matchtypes.HoleCount; n++ {
			entry := mc.Data.Holes.Entry(n)
			var ball matchtypes.Gross
			if format == matchtypes.FormatSingles {
				ball = sideSingleGross(entry, side)
			} else {
				ball = sidePairGross(entry, side)[pairIndex]
			}
			v, ok := ball.Value()
			if !ok {
				continue
			}
			holes++
			grossSum += v
			netSum += v - float64(player.Strokes.At(n))
		}
		fact.HolesRecorded = holes
		if holes > 0 {
			// Scores stay float64 through the walk; rounding once at the
			// end keeps fractional entries from truncating per hole.
			gross := int(math.Round(grossSum))
			net := int(math.Round(netSum))
			courseHandicap := matchtypes.CourseHandicap(meta.HandicapIndex, mc.Course.Slope, mc.Course.Rating, float64(coursePar))
			vsParGross := gross - coursePar
			vsParNet := gross - courseHandicap - coursePar
			fact.TotalGross = &gross
			fact.TotalNet = &net
			fact.StrokesVsParGross = &vsParGross
			fact.StrokesVsParNet = &vsParNet
		}
	}

	if format == matchtypes.FormatTwoManScramble || format == matchtypes.FormatTwoManShamble {
		var teamSum float64
		var teamHoles int
		for n := 1; n <= matchtypes.HoleCount; n++ {
			entry := mc.Data.Holes.Entry(n)
			v, ok := teamScore(format, entry, side)
			if !ok {
				continue
			}
			teamHoles++
			teamSum += v
		}
		fact.TeamHolesRecorded = teamHoles
		if teamHoles > 0 {
			teamGross := int(math.Round(teamSum))
			vsPar := teamGross - coursePar
			fact.TeamTotalGross = &teamGross
			fact.TeamStrokesVsParGross = &vsPar
		}
	}
}

// teamScore returns the side's one-ball team score for the hole: the recorded
// team gross for scramble, the better of the two balls for shamble.
func teamScore(format matchtypes.Format, entry matchtypes.HoleEntry, side matchtypes.TeamSide) (float64, bool) {
	if format == matchtypes.FormatTwoManScramble {
		if side == matchtypes.TeamA {
			return entry.TeamAGross.Value()
		}
		return entry.TeamBGross.Value()
	}
	pair := sidePairGross(entry, side)
	a, okA := pair[0].Value()
	b, okB := pair[1].Value()
	if !okA || !okB {
		return 0, false
	}
	if b < a {
		return b, true
	}
	return a, true
}

// comparisonScore is the per-ball score used for usage comparison: net for
// best ball, gross for shamble.
func comparisonScore(format matchtypes.Format, gross matchtypes.Gross, player matchtypes.PlayerInMatch, holeNumber int) (float64, bool) {
	v, ok := gross.Value()
	if !ok {
		return 0, false
	}
	if format == matchtypes.FormatTwoManBestBall {
		v -= float64(player.Strokes.At(holeNumber))
	}
	return v, true
}

// wasNeverBehind reports whether the side's running margin never dipped into
// the opponent's favor at any recorded point.
func wasNeverBehind(marginHistory []int, side matchtypes.TeamSide) bool {
	for _, m := range marginHistory {
		if side == matchtypes.TeamA && m < 0 {
			return false
		}
		if side == matchtypes.TeamB && m > 0 {
			return false
		}
	}
	return true
}

// countLeadChanges counts changes in the nonzero sign of consecutive nonzero
// margin entries. Passing through zero is leaving the lead, not necessarily an
// extra change.
func countLeadChanges(marginHistory []int) int {
	changes := 0
	lastSign := 0
	for _, m := range marginHistory {
		if m == 0 {
			continue
		}
		sign := 1
		if m < 0 {
			sign = -1
		}
		if lastSign != 0 && sign != lastSign {
			changes++
		}
		lastSign = sign
	}
	return changes
}

func wasDown3PlusBack9(summary matchtypes.MatchSummary, side matchtypes.TeamSide) bool {
	if side == matchtypes.TeamA {
		return summary.WasDown3PlusBack9A
	}
	return summary.WasDown3PlusBack9B
}

func sidePlayers(data matchtypes.MatchData, side matchtypes.TeamSide) []matchtypes.PlayerInMatch {
	if side == matchtypes.TeamA {
		return data.TeamAPlayers
	}
	return data.TeamBPlayers
}

func sideSingleGross(entry matchtypes.HoleEntry, side matchtypes.TeamSide) matchtypes.Gross {
	if side == matchtypes.TeamA {
		return entry.TeamAPlayerGross
	}
	return entry.TeamBPlayerGross
}

func sidePairGross(entry matchtypes.HoleEntry, side matchtypes.TeamSide) [2]matchtypes.Gross {
	if side == matchtypes.TeamA {
		return entry.TeamAPlayersGross
	}
	return entry.TeamBPlayersGross
}

func pairPlayer(players []matchtypes.PlayerInMatch, index int) matchtypes.PlayerInMatch {
	if index < 0 || index >= len(players) {
		return matchtypes.PlayerInMatch{}
	}
	return players[index]
}

func partnerID(players []matchtypes.PlayerInMatch, pairIndex int) *string {
	partnerIndex := 1 - pairIndex
	if len(players) < 2 || partnerIndex < 0 || partnerIndex >= len(players) {
		return nil
	}
	id := players[partnerIndex].PlayerID
	return &id
}

func playerIDs(players []matchtypes.PlayerInMatch) []string {
	ids := make([]string, 0, len(players))
	for _, p := range players {
		ids = append(ids, p.PlayerID)
	}
	return ids
}
