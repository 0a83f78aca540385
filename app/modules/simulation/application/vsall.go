package simulationservice

import (
	"context"
	"runtime"
	"sort"
	"sync"

	matchtypes "github.com/clearwater-cup/matchplay/app/modules/match/domain/types"
	simulationtypes "github.com/clearwater-cup/matchplay/app/modules/simulation/domain/types"
)

// ComputeVsAll simulates every pairing of entrants and tallies a wins/losses/
// ties record per entrant. Each pairwise simulation is independent and
// read-only over its inputs, so pairs fan out across a bounded worker pool;
// the tallies are merged after all workers finish, keeping the output
// deterministic.
func ComputeVsAll(
	ctx context.Context,
	format matchtypes.Format,
	sides []simulationtypes.SideRecord,
	course matchtypes.Course,
) []simulationtypes.VsAllRecord {
	type pair struct{ a, b int }
	type outcome struct {
		pair   pair
		result simulationtypes.HeadToHeadResult
	}

	pairs := make([]pair, 0, len(sides)*(len(sides)-1)/2)
	for i := 0; i < len(sides); i++ {
		for j := i + 1; j < len(sides); j++ {
			pairs = append(pairs, pair{a: i, b: j})
		}
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > len(pairs) {
		workers = len(pairs)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan pair)
	outcomes := make(chan outcome, len(pairs))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range jobs {
				outcomes <- outcome{pair: p, result: SimulateHeadToHead(format, sides[p.a], sides[p.b], course)}
			}
		}()
	}

feed:
	for _, p := range pairs {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- p:
		}
	}
	close(jobs)
	wg.Wait()
	close(outcomes)

	records := make(map[int]*simulationtypes.VsAllRecord, len(sides))
	for i, side := range sides {
		records[i] = &simulationtypes.VsAllRecord{Key: side.Key, PlayerIDs: side.PlayerIDs}
	}

	for o := range outcomes {
		a, b := records[o.pair.a], records[o.pair.b]
		switch o.result.Winner {
		case matchtypes.WinnerTeamA:
			a.Wins++
			b.Losses++
		case matchtypes.WinnerTeamB:
			b.Wins++
			a.Losses++
		default:
			a.Ties++
			b.Ties++
		}
	}

	out := make([]simulationtypes.VsAllRecord, 0, len(records))
	for i := 0; i < len(sides); i++ {
		out = append(out, *records[i])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// BuildSideRecords folds a round's matches into one entrant record per side
// key. Re-encountering a key (a player or pairing appearing in more than one
// match) keeps the first record; within one round each entrant plays once.
func BuildSideRecords(
	format matchtypes.Format,
	matches []matchtypes.MatchData,
	handicaps map[string]float64,
) []simulationtypes.SideRecord {
	byKey := make(map[string]simulationtypes.SideRecord)
	order := make([]string, 0, len(matches)*2)

	add := func(record simulationtypes.SideRecord) {
		if _, ok := byKey[record.Key]; ok {
			return
		}
		byKey[record.Key] = record
		order = append(order, record.Key)
	}

	for _, data := range matches {
		add(buildSide(format, data, matchtypes.TeamA, handicaps))
		add(buildSide(format, data, matchtypes.TeamB, handicaps))
	}

	records := make([]simulationtypes.SideRecord, 0, len(order))
	for _, key := range order {
		records = append(records, byKey[key])
	}
	return records
}

func buildSide(
	format matchtypes.Format,
	data matchtypes.MatchData,
	side matchtypes.TeamSide,
	handicaps map[string]float64,
) simulationtypes.SideRecord {
	players := data.TeamAPlayers
	if side == matchtypes.TeamB {
		players = data.TeamBPlayers
	}

	record := simulationtypes.SideRecord{}
	for _, p := range players {
		record.PlayerIDs = append(record.PlayerIDs, p.PlayerID)
		record.Players = append(record.Players, simulationtypes.PlayerPerformance{
			PlayerID:      p.PlayerID,
			HandicapIndex: handicaps[p.PlayerID],
		})
	}
	record.Key = simulationtypes.SideKey(record.PlayerIDs)

	for n := 1; n <= matchtypes.HoleCount; n++ {
		entry := data.Holes.Entry(n)
		switch format {
		case matchtypes.FormatSingles:
			if len(record.Players) > 0 {
				record.Players[0].HoleGross[n-1] = singleGross(entry, side)
			}
		case matchtypes.FormatTwoManScramble:
			record.TeamGross[n-1] = teamGross(entry, side)
		default:
			pair := pairGross(entry, side)
			for i := range record.Players {
				if i < len(pair) {
					record.Players[i].HoleGross[n-1] = pair[i]
				}
			}
		}
	}
	return record
}

func singleGross(entry matchtypes.HoleEntry, side matchtypes.TeamSide) matchtypes.Gross {
	if side == matchtypes.TeamA {
		return entry.TeamAPlayerGross
	}
	return entry.TeamBPlayerGross
}

func teamGross(entry matchtypes.HoleEntry, side matchtypes.TeamSide) matchtypes.Gross {
	if side == matchtypes.TeamA {
		return entry.TeamAGross
	}
	return entry.TeamBGross
}

func pairGross(entry matchtypes.HoleEntry, side matchtypes.TeamSide) [2]matchtypes.Gross {
	if side == matchtypes.TeamA {
		return entry.TeamAPlayersGross
	}
	return entry.TeamBPlayersGross
}
