package statsservice

import (
	statstypes "github.com/clearwater-cup/matchplay/app/modules/stats/domain/types"
)

// AggregateFacts rebuilds every player's aggregate from the full fact set.
// Rebuilding from scratch instead of patching keeps the aggregates correct
// when a match reopens and its facts are overwritten.
//
// Tier and opponent breakdowns are keyed by the opposing players: a win over a
// two-man side counts once against each opponent, and once per distinct
// opponent tier.
func AggregateFacts(facts []statstypes.PlayerMatchFact, players map[string]string, tiers map[string]string) map[string]*statstypes.PlayerAggregate {
	aggregates := make(map[string]*statstypes.PlayerAggregate)

	for _, fact := range facts {
		agg, ok := aggregates[fact.PlayerID]
		if !ok {
			agg = statstypes.NewPlayerAggregate(fact.PlayerID, fact.DisplayName)
			aggregates[fact.PlayerID] = agg
		}
		if agg.DisplayName == "" {
			agg.DisplayName = players[fact.PlayerID]
		}

		agg.Lifetime.Add(fact.Outcome)
		agg.Points += fact.PointsEarned
		agg.HolesWon += fact.HolesWon
		agg.HolesLost += fact.HolesLost
		agg.HolesHalved += fact.HolesHalved
		if fact.ComebackWin {
			agg.ComebackWins++
		}
		if fact.BlownLead {
			agg.BlownLeads++
		}
		if fact.Won18thHole != nil && *fact.Won18thHole {
			agg.Clutch18Wins++
		}

		seenTiers := make(map[string]bool, len(fact.OpponentIDs))
		for _, opponentID := range fact.OpponentIDs {
			record, ok := agg.ByOpponent[opponentID]
			if !ok {
				record = &statstypes.Record{}
				agg.ByOpponent[opponentID] = record
			}
			record.Add(fact.Outcome)

			tier := tiers[opponentID]
			if tier == "" || seenTiers[tier] {
				continue
			}
			seenTiers[tier] = true
			tierRecord, ok := agg.ByTier[tier]
			if !ok {
				tierRecord = &statstypes.Record{}
				agg.ByTier[tier] = tierRecord
			}
			tierRecord.Add(fact.Outcome)
		}
	}

	return aggregates
}
