package scouting

import "github.com/scoutlab/scout-dashboard/internal/models"

// Enrich returns a copy of the record set with the derived metrics
// attached. The caller's slice is never mutated.
//
// CostPerPerformance uses 0 as a sentinel for "undefined" when a player
// has no goal contributions. Ranking code must filter on Performance > 0
// rather than treat the sentinel as a real cost.
func Enrich(players []models.Player) []models.Player {
	enriched := make([]models.Player, len(players))
	copy(enriched, players)

	for i := range enriched {
		p := &enriched[i]
		p.Performance = p.Goals + p.Assists
		if p.Performance > 0 {
			p.CostPerPerformance = p.MarketValue / float64(p.Performance)
		} else {
			p.CostPerPerformance = 0
		}
		p.AgeGroup = classifyAge(p.Age)
	}

	return enriched
}

// classifyAge buckets an age with right-closed bins (0,21] (21,29] (29,40].
// Ages outside the range stay unclassified and are excluded from
// age-group aggregates.
func classifyAge(age int) models.AgeGroup {
	switch {
	case age > 0 && age <= 21:
		return models.AgeGroupYoungProspect
	case age >= 22 && age <= 29:
		return models.AgeGroupPrime
	case age >= 30 && age <= 40:
		return models.AgeGroupVeteran
	default:
		return models.AgeGroupUnclassified
	}
}
