package models

import "strings"

// AgeGroup buckets players by age. The zero value means the age fell
// outside the classified range and the player carries no group.
type AgeGroup string

const (
	AgeGroupYoungProspect AgeGroup = "Young Prospect"
	AgeGroupPrime         AgeGroup = "Prime"
	AgeGroupVeteran       AgeGroup = "Veteran"
	AgeGroupUnclassified  AgeGroup = ""
)

// Player is one row of the scouting dataset. The derived fields are
// computed once per dataset by scouting.Enrich and never written back
// to the source file.
type Player struct {
	Name        string  `json:"name"`
	Club        string  `json:"club"`
	Nationality string  `json:"nationality"`
	Position    string  `json:"position"`
	Age         int     `json:"age"`
	MarketValue float64 `json:"market_value"`
	Goals       int     `json:"goals"`
	Assists     int     `json:"assists"`
	YellowCards int     `json:"yellow_cards"`
	RedCards    int     `json:"red_cards"`

	// Derived
	Performance        int      `json:"performance"`
	CostPerPerformance float64  `json:"cost_per_performance"`
	AgeGroup           AgeGroup `json:"age_group,omitempty"`
}

// Roles splits a position cell that encodes several roles, e.g.
// "CF, LW" or "CB/RB". A single-role cell yields one entry.
func (p Player) Roles() []string {
	fields := strings.FieldsFunc(p.Position, func(r rune) bool {
		return r == ',' || r == '/'
	})
	roles := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			roles = append(roles, f)
		}
	}
	return roles
}

// CardCount is the disciplinary total used for risk ranking.
func (p Player) CardCount() int {
	return p.YellowCards + p.RedCards
}
