package scouting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoutlab/scout-dashboard/internal/models"
)

func TestFilterZeroValueIsIdentity(t *testing.T) {
	players := Enrich(scenarioPlayers())

	assert.Equal(t, players, Filter{}.Apply(players))
}

func TestFilterFullRangesAreIdentity(t *testing.T) {
	players := Enrich(scenarioPlayers())
	f := Filter{
		Ages:         &AgeRange{Min: 0, Max: 100},
		MarketValues: &ValueRange{Min: 0, Max: 10_000_000},
	}

	assert.Equal(t, players, f.Apply(players))
}

func TestFilterConjunction(t *testing.T) {
	players := Enrich(scenarioPlayers())

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{
			name:   "club inclusion",
			filter: Filter{Clubs: []string{"Arsenal", "Chelsea"}},
			want:   []string{"Ana", "Carl"},
		},
		{
			name:   "unknown club never matches",
			filter: Filter{Clubs: []string{"Real Madrid"}},
			want:   []string{},
		},
		{
			name:   "nationality",
			filter: Filter{Nationalities: []string{"Brazil"}},
			want:   []string{"Ben"},
		},
		{
			name:   "age range is closed",
			filter: Filter{Ages: &AgeRange{Min: 20, Max: 25}},
			want:   []string{"Ana", "Ben"},
		},
		{
			name:   "value range",
			filter: Filter{MarketValues: &ValueRange{Min: 900_000, Max: 2_000_000}},
			want:   []string{"Ana", "Carl"},
		},
		{
			name:   "conjunction of club and age",
			filter: Filter{Clubs: []string{"Arsenal", "Chelsea"}, Ages: &AgeRange{Min: 30, Max: 40}},
			want:   []string{"Carl"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Apply(players)
			names := make([]string, 0, len(got))
			for _, p := range got {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestFilterMatchesAnyEncodedRole(t *testing.T) {
	players := []models.Player{
		{Name: "multi", Position: "CF, LW"},
		{Name: "slash", Position: "CB/RB"},
		{Name: "single", Position: "GK"},
	}

	got := Filter{Positions: []string{"LW", "RB"}}.Apply(players)
	require.Len(t, got, 2)
	assert.Equal(t, "multi", got[0].Name)
	assert.Equal(t, "slash", got[1].Name)
}

func TestFilterEmptyResultIsNotAnError(t *testing.T) {
	players := Enrich(scenarioPlayers())
	got := Filter{Ages: &AgeRange{Min: 90, Max: 99}}.Apply(players)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilterFingerprintOrderIndependent(t *testing.T) {
	a := Filter{Clubs: []string{"Arsenal", "Chelsea"}, Positions: []string{"CF", "GK"}}
	b := Filter{Clubs: []string{"Chelsea", "Arsenal"}, Positions: []string{"GK", "CF"}}
	c := Filter{Clubs: []string{"Chelsea"}}

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}
