package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Name,Club,Primary Nationality,Position,Age,Market Value,Goals,Assists,Yellow Cards,Red Cards
Ana,Arsenal,Spain,CF,20,1000000,10,5,3,0
Ben,Barcelona,Brazil,"CF, LW",25,500000,2,1,7,1
Carl,Chelsea,England,GK,35,2000000,0,0,0,0
`

func TestLoadCSV(t *testing.T) {
	players, err := LoadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, players, 3)

	assert.Equal(t, Player{
		Name:        "Ana",
		Club:        "Arsenal",
		Nationality: "Spain",
		Position:    "CF",
		Age:         20,
		MarketValue: 1_000_000,
		Goals:       10,
		Assists:     5,
		YellowCards: 3,
	}, players[0])

	assert.Equal(t, "CF, LW", players[1].Position)
	assert.Equal(t, []string{"CF", "LW"}, players[1].Roles())
}

func TestLoadCSVIgnoresExtraColumns(t *testing.T) {
	csv := strings.Join([]string{
		"Name,Club,Primary Nationality,Position,Age,Market Value,Goals,Assists,Yellow Cards,Red Cards,Shirt Number",
		"Ana,Arsenal,Spain,CF,20,1000000,10,5,3,0,7",
	}, "\n")

	players, err := LoadCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "Ana", players[0].Name)
}

func TestLoadCSVMissingColumns(t *testing.T) {
	csv := "Name,Club,Age\nAna,Arsenal,20\n"

	_, err := LoadCSV(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required column")
	assert.Contains(t, err.Error(), "Primary Nationality")
	assert.Contains(t, err.Error(), "Red Cards")
}

func TestLoadCSVEmptyFile(t *testing.T) {
	_, err := LoadCSV(strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no header row")
}

func TestLoadCSVMalformedCell(t *testing.T) {
	tests := []struct {
		name string
		row  string
		want string
	}{
		{
			name: "non-numeric age",
			row:  "Ana,Arsenal,Spain,CF,young,1000000,10,5,3,0",
			want: `invalid Age "young"`,
		},
		{
			name: "negative goals",
			row:  "Ana,Arsenal,Spain,CF,20,1000000,-3,5,3,0",
			want: "Goals must be non-negative",
		},
		{
			name: "negative market value",
			row:  "Ana,Arsenal,Spain,CF,20,-1,10,5,3,0",
			want: "Market Value must be non-negative",
		},
	}

	header := "Name,Club,Primary Nationality,Position,Age,Market Value,Goals,Assists,Yellow Cards,Red Cards\n"
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCSV(strings.NewReader(header + tt.row + "\n"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Contains(t, err.Error(), "row 2")
		})
	}
}

func TestPlayerRoles(t *testing.T) {
	tests := []struct {
		position string
		want     []string
	}{
		{"CF", []string{"CF"}},
		{"CF, LW", []string{"CF", "LW"}},
		{"CB/RB", []string{"CB", "RB"}},
		{"", []string{}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Player{Position: tt.position}.Roles(), "position %q", tt.position)
	}
}
