package models

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Exact header strings the dataset contract requires.
var RequiredColumns = []string{
	"Name",
	"Club",
	"Primary Nationality",
	"Position",
	"Age",
	"Market Value",
	"Goals",
	"Assists",
	"Yellow Cards",
	"Red Cards",
}

// LoadCSV reads a player dataset from r. The header row must contain
// every required column (extra columns are ignored). Any malformed or
// negative numeric cell fails the whole load with an error naming the
// row and column; no partial dataset is returned.
func LoadCSV(r io.Reader) ([]Player, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty file: no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, col := range header {
		index[strings.TrimSpace(col)] = i
	}

	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required column(s): %s", strings.Join(missing, ", "))
	}

	var players []Player
	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		cell := func(col string) string {
			return strings.TrimSpace(record[index[col]])
		}

		age, err := parseCount(cell("Age"), row, "Age")
		if err != nil {
			return nil, err
		}
		goals, err := parseCount(cell("Goals"), row, "Goals")
		if err != nil {
			return nil, err
		}
		assists, err := parseCount(cell("Assists"), row, "Assists")
		if err != nil {
			return nil, err
		}
		yellow, err := parseCount(cell("Yellow Cards"), row, "Yellow Cards")
		if err != nil {
			return nil, err
		}
		red, err := parseCount(cell("Red Cards"), row, "Red Cards")
		if err != nil {
			return nil, err
		}

		value, err := strconv.ParseFloat(cell("Market Value"), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid Market Value %q", row, cell("Market Value"))
		}
		if value < 0 {
			return nil, fmt.Errorf("row %d: Market Value must be non-negative, got %v", row, value)
		}

		players = append(players, Player{
			Name:        cell("Name"),
			Club:        cell("Club"),
			Nationality: cell("Primary Nationality"),
			Position:    cell("Position"),
			Age:         age,
			MarketValue: value,
			Goals:       goals,
			Assists:     assists,
			YellowCards: yellow,
			RedCards:    red,
		})
	}

	return players, nil
}

func parseCount(s string, row int, col string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("row %d: invalid %s %q", row, col, s)
	}
	if n < 0 {
		return 0, fmt.Errorf("row %d: %s must be non-negative, got %d", row, col, n)
	}
	return n, nil
}
