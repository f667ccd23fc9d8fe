package scouting

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/scoutlab/scout-dashboard/internal/models"
)

// AgeRange is a closed interval of ages.
type AgeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// ValueRange is a closed interval of market values.
type ValueRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Filter is a conjunction of inclusion lists and numeric ranges. The
// zero value passes every record: an empty inclusion list means "no
// restriction on that dimension", never "exclude all", and a nil range
// leaves the dimension unbounded.
type Filter struct {
	Clubs         []string    `json:"clubs,omitempty"`
	Nationalities []string    `json:"nationalities,omitempty"`
	Positions     []string    `json:"positions,omitempty"`
	Ages          *AgeRange   `json:"ages,omitempty"`
	MarketValues  *ValueRange `json:"market_values,omitempty"`
}

// Apply returns the subset of players matching every active predicate.
// It is stateless and always filters from the full set it is given; an
// empty result is a valid outcome, not an error.
func (f Filter) Apply(players []models.Player) []models.Player {
	matched := make([]models.Player, 0, len(players))
	for _, p := range players {
		if f.matches(p) {
			matched = append(matched, p)
		}
	}
	return matched
}

func (f Filter) matches(p models.Player) bool {
	if len(f.Clubs) > 0 && !contains(f.Clubs, p.Club) {
		return false
	}
	if len(f.Nationalities) > 0 && !contains(f.Nationalities, p.Nationality) {
		return false
	}
	if len(f.Positions) > 0 && !matchesPosition(f.Positions, p) {
		return false
	}
	if f.Ages != nil && (p.Age < f.Ages.Min || p.Age > f.Ages.Max) {
		return false
	}
	if f.MarketValues != nil && (p.MarketValue < f.MarketValues.Min || p.MarketValue > f.MarketValues.Max) {
		return false
	}
	return true
}

// matchesPosition matches when any role encoded in the position cell is
// selected, so a "CF, LW" player passes a filter on "LW".
func matchesPosition(selected []string, p models.Player) bool {
	for _, role := range p.Roles() {
		if contains(selected, role) {
			return true
		}
	}
	return false
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

// Fingerprint is a stable digest of the filter used in cache keys. Two
// filters selecting the same values in a different order share one
// fingerprint.
func (f Filter) Fingerprint() string {
	var b strings.Builder
	writeList := func(label string, list []string) {
		sorted := append([]string(nil), list...)
		sort.Strings(sorted)
		fmt.Fprintf(&b, "%s=%s;", label, strings.Join(sorted, "|"))
	}
	writeList("clubs", f.Clubs)
	writeList("nats", f.Nationalities)
	writeList("pos", f.Positions)
	if f.Ages != nil {
		fmt.Fprintf(&b, "age=%d-%d;", f.Ages.Min, f.Ages.Max)
	}
	if f.MarketValues != nil {
		fmt.Fprintf(&b, "value=%g-%g;", f.MarketValues.Min, f.MarketValues.Max)
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:8])
}
