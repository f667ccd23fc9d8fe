package scouting

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"gonum.org/v1/gonum/stat"

	"github.com/scoutlab/scout-dashboard/internal/models"
)

// EmptySummary is the fixed sentinel returned for an empty record set.
const EmptySummary = "No players match the selected filters."

// TopN is the cutoff used by every ranked section of the report.
const TopN = 5

// SummaryOptions selects the optional report sections.
type SummaryOptions struct {
	IncludePositions  bool
	IncludeDiscipline bool
}

// FullSummary enables every optional section.
var FullSummary = SummaryOptions{IncludePositions: true, IncludeDiscipline: true}

// section is one labeled block of the report. Sections are collected in
// order and serialized once at the end, which keeps the ordering
// contract explicit and testable.
type section struct {
	title string
	lines []string
}

type reportBuilder struct {
	header   string
	sections []section
}

func (b *reportBuilder) add(title string, lines ...string) {
	b.sections = append(b.sections, section{title: title, lines: lines})
}

func (b *reportBuilder) String() string {
	var sb strings.Builder
	sb.WriteString(b.header)
	sb.WriteString("\n")
	for _, s := range b.sections {
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "**%s:**\n", s.title)
		for _, line := range s.lines {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Summarize renders the standard scouting report with all sections.
func Summarize(players []models.Player) string {
	return SummarizeWithOptions(players, FullSummary)
}

// SummarizeWithOptions reduces a record set to the plain-text report the
// assistant uses as its sole knowledge source. The output is
// deterministic: given the same record set it is byte-identical across
// calls, with ranking ties broken by stable input order.
func SummarizeWithOptions(players []models.Player, opts SummaryOptions) string {
	if len(players) == 0 {
		return EmptySummary
	}

	b := reportBuilder{
		header: fmt.Sprintf("Scouting summary for the %d selected players:", len(players)),
	}

	b.add("Overview",
		fmt.Sprintf("- Average age: %.1f years.", meanAge(players)),
		fmt.Sprintf("- Average market value: %s EUR.", euros(meanMarketValue(players))),
		fmt.Sprintf("- Most represented club: %s.", modalClub(players)),
	)

	byPerformance := sortedCopy(players, func(a, b models.Player) bool {
		return a.Performance > b.Performance
	})
	perfLines := make([]string, 0, TopN)
	for _, p := range top(byPerformance, TopN) {
		perfLines = append(perfLines, fmt.Sprintf("- %s (%s): %d contributions.", p.Name, p.Club, p.Performance))
	}
	b.add(fmt.Sprintf("Top %d Players by Performance (Goals + Assists)", TopN), perfLines...)

	// Sentinel CostPerPerformance rows mean "undefined", not "free";
	// only players with contributions are ranked for efficiency.
	performers := make([]models.Player, 0, len(players))
	for _, p := range players {
		if p.Performance > 0 {
			performers = append(performers, p)
		}
	}
	if len(performers) > 0 {
		byCost := sortedCopy(performers, func(a, b models.Player) bool {
			return a.CostPerPerformance < b.CostPerPerformance
		})
		costLines := make([]string, 0, TopN)
		for _, p := range top(byCost, TopN) {
			costLines = append(costLines, fmt.Sprintf("- %s (%s): %s EUR per contribution.", p.Name, p.Club, euros(p.CostPerPerformance)))
		}
		b.add(fmt.Sprintf("Top %d Most Efficient Players (Lowest Cost per Contribution)", TopN), costLines...)
	}

	if opts.IncludePositions {
		b.add("Best by Position", positionLines(players)...)
	}

	if opts.IncludeDiscipline {
		risk := disciplinaryRisk(players)
		b.add("Disciplinary Risk",
			fmt.Sprintf("- Most cards: %s (%s) with %d cards (%d yellow, %d red).",
				risk.Name, risk.Club, risk.CardCount(), risk.YellowCards, risk.RedCards),
		)
	}

	return b.String()
}

func meanAge(players []models.Player) float64 {
	ages := make([]float64, len(players))
	for i, p := range players {
		ages[i] = float64(p.Age)
	}
	return stat.Mean(ages, nil)
}

func meanMarketValue(players []models.Player) float64 {
	values := make([]float64, len(players))
	for i, p := range players {
		values[i] = p.MarketValue
	}
	return stat.Mean(values, nil)
}

// modalClub returns the most frequent club; ties resolve to the
// lexicographically smallest name so the report stays deterministic.
func modalClub(players []models.Player) string {
	counts := make(map[string]int, len(players))
	for _, p := range players {
		counts[p.Club]++
	}
	best, bestCount := "", -1
	for club, count := range counts {
		if count > bestCount || (count == bestCount && club < best) {
			best, bestCount = club, count
		}
	}
	return best
}

// positionLines reports the best performer and the most valuable player
// for each primary role, in alphabetical role order.
func positionLines(players []models.Player) []string {
	type acc struct {
		performer models.Player
		priciest  models.Player
	}
	byRole := make(map[string]*acc)
	for _, p := range players {
		roles := p.Roles()
		if len(roles) == 0 {
			continue
		}
		role := roles[0]
		a, ok := byRole[role]
		if !ok {
			byRole[role] = &acc{performer: p, priciest: p}
			continue
		}
		if p.Performance > a.performer.Performance {
			a.performer = p
		}
		if p.MarketValue > a.priciest.MarketValue {
			a.priciest = p
		}
	}

	roles := make([]string, 0, len(byRole))
	for role := range byRole {
		roles = append(roles, role)
	}
	sort.Strings(roles)

	lines := make([]string, 0, len(roles))
	for _, role := range roles {
		a := byRole[role]
		lines = append(lines, fmt.Sprintf("- %s: best performer %s (%d contributions), highest value %s (%s EUR).",
			role, a.performer.Name, a.performer.Performance, a.priciest.Name, euros(a.priciest.MarketValue)))
	}
	return lines
}

func disciplinaryRisk(players []models.Player) models.Player {
	risk := players[0]
	for _, p := range players[1:] {
		if p.CardCount() > risk.CardCount() {
			risk = p
		}
	}
	return risk
}

func sortedCopy(players []models.Player, less func(a, b models.Player) bool) []models.Player {
	sorted := make([]models.Player, len(players))
	copy(sorted, players)
	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})
	return sorted
}

func top(players []models.Player, n int) []models.Player {
	if len(players) < n {
		return players
	}
	return players[:n]
}

func euros(v float64) string {
	return humanize.Comma(int64(math.Round(v)))
}
