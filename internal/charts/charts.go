// Package charts builds renderable chart objects from a player record
// set. Builders are stateless and independent; each returns nil when no
// chart can be produced (empty set, unknown metric, not enough rows for
// a correlation), so callers can tell "unavailable" apart from a
// produced chart without handling panics.
package charts

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/stat"

	"github.com/scoutlab/scout-dashboard/internal/models"
)

// Chart is the opaque renderable artifact produced by a builder.
type Chart interface {
	Render(w io.Writer) error
}

// Metric names accepted by TopPlayers.
const (
	MetricGoals       = "goals"
	MetricAssists     = "assists"
	MetricPerformance = "performance"
	MetricMarketValue = "market-value"
)

var metricValue = map[string]func(models.Player) float64{
	MetricGoals:       func(p models.Player) float64 { return float64(p.Goals) },
	MetricAssists:     func(p models.Player) float64 { return float64(p.Assists) },
	MetricPerformance: func(p models.Player) float64 { return float64(p.Performance) },
	MetricMarketValue: func(p models.Player) float64 { return p.MarketValue },
}

var metricLabel = map[string]string{
	MetricGoals:       "Goals",
	MetricAssists:     "Assists",
	MetricPerformance: "Performance",
	MetricMarketValue: "Market Value (EUR)",
}

// TopPlayers builds a bar chart of the 10 best players by the given
// metric, ties broken by input order.
func TopPlayers(players []models.Player, metric string) Chart {
	value, ok := metricValue[metric]
	if !ok || len(players) == 0 {
		return nil
	}

	ranked := make([]models.Player, len(players))
	copy(ranked, players)
	stableSortDesc(ranked, value)
	if len(ranked) > 10 {
		ranked = ranked[:10]
	}

	names := make([]string, len(ranked))
	data := make([]opts.BarData, len(ranked))
	for i, p := range ranked {
		names[i] = p.Name
		data[i] = opts.BarData{Value: value(p)}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("Top 10 Players by %s", metricLabel[metric])}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Player"}),
		charts.WithYAxisOpts(opts.YAxis{Name: metricLabel[metric], Type: yAxisType(metric)}),
	)
	bar.SetXAxis(names).AddSeries(metricLabel[metric], data)
	return bar
}

// Market values span several orders of magnitude, so their axis is
// always logarithmic.
func yAxisType(metric string) string {
	if metric == MetricMarketValue {
		return "log"
	}
	return "value"
}

// ValueDistribution builds a 20-bin histogram of market value in
// millions of EUR.
func ValueDistribution(players []models.Player) Chart {
	if len(players) == 0 {
		return nil
	}

	const bins = 20
	values := make([]float64, len(players))
	min, max := math.Inf(1), math.Inf(-1)
	for i, p := range players {
		v := p.MarketValue / 1_000_000
		values[i] = v
		min = math.Min(min, v)
		max = math.Max(max, v)
	}

	width := (max - min) / bins
	if width == 0 {
		width = 1 // all values identical, single occupied bin
	}
	counts := make([]int, bins)
	for _, v := range values {
		idx := int((v - min) / width)
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}

	labels := make([]string, bins)
	data := make([]opts.BarData, bins)
	for i := 0; i < bins; i++ {
		labels[i] = fmt.Sprintf("%.1f", min+width*float64(i))
		data[i] = opts.BarData{Value: counts[i]}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Market Value Distribution (Millions of EUR)"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Market Value (M EUR)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Players"}),
	)
	bar.SetXAxis(labels).AddSeries("Players", data)
	return bar
}

// EfficiencyScatter builds the value-vs-performance scatter with one
// series per age group. Only players with contributions appear: the
// sentinel CostPerPerformance of a zero-performance player is
// undefined, not a data point. Players with an unclassified age carry
// no group series and are left out, matching the age-group exclusion
// rule. Returns nil when no player qualifies.
func EfficiencyScatter(players []models.Player) Chart {
	groups := []models.AgeGroup{
		models.AgeGroupYoungProspect,
		models.AgeGroupPrime,
		models.AgeGroupVeteran,
	}

	series := make(map[models.AgeGroup][]opts.ScatterData, len(groups))
	total := 0
	for _, p := range players {
		if p.Performance == 0 || p.AgeGroup == models.AgeGroupUnclassified {
			continue
		}
		series[p.AgeGroup] = append(series[p.AgeGroup], opts.ScatterData{
			Name:       p.Name,
			Value:      []interface{}{p.Performance, p.MarketValue},
			SymbolSize: symbolSize(p.CostPerPerformance),
		})
		total++
	}
	if total == 0 {
		return nil
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Efficiency: Market Value vs. Performance"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Performance (Goals + Assists)", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Market Value (EUR)", Type: "log"}),
	)
	for _, group := range groups {
		if data := series[group]; len(data) > 0 {
			scatter.AddSeries(string(group), data)
		}
	}
	return scatter
}

// symbolSize scales a cost-per-contribution into a readable marker size.
func symbolSize(cost float64) int {
	if cost <= 0 {
		return 8
	}
	size := int(math.Log10(cost) * 6)
	if size < 8 {
		size = 8
	}
	if size > 40 {
		size = 40
	}
	return size
}

// correlationMetrics are the numeric columns of the heatmap, in display
// order.
var correlationMetrics = []struct {
	label string
	value func(models.Player) float64
}{
	{"Age", func(p models.Player) float64 { return float64(p.Age) }},
	{"Market Value", func(p models.Player) float64 { return p.MarketValue }},
	{"Goals", func(p models.Player) float64 { return float64(p.Goals) }},
	{"Assists", func(p models.Player) float64 { return float64(p.Assists) }},
	{"Yellow Cards", func(p models.Player) float64 { return float64(p.YellowCards) }},
	{"Red Cards", func(p models.Player) float64 { return float64(p.RedCards) }},
	{"Performance", func(p models.Player) float64 { return float64(p.Performance) }},
	{"Cost per Performance", func(p models.Player) float64 { return p.CostPerPerformance }},
}

// CorrelationHeatmap builds a Pearson-correlation heatmap of the numeric
// metrics. Correlation needs at least two rows; smaller sets yield nil.
func CorrelationHeatmap(players []models.Player) Chart {
	if len(players) < 2 {
		return nil
	}

	n := len(correlationMetrics)
	columns := make([][]float64, n)
	labels := make([]string, n)
	for i, m := range correlationMetrics {
		labels[i] = m.label
		columns[i] = make([]float64, len(players))
		for j, p := range players {
			columns[i][j] = m.value(p)
		}
	}

	var data []opts.HeatMapData
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			r := stat.Correlation(columns[i], columns[j], nil)
			if math.IsNaN(r) {
				// zero-variance column; no linear relationship to show
				r = 0
			}
			data = append(data, opts.HeatMapData{
				Value: [3]interface{}{i, j, math.Round(r*100) / 100},
			})
		}
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Correlation of Numeric Metrics"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: labels}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: labels}),
		charts.WithVisualMapOpts(opts.VisualMap{Min: -1, Max: 1}),
	)
	hm.AddSeries("correlation", data)
	return hm
}

func stableSortDesc(players []models.Player, value func(models.Player) float64) {
	sort.SliceStable(players, func(i, j int) bool {
		return value(players[i]) > value(players[j])
	})
}
