package charts

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoutlab/scout-dashboard/internal/models"
	"github.com/scoutlab/scout-dashboard/internal/scouting"
)

func testPlayers() []models.Player {
	return scouting.Enrich([]models.Player{
		{Name: "Ana", Club: "Arsenal", Position: "CF", Age: 20, MarketValue: 1_000_000, Goals: 10, Assists: 5, YellowCards: 3},
		{Name: "Ben", Club: "Barcelona", Position: "CM", Age: 25, MarketValue: 500_000, Goals: 2, Assists: 1, YellowCards: 7, RedCards: 1},
		{Name: "Carl", Club: "Chelsea", Position: "GK", Age: 35, MarketValue: 2_000_000},
	})
}

func renderToString(t *testing.T, c Chart) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(&buf))
	return buf.String()
}

func TestTopPlayers(t *testing.T) {
	for _, metric := range []string{MetricGoals, MetricAssists, MetricPerformance, MetricMarketValue} {
		chart := TopPlayers(testPlayers(), metric)
		require.NotNil(t, chart, "metric %s", metric)
		html := renderToString(t, chart)
		assert.Contains(t, html, "Ana")
	}
}

func TestTopPlayersUnknownMetricIsUnavailable(t *testing.T) {
	assert.Nil(t, TopPlayers(testPlayers(), "red-cards"))
}

func TestTopPlayersEmptySetIsUnavailable(t *testing.T) {
	assert.Nil(t, TopPlayers(nil, MetricGoals))
}

func TestValueDistribution(t *testing.T) {
	chart := ValueDistribution(testPlayers())
	require.NotNil(t, chart)
	assert.Contains(t, renderToString(t, chart), "Market Value Distribution")
}

func TestValueDistributionEmptySetIsUnavailable(t *testing.T) {
	assert.Nil(t, ValueDistribution(nil))
}

func TestValueDistributionIdenticalValues(t *testing.T) {
	players := scouting.Enrich([]models.Player{
		{Name: "a", MarketValue: 500_000},
		{Name: "b", MarketValue: 500_000},
	})
	require.NotNil(t, ValueDistribution(players))
}

func TestEfficiencyScatterExcludesZeroPerformance(t *testing.T) {
	chart := EfficiencyScatter(testPlayers())
	require.NotNil(t, chart)

	html := renderToString(t, chart)
	assert.Contains(t, html, "Ana")
	assert.NotContains(t, html, "Carl")
}

func TestEfficiencyScatterUnavailableWithoutPerformers(t *testing.T) {
	players := scouting.Enrich([]models.Player{
		{Name: "Carl", Club: "Chelsea", Position: "GK", Age: 35, MarketValue: 2_000_000},
	})
	assert.Nil(t, EfficiencyScatter(players))
}

func TestEfficiencyScatterExcludesUnclassifiedAges(t *testing.T) {
	players := scouting.Enrich([]models.Player{
		{Name: "Old", Club: "Ajax", Position: "CF", Age: 45, MarketValue: 100_000, Goals: 3},
	})
	assert.Nil(t, EfficiencyScatter(players))
}

func TestCorrelationHeatmap(t *testing.T) {
	chart := CorrelationHeatmap(testPlayers())
	require.NotNil(t, chart)
	assert.Contains(t, renderToString(t, chart), "Correlation")
}

func TestCorrelationHeatmapNeedsTwoRows(t *testing.T) {
	assert.Nil(t, CorrelationHeatmap(nil))
	assert.Nil(t, CorrelationHeatmap(testPlayers()[:1]))
}
