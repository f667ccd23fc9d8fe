package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/scoutlab/scout-dashboard/internal/charts"
	"github.com/scoutlab/scout-dashboard/internal/session"
	"github.com/scoutlab/scout-dashboard/pkg/utils"
)

type ChartHandler struct {
	store *session.Store
}

func NewChartHandler(store *session.Store) *ChartHandler {
	return &ChartHandler{
		store: store,
	}
}

// GetChart renders one chart kind for the filtered record set as an
// HTML document. A nil chart from the builder means the selection
// cannot produce that chart; the client gets a typed 404 rather than an
// error page.
func (h *ChartHandler) GetChart(c *gin.Context) {
	ds, ok := h.store.Get(c.Param("id"))
	if !ok {
		utils.SendNotFound(c, "Dataset not found")
		return
	}

	filter, err := parseFilter(c)
	if err != nil {
		utils.SendValidationError(c, "Invalid filter", err.Error())
		return
	}
	filtered := filter.Apply(ds.Players)

	var chart charts.Chart
	switch kind := c.Param("kind"); kind {
	case "correlation":
		chart = charts.CorrelationHeatmap(filtered)
	case "value-distribution":
		chart = charts.ValueDistribution(filtered)
	case "top-players":
		chart = charts.TopPlayers(filtered, c.DefaultQuery("metric", charts.MetricPerformance))
	case "efficiency":
		chart = charts.EfficiencyScatter(filtered)
	default:
		utils.SendValidationError(c, "Unknown chart kind", kind)
		return
	}

	if chart == nil {
		utils.SendError(c, http.StatusNotFound, utils.NewAppError(utils.ErrCodeChartUnavailable, "No chart producible for the current selection"))
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := chart.Render(c.Writer); err != nil {
		logrus.WithError(err).Error("failed to render chart")
	}
}
