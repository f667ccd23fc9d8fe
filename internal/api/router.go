package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/scoutlab/scout-dashboard/internal/api/handlers"
	"github.com/scoutlab/scout-dashboard/internal/services"
	"github.com/scoutlab/scout-dashboard/internal/session"
	"github.com/scoutlab/scout-dashboard/pkg/config"
)

// SetupRoutes configures all API routes on the given router group.
func SetupRoutes(group *gin.RouterGroup, store *session.Store, cache *services.CacheService, cfg *config.Config) {
	// Initialize services
	assistant := services.NewAssistantService(cfg, logrus.StandardLogger())

	// Initialize handlers
	datasetHandler := handlers.NewDatasetHandler(store, cfg)
	chartHandler := handlers.NewChartHandler(store)
	assistantHandler := handlers.NewAssistantHandler(assistant, cache, store, cfg)

	// Dataset lifecycle
	group.POST("/datasets", datasetHandler.Upload)
	group.DELETE("/datasets/:id", datasetHandler.Delete)

	// Exploration endpoints
	group.GET("/datasets/:id/players", datasetHandler.GetPlayers)
	group.GET("/datasets/:id/summary", datasetHandler.GetSummary)
	group.GET("/datasets/:id/charts/:kind", chartHandler.GetChart)

	// Assistant endpoint
	group.POST("/datasets/:id/ask", assistantHandler.Ask)
}
