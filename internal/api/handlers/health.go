package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scoutlab/scout-dashboard/internal/session"
)

type HealthHandler struct {
	store *session.Store
}

func NewHealthHandler(store *session.Store) *HealthHandler {
	return &HealthHandler{
		store: store,
	}
}

// GetHealth returns basic liveness status.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"service":  "scout-dashboard",
		"datasets": h.store.Len(),
	})
}
