package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/scoutlab/scout-dashboard/internal/scouting"
	"github.com/scoutlab/scout-dashboard/internal/services"
	"github.com/scoutlab/scout-dashboard/internal/session"
	"github.com/scoutlab/scout-dashboard/pkg/config"
	"github.com/scoutlab/scout-dashboard/pkg/utils"
)

type AssistantHandler struct {
	assistant *services.AssistantService
	cache     *services.CacheService
	store     *session.Store
	config    *config.Config
}

func NewAssistantHandler(assistant *services.AssistantService, cache *services.CacheService, store *session.Store, cfg *config.Config) *AssistantHandler {
	return &AssistantHandler{
		assistant: assistant,
		cache:     cache,
		store:     store,
		config:    cfg,
	}
}

// AskRequest is the body of POST /datasets/:id/ask. The api_key, when
// present, overrides the key configured through the environment.
type AskRequest struct {
	Question string          `json:"question" binding:"required"`
	APIKey   string          `json:"api_key"`
	Filter   scouting.Filter `json:"filter"`
}

// Ask answers a free-text question about the filtered record set. The
// assistant only ever sees the generated summary, and its failures come
// back as readable text in a successful response, never as an API
// error.
func (h *AssistantHandler) Ask(c *gin.Context) {
	ds, ok := h.store.Get(c.Param("id"))
	if !ok {
		utils.SendNotFound(c, "Dataset not found")
		return
	}

	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	filtered := req.Filter.Apply(ds.Players)
	summary := scouting.Summarize(filtered)

	ctx := c.Request.Context()
	cacheKey := services.AnswerCacheKey(ds.ID, req.Filter.Fingerprint(), req.Question)

	var answer string
	if err := h.cache.Get(ctx, cacheKey, &answer); err != nil {
		answer = h.assistant.Ask(ctx, req.APIKey, summary, req.Question)
		if !services.IsErrorReply(answer) {
			expiration := time.Duration(h.config.AnswerCacheExpiration) * time.Second
			if err := h.cache.Set(ctx, cacheKey, answer, expiration); err != nil {
				logrus.WithError(err).Debug("answer cache write skipped")
			}
		}
	}

	utils.SendSuccess(c, gin.H{
		"answer":  answer,
		"summary": summary,
	})
}
