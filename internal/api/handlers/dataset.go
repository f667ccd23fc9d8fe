package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/scoutlab/scout-dashboard/internal/models"
	"github.com/scoutlab/scout-dashboard/internal/scouting"
	"github.com/scoutlab/scout-dashboard/internal/session"
	"github.com/scoutlab/scout-dashboard/pkg/config"
	"github.com/scoutlab/scout-dashboard/pkg/utils"
)

type DatasetHandler struct {
	store  *session.Store
	config *config.Config
}

func NewDatasetHandler(store *session.Store, cfg *config.Config) *DatasetHandler {
	return &DatasetHandler{
		store:  store,
		config: cfg,
	}
}

// Upload handles POST /datasets: a multipart CSV upload. The dataset is
// parsed, validated against the required-column contract and enriched
// once; a load failure leaves no partial state behind.
func (h *DatasetHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		utils.SendValidationError(c, "Missing file field", err.Error())
		return
	}
	if file.Size > h.config.MaxUploadBytes {
		utils.SendValidationError(c, "File too large", "")
		return
	}

	f, err := file.Open()
	if err != nil {
		utils.SendInternalError(c, "Failed to read upload")
		return
	}
	defer f.Close()

	players, err := models.LoadCSV(f)
	if err != nil {
		utils.SendError(c, http.StatusBadRequest, utils.NewAppError(utils.ErrCodeDatasetLoad, "Failed to load dataset", err.Error()))
		return
	}

	ds := h.store.Put(file.Filename, scouting.Enrich(players))
	utils.SendSuccess(c, gin.H{
		"id":      ds.ID,
		"name":    ds.Name,
		"players": len(ds.Players),
	})
}

// GetPlayers returns the filtered record set. An empty result is a
// valid response, not an error.
func (h *DatasetHandler) GetPlayers(c *gin.Context) {
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
	utils.SendSuccessWithMeta(c, filtered, &utils.Meta{
		Total:    len(ds.Players),
		Filtered: len(filtered),
	})
}

// GetSummary returns the deterministic scouting summary of the filtered
// record set — the same text the assistant receives.
func (h *DatasetHandler) GetSummary(c *gin.Context) {
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

	opts := scouting.SummaryOptions{
		IncludePositions:  c.DefaultQuery("positions", "true") == "true",
		IncludeDiscipline: c.DefaultQuery("discipline", "true") == "true",
	}

	filtered := filter.Apply(ds.Players)
	utils.SendSuccess(c, gin.H{
		"summary": scouting.SummarizeWithOptions(filtered, opts),
		"players": len(filtered),
	})
}

// Delete ends a dataset session.
func (h *DatasetHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.store.Get(id); !ok {
		utils.SendNotFound(c, "Dataset not found")
		return
	}
	h.store.Delete(id)
	utils.SendSuccess(c, gin.H{"deleted": id})
}
