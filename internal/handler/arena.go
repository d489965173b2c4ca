package handler

import (
	"net/http"

	"github.com/doctornein/dynasty-tokens/internal/model"
	"github.com/doctornein/dynasty-tokens/internal/service"
	"github.com/doctornein/dynasty-tokens/pkg/response"
	"github.com/gin-gonic/gin"
)

type ArenaHandler struct {
	svc service.ArenaService
}

func NewArenaHandler(svc service.ArenaService) *ArenaHandler { return &ArenaHandler{svc: svc} }

// Register mounts arena routes on the settlement-guarded group: scoring is
// only ever invoked by the external settlement scheduler.
func (h *ArenaHandler) Register(guarded *gin.RouterGroup) {
	guarded.POST("/arena/score", h.score)
}

type scoreRequest struct {
	ProviderID string                    `json:"provider_id"`
	TeamAbbr   string                    `json:"team_abbr"`
	StartDate  string                    `json:"start_date"`
	EndDate    string                    `json:"end_date"`
	Categories []model.ArenaStatCategory `json:"categories"`
}

func (h *ArenaHandler) score(c *gin.Context) {
	var req scoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	res, err := h.svc.ScoreWindow(c.Request.Context(), req.ProviderID, req.TeamAbbr, req.StartDate, req.EndDate, req.Categories)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}
