package handler

import (
	"net/http"
	"strconv"

	"github.com/doctornein/dynasty-tokens/internal/repository"
	"github.com/doctornein/dynasty-tokens/internal/service"
	"github.com/doctornein/dynasty-tokens/pkg/response"
	"github.com/gin-gonic/gin"
)

type RewardHandler struct {
	svc service.RewardService
}

func NewRewardHandler(svc service.RewardService) *RewardHandler { return &RewardHandler{svc: svc} }

// Register mounts reward routes. The scan trigger goes on the guarded group
// since only the external scheduler should be able to fire a full-pool scan.
func (h *RewardHandler) Register(r *gin.RouterGroup, guarded *gin.RouterGroup) {
	guarded.POST("/rewards/scan", h.scan)
	r.GET("/players/:id/rewards", h.listByPlayer)
	r.POST("/rewards/:id/claim", h.claim)
	r.POST("/rewards/:id/redeem", h.redeem)
}

func (h *RewardHandler) scan(c *gin.Context) {
	summary, err := h.svc.RunScan(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, summary)
}

func (h *RewardHandler) listByPlayer(c *gin.Context) {
	playerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || playerID <= 0 {
		response.WriteError(c, service.NewInvalidInputError([]service.FieldError{{Field: "id", Message: "must be a valid integer > 0"}}))
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	res, err := h.svc.ListPlayerRewards(c.Request.Context(), playerID, repository.Page{Limit: limit, Offset: offset})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, gin.H{"items": res.Items, "total": res.Total})
}

func (h *RewardHandler) claim(c *gin.Context) {
	reward, err := h.svc.ClaimReward(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, reward)
}

func (h *RewardHandler) redeem(c *gin.Context) {
	reward, err := h.svc.RedeemReward(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, reward)
}
