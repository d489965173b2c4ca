package handler

import (
	"net/http"

	"github.com/doctornein/dynasty-tokens/internal/model"
	"github.com/doctornein/dynasty-tokens/internal/service"
	"github.com/doctornein/dynasty-tokens/pkg/response"
	"github.com/gin-gonic/gin"
)

type RatingHandler struct {
	ratings service.RatingService
	cards   service.CardService
}

func NewRatingHandler(ratings service.RatingService, cards service.CardService) *RatingHandler {
	return &RatingHandler{ratings: ratings, cards: cards}
}

func (h *RatingHandler) Register(r *gin.RouterGroup) {
	r.POST("/ratings/cohort", h.rateCohort)
	r.POST("/cards", h.issueCard)
}

type rateCohortRequest struct {
	Cohort []service.CohortEntry `json:"cohort"`
}

func (h *RatingHandler) rateCohort(c *gin.Context) {
	var req rateCohortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	ratings, err := h.ratings.RateCohort(c.Request.Context(), req.Cohort)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, gin.H{"ratings": ratings})
}

type issueCardRequest struct {
	PlayerID int64        `json:"player_id"`
	Rarity   model.Rarity `json:"rarity"`
	Rating   int          `json:"rating"`
}

func (h *RatingHandler) issueCard(c *gin.Context) {
	var req issueCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	instance, err := h.cards.IssueCard(c.Request.Context(), req.PlayerID, req.Rarity, req.Rating)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, instance)
}
