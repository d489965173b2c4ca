package handler

import (
	"github.com/doctornein/dynasty-tokens/internal/service"
	"github.com/gin-gonic/gin"
)

// Register mounts all public routes on the given engine. The settlement
// token guards the endpoints an external cron is expected to hit (batch
// scan trigger and arena scoring); everything else is session-facing and
// authenticated upstream.
func Register(r *gin.Engine, repo Pinger, settlementToken string, rewardSvc service.RewardService, arenaSvc service.ArenaService, ratingSvc service.RatingService, cardSvc service.CardService) {
	h := NewHealthHandler(repo)

	// Health probes
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	api := r.Group(APIV1Prefix) // Versioning added via single source of truth
	{
		health := api.Group("/health")
		{
			health.GET("/live", h.Liveness)
			health.GET("/ready", h.Readiness)
		}

		settlement := api.Group("", BearerAuth(settlementToken))
		NewRewardHandler(rewardSvc).Register(api, settlement)
		NewArenaHandler(arenaSvc).Register(settlement)
		NewRatingHandler(ratingSvc, cardSvc).Register(api)
	}
}
