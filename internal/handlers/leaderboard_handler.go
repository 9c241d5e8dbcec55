package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jainvest/internal/services"
)

// LeaderboardHandler serves the ranking.
type LeaderboardHandler struct {
	leaderboardService services.LeaderboardServicer
}

// NewLeaderboardHandler creates a new LeaderboardHandler.
func NewLeaderboardHandler(leaderboardService services.LeaderboardServicer) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

// GetLeaderboard handles retrieving the ranked board.
// @Summary     Get leaderboard
// @Tags        leaderboard
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} models.LeaderboardEntry "Entries, highest score first"
// @Router      /leaderboard [get]
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	board, err := h.leaderboardService.GetLeaderboard(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": board})
}
