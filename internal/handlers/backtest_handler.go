package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jainvest/internal/backtest"
	apperrors "jainvest/internal/errors"
	"jainvest/internal/services"
)

// BacktestHandler runs strategy simulations.
type BacktestHandler struct {
	backtestService services.BacktestServicer
}

// NewBacktestHandler creates a new BacktestHandler.
func NewBacktestHandler(backtestService services.BacktestServicer) *BacktestHandler {
	return &BacktestHandler{backtestService: backtestService}
}

// Run handles a backtest request.
// @Summary     Run backtest
// @Description Simulate the demo strategy over a past date range
// @Tags        backtests
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body backtest.Request true "Symbol and date range"
// @Success     200 {object} backtest.Result "Equity curve, trades, and stats"
// @Failure     400 {object} ErrorResponse "Invalid range"
// @Router      /backtests [post]
func (h *BacktestHandler) Run(c *gin.Context) {
	// Missing fields are a range problem, not a generic input error.
	var req backtest.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidRange, err.Error()))
		return
	}

	result, err := h.backtestService.Run(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
