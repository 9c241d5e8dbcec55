package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "jainvest/internal/errors"
	"jainvest/internal/export"
	"jainvest/internal/models"
	"jainvest/internal/pagination"
	"jainvest/internal/services"
)

// PortfolioHandler handles paper-trading requests.
type PortfolioHandler struct {
	portfolioService services.PortfolioServicer
	marketService    services.MarketServicer
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolioService services.PortfolioServicer, marketService services.MarketServicer) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService, marketService: marketService}
}

// TradeRequest represents a buy or sell order. Without a price the order
// fills at the current market quote.
type TradeRequest struct {
	Symbol   string           `json:"symbol" binding:"required,symbol"`
	Quantity int64            `json:"quantity" binding:"required,gt=0"`
	Price    *decimal.Decimal `json:"price,omitempty" swaggertype:"number"`
}

// GetPortfolio handles retrieving the user's ledger.
// @Summary     Get portfolio
// @Description Get cash, open positions, and trade history
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.Portfolio "Portfolio"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /portfolio [get]
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	portfolio, err := h.portfolioService.GetPortfolio(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"portfolio": portfolio})
}

// Buy handles a buy order.
// @Summary     Buy shares
// @Description Debit cash and open or add to a position
// @Tags        portfolio
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body TradeRequest true "Order"
// @Success     200 {object} models.Portfolio "Updated portfolio"
// @Failure     400 {object} ErrorResponse "Invalid input or insufficient funds"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /portfolio/buy [post]
func (h *PortfolioHandler) Buy(c *gin.Context) {
	h.trade(c, models.TradeBuy)
}

// Sell handles a sell order.
// @Summary     Sell shares
// @Description Credit cash and reduce or close a position
// @Tags        portfolio
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body TradeRequest true "Order"
// @Success     200 {object} models.Portfolio "Updated portfolio"
// @Failure     400 {object} ErrorResponse "Invalid input or insufficient shares"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /portfolio/sell [post]
func (h *PortfolioHandler) Sell(c *gin.Context) {
	h.trade(c, models.TradeSell)
}

func (h *PortfolioHandler) trade(c *gin.Context, side models.TradeType) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req TradeRequest
	if !bindJSON(c, &req) {
		return
	}

	price := h.marketService.Quote(req.Symbol)
	if req.Price != nil {
		price = *req.Price
	}

	var portfolio *models.Portfolio
	if side == models.TradeBuy {
		portfolio, err = h.portfolioService.Buy(c.Request.Context(), userID, req.Symbol, req.Quantity, price)
	} else {
		portfolio, err = h.portfolioService.Sell(c.Request.Context(), userID, req.Symbol, req.Quantity, price)
	}
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"portfolio": portfolio})
}

// Refresh handles marking the user's positions to market.
// @Summary     Refresh portfolio prices
// @Description Mark every position to the current market price
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.Portfolio "Revalued portfolio"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /portfolio/refresh [post]
func (h *PortfolioHandler) Refresh(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	portfolio, err := h.portfolioService.MarkToMarket(c.Request.Context(), userID, nil)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"portfolio": portfolio})
}

// Reset handles restoring the starting balance.
// @Summary     Reset portfolio
// @Description Discard positions and history and restore the starting cash
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.Portfolio "Fresh portfolio"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /portfolio/reset [post]
func (h *PortfolioHandler) Reset(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	portfolio, err := h.portfolioService.Reset(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"portfolio": portfolio})
}

// ListTransactions handles listing the user's trades.
// @Summary     List trades
// @Description Get a paginated list of trades, newest first
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Transaction] "Paginated trades"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /portfolio/transactions [get]
func (h *PortfolioHandler) ListTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.portfolioService.ListTransactions(c.Request.Context(), userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ExportTransactions handles downloading the user's trades as a spreadsheet.
// @Summary     Export trades
// @Description Download every trade as an xlsx workbook
// @Tags        portfolio
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security    BearerAuth
// @Success     200 {file} file "Workbook"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /portfolio/transactions/export [get]
func (h *PortfolioHandler) ExportTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	buf, err := h.portfolioService.ExportTransactions(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filename := fmt.Sprintf("transactions-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}
