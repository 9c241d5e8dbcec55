package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"jainvest/internal/market"
	"jainvest/internal/services"
)

// MarketHandler serves market data and accepts pushed prices.
type MarketHandler struct {
	marketService services.MarketServicer
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(marketService services.MarketServicer) *MarketHandler {
	return &MarketHandler{marketService: marketService}
}

// PriceInput is one quote pushed by the price oracle.
type PriceInput struct {
	Symbol     string          `json:"symbol" binding:"required,symbol"`
	Price      decimal.Decimal `json:"price" swaggertype:"number"`
	RecordedAt *time.Time      `json:"recorded_at,omitempty"`
}

// PushPricesRequest is a batch of oracle quotes.
type PushPricesRequest struct {
	Prices []PriceInput `json:"prices" binding:"required,min=1,max=500,dive"`
}

// GetSnapshot handles retrieving the market overview.
// @Summary     Market overview
// @Description Indices, top gainers, and top losers
// @Tags        market
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} market.Snapshot "Overview"
// @Router      /market [get]
func (h *MarketHandler) GetSnapshot(c *gin.Context) {
	c.JSON(http.StatusOK, h.marketService.Snapshot())
}

// GetOHLC handles retrieving synthetic daily candles.
// @Summary     Price history
// @Description Synthetic 30-day OHLC history for a symbol
// @Tags        market
// @Produce     json
// @Security    BearerAuth
// @Param       symbol path string true "Symbol"
// @Success     200 {array} market.Candle "Candles, oldest first"
// @Router      /market/{symbol}/ohlc [get]
func (h *MarketHandler) GetOHLC(c *gin.Context) {
	symbol := market.NormalizeSymbol(c.Param("symbol"))
	c.JSON(http.StatusOK, gin.H{"symbol": symbol, "candles": h.marketService.OHLC(symbol)})
}

// GetQuote handles retrieving the price a trade would fill at.
// @Summary     Quote
// @Tags        market
// @Produce     json
// @Security    BearerAuth
// @Param       symbol path string true "Symbol"
// @Success     200 {object} map[string]interface{} "Symbol and price"
// @Router      /market/{symbol}/quote [get]
func (h *MarketHandler) GetQuote(c *gin.Context) {
	symbol := market.NormalizeSymbol(c.Param("symbol"))
	c.JSON(http.StatusOK, gin.H{"symbol": symbol, "price": h.marketService.Quote(symbol)})
}

// PushPrices handles a batch of quotes from the price oracle.
// @Summary     Push prices
// @Description Record the latest quotes from the price oracle
// @Tags        pipeline
// @Accept      json
// @Produce     json
// @Security    PipelineKey
// @Param       request body PushPricesRequest true "Quotes"
// @Success     200 {object} map[string]interface{} "Received and applied counts"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Router      /pipeline/prices [post]
func (h *MarketHandler) PushPrices(c *gin.Context) {
	var req PushPricesRequest
	if !bindJSON(c, &req) {
		return
	}

	now := time.Now().UTC()
	results := make([]market.PriceResult, len(req.Prices))
	for i, p := range req.Prices {
		at := now
		if p.RecordedAt != nil {
			at = p.RecordedAt.UTC()
		}
		results[i] = market.PriceResult{Symbol: p.Symbol, Price: p.Price, RecordedAt: at}
	}

	applied, err := h.marketService.PushPrices(c.Request.Context(), results)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": len(results), "applied": applied})
}

