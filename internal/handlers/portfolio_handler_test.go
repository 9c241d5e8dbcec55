package handlers

import (
	"bytes"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "jainvest/internal/errors"
	"jainvest/internal/export"
	"jainvest/internal/market"
	"jainvest/internal/models"
	"jainvest/internal/pagination"
)

func setupPortfolioRouter(handler *PortfolioHandler) *gin.Engine {
	r := gin.New()
	g := r.Group("/portfolio", injectUserID("u1"))
	g.GET("", handler.GetPortfolio)
	g.POST("/buy", handler.Buy)
	g.POST("/sell", handler.Sell)
	g.POST("/refresh", handler.Refresh)
	g.POST("/reset", handler.Reset)
	g.GET("/transactions", handler.ListTransactions)
	g.GET("/transactions/export", handler.ExportTransactions)
	return r
}

func TestPortfolioHandler_Buy(t *testing.T) {
	t.Run("returns 200 with explicit price", func(t *testing.T) {
		var gotPrice decimal.Decimal
		var gotSymbol string
		svc := &mockPortfolioService{
			buyFn: func(_ string, symbol string, _ int64, price decimal.Decimal) (*models.Portfolio, error) {
				gotSymbol, gotPrice = symbol, price
				return newPortfolio(), nil
			},
		}
		h := NewPortfolioHandler(svc, &mockMarketService{})
		rec := doRequest(setupPortfolioRouter(h), http.MethodPost, "/portfolio/buy", `{"symbol":"TCS","quantity":10,"price":4000}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotSymbol != "TCS" || !gotPrice.Equal(decimal.NewFromInt(4000)) {
			t.Errorf("unexpected order %s @ %s", gotSymbol, gotPrice)
		}
	})

	t.Run("fills at market quote without price", func(t *testing.T) {
		var gotPrice decimal.Decimal
		svc := &mockPortfolioService{
			buyFn: func(_ string, _ string, _ int64, price decimal.Decimal) (*models.Portfolio, error) {
				gotPrice = price
				return newPortfolio(), nil
			},
		}
		mkt := &mockMarketService{quoteFn: func(string) decimal.Decimal { return decimal.RequireFromString("3456.7") }}
		rec := doRequest(setupPortfolioRouter(NewPortfolioHandler(svc, mkt)), http.MethodPost, "/portfolio/buy", `{"symbol":"TCS","quantity":1}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !gotPrice.Equal(decimal.RequireFromString("3456.7")) {
			t.Errorf("expected market quote, got %s", gotPrice)
		}
	})

	t.Run("returns 400 on zero quantity", func(t *testing.T) {
		h := NewPortfolioHandler(&mockPortfolioService{}, &mockMarketService{})
		rec := doRequest(setupPortfolioRouter(h), http.MethodPost, "/portfolio/buy", `{"symbol":"TCS","quantity":0}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on insufficient funds", func(t *testing.T) {
		svc := &mockPortfolioService{
			buyFn: func(string, string, int64, decimal.Decimal) (*models.Portfolio, error) {
				return nil, apperrors.ErrInsufficientFunds
			},
		}
		rec := doRequest(setupPortfolioRouter(NewPortfolioHandler(svc, &mockMarketService{})), http.MethodPost, "/portfolio/buy", `{"symbol":"TCS","quantity":1000,"price":4000}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INSUFFICIENT_FUNDS")
	})
}

func TestPortfolioHandler_Sell(t *testing.T) {
	t.Run("returns 400 on insufficient shares", func(t *testing.T) {
		svc := &mockPortfolioService{
			sellFn: func(string, string, int64, decimal.Decimal) (*models.Portfolio, error) {
				return nil, apperrors.ErrInsufficientShares
			},
		}
		rec := doRequest(setupPortfolioRouter(NewPortfolioHandler(svc, &mockMarketService{})), http.MethodPost, "/portfolio/sell", `{"symbol":"TCS","quantity":1,"price":"4200.50"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INSUFFICIENT_SHARES")
	})
}

func TestPortfolioHandler_Refresh(t *testing.T) {
	called := false
	svc := &mockPortfolioService{
		markToMarketFn: func(userID string, lookup market.PriceLookup) (*models.Portfolio, error) {
			called = userID == "u1" && lookup == nil
			return newPortfolio(), nil
		},
	}
	rec := doRequest(setupPortfolioRouter(NewPortfolioHandler(svc, &mockMarketService{})), http.MethodPost, "/portfolio/refresh", "")
	if rec.Code != http.StatusOK || !called {
		t.Fatalf("expected refresh with default marks, got %d", rec.Code)
	}
}

func TestPortfolioHandler_ListTransactions(t *testing.T) {
	t.Run("passes paging through", func(t *testing.T) {
		var got pagination.PageRequest
		svc := &mockPortfolioService{
			listTransactionsFn: func(_ string, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
				got = page
				resp := pagination.NewPageResponse([]models.Transaction{{Symbol: "TCS"}}, page.Page, page.PageSize, 1)
				return &resp, nil
			},
		}
		rec := doRequest(setupPortfolioRouter(NewPortfolioHandler(svc, &mockMarketService{})), http.MethodGet, "/portfolio/transactions?page=2&page_size=5", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if got.Page != 2 || got.PageSize != 5 {
			t.Errorf("unexpected page request %+v", got)
		}
	})

	t.Run("returns 400 on oversized page", func(t *testing.T) {
		rec := doRequest(setupPortfolioRouter(NewPortfolioHandler(&mockPortfolioService{}, &mockMarketService{})), http.MethodGet, "/portfolio/transactions?page_size=1000", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestPortfolioHandler_ExportTransactions(t *testing.T) {
	svc := &mockPortfolioService{
		exportTransactionsFn: func(string) (*bytes.Buffer, error) { return bytes.NewBufferString("PK"), nil },
	}
	rec := doRequest(setupPortfolioRouter(NewPortfolioHandler(svc, &mockMarketService{})), http.MethodGet, "/portfolio/transactions/export", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != export.ContentType {
		t.Errorf("unexpected content type %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, ".xlsx") {
		t.Errorf("unexpected content disposition %q", cd)
	}
	if rec.Body.String() != "PK" {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
}
