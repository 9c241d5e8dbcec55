package services

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	apperrors "jainvest/internal/errors"
	"jainvest/internal/logger"
	"jainvest/internal/market"
)

// marketService serves the overview, synthetic history, and quote board.
type marketService struct {
	board *market.Board

	mu  sync.Mutex
	rng market.Rand
	now func() time.Time
}

// NewMarketService creates a new MarketServicer. rng drives the synthetic
// OHLC history.
func NewMarketService(board *market.Board, rng market.Rand) MarketServicer {
	return &marketService{board: board, rng: rng, now: time.Now}
}

// Snapshot returns the market overview.
func (s *marketService) Snapshot() market.Snapshot {
	return market.NewSnapshot(s.now())
}

// OHLC returns the synthetic 30-day history for a symbol.
func (s *marketService) OHLC(_ string) []market.Candle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return market.GenerateOHLC(s.rng, s.now(), market.HistoryDays)
}

// Quote returns the price a trade in symbol would fill at.
func (s *marketService) Quote(symbol string) decimal.Decimal {
	return s.board.Quote(market.NormalizeSymbol(symbol))
}

// Marks returns the lookup used to revalue portfolios.
func (s *marketService) Marks() market.PriceLookup {
	return market.PriceFunc(func(symbol string) decimal.Decimal {
		return s.board.Marks().Price(market.NormalizeSymbol(symbol))
	})
}

// PushPrices records quotes from the price oracle.
func (s *marketService) PushPrices(ctx context.Context, prices []market.PriceResult) (int, error) {
	for i := range prices {
		prices[i].Symbol = market.NormalizeSymbol(prices[i].Symbol)
		if prices[i].Symbol == "" || !prices[i].Price.IsPositive() {
			return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "each price needs a symbol and a positive price")
		}
	}

	n, err := s.board.Push(ctx, prices)
	if err != nil {
		return 0, storeError(err)
	}
	logger.Get().Infow("market prices pushed", "received", len(prices), "applied", n)
	return n, nil
}
