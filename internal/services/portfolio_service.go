package services

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	apperrors "jainvest/internal/errors"
	"jainvest/internal/export"
	"jainvest/internal/logger"
	"jainvest/internal/market"
	"jainvest/internal/metrics"
	"jainvest/internal/models"
	"jainvest/internal/pagination"
	"jainvest/internal/store"
	"jainvest/internal/uuid"
)

// portfolioService keeps one ledger per user in the store.
type portfolioService struct {
	store  store.Store
	locks  *store.KeyLock
	market MarketServicer
	now    func() time.Time
}

// NewPortfolioService creates a new PortfolioServicer.
func NewPortfolioService(st store.Store, marketService MarketServicer) PortfolioServicer {
	return &portfolioService{
		store:  st,
		locks:  store.NewKeyLock(),
		market: marketService,
		now:    time.Now,
	}
}

// GetPortfolio returns the user's ledger, or a fresh one if none is stored yet.
func (s *portfolioService) GetPortfolio(ctx context.Context, userID string) (*models.Portfolio, error) {
	p, err := store.Load(ctx, s.store, store.PortfolioKey(userID), models.NewPortfolio)
	if err != nil {
		return nil, storeError(err)
	}
	return &p, nil
}

// Buy debits cash and opens or averages into a position.
func (s *portfolioService) Buy(ctx context.Context, userID, symbol string, quantity int64, price decimal.Decimal) (*models.Portfolio, error) {
	return s.trade(ctx, userID, models.TradeBuy, symbol, quantity, price, applyBuy)
}

// Sell credits cash and reduces or closes a position.
func (s *portfolioService) Sell(ctx context.Context, userID, symbol string, quantity int64, price decimal.Decimal) (*models.Portfolio, error) {
	return s.trade(ctx, userID, models.TradeSell, symbol, quantity, price, applySell)
}

type tradeRule func(p *models.Portfolio, id, symbol string, quantity int64, price decimal.Decimal, at time.Time) error

func (s *portfolioService) trade(ctx context.Context, userID string, side models.TradeType, symbol string, quantity int64, price decimal.Decimal, rule tradeRule) (*models.Portfolio, error) {
	symbol = market.NormalizeSymbol(symbol)
	id := uuid.New()
	at := s.now().UTC()

	p, err := store.Update(ctx, s.store, s.locks, store.PortfolioKey(userID), models.NewPortfolio,
		func(p *models.Portfolio) error {
			return rule(p, id, symbol, quantity, price, at)
		})
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			metrics.TradeRejections.WithLabelValues(appErr.Code).Inc()
			return nil, err
		}
		return nil, storeError(err)
	}

	metrics.TradesTotal.WithLabelValues(string(side)).Inc()
	logger.Get().Infow("trade executed",
		"user_id", userID,
		"side", side,
		"symbol", symbol,
		"quantity", quantity,
		"price", price.String(),
	)
	return &p, nil
}

// MarkToMarket overwrites every position's current price. A nil lookup uses
// the market's marks.
func (s *portfolioService) MarkToMarket(ctx context.Context, userID string, lookup market.PriceLookup) (*models.Portfolio, error) {
	if lookup == nil {
		lookup = s.market.Marks()
	}
	p, err := store.Update(ctx, s.store, s.locks, store.PortfolioKey(userID), models.NewPortfolio,
		func(p *models.Portfolio) error {
			applyMarks(p, lookup)
			return nil
		})
	if err != nil {
		return nil, storeError(err)
	}
	return &p, nil
}

// RefreshAll marks every listed user holding positions and returns how many
// portfolios were revalued. It keeps going past individual failures.
func (s *portfolioService) RefreshAll(ctx context.Context, userIDs []string) (int, error) {
	lookup := s.market.Marks()
	var errs []error
	refreshed := 0
	for _, id := range userIDs {
		p, err := s.GetPortfolio(ctx, id)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if len(p.Positions) == 0 {
			continue
		}
		if _, err := s.MarkToMarket(ctx, id, lookup); err != nil {
			errs = append(errs, err)
			continue
		}
		refreshed++
	}
	return refreshed, errors.Join(errs...)
}

// ListTransactions returns the user's trades, newest first.
func (s *portfolioService) ListTransactions(ctx context.Context, userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error) {
	p, err := s.GetPortfolio(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := pagination.Slice(newestFirst(p.Transactions), page)
	return &resp, nil
}

// ExportTransactions renders the user's trades as an xlsx workbook.
func (s *portfolioService) ExportTransactions(ctx context.Context, userID string) (*bytes.Buffer, error) {
	p, err := s.GetPortfolio(ctx, userID)
	if err != nil {
		return nil, err
	}
	buf, err := export.TransactionsWorkbook(p.Transactions)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return buf, nil
}

// Reset restores the starting balance and discards positions and history.
func (s *portfolioService) Reset(ctx context.Context, userID string) (*models.Portfolio, error) {
	p, err := store.Update(ctx, s.store, s.locks, store.PortfolioKey(userID), models.NewPortfolio,
		func(p *models.Portfolio) error {
			*p = models.NewPortfolio()
			return nil
		})
	if err != nil {
		return nil, storeError(err)
	}
	logger.Get().Infow("portfolio reset", "user_id", userID)
	return &p, nil
}

func newestFirst(txs []models.Transaction) []models.Transaction {
	out := make([]models.Transaction, len(txs))
	for i, tx := range txs {
		out[len(txs)-1-i] = tx
	}
	return out
}

// storeError maps persistence failures to an internal error, keeping
// AppErrors as they are.
func storeError(err error) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}
