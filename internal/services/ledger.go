package services

import (
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "jainvest/internal/errors"
	"jainvest/internal/market"
	"jainvest/internal/models"
)

// The ledger rules below operate on a portfolio value and check every
// precondition before touching it, so a failed trade leaves p unchanged.

func validateTrade(symbol string, quantity int64, price decimal.Decimal) error {
	switch {
	case strings.TrimSpace(symbol) == "":
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "symbol is required")
	case quantity <= 0:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "quantity must be a positive integer")
	case !price.IsPositive():
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "price must be positive")
	}
	return nil
}

func applyBuy(p *models.Portfolio, id, symbol string, quantity int64, price decimal.Decimal, at time.Time) error {
	if err := validateTrade(symbol, quantity, price); err != nil {
		return err
	}
	qty := decimal.NewFromInt(quantity)
	cost := price.Mul(qty)
	if p.Cash.LessThan(cost) {
		return apperrors.ErrInsufficientFunds
	}

	if i := p.PositionIndex(symbol); i >= 0 {
		pos := &p.Positions[i]
		if quantity > math.MaxInt64-pos.Quantity {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "position quantity is too large")
		}
		held := decimal.NewFromInt(pos.Quantity)
		total := pos.Quantity + quantity
		pos.AveragePrice = pos.AveragePrice.Mul(held).Add(cost).Div(decimal.NewFromInt(total))
		pos.Quantity = total
	} else {
		p.Positions = append(p.Positions, models.Position{
			Symbol:       symbol,
			Quantity:     quantity,
			AveragePrice: price,
			CurrentPrice: price,
		})
	}

	p.Cash = p.Cash.Sub(cost)
	p.Transactions = append(p.Transactions, models.Transaction{
		ID:        id,
		Type:      models.TradeBuy,
		Symbol:    symbol,
		Quantity:  quantity,
		Price:     price,
		Total:     cost,
		Timestamp: at,
	})
	p.Revalue()
	return nil
}

func applySell(p *models.Portfolio, id, symbol string, quantity int64, price decimal.Decimal, at time.Time) error {
	if err := validateTrade(symbol, quantity, price); err != nil {
		return err
	}
	i := p.PositionIndex(symbol)
	if i < 0 || p.Positions[i].Quantity < quantity {
		return apperrors.ErrInsufficientShares
	}

	proceeds := price.Mul(decimal.NewFromInt(quantity))
	if p.Positions[i].Quantity == quantity {
		// Cost basis goes with the position; a later buy starts fresh.
		p.Positions = append(p.Positions[:i], p.Positions[i+1:]...)
	} else {
		p.Positions[i].Quantity -= quantity
	}

	p.Cash = p.Cash.Add(proceeds)
	p.Transactions = append(p.Transactions, models.Transaction{
		ID:        id,
		Type:      models.TradeSell,
		Symbol:    symbol,
		Quantity:  quantity,
		Price:     price,
		Total:     proceeds,
		Timestamp: at,
	})
	p.Revalue()
	return nil
}

func applyMarks(p *models.Portfolio, lookup market.PriceLookup) {
	for i := range p.Positions {
		p.Positions[i].CurrentPrice = lookup.Price(p.Positions[i].Symbol)
	}
	p.Revalue()
}
