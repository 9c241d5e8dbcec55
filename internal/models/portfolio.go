package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StartingCash is the virtual balance every new portfolio receives.
var StartingCash = decimal.NewFromInt(100000)

// TradeType is the side of a ledger transaction.
type TradeType string

const (
	TradeBuy  TradeType = "BUY"
	TradeSell TradeType = "SELL"
)

// Position is an open holding of one symbol.
type Position struct {
	Symbol       string          `json:"symbol"`
	Quantity     int64           `json:"quantity"`
	AveragePrice decimal.Decimal `json:"average_price"`
	CurrentPrice decimal.Decimal `json:"current_price"`
}

// MarketValue returns quantity × current price.
func (p Position) MarketValue() decimal.Decimal {
	return p.CurrentPrice.Mul(decimal.NewFromInt(p.Quantity))
}

// Transaction is an immutable record of a settled trade.
type Transaction struct {
	ID        string          `json:"id"`
	Type      TradeType       `json:"type"`
	Symbol    string          `json:"symbol"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Total     decimal.Decimal `json:"total"`
	Timestamp time.Time       `json:"timestamp"`
}

// Portfolio is a user's virtual trading ledger.
// Invariants: Cash >= 0, positions are unique by symbol, and
// TotalValue = Cash + Σ position.Quantity × position.CurrentPrice.
type Portfolio struct {
	Cash         decimal.Decimal `json:"cash"`
	Positions    []Position      `json:"positions"`
	Transactions []Transaction   `json:"transactions"`
	TotalValue   decimal.Decimal `json:"total_value"`
}

// NewPortfolio returns a portfolio holding only the starting cash.
func NewPortfolio() Portfolio {
	return Portfolio{
		Cash:         StartingCash,
		Positions:    []Position{},
		Transactions: []Transaction{},
		TotalValue:   StartingCash,
	}
}

// PositionIndex returns the index of the open position for symbol, or -1.
func (p *Portfolio) PositionIndex(symbol string) int {
	for i := range p.Positions {
		if p.Positions[i].Symbol == symbol {
			return i
		}
	}
	return -1
}

// Revalue recomputes TotalValue from cash and current marks.
func (p *Portfolio) Revalue() {
	total := p.Cash
	for _, pos := range p.Positions {
		total = total.Add(pos.MarketValue())
	}
	p.TotalValue = total
}

// Clone returns a deep copy so callers can mutate without aliasing stored slices.
func (p Portfolio) Clone() Portfolio {
	out := p
	out.Positions = append([]Position{}, p.Positions...)
	out.Transactions = append([]Transaction{}, p.Transactions...)
	return out
}
