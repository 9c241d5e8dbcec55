package market

import (
	"strings"
	"time"
)

// Quote is one row of the market overview.
type Quote struct {
	Symbol    string  `json:"symbol"`
	Last      float64 `json:"last"`
	Change    float64 `json:"change"`
	ChangePct float64 `json:"change_pct"`
	High      float64 `json:"high,omitempty"`
	Low       float64 `json:"low,omitempty"`
	Volume    string  `json:"volume,omitempty"`
}

// Snapshot is the market overview served to learners.
type Snapshot struct {
	Indices     []Quote   `json:"indices"`
	TopGainers  []Quote   `json:"top_gainers"`
	TopLosers   []Quote   `json:"top_losers"`
	LastUpdated time.Time `json:"last_updated"`
}

var indices = []Quote{
	{Symbol: "NIFTY 50", Last: 24150.25, Change: 101.75, ChangePct: 0.42, High: 24200.30, Low: 24050.15},
	{Symbol: "SENSEX", Last: 79486.32, Change: 234.89, ChangePct: 0.30, High: 79650.45, Low: 79200.10},
	{Symbol: "NIFTY BANK", Last: 51234.67, Change: -156.23, ChangePct: -0.30, High: 51450.90, Low: 51100.25},
	{Symbol: "NIFTY IT", Last: 43567.89, Change: 289.45, ChangePct: 0.67, High: 43700.12, Low: 43200.33},
}

var topGainers = []Quote{
	{Symbol: "RELIANCE", Last: 2890.45, Change: 145.30, ChangePct: 5.29, Volume: "2.3M"},
	{Symbol: "TCS", Last: 4123.67, Change: 189.23, ChangePct: 4.81, Volume: "1.8M"},
	{Symbol: "HDFC BANK", Last: 1678.90, Change: 67.45, ChangePct: 4.19, Volume: "3.1M"},
	{Symbol: "INFOSYS", Last: 1789.34, Change: 71.23, ChangePct: 4.15, Volume: "2.7M"},
	{Symbol: "ICICI BANK", Last: 1234.56, Change: 48.90, ChangePct: 4.12, Volume: "2.9M"},
}

var topLosers = []Quote{
	{Symbol: "BAJAJ FINANCE", Last: 6789.12, Change: -289.45, ChangePct: -4.09, Volume: "1.5M"},
	{Symbol: "MARUTI", Last: 11234.78, Change: -423.67, ChangePct: -3.63, Volume: "987K"},
	{Symbol: "ASIAN PAINTS", Last: 3456.89, Change: -123.45, ChangePct: -3.45, Volume: "1.2M"},
	{Symbol: "WIPRO", Last: 567.23, Change: -18.90, ChangePct: -3.22, Volume: "2.1M"},
	{Symbol: "BHARTI AIRTEL", Last: 890.45, Change: -27.34, ChangePct: -2.98, Volume: "1.7M"},
}

// NewSnapshot returns a copy of the static overview stamped with now.
func NewSnapshot(now time.Time) Snapshot {
	return Snapshot{
		Indices:     append([]Quote(nil), indices...),
		TopGainers:  append([]Quote(nil), topGainers...),
		TopLosers:   append([]Quote(nil), topLosers...),
		LastUpdated: now.UTC(),
	}
}

// listedPrice returns the overview's last price for symbol, if it has one.
func listedPrice(symbol string) (float64, bool) {
	for _, list := range [][]Quote{topGainers, topLosers} {
		for _, q := range list {
			if q.Symbol == symbol {
				return q.Last, true
			}
		}
	}
	return 0, false
}

// ListedSymbols returns the stock symbols shown in the overview, gainers
// first.
func ListedSymbols() []string {
	out := make([]string, 0, len(topGainers)+len(topLosers))
	for _, list := range [][]Quote{topGainers, topLosers} {
		for _, q := range list {
			out = append(out, q.Symbol)
		}
	}
	return out
}

// NormalizeSymbol trims and upper-cases a ticker so that "tcs " and "TCS"
// address the same position and quote.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
