package export

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"jainvest/internal/models"
)

func TestTransactionsWorkbook(t *testing.T) {
	txs := []models.Transaction{
		{
			ID:        "tx-1",
			Type:      models.TradeBuy,
			Symbol:    "TCS",
			Quantity:  10,
			Price:     decimal.NewFromInt(3500),
			Total:     decimal.NewFromInt(35000),
			Timestamp: time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC),
		},
		{
			ID:        "tx-2",
			Type:      models.TradeSell,
			Symbol:    "TCS",
			Quantity:  4,
			Price:     decimal.RequireFromString("3612.5"),
			Total:     decimal.NewFromInt(14450),
			Timestamp: time.Date(2024, 5, 2, 9, 30, 0, 0, time.UTC),
		},
	}

	buf, err := TransactionsWorkbook(txs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("generated file should be readable: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(TransactionsSheet)
	if err != nil {
		t.Fatalf("failed to read rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][6] != "Total" {
		t.Errorf("unexpected header %v", rows[0])
	}
	if rows[2][2] != "SELL" || rows[2][3] != "TCS" || rows[2][5] != "3612.5" {
		t.Errorf("unexpected sell row %v", rows[2])
	}
}
