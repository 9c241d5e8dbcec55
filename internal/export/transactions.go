// Package export renders ledger data as spreadsheet downloads.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"jainvest/internal/models"
)

// TransactionsSheet is the worksheet name of the transactions export.
const TransactionsSheet = "Transactions"

// ContentType is the MIME type of the generated workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var transactionHeaders = []string{"ID", "Date", "Type", "Symbol", "Quantity", "Price", "Total"}

// TransactionsWorkbook writes one row per transaction under a header row and
// returns the encoded xlsx file.
func TransactionsWorkbook(txs []models.Transaction) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", TransactionsSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, h := range transactionHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(TransactionsSheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for r, tx := range txs {
		row := []interface{}{
			tx.ID,
			tx.Timestamp.UTC().Format("2006-01-02 15:04:05"),
			string(tx.Type),
			tx.Symbol,
			tx.Quantity,
			tx.Price.InexactFloat64(),
			tx.Total.InexactFloat64(),
		}
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(TransactionsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", r+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}
	return buf, nil
}
