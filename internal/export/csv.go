// Package export renders ledger data for consumption outside the app.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"moneypal/internal/model"
)

// csvHeader is the fixed column layout consumers of the export rely on.
var csvHeader = []string{"date", "item", "category", "price"}

// WriteCSV writes expenses as CSV: date as YYYY-MM-DD, price as a
// two-decimal major-unit amount, category as the raw stored key.
func WriteCSV(w io.Writer, expenses []model.Expense) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, exp := range expenses {
		record := []string{
			exp.OccurredAt.Format("2006-01-02"),
			exp.Note,
			string(exp.Category),
			model.FormatCents(exp.AmountCents),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}
