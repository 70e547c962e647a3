// Package excel renders final bills as an XLSX workbook.
package excel

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"billscan/internal/domain"
)

const sheetName = "Bills"

var headers = []string{
	"Vendor", "Amount", "Currency", "Bill Date", "Due Date",
	"Invoice Number", "Account Number", "Category", "Source",
	"Message ID", "Extraction Method", "Language", "Confidence",
}

// Write renders bills into an XLSX workbook on w.
func Write(w io.Writer, bills []domain.CandidateBill) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(headers), 1)
		_ = f.SetCellStyle(sheetName, "A1", last, style)
	}

	for i := range bills {
		row := i + 2
		values := []interface{}{
			bills[i].Vendor,
			bills[i].Amount,
			bills[i].Currency,
			cellDate(bills[i].BillDate),
			cellDate(bills[i].DueDate),
			bills[i].InvoiceNumber,
			bills[i].AccountNumber,
			bills[i].Category,
			string(bills[i].Source.Kind),
			bills[i].Source.MessageID,
			string(bills[i].Method),
			string(bills[i].Language),
			bills[i].Confidence,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("writing row %d: %w", row, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func cellDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
