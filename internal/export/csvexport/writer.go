package csvexport

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"billscan/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"Vendor",
	"Amount",
	"Currency",
	"Bill Date",
	"Due Date",
	"Invoice Number",
	"Account Number",
	"Category",
	"Source",
	"Message ID",
	"Attachment ID",
	"Extraction Method",
	"Language",
	"Confidence",
}

// Writer wraps csv.Writer for exporting final bills as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteBills converts a batch of bills to CSV rows and writes them.
func (w *Writer) WriteBills(bills []domain.CandidateBill) error {
	for i := range bills {
		if err := w.csv.Write(billToRow(&bills[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func billToRow(b *domain.CandidateBill) []string {
	return []string{
		b.Vendor,
		strconv.FormatFloat(b.Amount, 'f', -1, 64),
		b.Currency,
		formatDate(b.BillDate),
		formatDate(b.DueDate),
		b.InvoiceNumber,
		b.AccountNumber,
		b.Category,
		string(b.Source.Kind),
		b.Source.MessageID,
		b.Source.AttachmentID,
		string(b.Method),
		string(b.Language),
		strconv.FormatFloat(b.Confidence, 'f', 2, 64),
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
