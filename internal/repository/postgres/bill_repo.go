package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"billscan/internal/domain"
	"billscan/internal/port"
)

// billRow is the flat database shape of a final bill.
type billRow struct {
	ID            uuid.UUID      `db:"id"`
	RunID         uuid.UUID      `db:"run_id"`
	Vendor        sql.NullString `db:"vendor"`
	Amount        float64        `db:"amount"`
	Currency      string         `db:"currency"`
	BillDate      *time.Time     `db:"bill_date"`
	DueDate       *time.Time     `db:"due_date"`
	AccountNumber sql.NullString `db:"account_number"`
	InvoiceNumber sql.NullString `db:"invoice_number"`
	Category      sql.NullString `db:"category"`
	SourceKind    string         `db:"source_kind"`
	MessageID     sql.NullString `db:"message_id"`
	AttachmentID  sql.NullString `db:"attachment_id"`
	Method        string         `db:"extraction_method"`
	Language      string         `db:"language"`
	Confidence    float64        `db:"confidence"`
	Extras        []byte         `db:"extras"`
	CreatedAt     time.Time      `db:"created_at"`
}

// BillRepo is the sqlx-backed BillRepository implementation.
type BillRepo struct {
	db *sqlx.DB
}

// NewBillRepo creates a BillRepo.
func NewBillRepo(db *sqlx.DB) port.BillRepository {
	return &BillRepo{db: db}
}

const insertBill = `
	INSERT INTO bills (
		id, run_id, vendor, amount, currency, bill_date, due_date,
		account_number, invoice_number, category, source_kind,
		message_id, attachment_id, extraction_method, language,
		confidence, extras
	) VALUES (
		:id, :run_id, :vendor, :amount, :currency, :bill_date, :due_date,
		:account_number, :invoice_number, :category, :source_kind,
		:message_id, :attachment_id, :extraction_method, :language,
		:confidence, :extras
	)`

// CreateBatch inserts every bill of one scan run in a single transaction.
func (r *BillRepo) CreateBatch(ctx context.Context, runID uuid.UUID, bills []domain.CandidateBill) error {
	if len(bills) == 0 {
		return nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning tx: %w", err)
	}
	defer tx.Rollback()

	for i := range bills {
		row, err := toRow(runID, &bills[i])
		if err != nil {
			return err
		}
		if _, err := tx.NamedExecContext(ctx, insertBill, row); err != nil {
			return fmt.Errorf("inserting bill %s: %w", bills[i].ID, err)
		}
	}
	return tx.Commit()
}

// GetByID fetches one bill.
func (r *BillRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.CandidateBill, error) {
	var row billRow
	err := r.db.GetContext(ctx, &row, `SELECT * FROM bills WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching bill: %w", err)
	}
	return fromRow(&row)
}

// List returns a page of bills, newest first, plus the total count.
func (r *BillRepo) List(ctx context.Context, offset, limit int) ([]domain.CandidateBill, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM bills`); err != nil {
		return nil, 0, fmt.Errorf("counting bills: %w", err)
	}
	var rows []billRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT * FROM bills ORDER BY created_at DESC, id OFFSET $1 LIMIT $2`, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("listing bills: %w", err)
	}
	bills, err := fromRows(rows)
	return bills, total, err
}

// ListByMessageID returns every bill stored for a message.
func (r *BillRepo) ListByMessageID(ctx context.Context, messageID string) ([]domain.CandidateBill, error) {
	var rows []billRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT * FROM bills WHERE message_id = $1 ORDER BY created_at`, messageID)
	if err != nil {
		return nil, fmt.Errorf("listing bills by message: %w", err)
	}
	return fromRows(rows)
}

func toRow(runID uuid.UUID, b *domain.CandidateBill) (*billRow, error) {
	extras := []byte("{}")
	if len(b.Extras) > 0 {
		var err error
		extras, err = json.Marshal(b.Extras)
		if err != nil {
			return nil, fmt.Errorf("marshaling extras: %w", err)
		}
	}
	return &billRow{
		ID:            b.ID,
		RunID:         runID,
		Vendor:        nullStr(b.Vendor),
		Amount:        b.Amount,
		Currency:      b.Currency,
		BillDate:      b.BillDate,
		DueDate:       b.DueDate,
		AccountNumber: nullStr(b.AccountNumber),
		InvoiceNumber: nullStr(b.InvoiceNumber),
		Category:      nullStr(b.Category),
		SourceKind:    string(b.Source.Kind),
		MessageID:     nullStr(b.Source.MessageID),
		AttachmentID:  nullStr(b.Source.AttachmentID),
		Method:        string(b.Method),
		Language:      string(b.Language),
		Confidence:    b.Confidence,
		Extras:        extras,
	}, nil
}

func fromRow(r *billRow) (*domain.CandidateBill, error) {
	b := domain.CandidateBill{
		ID:            r.ID,
		Vendor:        r.Vendor.String,
		Amount:        r.Amount,
		Currency:      r.Currency,
		BillDate:      r.BillDate,
		DueDate:       r.DueDate,
		AccountNumber: r.AccountNumber.String,
		InvoiceNumber: r.InvoiceNumber.String,
		Category:      r.Category.String,
		Source: domain.BillSource{
			Kind:         domain.SourceKind(r.SourceKind),
			MessageID:    r.MessageID.String,
			AttachmentID: r.AttachmentID.String,
		},
		Method:     domain.ExtractionMethod(r.Method),
		Language:   domain.Language(r.Language),
		Confidence: r.Confidence,
	}
	if len(r.Extras) > 0 && string(r.Extras) != "{}" {
		if err := json.Unmarshal(r.Extras, &b.Extras); err != nil {
			return nil, fmt.Errorf("unmarshaling extras: %w", err)
		}
	}
	return &b, nil
}

func fromRows(rows []billRow) ([]domain.CandidateBill, error) {
	out := make([]domain.CandidateBill, 0, len(rows))
	for i := range rows {
		b, err := fromRow(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, nil
}

func nullStr(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
