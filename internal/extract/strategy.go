package extract

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"billscan/internal/amount"
	"billscan/internal/domain"
)

// Strategy is one interchangeable extraction technique. Strategies are run
// in registration order by the Orchestrator; each returns a result with at
// least one candidate bill, or an error explaining why it could not.
type Strategy interface {
	Name() string
	Extract(in domain.ExtractionInput, language domain.Language) (*domain.ExtractionResult, error)
}

// buildCandidate assembles a CandidateBill from extracted fields. It
// enforces the amount invariant: a candidate is only produced with a
// positive amount and a non-empty currency.
func buildCandidate(in domain.ExtractionInput, fields Fields, language domain.Language, base float64, policy ConfidencePolicy) (*domain.CandidateBill, error) {
	amountField, ok := fields[domain.FieldAmount]
	if !ok {
		return nil, domain.ErrMissingRequiredField
	}
	value := amount.Parse(amountField.Value)
	if value <= 0 {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnparsableAmount, amountField.Value)
	}

	optional := 0
	for name := range fields {
		if name != domain.FieldAmount {
			optional++
		}
	}
	confidence := policy.CandidateConfidence(base, optional, in.Trusted())

	bill := domain.CandidateBill{
		ID:       uuid.New(),
		Amount:   value,
		Currency: amount.DetectCurrency(in.Text(), language),
		Source: domain.BillSource{
			Kind:      in.SourceKind(),
			MessageID: in.MessageID(),
		},
		Method:     amountField.Method,
		Language:   language,
		Confidence: confidence,
	}
	if in.Document != nil {
		bill.Source.AttachmentID = in.Document.AttachmentID
	}

	if f, ok := fields[domain.FieldVendor]; ok {
		bill.Vendor = ClampField(f, confidence).Value
	}
	if f, ok := fields[domain.FieldInvoiceNumber]; ok {
		bill.InvoiceNumber = ClampField(f, confidence).Value
	}
	if f, ok := fields[domain.FieldAccountNumber]; ok {
		bill.AccountNumber = ClampField(f, confidence).Value
	}
	// Malformed dates degrade to a field omission, never a failure.
	if f, ok := fields[domain.FieldDueDate]; ok {
		if t, err := ParseDate(f.Value, language); err == nil {
			bill.DueDate = &t
		}
	}
	if f, ok := fields[domain.FieldBillDate]; ok {
		if t, err := ParseDate(f.Value, language); err == nil {
			bill.BillDate = &t
		}
	}
	return &bill, nil
}

// vendorFromSender derives a fallback vendor name from an email sender
// domain ("billing@acme.com" → "acme").
func vendorFromSender(sender string) string {
	at := strings.LastIndex(sender, "@")
	if at < 0 || at == len(sender)-1 {
		return ""
	}
	host := sender[at+1:]
	labels := strings.Split(host, ".")
	if len(labels) < 2 {
		return host
	}
	// Skip generic mail-infrastructure labels.
	name := labels[len(labels)-2]
	if name == "co" && len(labels) >= 3 {
		name = labels[len(labels)-3]
	}
	return name
}

func successResult(bill *domain.CandidateBill) *domain.ExtractionResult {
	return &domain.ExtractionResult{
		Success:    true,
		Bills:      []domain.CandidateBill{*bill},
		Confidence: bill.Confidence,
	}
}
