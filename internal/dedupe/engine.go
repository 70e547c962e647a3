// Package dedupe groups candidate bills by originating message and fuses
// each matched email/PDF pair into one combined record. It is a batch
// operation: it must see the complete candidate set for a message.
package dedupe

import (
	"log"
	"time"

	"billscan/internal/amount"
	"billscan/internal/domain"
	"billscan/internal/extract"
	"billscan/internal/fieldmap"
)

// amountTolerance is the relative difference two amounts may have and
// still corroborate a match.
const amountTolerance = 0.01

// dateWindowDays is the maximum distance two bill dates may lie apart for
// the corroborated-heuristic rule.
const dateWindowDays = 7

// Engine is the deduplication/merge engine.
type Engine struct {
	mapper *fieldmap.Mapper
	now    func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the engine's notion of "now" for date resolution.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates an Engine using the given field mapper.
func NewEngine(mapper *fieldmap.Mapper, opts ...Option) *Engine {
	e := &Engine{mapper: mapper, now: time.Now}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Deduplicate groups candidates by message, pairs email-sourced with
// PDF-sourced candidates using the match rules, merges matched pairs, and
// passes everything else through unchanged. Input order is preserved for
// passthroughs; merged bills appear in PDF-candidate encounter order.
func (e *Engine) Deduplicate(bills []domain.CandidateBill) []domain.CandidateBill {
	groups := make(map[string][]domain.CandidateBill)
	var order []string
	var out []domain.CandidateBill

	for _, b := range bills {
		id := b.Source.MessageID
		if id == "" {
			// No message to group under; passes through unmerged.
			out = append(out, b)
			continue
		}
		if _, seen := groups[id]; !seen {
			order = append(order, id)
		}
		groups[id] = append(groups[id], b)
	}

	for _, id := range order {
		out = append(out, e.mergeGroup(groups[id])...)
	}
	return out
}

func (e *Engine) mergeGroup(group []domain.CandidateBill) []domain.CandidateBill {
	if len(group) < 2 {
		return group
	}

	var emails, pdfs []domain.CandidateBill
	for _, b := range group {
		if isPDFSourced(b) {
			pdfs = append(pdfs, b)
		} else {
			emails = append(emails, b)
		}
	}
	if len(emails) == 0 || len(pdfs) == 0 {
		return group
	}

	consumed := make([]bool, len(emails))
	var out []domain.CandidateBill

	for _, pdf := range pdfs {
		matched := false
		for i, email := range emails {
			if consumed[i] {
				continue
			}
			if e.matches(email, pdf) {
				merged := e.merge(email, pdf)
				log.Printf("dedupe.Engine: merged %s + %s into %s (message %s)",
					email.ID, pdf.ID, merged.ID, merged.Source.MessageID)
				out = append(out, merged)
				consumed[i] = true
				matched = true
				break
			}
		}
		if !matched {
			out = append(out, pdf)
		}
	}
	for i, email := range emails {
		if !consumed[i] {
			out = append(out, email)
		}
	}
	return out
}

// isPDFSourced classifies a candidate as attachment-sourced.
func isPDFSourced(b domain.CandidateBill) bool {
	return b.Source.Kind == domain.SourcePDF || b.Source.AttachmentID != ""
}

// matches applies the cross-source match rules in precedence order. The
// decision is symmetric in its two arguments.
func (e *Engine) matches(a, b domain.CandidateBill) bool {
	// Exact invoice-number identity trumps everything else.
	if a.InvoiceNumber != "" && a.InvoiceNumber == b.InvoiceNumber {
		return true
	}

	if !fuzzyVendorMatch(a.Vendor, b.Vendor) {
		return false
	}

	// Amount rules only ever compare same-currency candidates; a 45 USD
	// bill and a 45 HUF bill are not the same amount.
	sameCurrency := a.Currency != "" && a.Currency == b.Currency

	// Strong heuristic: vendor + amount within tolerance.
	if sameCurrency && amount.WithinRelative(a.Amount, b.Amount, amountTolerance) {
		return true
	}

	// Corroborated heuristic: vendor + date proximity + exact amount.
	if sameCurrency && a.Amount > 0 && a.Amount == b.Amount && datesClose(a, b) {
		return true
	}
	return false
}

// fuzzyVendorMatch is case-insensitive equality or substring containment
// in either direction.
func fuzzyVendorMatch(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	la, lb := normVendor(a), normVendor(b)
	if la == lb {
		return true
	}
	return contains(la, lb) || contains(lb, la)
}

// datesClose compares the best available date from each side.
func datesClose(a, b domain.CandidateBill) bool {
	da := pickDate(a)
	db := pickDate(b)
	if da == nil || db == nil {
		return false
	}
	return extract.WithinDays(*da, *db, dateWindowDays)
}

func pickDate(b domain.CandidateBill) *time.Time {
	if b.BillDate != nil {
		return b.BillDate
	}
	return b.DueDate
}
