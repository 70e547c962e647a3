package dedupe

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"billscan/internal/amount"
	"billscan/internal/domain"
)

// placeholders are string values treated as absent during resolution.
var placeholders = map[string]bool{
	"": true, "unknown": true, "n/a": true, "na": true, "none": true, "-": true,
}

// genericVendorTerms never win against a concrete vendor name.
var genericVendorTerms = map[string]bool{
	"vendor": true, "company": true, "merchant": true, "supplier": true,
	"biller": true, "provider": true, "szolgaltato": true, "szolgáltató": true,
}

// merge fuses one matched email/PDF pair. It starts from a full copy of
// the email candidate and resolves every field present on either side;
// on unresolvable ties the PDF side wins, since attachment text is the
// structurally more reliable source.
func (e *Engine) merge(email, pdf domain.CandidateBill) domain.CandidateBill {
	out := email
	out.ID = uuid.New()

	out.Vendor = resolveVendor(email.Vendor, pdf.Vendor)
	out.Amount = resolveAmount(email.Amount, pdf.Amount)
	out.Currency = resolveString(email.Currency, pdf.Currency)
	out.InvoiceNumber = resolveString(email.InvoiceNumber, pdf.InvoiceNumber)
	out.AccountNumber = resolveString(email.AccountNumber, pdf.AccountNumber)
	out.Category = resolveString(email.Category, pdf.Category)
	out.DueDate = e.resolveDueDate(email.DueDate, pdf.DueDate)
	out.BillDate = e.resolveOtherDate(email.BillDate, pdf.BillDate)
	out.Extras = e.mergeExtras(email.Extras, pdf.Extras)

	// The PDF side's provenance wins the tie-break on metadata too.
	if pdf.Confidence >= email.Confidence {
		out.Method = pdf.Method
		out.Language = pdf.Language
	}

	out.Source = domain.BillSource{
		Kind:         domain.SourceCombined,
		MessageID:    email.Source.MessageID,
		AttachmentID: pdf.Source.AttachmentID,
	}
	out.Confidence = email.Confidence
	if pdf.Confidence > out.Confidence {
		out.Confidence = pdf.Confidence
	}
	return out
}

// resolveString prefers the non-placeholder value, then the markedly
// longer value (≥1.5×, assumed to carry more detail), then the PDF side.
func resolveString(emailVal, pdfVal string) string {
	ev, pv := emailVal, pdfVal
	if placeholders[strings.ToLower(strings.TrimSpace(ev))] {
		ev = ""
	}
	if placeholders[strings.ToLower(strings.TrimSpace(pv))] {
		pv = ""
	}
	if ev == "" {
		return pv
	}
	if pv == "" {
		return ev
	}
	if float64(len(ev)) >= 1.5*float64(len(pv)) {
		return ev
	}
	if float64(len(pv)) >= 1.5*float64(len(ev)) {
		return pv
	}
	return pv
}

// resolveVendor is resolveString plus the generic-term rule: a concrete
// name always beats "vendor"/"company"/"merchant" filler.
func resolveVendor(emailVal, pdfVal string) string {
	eGeneric := genericVendorTerms[normVendor(emailVal)]
	pGeneric := genericVendorTerms[normVendor(pdfVal)]
	if eGeneric && !pGeneric && pdfVal != "" {
		return pdfVal
	}
	if pGeneric && !eGeneric && emailVal != "" {
		return emailVal
	}
	return resolveString(emailVal, pdfVal)
}

// resolveAmount: zero loses to non-zero; within tolerance the more precise
// value wins; beyond tolerance the larger magnitude wins; ties go to PDF.
func resolveAmount(emailVal, pdfVal float64) float64 {
	if emailVal == 0 {
		return pdfVal
	}
	if pdfVal == 0 {
		return emailVal
	}
	if amount.WithinRelative(emailVal, pdfVal, amountTolerance) {
		if amount.DecimalPrecision(emailVal) > amount.DecimalPrecision(pdfVal) {
			return emailVal
		}
		return pdfVal
	}
	if emailVal > pdfVal {
		return emailVal
	}
	return pdfVal
}

// resolveDueDate prefers whichever value lies in the future; ties go to PDF.
func (e *Engine) resolveDueDate(emailVal, pdfVal *time.Time) *time.Time {
	if emailVal == nil {
		return pdfVal
	}
	if pdfVal == nil {
		return emailVal
	}
	now := e.now()
	eFuture := emailVal.After(now)
	pFuture := pdfVal.After(now)
	if eFuture && !pFuture {
		return emailVal
	}
	return pdfVal
}

// resolveOtherDate treats a value falling within [today, tomorrow) as a
// likely extraction-default placeholder and prefers the other side; ties
// go to PDF.
func (e *Engine) resolveOtherDate(emailVal, pdfVal *time.Time) *time.Time {
	if emailVal == nil {
		return pdfVal
	}
	if pdfVal == nil {
		return emailVal
	}
	eToday := isToday(*emailVal, e.now())
	pToday := isToday(*pdfVal, e.now())
	if eToday && !pToday {
		return pdfVal
	}
	if pToday && !eToday {
		return emailVal
	}
	return pdfVal
}

// mergeExtras unions both extras maps under canonical key names, resolving
// per-key collisions with the string rules.
func (e *Engine) mergeExtras(emailExtras, pdfExtras map[string]string) map[string]string {
	if len(emailExtras) == 0 && len(pdfExtras) == 0 {
		return nil
	}
	out := make(map[string]string, len(emailExtras)+len(pdfExtras))
	for k, v := range emailExtras {
		out[e.mapper.Canonical(k)] = v
	}
	for k, v := range pdfExtras {
		ck := e.mapper.Canonical(k)
		if existing, ok := out[ck]; ok {
			out[ck] = resolveString(existing, v)
		} else {
			out[ck] = v
		}
	}
	return out
}

func isToday(t, now time.Time) bool {
	y1, m1, d1 := t.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func normVendor(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func contains(a, b string) bool {
	return strings.Contains(a, b)
}
