package dedupe_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billscan/internal/dedupe"
	"billscan/internal/domain"
	"billscan/internal/fieldmap"
)

var fixedNow = time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

func newEngine() *dedupe.Engine {
	return dedupe.NewEngine(fieldmap.Default(), dedupe.WithClock(func() time.Time { return fixedNow }))
}

func emailBill(messageID string, mutate ...func(*domain.CandidateBill)) domain.CandidateBill {
	b := domain.CandidateBill{
		ID:         uuid.New(),
		Vendor:     "Acme Kft",
		Amount:     45000,
		Currency:   "HUF",
		Source:     domain.BillSource{Kind: domain.SourceEmail, MessageID: messageID},
		Method:     domain.MethodExactPattern,
		Language:   domain.LangHungarian,
		Confidence: 0.7,
	}
	for _, m := range mutate {
		m(&b)
	}
	return b
}

func pdfBill(messageID string, mutate ...func(*domain.CandidateBill)) domain.CandidateBill {
	b := domain.CandidateBill{
		ID:       uuid.New(),
		Vendor:   "Acme Kft",
		Amount:   45000,
		Currency: "HUF",
		Source: domain.BillSource{
			Kind: domain.SourcePDF, MessageID: messageID, AttachmentID: "att-1",
		},
		Method:     domain.MethodExactPattern,
		Language:   domain.LangHungarian,
		Confidence: 0.8,
	}
	for _, m := range mutate {
		m(&b)
	}
	return b
}

func TestDeduplicate_MergesMatchingPair(t *testing.T) {
	e := newEngine()
	email := emailBill("msg-1")
	pdf := pdfBill("msg-1")

	out := e.Deduplicate([]domain.CandidateBill{email, pdf})
	require.Len(t, out, 1)

	merged := out[0]
	assert.Equal(t, domain.SourceCombined, merged.Source.Kind)
	assert.Equal(t, "msg-1", merged.Source.MessageID)
	assert.Equal(t, "att-1", merged.Source.AttachmentID)
	assert.InDelta(t, 0.8, merged.Confidence, 1e-9)
	assert.NotEqual(t, email.ID, merged.ID)
	assert.NotEqual(t, pdf.ID, merged.ID)
}

func TestDeduplicate_ExactInvoiceNumberTrumpsAmountGap(t *testing.T) {
	e := newEngine()
	// Amounts differ by 5%, but the invoice number identity still merges.
	email := emailBill("msg-1", func(b *domain.CandidateBill) {
		b.InvoiceNumber = "INV-2026-001"
		b.Amount = 45000
	})
	pdf := pdfBill("msg-1", func(b *domain.CandidateBill) {
		b.InvoiceNumber = "INV-2026-001"
		b.Amount = 47250
	})

	out := e.Deduplicate([]domain.CandidateBill{email, pdf})
	require.Len(t, out, 1)
	assert.Equal(t, domain.SourceCombined, out[0].Source.Kind)
	// Beyond tolerance the larger amount wins.
	assert.Equal(t, 47250.0, out[0].Amount)
}

func TestDeduplicate_VendorPlusAmountWithinTolerance(t *testing.T) {
	e := newEngine()
	email := emailBill("msg-1", func(b *domain.CandidateBill) { b.Amount = 45000 })
	pdf := pdfBill("msg-1", func(b *domain.CandidateBill) { b.Amount = 45200 })

	out := e.Deduplicate([]domain.CandidateBill{email, pdf})
	require.Len(t, out, 1)
	assert.Equal(t, domain.SourceCombined, out[0].Source.Kind)
}

func TestDeduplicate_DifferentVendorsStaySeparate(t *testing.T) {
	e := newEngine()
	email := emailBill("msg-1", func(b *domain.CandidateBill) { b.Vendor = "Acme Kft" })
	pdf := pdfBill("msg-1", func(b *domain.CandidateBill) { b.Vendor = "Telekom" })

	out := e.Deduplicate([]domain.CandidateBill{email, pdf})
	assert.Len(t, out, 2)
}

func TestDeduplicate_CrossCurrencyAmountsNeverMatch(t *testing.T) {
	e := newEngine()
	// Same numeric value, different currencies: a 45 USD bill is not a
	// 45 HUF bill.
	email := emailBill("msg-1", func(b *domain.CandidateBill) {
		b.Amount = 45
		b.Currency = "USD"
	})
	pdf := pdfBill("msg-1", func(b *domain.CandidateBill) {
		b.Amount = 45
		b.Currency = "HUF"
	})

	out := e.Deduplicate([]domain.CandidateBill{email, pdf})
	assert.Len(t, out, 2)
}

func TestDeduplicate_VendorSubstringMatches(t *testing.T) {
	e := newEngine()
	email := emailBill("msg-1", func(b *domain.CandidateBill) { b.Vendor = "acme" })
	pdf := pdfBill("msg-1", func(b *domain.CandidateBill) { b.Vendor = "Acme Kft" })

	out := e.Deduplicate([]domain.CandidateBill{email, pdf})
	require.Len(t, out, 1)
	// The concrete, longer vendor name survives the merge.
	assert.Equal(t, "Acme Kft", out[0].Vendor)
}

func TestDeduplicate_CloseDatesDoNotRescueAmountGap(t *testing.T) {
	e := newEngine()
	d1 := time.Date(2026, time.September, 10, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC)

	// Dates are well inside the window, but the amounts disagree beyond
	// tolerance and are not exactly equal, so neither heuristic fires.
	email := emailBill("msg-1", func(b *domain.CandidateBill) {
		b.Amount = 45000
		b.BillDate = &d1
	})
	pdf := pdfBill("msg-1", func(b *domain.CandidateBill) {
		b.Amount = 47000
		b.BillDate = &d2
	})

	out := e.Deduplicate([]domain.CandidateBill{email, pdf})
	assert.Len(t, out, 2)
}

func TestDeduplicate_DifferentMessagesNeverGrouped(t *testing.T) {
	e := newEngine()
	email := emailBill("msg-1")
	pdf := pdfBill("msg-2")

	out := e.Deduplicate([]domain.CandidateBill{email, pdf})
	assert.Len(t, out, 2)
}

func TestDeduplicate_NoMessageIDPassesThrough(t *testing.T) {
	e := newEngine()
	loose := emailBill("")

	out := e.Deduplicate([]domain.CandidateBill{loose})
	require.Len(t, out, 1)
	assert.Equal(t, loose.ID, out[0].ID)
}

func TestDeduplicate_EachEmailConsumedOnce(t *testing.T) {
	e := newEngine()
	email := emailBill("msg-1")
	pdf1 := pdfBill("msg-1")
	pdf2 := pdfBill("msg-1", func(b *domain.CandidateBill) {
		b.Source.AttachmentID = "att-2"
	})

	out := e.Deduplicate([]domain.CandidateBill{email, pdf1, pdf2})
	require.Len(t, out, 2)
	// First PDF wins the email; the second passes through unmerged.
	assert.Equal(t, domain.SourceCombined, out[0].Source.Kind)
	assert.Equal(t, domain.SourcePDF, out[1].Source.Kind)
	assert.Equal(t, "att-2", out[1].Source.AttachmentID)
}

func TestDeduplicate_EmptyInput(t *testing.T) {
	e := newEngine()
	assert.Empty(t, e.Deduplicate(nil))
}

func TestMerge_FieldResolution(t *testing.T) {
	e := newEngine()
	future := time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC)
	past := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)

	email := emailBill("msg-1", func(b *domain.CandidateBill) {
		b.Amount = 45000
		b.AccountNumber = ""
		b.InvoiceNumber = "INV-1234"
		b.DueDate = &past
		b.Extras = map[string]string{"issuer_name": "Acme"}
	})
	pdf := pdfBill("msg-1", func(b *domain.CandidateBill) {
		b.Amount = 45000.5
		b.AccountNumber = "555666"
		b.InvoiceNumber = "INV-1234"
		b.DueDate = &future
		b.Extras = map[string]string{"provider": "Acme Energia Zrt"}
	})

	out := e.Deduplicate([]domain.CandidateBill{email, pdf})
	require.Len(t, out, 1)
	merged := out[0]

	// Within tolerance the more precise amount wins.
	assert.Equal(t, 45000.5, merged.Amount)
	// Missing email value resolves to the PDF side.
	assert.Equal(t, "555666", merged.AccountNumber)
	// The future due date is preferred over the stale one.
	require.NotNil(t, merged.DueDate)
	assert.True(t, merged.DueDate.Equal(future))
	// Extras union under canonical keys: both alias to "vendor" and the
	// longer value wins.
	assert.Equal(t, map[string]string{"vendor": "Acme Energia Zrt"}, merged.Extras)
}

func TestMerge_PlaceholderLosesToConcreteValue(t *testing.T) {
	e := newEngine()
	email := emailBill("msg-1", func(b *domain.CandidateBill) {
		b.InvoiceNumber = "N/A"
	})
	pdf := pdfBill("msg-1", func(b *domain.CandidateBill) {
		b.InvoiceNumber = "INV-2026-001"
	})

	out := e.Deduplicate([]domain.CandidateBill{email, pdf})
	require.Len(t, out, 1)
	assert.Equal(t, "INV-2026-001", out[0].InvoiceNumber)
}

func TestMerge_GenericVendorTermLoses(t *testing.T) {
	e := newEngine()
	email := emailBill("msg-1", func(b *domain.CandidateBill) {
		b.Vendor = "Szolgáltató"
		b.InvoiceNumber = "INV-1"
	})
	pdf := pdfBill("msg-1", func(b *domain.CandidateBill) {
		b.Vendor = "Acme Kft"
		b.InvoiceNumber = "INV-1"
	})

	out := e.Deduplicate([]domain.CandidateBill{email, pdf})
	require.Len(t, out, 1)
	assert.Equal(t, "Acme Kft", out[0].Vendor)
}

func TestMerge_BillDateTodayTreatedAsPlaceholder(t *testing.T) {
	e := newEngine()
	today := fixedNow
	real := time.Date(2026, time.August, 20, 0, 0, 0, 0, time.UTC)

	email := emailBill("msg-1", func(b *domain.CandidateBill) { b.BillDate = &today })
	pdf := pdfBill("msg-1", func(b *domain.CandidateBill) { b.BillDate = &real })

	out := e.Deduplicate([]domain.CandidateBill{email, pdf})
	require.Len(t, out, 1)
	require.NotNil(t, out[0].BillDate)
	assert.True(t, out[0].BillDate.Equal(real))
}

func TestMerge_MetadataFollowsHigherConfidence(t *testing.T) {
	e := newEngine()
	email := emailBill("msg-1", func(b *domain.CandidateBill) {
		b.Confidence = 0.9
		b.Method = domain.MethodExactPattern
		b.Language = domain.LangHungarian
	})
	pdf := pdfBill("msg-1", func(b *domain.CandidateBill) {
		b.Confidence = 0.5
		b.Method = domain.MethodLabelFallback
		b.Language = domain.LangEnglish
	})

	out := e.Deduplicate([]domain.CandidateBill{email, pdf})
	require.Len(t, out, 1)
	assert.Equal(t, domain.MethodExactPattern, out[0].Method)
	assert.Equal(t, domain.LangHungarian, out[0].Language)
	assert.InDelta(t, 0.9, out[0].Confidence, 1e-9)
}
