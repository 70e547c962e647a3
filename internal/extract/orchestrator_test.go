package extract_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billscan/internal/domain"
	"billscan/internal/extract"
	"billscan/internal/lang"
)

func TestOrchestrator_HungarianEmail(t *testing.T) {
	o := extract.NewDefaultOrchestrator(extract.DefaultPolicy())

	res, err := o.ExtractFromEmail(context.Background(), domain.EmailContext{
		MessageID: "msg-1",
		BodyText:  huBillText,
	})
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Len(t, res.Bills, 1)

	bill := res.Bills[0]
	assert.Equal(t, 45000.0, bill.Amount)
	assert.Equal(t, "HUF", bill.Currency)
	assert.Equal(t, domain.LangHungarian, bill.Language)
	assert.Equal(t, domain.SourceEmail, bill.Source.Kind)
	assert.Equal(t, "msg-1", bill.Source.MessageID)
	assert.Equal(t, domain.MethodExactPattern, bill.Method)
	require.NotNil(t, bill.DueDate)
	assert.Equal(t, "2026-09-15", bill.DueDate.Format("2006-01-02"))
	assert.Equal(t, "ABC-12345", bill.InvoiceNumber)
	// Base 0.7 plus four optional fields.
	assert.InDelta(t, 0.9, bill.Confidence, 1e-9)
}

func TestOrchestrator_TrustedSenderBonusIsCapped(t *testing.T) {
	o := extract.NewDefaultOrchestrator(extract.DefaultPolicy())

	res, err := o.ExtractFromEmail(context.Background(), domain.EmailContext{
		MessageID:     "msg-1",
		BodyText:      huBillText,
		TrustedSource: true,
	})
	require.NoError(t, err)
	require.Len(t, res.Bills, 1)
	assert.InDelta(t, 0.95, res.Bills[0].Confidence, 1e-9)
}

func TestOrchestrator_TrustedEmailBypassesKeywordGate(t *testing.T) {
	o := extract.NewDefaultOrchestrator(extract.DefaultPolicy())

	res, err := o.ExtractFromEmail(context.Background(), domain.EmailContext{
		MessageID:     "msg-2",
		SenderAddress: "billing@acme.com",
		BodyText:      "Please pay 45.00 USD for your subscription",
		TrustedSource: true,
	})
	require.NoError(t, err)
	require.Len(t, res.Bills, 1)

	bill := res.Bills[0]
	assert.Equal(t, 45.0, bill.Amount)
	assert.Equal(t, "USD", bill.Currency)
	assert.Equal(t, "acme", bill.Vendor)
	assert.Equal(t, domain.MethodLabelFallback, bill.Method)
}

func TestOrchestrator_EmptyInput(t *testing.T) {
	o := extract.NewDefaultOrchestrator(extract.DefaultPolicy())

	res, err := o.ExtractFromEmail(context.Background(), domain.EmailContext{MessageID: "msg-3"})
	assert.ErrorIs(t, err, domain.ErrEmptyInput)
	require.NotNil(t, res)
	assert.False(t, res.Success)
}

func TestOrchestrator_NonBillText(t *testing.T) {
	o := extract.NewDefaultOrchestrator(extract.DefaultPolicy())

	res, err := o.ExtractFromEmail(context.Background(), domain.EmailContext{
		MessageID: "msg-4",
		BodyText:  "Hi, are we still on for lunch tomorrow? Cheers",
	})
	assert.ErrorIs(t, err, domain.ErrNoMatchingStrategy)
	require.NotNil(t, res)
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Error)
}

func TestOrchestrator_DocumentSource(t *testing.T) {
	o := extract.NewDefaultOrchestrator(extract.DefaultPolicy())

	res, err := o.ExtractFromDocument(context.Background(), domain.DocumentContext{
		MessageID:    "msg-5",
		AttachmentID: "att-1",
		FileName:     "szamla.pdf",
		RawText:      huBillText,
	})
	require.NoError(t, err)
	require.Len(t, res.Bills, 1)

	bill := res.Bills[0]
	assert.Equal(t, domain.SourcePDF, bill.Source.Kind)
	assert.Equal(t, "att-1", bill.Source.AttachmentID)
}

func TestOrchestrator_LanguageHintSkipsDetection(t *testing.T) {
	o := extract.NewDefaultOrchestrator(extract.DefaultPolicy())

	// Hungarian text with a German hint runs the German table, which finds
	// no amount, and falls through to the regex heuristic.
	res, err := o.ExtractFromEmail(context.Background(), domain.EmailContext{
		MessageID:    "msg-6",
		BodyText:     huBillText,
		LanguageHint: domain.LangGerman,
	})
	require.NoError(t, err)
	require.Len(t, res.Bills, 1)
	assert.Equal(t, domain.LangGerman, res.Bills[0].Language)
}

// stubStrategy is a canned-response Strategy for cascade-order tests.
type stubStrategy struct {
	name   string
	res    *domain.ExtractionResult
	err    error
	called bool
}

func (s *stubStrategy) Name() string { return s.name }

func (s *stubStrategy) Extract(domain.ExtractionInput, domain.Language) (*domain.ExtractionResult, error) {
	s.called = true
	return s.res, s.err
}

func stubResult(confidence float64) *domain.ExtractionResult {
	return &domain.ExtractionResult{
		Success:    true,
		Confidence: confidence,
		Bills: []domain.CandidateBill{{
			ID: uuid.New(), Amount: 100, Currency: "USD", Confidence: confidence,
		}},
	}
}

func TestOrchestrator_EmailFirstSuccessWins(t *testing.T) {
	first := &stubStrategy{name: "first", res: stubResult(0.5)}
	second := &stubStrategy{name: "second", res: stubResult(0.9)}
	o := extract.NewOrchestrator(lang.NewDetector(), extract.DefaultPolicy(), first, second)

	res, err := o.ExtractFromEmail(context.Background(), domain.EmailContext{BodyText: "x"})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, res.Confidence, 1e-9)
	assert.False(t, second.called)
}

func TestOrchestrator_PDFKeepsBestBelowThreshold(t *testing.T) {
	first := &stubStrategy{name: "first", res: stubResult(0.45)}
	second := &stubStrategy{name: "second", res: stubResult(0.55)}
	o := extract.NewOrchestrator(lang.NewDetector(), extract.DefaultPolicy(), first, second)

	res, err := o.ExtractFromDocument(context.Background(), domain.DocumentContext{RawText: "x"})
	require.NoError(t, err)
	assert.InDelta(t, 0.55, res.Confidence, 1e-9)
	assert.True(t, first.called)
	assert.True(t, second.called)
}

func TestOrchestrator_PDFEarlyExit(t *testing.T) {
	first := &stubStrategy{name: "first", res: stubResult(0.7)}
	second := &stubStrategy{name: "second", res: stubResult(0.9)}
	o := extract.NewOrchestrator(lang.NewDetector(), extract.DefaultPolicy(), first, second)

	res, err := o.ExtractFromDocument(context.Background(), domain.DocumentContext{RawText: "x"})
	require.NoError(t, err)
	assert.InDelta(t, 0.7, res.Confidence, 1e-9)
	assert.False(t, second.called)
}

func TestOrchestrator_StrategyErrorSelectsNext(t *testing.T) {
	first := &stubStrategy{name: "first", err: errors.New("boom")}
	second := &stubStrategy{name: "second", res: stubResult(0.6)}
	o := extract.NewOrchestrator(lang.NewDetector(), extract.DefaultPolicy(), first, second)

	res, err := o.ExtractFromEmail(context.Background(), domain.EmailContext{BodyText: "x"})
	require.NoError(t, err)
	assert.InDelta(t, 0.6, res.Confidence, 1e-9)
}

func TestOrchestrator_ContextCancelled(t *testing.T) {
	first := &stubStrategy{name: "first", res: stubResult(0.9)}
	o := extract.NewOrchestrator(lang.NewDetector(), extract.DefaultPolicy(), first)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := o.ExtractFromEmail(ctx, domain.EmailContext{BodyText: "x"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, first.called)
}
