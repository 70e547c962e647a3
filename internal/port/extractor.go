package port

import (
	"context"

	"billscan/internal/domain"
)

// Extractor is the engine surface exposed to collaborators: one structured,
// confidence-scored result per input text.
type Extractor interface {
	ExtractFromEmail(ctx context.Context, email domain.EmailContext) (*domain.ExtractionResult, error)
	ExtractFromDocument(ctx context.Context, doc domain.DocumentContext) (*domain.ExtractionResult, error)
}

// Deduplicator fuses candidate bills describing the same underlying bill.
// Batch contract: it must be handed the complete candidate set for a
// scanning run.
type Deduplicator interface {
	Deduplicate(bills []domain.CandidateBill) []domain.CandidateBill
}

// TextExtractor is the PDF-text collaborator boundary. The engine never
// reads PDF bytes itself; when a DocumentContext arrives with a binary
// payload instead of text, the caller resolves it through this seam first.
type TextExtractor interface {
	ExtractText(ctx context.Context, pdf []byte) (string, error)
}
