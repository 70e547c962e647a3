package port

import (
	"context"

	"github.com/google/uuid"

	"billscan/internal/domain"
)

// BillRepository persists the final (deduplicated) bills of a scan run.
type BillRepository interface {
	CreateBatch(ctx context.Context, runID uuid.UUID, bills []domain.CandidateBill) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CandidateBill, error)
	List(ctx context.Context, offset, limit int) ([]domain.CandidateBill, int, error)
	ListByMessageID(ctx context.Context, messageID string) ([]domain.CandidateBill, error)
}
