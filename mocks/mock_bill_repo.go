package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"billscan/internal/domain"
)

// MockBillRepo is a mock implementation of port.BillRepository.
type MockBillRepo struct {
	mock.Mock
}

func (m *MockBillRepo) CreateBatch(ctx context.Context, runID uuid.UUID, bills []domain.CandidateBill) error {
	args := m.Called(ctx, runID, bills)
	return args.Error(0)
}

func (m *MockBillRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.CandidateBill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CandidateBill), args.Error(1)
}

func (m *MockBillRepo) List(ctx context.Context, offset, limit int) ([]domain.CandidateBill, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.CandidateBill), args.Int(1), args.Error(2)
}

func (m *MockBillRepo) ListByMessageID(ctx context.Context, messageID string) ([]domain.CandidateBill, error) {
	args := m.Called(ctx, messageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CandidateBill), args.Error(1)
}
