package mocks

import (
	"github.com/stretchr/testify/mock"

	"billscan/internal/domain"
)

// MockDeduplicator is a mock implementation of port.Deduplicator.
type MockDeduplicator struct {
	mock.Mock
}

func (m *MockDeduplicator) Deduplicate(bills []domain.CandidateBill) []domain.CandidateBill {
	args := m.Called(bills)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.CandidateBill)
}
