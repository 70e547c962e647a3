package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"billscan/internal/domain"
)

// MockExtractor is a mock implementation of port.Extractor.
type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) ExtractFromEmail(ctx context.Context, email domain.EmailContext) (*domain.ExtractionResult, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtractionResult), args.Error(1)
}

func (m *MockExtractor) ExtractFromDocument(ctx context.Context, doc domain.DocumentContext) (*domain.ExtractionResult, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtractionResult), args.Error(1)
}
