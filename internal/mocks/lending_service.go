package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/ali-mahmoud24/bookly-api/internal/domain"
	"github.com/ali-mahmoud24/bookly-api/internal/service/lending"
)

// MockLendingService implements lending.Service for testing handlers in
// isolation from the transactional workflow.
type MockLendingService struct {
	BorrowFn       func(ctx context.Context, userID, bookID uuid.UUID) (*domain.Book, error)
	ReturnFn       func(ctx context.Context, userID, bookID uuid.UUID) (*domain.Book, error)
	ListBorrowedFn func(ctx context.Context, userID uuid.UUID) ([]lending.BorrowedBook, error)
}

var _ lending.Service = (*MockLendingService)(nil)

// Borrow implements the lending.Service interface.
func (m *MockLendingService) Borrow(ctx context.Context, userID, bookID uuid.UUID) (*domain.Book, error) {
	if m.BorrowFn != nil {
		return m.BorrowFn(ctx, userID, bookID)
	}
	return nil, lending.ErrNoCopiesAvailable
}

// Return implements the lending.Service interface.
func (m *MockLendingService) Return(ctx context.Context, userID, bookID uuid.UUID) (*domain.Book, error) {
	if m.ReturnFn != nil {
		return m.ReturnFn(ctx, userID, bookID)
	}
	return nil, lending.ErrNotBorrowed
}

// ListBorrowed implements the lending.Service interface.
func (m *MockLendingService) ListBorrowed(ctx context.Context, userID uuid.UUID) ([]lending.BorrowedBook, error) {
	if m.ListBorrowedFn != nil {
		return m.ListBorrowedFn(ctx, userID)
	}
	return nil, nil
}
