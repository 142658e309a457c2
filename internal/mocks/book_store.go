package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/ali-mahmoud24/bookly-api/internal/domain"
	"github.com/ali-mahmoud24/bookly-api/internal/store"
)

// MockBookStore implements store.BookStore for testing.
type MockBookStore struct {
	CreateFn             func(ctx context.Context, book *domain.Book) error
	GetByIDFn            func(ctx context.Context, id uuid.UUID) (*domain.Book, error)
	GetForUpdateFn       func(ctx context.Context, id uuid.UUID) (*domain.Book, error)
	ListFn               func(ctx context.Context, filter store.BookFilter) ([]*domain.Book, error)
	ListBorrowedByUserFn func(ctx context.Context, userID uuid.UUID) ([]*domain.Book, error)
	AddBorrowerFn        func(ctx context.Context, bookID, userID uuid.UUID) error
	RemoveBorrowerFn     func(ctx context.Context, bookID, userID uuid.UUID) error
	UpdateFn             func(ctx context.Context, book *domain.Book) error
	DeleteFn             func(ctx context.Context, id uuid.UUID) error

	Books map[uuid.UUID]*domain.Book
}

// NewMockBookStore creates a new mock store with initialized defaults.
func NewMockBookStore(books ...*domain.Book) *MockBookStore {
	m := &MockBookStore{Books: make(map[uuid.UUID]*domain.Book)}
	for _, b := range books {
		m.Books[b.ID] = b
	}
	return m
}

var _ store.BookStore = (*MockBookStore)(nil)

// Create implements the BookStore interface.
func (m *MockBookStore) Create(ctx context.Context, book *domain.Book) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, book)
	}

	m.Books[book.ID] = book
	return nil
}

// GetByID implements the BookStore interface.
func (m *MockBookStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	book, exists := m.Books[id]
	if !exists {
		return nil, store.ErrBookNotFound
	}
	return book, nil
}

// GetForUpdate implements the BookStore interface. The mock has no row
// locks, so it behaves like GetByID.
func (m *MockBookStore) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	if m.GetForUpdateFn != nil {
		return m.GetForUpdateFn(ctx, id)
	}
	return m.GetByID(ctx, id)
}

// List implements the BookStore interface.
func (m *MockBookStore) List(ctx context.Context, filter store.BookFilter) ([]*domain.Book, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}

	books := make([]*domain.Book, 0, len(m.Books))
	for _, book := range m.Books {
		if filter.AuthorID != uuid.Nil && book.AuthorID != filter.AuthorID {
			continue
		}
		if filter.Category != "" && book.Category != filter.Category {
			continue
		}
		books = append(books, book)
	}
	return books, nil
}

// ListBorrowedByUser implements the BookStore interface.
func (m *MockBookStore) ListBorrowedByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Book, error) {
	if m.ListBorrowedByUserFn != nil {
		return m.ListBorrowedByUserFn(ctx, userID)
	}

	var books []*domain.Book
	for _, book := range m.Books {
		if book.IsBorrowedBy(userID) {
			books = append(books, book)
		}
	}
	return books, nil
}

// AddBorrower implements the BookStore interface.
func (m *MockBookStore) AddBorrower(ctx context.Context, bookID, userID uuid.UUID) error {
	if m.AddBorrowerFn != nil {
		return m.AddBorrowerFn(ctx, bookID, userID)
	}

	book, exists := m.Books[bookID]
	if !exists {
		return store.ErrBookNotFound
	}
	if book.IsBorrowedBy(userID) {
		return store.ErrDuplicate
	}
	if book.CopiesAvailable < 1 {
		return store.ErrInvalidEntity
	}
	book.CopiesAvailable--
	book.BorrowedBy = append(book.BorrowedBy, userID)
	return nil
}

// RemoveBorrower implements the BookStore interface.
func (m *MockBookStore) RemoveBorrower(ctx context.Context, bookID, userID uuid.UUID) error {
	if m.RemoveBorrowerFn != nil {
		return m.RemoveBorrowerFn(ctx, bookID, userID)
	}

	book, exists := m.Books[bookID]
	if !exists {
		return store.ErrBookNotFound
	}
	if !book.IsBorrowedBy(userID) {
		return store.ErrNotFound
	}
	kept := book.BorrowedBy[:0]
	for _, id := range book.BorrowedBy {
		if id != userID {
			kept = append(kept, id)
		}
	}
	book.BorrowedBy = kept
	if book.CopiesAvailable < book.TotalCopies {
		book.CopiesAvailable++
	}
	return nil
}

// Update implements the BookStore interface.
func (m *MockBookStore) Update(ctx context.Context, book *domain.Book) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, book)
	}

	if _, exists := m.Books[book.ID]; !exists {
		return store.ErrBookNotFound
	}
	m.Books[book.ID] = book
	return nil
}

// Delete implements the BookStore interface.
func (m *MockBookStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, exists := m.Books[id]; !exists {
		return store.ErrBookNotFound
	}
	delete(m.Books, id)
	return nil
}

// WithTx implements the BookStore interface.
func (m *MockBookStore) WithTx(tx *sql.Tx) store.BookStore {
	return m
}
