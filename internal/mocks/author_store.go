package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/ali-mahmoud24/bookly-api/internal/domain"
	"github.com/ali-mahmoud24/bookly-api/internal/store"
)

// MockAuthorStore implements store.AuthorStore for testing.
type MockAuthorStore struct {
	CreateFn  func(ctx context.Context, author *domain.Author) error
	GetByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Author, error)
	ListFn    func(ctx context.Context) ([]*domain.Author, error)
	UpdateFn  func(ctx context.Context, author *domain.Author) error
	DeleteFn  func(ctx context.Context, id uuid.UUID) error

	Authors map[uuid.UUID]*domain.Author
}

// NewMockAuthorStore creates a new mock store with initialized defaults.
func NewMockAuthorStore(authors ...*domain.Author) *MockAuthorStore {
	m := &MockAuthorStore{Authors: make(map[uuid.UUID]*domain.Author)}
	for _, a := range authors {
		m.Authors[a.ID] = a
	}
	return m
}

var _ store.AuthorStore = (*MockAuthorStore)(nil)

// Create implements the AuthorStore interface.
func (m *MockAuthorStore) Create(ctx context.Context, author *domain.Author) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, author)
	}

	m.Authors[author.ID] = author
	return nil
}

// GetByID implements the AuthorStore interface.
func (m *MockAuthorStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Author, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	author, exists := m.Authors[id]
	if !exists {
		return nil, store.ErrAuthorNotFound
	}
	return author, nil
}

// List implements the AuthorStore interface.
func (m *MockAuthorStore) List(ctx context.Context) ([]*domain.Author, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	authors := make([]*domain.Author, 0, len(m.Authors))
	for _, author := range m.Authors {
		authors = append(authors, author)
	}
	return authors, nil
}

// Update implements the AuthorStore interface.
func (m *MockAuthorStore) Update(ctx context.Context, author *domain.Author) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, author)
	}

	if _, exists := m.Authors[author.ID]; !exists {
		return store.ErrAuthorNotFound
	}
	m.Authors[author.ID] = author
	return nil
}

// Delete implements the AuthorStore interface.
func (m *MockAuthorStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, exists := m.Authors[id]; !exists {
		return store.ErrAuthorNotFound
	}
	delete(m.Authors, id)
	return nil
}

// WithTx implements the AuthorStore interface.
func (m *MockAuthorStore) WithTx(tx *sql.Tx) store.AuthorStore {
	return m
}
