package store

import (
	"context"
	"database/sql"

	"github.com/ali-mahmoud24/bookly-api/internal/domain"
	"github.com/google/uuid"
)

// BookFilter narrows List results. Zero-value fields are ignored.
type BookFilter struct {
	AuthorID uuid.UUID
	Category string
}

// BookStore defines the interface for book data persistence, including the
// primitives the lending service composes inside a transaction.
type BookStore interface {
	// Create saves a new book to the store.
	// Returns ErrAuthorNotFound if the referenced author does not exist.
	Create(ctx context.Context, book *domain.Book) error

	// GetByID retrieves a book by its unique ID, with the borrower set
	// populated. Returns ErrBookNotFound if the book does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error)

	// GetForUpdate retrieves a book like GetByID but locks its row for the
	// duration of the surrounding transaction. Only meaningful when called
	// on a store obtained from WithTx.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Book, error)

	// List returns books matching the filter, ordered by creation time.
	List(ctx context.Context, filter BookFilter) ([]*domain.Book, error)

	// ListBorrowedByUser returns the books the given user currently has on
	// loan, ordered by borrow time.
	ListBorrowedByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Book, error)

	// AddBorrower records userID as a borrower of bookID and decrements the
	// available count by one. The decrement is guarded: if no copy is
	// available the call fails without mutating anything.
	// Returns ErrDuplicate if the user already borrows the book.
	AddBorrower(ctx context.Context, bookID, userID uuid.UUID) error

	// RemoveBorrower removes userID from bookID's borrower set and
	// increments the available count by one, never past the book's total.
	// Returns ErrNotFound if no such borrow exists.
	RemoveBorrower(ctx context.Context, bookID, userID uuid.UUID) error

	// Update modifies an existing book. The caller must provide a complete
	// book object. Returns ErrBookNotFound if the book does not exist and
	// ErrAuthorNotFound if the new author reference does not resolve.
	Update(ctx context.Context, book *domain.Book) error

	// Delete removes a book by its ID. Borrow records referencing the book
	// are detached by the schema's cascade rules.
	// Returns ErrBookNotFound if the book does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new BookStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) BookStore
}
