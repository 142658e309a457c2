package store

import (
	"context"
	"database/sql"

	"github.com/ali-mahmoud24/bookly-api/internal/domain"
	"github.com/google/uuid"
)

// AuthorStore defines the interface for author data persistence.
type AuthorStore interface {
	// Create saves a new author to the store.
	Create(ctx context.Context, author *domain.Author) error

	// GetByID retrieves an author by their unique ID, with the book set
	// populated from the books that reference the author.
	// Returns ErrAuthorNotFound if the author does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Author, error)

	// List returns all authors with their book sets populated.
	List(ctx context.Context) ([]*domain.Author, error)

	// Update modifies an existing author. The caller must provide a
	// complete author object.
	// Returns ErrAuthorNotFound if the author does not exist.
	Update(ctx context.Context, author *domain.Author) error

	// Delete removes an author by their ID.
	// Returns ErrAuthorNotFound if the author does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new AuthorStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) AuthorStore
}
