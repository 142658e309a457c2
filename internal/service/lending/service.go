// Package lending implements the borrow/return workflow, the one component
// of the system with real invariants to protect:
//
//   - copies_available never goes negative and never exceeds a book's total;
//   - a book is in a user's borrowed set exactly when the user is in the
//     book's borrower set;
//   - a user holds at most one copy of any book.
//
// Both lending transitions run inside a single database transaction with the
// book's row locked, so concurrent calls on the same book serialize and a
// failure can never leave a half-applied relationship.
package lending

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/ali-mahmoud24/bookly-api/internal/domain"
	"github.com/ali-mahmoud24/bookly-api/internal/platform/logger"
	"github.com/ali-mahmoud24/bookly-api/internal/store"
	"github.com/google/uuid"
)

// BorrowedBook is a borrowed book resolved to its full record, author
// included.
type BorrowedBook struct {
	Book   *domain.Book
	Author *domain.Author
}

// Service provides the borrow and return state transitions.
type Service interface {
	// Borrow lends one copy of the book to the user. Preconditions are
	// checked in order: user exists, book exists, a copy is available, the
	// user does not already hold the book. On success the returned book
	// reflects the post-borrow state.
	Borrow(ctx context.Context, userID, bookID uuid.UUID) (*domain.Book, error)

	// Return gives the user's copy back. Fails with ErrNotBorrowed if the
	// user does not currently hold the book.
	Return(ctx context.Context, userID, bookID uuid.UUID) (*domain.Book, error)

	// ListBorrowed returns the user's current borrowed set, each book
	// resolved with its author.
	ListBorrowed(ctx context.Context, userID uuid.UUID) ([]BorrowedBook, error)
}

// txRunner matches store.RunInTransaction; injectable so unit tests can run
// the transition logic against in-memory stores.
type txRunner func(ctx context.Context, db *sql.DB, fn store.TxFn) error

type service struct {
	db      *sql.DB
	users   store.UserStore
	books   store.BookStore
	authors store.AuthorStore
	logger  *slog.Logger
	runTx   txRunner
}

// NewService creates a lending Service backed by the given stores.
// Returns an error if any required dependency is nil.
func NewService(
	db *sql.DB,
	users store.UserStore,
	books store.BookStore,
	authors store.AuthorStore,
	log *slog.Logger,
) (Service, error) {
	if users == nil {
		return nil, domain.NewValidationError("users", "cannot be nil", domain.ErrValidation)
	}
	if books == nil {
		return nil, domain.NewValidationError("books", "cannot be nil", domain.ErrValidation)
	}
	if authors == nil {
		return nil, domain.NewValidationError("authors", "cannot be nil", domain.ErrValidation)
	}
	if log == nil {
		log = slog.Default()
	}

	return &service{
		db:      db,
		users:   users,
		books:   books,
		authors: authors,
		logger:  log.With(slog.String("component", "lending_service")),
		runTx:   store.RunInTransaction,
	}, nil
}

// Borrow implements Service.Borrow.
func (s *service) Borrow(ctx context.Context, userID, bookID uuid.UUID) (*domain.Book, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var borrowed *domain.Book
	err := s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txUsers := s.users.WithTx(tx)
		txBooks := s.books.WithTx(tx)

		user, err := txUsers.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		// Locks the book row; concurrent borrows of the same book queue up
		// behind this call and re-check availability with fresh state.
		book, err := txBooks.GetForUpdate(ctx, bookID)
		if err != nil {
			return err
		}

		if book.CopiesAvailable < 1 {
			return ErrNoCopiesAvailable
		}

		if book.IsBorrowedBy(user.ID) {
			return ErrAlreadyBorrowed
		}

		if err := txBooks.AddBorrower(ctx, book.ID, user.ID); err != nil {
			return fmt.Errorf("failed to record borrow: %w", err)
		}

		book.CopiesAvailable--
		book.BorrowedBy = append(book.BorrowedBy, user.ID)
		borrowed = book
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("book borrowed",
		slog.String("user_id", userID.String()),
		slog.String("book_id", bookID.String()),
		slog.Int("copies_available", borrowed.CopiesAvailable))

	return borrowed, nil
}

// Return implements Service.Return.
func (s *service) Return(ctx context.Context, userID, bookID uuid.UUID) (*domain.Book, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var returned *domain.Book
	err := s.runTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txUsers := s.users.WithTx(tx)
		txBooks := s.books.WithTx(tx)

		user, err := txUsers.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		book, err := txBooks.GetForUpdate(ctx, bookID)
		if err != nil {
			return err
		}

		if !book.IsBorrowedBy(user.ID) {
			return ErrNotBorrowed
		}

		if err := txBooks.RemoveBorrower(ctx, book.ID, user.ID); err != nil {
			return fmt.Errorf("failed to record return: %w", err)
		}

		if book.CopiesAvailable < book.TotalCopies {
			book.CopiesAvailable++
		}
		book.BorrowedBy = removeID(book.BorrowedBy, user.ID)
		returned = book
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("book returned",
		slog.String("user_id", userID.String()),
		slog.String("book_id", bookID.String()),
		slog.Int("copies_available", returned.CopiesAvailable))

	return returned, nil
}

// ListBorrowed implements Service.ListBorrowed.
func (s *service) ListBorrowed(ctx context.Context, userID uuid.UUID) ([]BorrowedBook, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	books, err := s.books.ListBorrowedByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list borrowed books: %w", err)
	}

	authorCache := make(map[uuid.UUID]*domain.Author)
	borrowed := make([]BorrowedBook, 0, len(books))
	for _, book := range books {
		author, ok := authorCache[book.AuthorID]
		if !ok {
			author, err = s.authors.GetByID(ctx, book.AuthorID)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve author for book %s: %w", book.ID, err)
			}
			authorCache[book.AuthorID] = author
		}
		borrowed = append(borrowed, BorrowedBook{Book: book, Author: author})
	}

	return borrowed, nil
}

func removeID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	out := ids[:0]
	for _, candidate := range ids {
		if candidate != id {
			out = append(out, candidate)
		}
	}
	return out
}
