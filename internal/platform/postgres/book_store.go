package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ali-mahmoud24/bookly-api/internal/domain"
	"github.com/ali-mahmoud24/bookly-api/internal/store"
	"github.com/google/uuid"
)

// BookStore implements store.BookStore using a PostgreSQL database.
//
// The lending primitives (GetForUpdate, AddBorrower, RemoveBorrower) are
// designed to be composed inside a single transaction: GetForUpdate takes a
// row lock on the book so concurrent lending calls on the same book
// serialize, and the count updates are guarded so the availability invariant
// holds even if a caller skips the lock.
type BookStore struct {
	db store.DBTX
}

// NewBookStore creates a new PostgreSQL implementation of the BookStore
// interface.
func NewBookStore(db store.DBTX) *BookStore {
	return &BookStore{db: db}
}

// Ensure BookStore implements store.BookStore.
var _ store.BookStore = (*BookStore)(nil)

// WithTx implements store.BookStore.WithTx.
func (s *BookStore) WithTx(tx *sql.Tx) store.BookStore {
	return &BookStore{db: tx}
}

const bookColumns = `id, title, author_id, description, category, total_copies, copies_available, created_at, updated_at`

// Create implements store.BookStore.Create.
func (s *BookStore) Create(ctx context.Context, book *domain.Book) error {
	if err := book.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	const query = `
		INSERT INTO books (id, title, author_id, description, category, total_copies, copies_available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := s.db.ExecContext(ctx, query,
		book.ID,
		book.Title,
		book.AuthorID,
		nullString(book.Description),
		nullString(book.Category),
		book.TotalCopies,
		book.CopiesAvailable,
		book.CreatedAt,
		book.UpdatedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return store.ErrAuthorNotFound
		}
		return MapError(err)
	}

	return nil
}

// GetByID implements store.BookStore.GetByID.
func (s *BookStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1`
	return s.getBook(ctx, query, id)
}

// GetForUpdate implements store.BookStore.GetForUpdate.
// The FOR UPDATE clause holds the book's row lock until the surrounding
// transaction ends, serializing concurrent lending calls on the same book.
func (s *BookStore) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE id = $1 FOR UPDATE`
	return s.getBook(ctx, query, id)
}

func (s *BookStore) getBook(ctx context.Context, query string, id uuid.UUID) (*domain.Book, error) {
	book, err := scanBook(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, store.ErrBookNotFound
		}
		return nil, MapError(err)
	}

	if err := s.loadBorrowers(ctx, book); err != nil {
		return nil, err
	}

	return book, nil
}

// List implements store.BookStore.List.
func (s *BookStore) List(ctx context.Context, filter store.BookFilter) ([]*domain.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books`
	var (
		args       []any
		conditions []string
	)
	if filter.AuthorID != uuid.Nil {
		args = append(args, filter.AuthorID)
		conditions = append(conditions, fmt.Sprintf("author_id = $%d", len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY created_at"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var books []*domain.Book
	byID := make(map[uuid.UUID]*domain.Book)
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, MapError(err)
		}
		books = append(books, book)
		byID[book.ID] = book
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	const borrowQuery = `SELECT book_id, user_id FROM borrows ORDER BY borrowed_at`
	borrowRows, err := s.db.QueryContext(ctx, borrowQuery)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = borrowRows.Close() }()

	for borrowRows.Next() {
		var bookID, userID uuid.UUID
		if err := borrowRows.Scan(&bookID, &userID); err != nil {
			return nil, MapError(err)
		}
		if book, ok := byID[bookID]; ok {
			book.BorrowedBy = append(book.BorrowedBy, userID)
		}
	}
	if err := borrowRows.Err(); err != nil {
		return nil, MapError(err)
	}

	return books, nil
}

// ListBorrowedByUser implements store.BookStore.ListBorrowedByUser.
func (s *BookStore) ListBorrowedByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Book, error) {
	const query = `
		SELECT b.id, b.title, b.author_id, b.description, b.category, b.total_copies, b.copies_available, b.created_at, b.updated_at
		FROM books b
		JOIN borrows br ON br.book_id = b.id
		WHERE br.user_id = $1
		ORDER BY br.borrowed_at`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var books []*domain.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, MapError(err)
		}
		if err := s.loadBorrowers(ctx, book); err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return books, nil
}

// AddBorrower implements store.BookStore.AddBorrower.
// The insert and the guarded decrement run as two statements; callers wrap
// them in a transaction with the book row locked. The copies_available > 0
// guard keeps the count non-negative even without the lock.
func (s *BookStore) AddBorrower(ctx context.Context, bookID, userID uuid.UUID) error {
	const insertQuery = `
		INSERT INTO borrows (user_id, book_id, borrowed_at)
		VALUES ($1, $2, $3)`

	if _, err := s.db.ExecContext(ctx, insertQuery, userID, bookID, time.Now().UTC()); err != nil {
		if IsUniqueViolation(err) {
			return fmt.Errorf("%w: borrow", store.ErrDuplicate)
		}
		return MapError(err)
	}

	const decrementQuery = `
		UPDATE books
		SET copies_available = copies_available - 1, updated_at = $2
		WHERE id = $1 AND copies_available > 0`

	result, err := s.db.ExecContext(ctx, decrementQuery, bookID, time.Now().UTC())
	if err != nil {
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rowsAffected == 0 {
		// No copy left; the surrounding transaction rolls the insert back.
		return fmt.Errorf("%w: no copies available", store.ErrInvalidEntity)
	}

	return nil
}

// RemoveBorrower implements store.BookStore.RemoveBorrower.
func (s *BookStore) RemoveBorrower(ctx context.Context, bookID, userID uuid.UUID) error {
	const deleteQuery = `DELETE FROM borrows WHERE user_id = $1 AND book_id = $2`

	result, err := s.db.ExecContext(ctx, deleteQuery, userID, bookID)
	if err != nil {
		return MapError(err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: borrow", store.ErrNotFound)
	}

	// The cap keeps a stray return from inflating availability past the
	// number of copies the library actually owns.
	const incrementQuery = `
		UPDATE books
		SET copies_available = copies_available + 1, updated_at = $2
		WHERE id = $1 AND copies_available < total_copies`

	if _, err := s.db.ExecContext(ctx, incrementQuery, bookID, time.Now().UTC()); err != nil {
		return MapError(err)
	}

	return nil
}

// Update implements store.BookStore.Update.
func (s *BookStore) Update(ctx context.Context, book *domain.Book) error {
	if err := book.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	const query = `
		UPDATE books
		SET title = $2, author_id = $3, description = $4, category = $5, total_copies = $6, copies_available = $7, updated_at = $8
		WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query,
		book.ID,
		book.Title,
		book.AuthorID,
		nullString(book.Description),
		nullString(book.Category),
		book.TotalCopies,
		book.CopiesAvailable,
		book.UpdatedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return store.ErrAuthorNotFound
		}
		return MapError(err)
	}

	return CheckRowsAffected(result, "book")
}

// Delete implements store.BookStore.Delete.
// Borrow records referencing the book are removed by the schema's
// ON DELETE CASCADE, which detaches the book from every borrower's set.
func (s *BookStore) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM books WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return MapError(err)
	}

	return CheckRowsAffected(result, "book")
}

// loadBorrowers fills the book's borrower set from the borrows table.
func (s *BookStore) loadBorrowers(ctx context.Context, book *domain.Book) error {
	const query = `SELECT user_id FROM borrows WHERE book_id = $1 ORDER BY borrowed_at`

	rows, err := s.db.QueryContext(ctx, query, book.ID)
	if err != nil {
		return MapError(err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var userID uuid.UUID
		if err := rows.Scan(&userID); err != nil {
			return MapError(err)
		}
		book.BorrowedBy = append(book.BorrowedBy, userID)
	}
	return MapError(rows.Err())
}

func scanBook(row rowScanner) (*domain.Book, error) {
	var (
		book        domain.Book
		description sql.NullString
		category    sql.NullString
	)
	err := row.Scan(
		&book.ID,
		&book.Title,
		&book.AuthorID,
		&description,
		&category,
		&book.TotalCopies,
		&book.CopiesAvailable,
		&book.CreatedAt,
		&book.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	book.Description = description.String
	book.Category = category.String
	return &book, nil
}
