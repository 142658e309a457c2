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

// AuthorStore implements store.AuthorStore using a PostgreSQL database.
type AuthorStore struct {
	db store.DBTX
}

// NewAuthorStore creates a new PostgreSQL implementation of the AuthorStore
// interface.
func NewAuthorStore(db store.DBTX) *AuthorStore {
	return &AuthorStore{db: db}
}

// Ensure AuthorStore implements store.AuthorStore.
var _ store.AuthorStore = (*AuthorStore)(nil)

// WithTx implements store.AuthorStore.WithTx.
func (s *AuthorStore) WithTx(tx *sql.Tx) store.AuthorStore {
	return &AuthorStore{db: tx}
}

// Create implements store.AuthorStore.Create.
func (s *AuthorStore) Create(ctx context.Context, author *domain.Author) error {
	if err := author.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	const query = `
		INSERT INTO authors (id, name, bio, birth_date, nationality, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.db.ExecContext(ctx, query,
		author.ID,
		author.Name,
		nullString(author.Bio),
		nullTime(author.BirthDate),
		nullString(author.Nationality),
		author.CreatedAt,
		author.UpdatedAt,
	)
	return MapError(err)
}

// GetByID implements store.AuthorStore.GetByID.
func (s *AuthorStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Author, error) {
	const query = `
		SELECT id, name, bio, birth_date, nationality, created_at, updated_at
		FROM authors
		WHERE id = $1`

	author, err := scanAuthor(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, store.ErrAuthorNotFound
		}
		return nil, MapError(err)
	}

	if err := s.loadBooks(ctx, author); err != nil {
		return nil, err
	}

	return author, nil
}

// List implements store.AuthorStore.List.
func (s *AuthorStore) List(ctx context.Context) ([]*domain.Author, error) {
	const query = `
		SELECT id, name, bio, birth_date, nationality, created_at, updated_at
		FROM authors
		ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var authors []*domain.Author
	byID := make(map[uuid.UUID]*domain.Author)
	for rows.Next() {
		author, err := scanAuthor(rows)
		if err != nil {
			return nil, MapError(err)
		}
		authors = append(authors, author)
		byID[author.ID] = author
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	const bookQuery = `SELECT id, author_id FROM books ORDER BY created_at`
	bookRows, err := s.db.QueryContext(ctx, bookQuery)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = bookRows.Close() }()

	for bookRows.Next() {
		var bookID, authorID uuid.UUID
		if err := bookRows.Scan(&bookID, &authorID); err != nil {
			return nil, MapError(err)
		}
		if author, ok := byID[authorID]; ok {
			author.Books = append(author.Books, bookID)
		}
	}
	if err := bookRows.Err(); err != nil {
		return nil, MapError(err)
	}

	return authors, nil
}

// Update implements store.AuthorStore.Update.
func (s *AuthorStore) Update(ctx context.Context, author *domain.Author) error {
	if err := author.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	const query = `
		UPDATE authors
		SET name = $2, bio = $3, birth_date = $4, nationality = $5, updated_at = $6
		WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query,
		author.ID,
		author.Name,
		nullString(author.Bio),
		nullTime(author.BirthDate),
		nullString(author.Nationality),
		author.UpdatedAt,
	)
	if err != nil {
		return MapError(err)
	}

	return CheckRowsAffected(result, "author")
}

// Delete implements store.AuthorStore.Delete.
func (s *AuthorStore) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM authors WHERE id = $1`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return MapError(err)
	}

	return CheckRowsAffected(result, "author")
}

// loadBooks fills the author's book set from the books that reference them.
func (s *AuthorStore) loadBooks(ctx context.Context, author *domain.Author) error {
	const query = `SELECT id FROM books WHERE author_id = $1 ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, author.ID)
	if err != nil {
		return MapError(err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var bookID uuid.UUID
		if err := rows.Scan(&bookID); err != nil {
			return MapError(err)
		}
		author.Books = append(author.Books, bookID)
	}
	return MapError(rows.Err())
}

func scanAuthor(row rowScanner) (*domain.Author, error) {
	var (
		author      domain.Author
		bio         sql.NullString
		birthDate   sql.NullTime
		nationality sql.NullString
	)
	err := row.Scan(
		&author.ID,
		&author.Name,
		&bio,
		&birthDate,
		&nationality,
		&author.CreatedAt,
		&author.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	author.Bio = bio.String
	author.Nationality = nationality.String
	if birthDate.Valid {
		t := birthDate.Time
		author.BirthDate = &t
	}
	return &author, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
