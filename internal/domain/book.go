package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common book validation errors.
var (
	ErrEmptyBookID        = errors.New("book ID cannot be empty")
	ErrEmptyBookTitle     = errors.New("book title cannot be empty")
	ErrMissingBookAuthor  = errors.New("book must reference an author")
	ErrNegativeCopies     = errors.New("copies available cannot be negative")
	ErrCopiesExceedsTotal = errors.New("copies available cannot exceed total copies")
)

// Book represents a title in the catalog.
//
// Invariant: CopiesAvailable + len(BorrowedBy) == TotalCopies for every
// state the lending service can reach. CopiesAvailable never goes negative
// and never exceeds TotalCopies. A user appears in BorrowedBy at most once.
type Book struct {
	ID              uuid.UUID   `json:"id"`
	Title           string      `json:"title"`
	AuthorID        uuid.UUID   `json:"author_id"`
	Description     string      `json:"description,omitempty"`
	Category        string      `json:"category,omitempty"`
	TotalCopies     int         `json:"total_copies"`
	CopiesAvailable int         `json:"copies_available"`
	BorrowedBy      []uuid.UUID `json:"borrowed_by"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// NewBook creates a new Book with all copies available.
// Returns an error if validation fails.
func NewBook(title string, authorID uuid.UUID, description, category string, copies int) (*Book, error) {
	now := time.Now().UTC()
	book := &Book{
		ID:              uuid.New(),
		Title:           strings.TrimSpace(title),
		AuthorID:        authorID,
		Description:     description,
		Category:        category,
		TotalCopies:     copies,
		CopiesAvailable: copies,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := book.Validate(); err != nil {
		return nil, err
	}

	return book, nil
}

// IsBorrowedBy reports whether the given user currently holds a copy.
func (b *Book) IsBorrowedBy(userID uuid.UUID) bool {
	for _, id := range b.BorrowedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// Validate checks if the Book has valid data.
func (b *Book) Validate() error {
	if b.ID == uuid.Nil {
		return ErrEmptyBookID
	}

	if b.Title == "" {
		return ErrEmptyBookTitle
	}

	if b.AuthorID == uuid.Nil {
		return ErrMissingBookAuthor
	}

	if b.CopiesAvailable < 0 {
		return ErrNegativeCopies
	}

	if b.CopiesAvailable > b.TotalCopies {
		return ErrCopiesExceedsTotal
	}

	return nil
}
