package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewBook(t *testing.T) {
	authorID := uuid.New()

	book, err := NewBook("  1984  ", authorID, "A dystopian story.", "Dystopian", 3)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if book.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if book.Title != "1984" {
		t.Errorf("Expected trimmed title %q, got %q", "1984", book.Title)
	}

	if book.TotalCopies != 3 || book.CopiesAvailable != 3 {
		t.Errorf("Expected all 3 copies available, got total=%d available=%d",
			book.TotalCopies, book.CopiesAvailable)
	}

	if len(book.BorrowedBy) != 0 {
		t.Errorf("Expected no borrowers on a new book, got %d", len(book.BorrowedBy))
	}

	// Invalid inputs
	if _, err := NewBook("", authorID, "", "", 1); err != ErrEmptyBookTitle {
		t.Errorf("Expected error %v, got %v", ErrEmptyBookTitle, err)
	}
	if _, err := NewBook("1984", uuid.Nil, "", "", 1); err != ErrMissingBookAuthor {
		t.Errorf("Expected error %v, got %v", ErrMissingBookAuthor, err)
	}
	if _, err := NewBook("1984", authorID, "", "", -1); err != ErrNegativeCopies {
		t.Errorf("Expected error %v, got %v", ErrNegativeCopies, err)
	}
}

func TestBookValidateCopyBounds(t *testing.T) {
	book := Book{
		ID:              uuid.New(),
		Title:           "1984",
		AuthorID:        uuid.New(),
		TotalCopies:     2,
		CopiesAvailable: 2,
	}

	if err := book.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	book.CopiesAvailable = -1
	if err := book.Validate(); err != ErrNegativeCopies {
		t.Errorf("Expected error %v, got %v", ErrNegativeCopies, err)
	}

	book.CopiesAvailable = 3
	if err := book.Validate(); err != ErrCopiesExceedsTotal {
		t.Errorf("Expected error %v, got %v", ErrCopiesExceedsTotal, err)
	}
}

func TestBookIsBorrowedBy(t *testing.T) {
	userID := uuid.New()
	book := Book{BorrowedBy: []uuid.UUID{userID}}

	if !book.IsBorrowedBy(userID) {
		t.Error("Expected IsBorrowedBy to report the borrower")
	}
	if book.IsBorrowedBy(uuid.New()) {
		t.Error("Expected IsBorrowedBy to be false for unknown user")
	}
}

func TestNewBookZeroCopies(t *testing.T) {
	// Zero copies is a valid catalog state; the book just cannot be borrowed.
	book, err := NewBook("Rare Title", uuid.New(), "", "", 0)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if book.CopiesAvailable != 0 {
		t.Errorf("Expected 0 available copies, got %d", book.CopiesAvailable)
	}
}
