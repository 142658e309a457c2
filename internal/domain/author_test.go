package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewAuthor(t *testing.T) {
	birthDate := time.Date(1903, 6, 25, 0, 0, 0, 0, time.UTC)

	author, err := NewAuthor("  George Orwell  ", "English novelist.", "British", &birthDate)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if author.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if author.Name != "George Orwell" {
		t.Errorf("Expected trimmed name %q, got %q", "George Orwell", author.Name)
	}

	if author.BirthDate == nil || !author.BirthDate.Equal(birthDate) {
		t.Errorf("Expected birth date %v, got %v", birthDate, author.BirthDate)
	}

	if _, err := NewAuthor("", "", "", nil); err != ErrEmptyAuthorName {
		t.Errorf("Expected error %v, got %v", ErrEmptyAuthorName, err)
	}
}

func TestNewAuthorOptionalFields(t *testing.T) {
	author, err := NewAuthor("Anonymous", "", "", nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if author.BirthDate != nil {
		t.Errorf("Expected nil birth date, got %v", author.BirthDate)
	}

	if err := author.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}

func TestAuthorValidate(t *testing.T) {
	author := Author{ID: uuid.Nil, Name: "George Orwell"}
	if err := author.Validate(); err != ErrEmptyAuthorID {
		t.Errorf("Expected error %v, got %v", ErrEmptyAuthorID, err)
	}
}
