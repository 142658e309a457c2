package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common author validation errors.
var (
	ErrEmptyAuthorID   = errors.New("author ID cannot be empty")
	ErrEmptyAuthorName = errors.New("author name cannot be empty")
)

// Author represents a writer in the catalog.
//
// Books is the set of book IDs attributed to the author. It is derived from
// each book's AuthorID and is only populated on reads; it is never written
// independently.
type Author struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Bio         string      `json:"bio,omitempty"`
	BirthDate   *time.Time  `json:"birth_date,omitempty"`
	Nationality string      `json:"nationality,omitempty"`
	Books       []uuid.UUID `json:"books"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// NewAuthor creates a new Author with the given display name.
// Returns an error if validation fails.
func NewAuthor(name, bio, nationality string, birthDate *time.Time) (*Author, error) {
	now := time.Now().UTC()
	author := &Author{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(name),
		Bio:         bio,
		BirthDate:   birthDate,
		Nationality: nationality,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := author.Validate(); err != nil {
		return nil, err
	}

	return author, nil
}

// Validate checks if the Author has valid data.
func (a *Author) Validate() error {
	if a.ID == uuid.Nil {
		return ErrEmptyAuthorID
	}

	if a.Name == "" {
		return ErrEmptyAuthorName
	}

	return nil
}
