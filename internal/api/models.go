package api

import (
	"time"

	"github.com/ali-mahmoud24/bookly-api/internal/domain"
	"github.com/ali-mahmoud24/bookly-api/internal/service/lending"
	"github.com/google/uuid"
)

// birthDateLayout is the wire format for author birth dates.
const birthDateLayout = "2006-01-02"

// Auth requests/responses

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	FirstName string `json:"first_name" validate:"required,min=2"`
	LastName  string `json:"last_name"  validate:"required,min=2"`
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,min=6,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
// The token is also set as an HTTP-only cookie for browser clients.
type AuthResponse struct {
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Token  string    `json:"token"`
}

// User requests/responses

// CreateUserRequest defines the payload for the admin user-creation endpoint.
type CreateUserRequest struct {
	FirstName string `json:"first_name" validate:"required,min=2"`
	LastName  string `json:"last_name"  validate:"required,min=2"`
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,min=6,max=72"`
	Role      string `json:"role"       validate:"omitempty,oneof=member administrator"`
}

// UpdateUserRequest defines the payload for user update endpoints.
// Absent fields are left unchanged (partial merge).
type UpdateUserRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=2"`
	LastName  *string `json:"last_name"  validate:"omitempty,min=2"`
	Email     *string `json:"email"      validate:"omitempty,email"`
	Password  *string `json:"password"   validate:"omitempty,min=6,max=72"`
	Role      *string `json:"role"       validate:"omitempty,oneof=member administrator"`
}

// UserResponse is the safe view of a user; it never carries credentials.
type UserResponse struct {
	ID            uuid.UUID   `json:"id"`
	FirstName     string      `json:"first_name"`
	LastName      string      `json:"last_name"`
	Email         string      `json:"email"`
	Role          domain.Role `json:"role"`
	BorrowedBooks []uuid.UUID `json:"borrowed_books"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

func newUserResponse(user *domain.User) UserResponse {
	borrowed := user.BorrowedBooks
	if borrowed == nil {
		borrowed = []uuid.UUID{}
	}
	return UserResponse{
		ID:            user.ID,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		Email:         user.Email,
		Role:          user.Role,
		BorrowedBooks: borrowed,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}

func newUserResponses(users []*domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, newUserResponse(user))
	}
	return out
}

// Author requests/responses

// CreateAuthorRequest defines the payload for the author creation endpoint.
type CreateAuthorRequest struct {
	Name        string `json:"name"        validate:"required,min=1"`
	Bio         string `json:"bio"         validate:"omitempty,max=1000"`
	BirthDate   string `json:"birth_date"  validate:"omitempty,datetime=2006-01-02"`
	Nationality string `json:"nationality" validate:"omitempty,max=100"`
}

// UpdateAuthorRequest defines the payload for the author update endpoint.
// Absent fields are left unchanged.
type UpdateAuthorRequest struct {
	Name        *string `json:"name"        validate:"omitempty,min=1"`
	Bio         *string `json:"bio"         validate:"omitempty,max=1000"`
	BirthDate   *string `json:"birth_date"  validate:"omitempty,datetime=2006-01-02"`
	Nationality *string `json:"nationality" validate:"omitempty,max=100"`
}

// AuthorResponse is the wire view of an author with the book set resolved.
type AuthorResponse struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Bio         string      `json:"bio,omitempty"`
	BirthDate   string      `json:"birth_date,omitempty"`
	Nationality string      `json:"nationality,omitempty"`
	Books       []uuid.UUID `json:"books"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func newAuthorResponse(author *domain.Author) AuthorResponse {
	books := author.Books
	if books == nil {
		books = []uuid.UUID{}
	}
	resp := AuthorResponse{
		ID:          author.ID,
		Name:        author.Name,
		Bio:         author.Bio,
		Nationality: author.Nationality,
		Books:       books,
		CreatedAt:   author.CreatedAt,
		UpdatedAt:   author.UpdatedAt,
	}
	if author.BirthDate != nil {
		resp.BirthDate = author.BirthDate.Format(birthDateLayout)
	}
	return resp
}

// Book requests/responses

// CreateBookRequest defines the payload for the book creation endpoint.
type CreateBookRequest struct {
	Title       string `json:"title"        validate:"required,min=1"`
	AuthorID    string `json:"author_id"    validate:"required,uuid"`
	Description string `json:"description"  validate:"omitempty,max=1000"`
	Category    string `json:"category"     validate:"omitempty,max=100"`
	TotalCopies *int   `json:"total_copies" validate:"omitempty,min=0"`
}

// UpdateBookRequest defines the payload for the book update endpoint.
// Absent fields are left unchanged. Changing total_copies recomputes the
// available count from the outstanding borrows.
type UpdateBookRequest struct {
	Title       *string `json:"title"        validate:"omitempty,min=1"`
	AuthorID    *string `json:"author_id"    validate:"omitempty,uuid"`
	Description *string `json:"description"  validate:"omitempty,max=1000"`
	Category    *string `json:"category"     validate:"omitempty,max=100"`
	TotalCopies *int    `json:"total_copies" validate:"omitempty,min=0"`
}

// BookResponse is the wire view of a book. Author is resolved on reads when
// available; AuthorID is always present.
type BookResponse struct {
	ID              uuid.UUID       `json:"id"`
	Title           string          `json:"title"`
	AuthorID        uuid.UUID       `json:"author_id"`
	Author          *AuthorResponse `json:"author,omitempty"`
	Description     string          `json:"description,omitempty"`
	Category        string          `json:"category,omitempty"`
	TotalCopies     int             `json:"total_copies"`
	CopiesAvailable int             `json:"copies_available"`
	BorrowedBy      []uuid.UUID     `json:"borrowed_by"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func newBookResponse(book *domain.Book, author *domain.Author) BookResponse {
	borrowers := book.BorrowedBy
	if borrowers == nil {
		borrowers = []uuid.UUID{}
	}
	resp := BookResponse{
		ID:              book.ID,
		Title:           book.Title,
		AuthorID:        book.AuthorID,
		Description:     book.Description,
		Category:        book.Category,
		TotalCopies:     book.TotalCopies,
		CopiesAvailable: book.CopiesAvailable,
		BorrowedBy:      borrowers,
		CreatedAt:       book.CreatedAt,
		UpdatedAt:       book.UpdatedAt,
	}
	if author != nil {
		authorResp := newAuthorResponse(author)
		resp.Author = &authorResp
	}
	return resp
}

func newBorrowedBookResponses(borrowed []lending.BorrowedBook) []BookResponse {
	out := make([]BookResponse, 0, len(borrowed))
	for _, entry := range borrowed {
		out = append(out, newBookResponse(entry.Book, entry.Author))
	}
	return out
}
