package api

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/ali-mahmoud24/bookly-api/internal/domain"
	"github.com/ali-mahmoud24/bookly-api/internal/store"
)

// BookHandler handles book catalog requests.
type BookHandler struct {
	bookStore   store.BookStore
	authorStore store.AuthorStore
	validator   *validator.Validate
}

// NewBookHandler creates a new BookHandler with the given dependencies.
func NewBookHandler(bookStore store.BookStore, authorStore store.AuthorStore) *BookHandler {
	return &BookHandler{
		bookStore:   bookStore,
		authorStore: authorStore,
		validator:   validator.New(),
	}
}

// CreateBook handles POST /api/books (admin only).
func (h *BookHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	var req CreateBookRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	authorID, err := uuid.Parse(req.AuthorID)
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid author_id: invalid ID format")
		return
	}

	// The author reference must resolve before the book is created.
	author, err := h.authorStore.GetByID(r.Context(), authorID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	copies := 1
	if req.TotalCopies != nil {
		copies = *req.TotalCopies
	}

	book, err := domain.NewBook(req.Title, authorID, req.Description, req.Category, copies)
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid book data: "+err.Error())
		return
	}

	if err := h.bookStore.Create(r.Context(), book); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, newBookResponse(book, author))
}

// ListBooks handles GET /api/books with optional author and category filters.
func (h *BookHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	var filter store.BookFilter

	if authorParam := r.URL.Query().Get("author"); authorParam != "" {
		authorID, err := uuid.Parse(authorParam)
		if err != nil {
			RespondWithError(w, r, http.StatusBadRequest, "Invalid author: invalid ID format")
			return
		}
		filter.AuthorID = authorID
	}
	filter.Category = r.URL.Query().Get("category")

	books, err := h.bookStore.List(r.Context(), filter)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	authorCache := make(map[uuid.UUID]*domain.Author)
	out := make([]BookResponse, 0, len(books))
	for _, book := range books {
		author, err := h.resolveAuthor(r, book.AuthorID, authorCache)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		out = append(out, newBookResponse(book, author))
	}

	RespondWithJSON(w, r, http.StatusOK, out)
}

// GetBook handles GET /api/books/{id}.
func (h *BookHandler) GetBook(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	book, err := h.bookStore.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	author, err := h.authorStore.GetByID(r.Context(), book.AuthorID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, newBookResponse(book, author))
}

// UpdateBook handles PUT /api/books/{id} (admin only).
// Changing total_copies recomputes copies_available from the outstanding
// borrows; the total can never drop below the number of copies on loan.
func (h *BookHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateBookRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	book, err := h.bookStore.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.AuthorID != nil {
		authorID, err := uuid.Parse(*req.AuthorID)
		if err != nil {
			RespondWithError(w, r, http.StatusBadRequest, "Invalid author_id: invalid ID format")
			return
		}
		if _, err := h.authorStore.GetByID(r.Context(), authorID); err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		book.AuthorID = authorID
	}
	if req.Description != nil {
		book.Description = *req.Description
	}
	if req.Category != nil {
		book.Category = *req.Category
	}
	if req.TotalCopies != nil {
		outstanding := len(book.BorrowedBy)
		if *req.TotalCopies < outstanding {
			RespondWithError(w, r, http.StatusBadRequest,
				"Invalid total_copies: cannot be fewer than copies currently on loan")
			return
		}
		book.TotalCopies = *req.TotalCopies
		book.CopiesAvailable = *req.TotalCopies - outstanding
	}
	book.UpdatedAt = time.Now().UTC()

	if err := h.bookStore.Update(r.Context(), book); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	author, err := h.authorStore.GetByID(r.Context(), book.AuthorID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, newBookResponse(book, author))
}

// DeleteBook handles DELETE /api/books/{id} (admin only).
func (h *BookHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.bookStore.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	RespondWithMessage(w, r, http.StatusOK, "Book deleted")
}

func (h *BookHandler) resolveAuthor(
	r *http.Request,
	authorID uuid.UUID,
	cache map[uuid.UUID]*domain.Author,
) (*domain.Author, error) {
	if author, ok := cache[authorID]; ok {
		return author, nil
	}
	author, err := h.authorStore.GetByID(r.Context(), authorID)
	if err != nil {
		return nil, err
	}
	cache[authorID] = author
	return author, nil
}
