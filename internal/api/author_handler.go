package api

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ali-mahmoud24/bookly-api/internal/domain"
	"github.com/ali-mahmoud24/bookly-api/internal/store"
)

// AuthorHandler handles author catalog requests.
type AuthorHandler struct {
	authorStore store.AuthorStore
	validator   *validator.Validate
}

// NewAuthorHandler creates a new AuthorHandler with the given dependencies.
func NewAuthorHandler(authorStore store.AuthorStore) *AuthorHandler {
	return &AuthorHandler{
		authorStore: authorStore,
		validator:   validator.New(),
	}
}

// CreateAuthor handles POST /api/authors (admin only).
func (h *AuthorHandler) CreateAuthor(w http.ResponseWriter, r *http.Request) {
	var req CreateAuthorRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid birth_date: invalid date format")
		return
	}

	author, err := domain.NewAuthor(req.Name, req.Bio, req.Nationality, birthDate)
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid author data: "+err.Error())
		return
	}

	if err := h.authorStore.Create(r.Context(), author); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, newAuthorResponse(author))
}

// ListAuthors handles GET /api/authors.
func (h *AuthorHandler) ListAuthors(w http.ResponseWriter, r *http.Request) {
	authors, err := h.authorStore.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	out := make([]AuthorResponse, 0, len(authors))
	for _, author := range authors {
		out = append(out, newAuthorResponse(author))
	}

	RespondWithJSON(w, r, http.StatusOK, out)
}

// GetAuthor handles GET /api/authors/{id}.
func (h *AuthorHandler) GetAuthor(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	author, err := h.authorStore.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, newAuthorResponse(author))
}

// UpdateAuthor handles PUT /api/authors/{id} (admin only).
func (h *AuthorHandler) UpdateAuthor(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateAuthorRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	author, err := h.authorStore.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if req.Name != nil {
		author.Name = *req.Name
	}
	if req.Bio != nil {
		author.Bio = *req.Bio
	}
	if req.Nationality != nil {
		author.Nationality = *req.Nationality
	}
	if req.BirthDate != nil {
		birthDate, err := parseBirthDate(*req.BirthDate)
		if err != nil {
			RespondWithError(w, r, http.StatusBadRequest, "Invalid birth_date: invalid date format")
			return
		}
		author.BirthDate = birthDate
	}
	author.UpdatedAt = time.Now().UTC()

	if err := h.authorStore.Update(r.Context(), author); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, newAuthorResponse(author))
}

// DeleteAuthor handles DELETE /api/authors/{id} (admin only).
func (h *AuthorHandler) DeleteAuthor(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.authorStore.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	RespondWithMessage(w, r, http.StatusOK, "Author deleted")
}

func parseBirthDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(birthDateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
