package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ali-mahmoud24/bookly-api/internal/domain"
	"github.com/ali-mahmoud24/bookly-api/internal/service/auth"
	"github.com/ali-mahmoud24/bookly-api/internal/service/lending"
	"github.com/ali-mahmoud24/bookly-api/internal/store"
)

// UserHandler handles profile, user-administration, and lending requests.
type UserHandler struct {
	userStore      store.UserStore
	passwordHasher auth.PasswordHasher
	lendingService lending.Service
	validator      *validator.Validate
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(
	userStore store.UserStore,
	passwordHasher auth.PasswordHasher,
	lendingService lending.Service,
) *UserHandler {
	return &UserHandler{
		userStore:      userStore,
		passwordHasher: passwordHasher,
		lendingService: lendingService,
		validator:      validator.New(),
	}
}

// GetMe handles GET /api/users/me.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user, ok := getUserFromContext(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Not authorized")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, newUserResponse(user))
}

// UpdateMe handles PUT /api/users/me with a partial-field merge.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user, ok := getUserFromContext(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Not authorized")
		return
	}

	var req UpdateUserRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	if req.Role != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Role cannot be changed on your own profile")
		return
	}

	if err := h.applyUserUpdate(r, user, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, newUserResponse(user))
}

// Borrow handles POST /api/users/me/borrow/{bookId}.
func (h *UserHandler) Borrow(w http.ResponseWriter, r *http.Request) {
	user, ok := getUserFromContext(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Not authorized")
		return
	}

	bookID, err := getPathUUID(r, "bookId")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	book, err := h.lendingService.Borrow(r.Context(), user.ID, bookID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	Respond(w, r, http.StatusOK,
		newBookResponse(book, nil),
		fmt.Sprintf("Borrowed %q", book.Title))
}

// Return handles POST /api/users/me/return/{bookId}.
func (h *UserHandler) Return(w http.ResponseWriter, r *http.Request) {
	user, ok := getUserFromContext(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Not authorized")
		return
	}

	bookID, err := getPathUUID(r, "bookId")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	book, err := h.lendingService.Return(r.Context(), user.ID, bookID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	Respond(w, r, http.StatusOK,
		newBookResponse(book, nil),
		fmt.Sprintf("Returned %q", book.Title))
}

// ListMyBooks handles GET /api/users/me/books.
func (h *UserHandler) ListMyBooks(w http.ResponseWriter, r *http.Request) {
	user, ok := getUserFromContext(r)
	if !ok {
		RespondWithError(w, r, http.StatusUnauthorized, "Not authorized")
		return
	}

	borrowed, err := h.lendingService.ListBorrowed(r.Context(), user.ID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, newBorrowedBookResponses(borrowed))
}

// CreateUser handles POST /api/users (admin only).
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	user, err := domain.NewUser(req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid user data: "+err.Error())
		return
	}
	if req.Role != "" {
		user.Role = domain.Role(req.Role)
	}

	hashed, err := h.passwordHasher.Hash(user.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		RespondWithError(w, r, http.StatusInternalServerError, "Failed to create user")
		return
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := h.userStore.Create(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			RespondWithError(w, r, http.StatusConflict, "Email already exists")
			return
		}
		respondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to create user", err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, newUserResponse(user))
}

// ListUsers handles GET /api/users (admin only).
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userStore.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, newUserResponses(users))
}

// GetUser handles GET /api/users/{id} (admin only).
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	user, err := h.userStore.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, newUserResponse(user))
}

// UpdateUser handles PUT /api/users/{id} (admin only).
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req UpdateUserRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	user, err := h.userStore.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.applyUserUpdate(r, user, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, newUserResponse(user))
}

// DeleteUser handles DELETE /api/users/{id} (admin only).
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.userStore.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	RespondWithMessage(w, r, http.StatusOK, "User deleted")
}

// applyUserUpdate merges the set fields of req into user, re-hashing the
// password when one is provided, and persists the result.
func (h *UserHandler) applyUserUpdate(r *http.Request, user *domain.User, req *UpdateUserRequest) error {
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Role != nil {
		user.Role = domain.Role(*req.Role)
	}
	if req.Password != nil {
		hashed, err := h.passwordHasher.Hash(*req.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user.HashedPassword = hashed
	}
	user.UpdatedAt = time.Now().UTC()

	return h.userStore.Update(r.Context(), user)
}
