package api

import (
	"net/http"

	"github.com/ali-mahmoud24/bookly-api/internal/api/shared"
	"github.com/ali-mahmoud24/bookly-api/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Thin aliases over the shared response helpers so handlers stay terse.

// DecodeJSON decodes the request body into dst.
func DecodeJSON(r *http.Request, dst any) error {
	return shared.DecodeJSON(r, dst)
}

// RespondWithJSON writes a success envelope with the given status and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	shared.RespondWithJSON(w, r, status, data)
}

// Respond writes a success envelope carrying both data and a message.
func Respond(w http.ResponseWriter, r *http.Request, status int, data any, message string) {
	shared.Respond(w, r, status, data, message)
}

// RespondWithMessage writes a success envelope carrying only a message.
func RespondWithMessage(w http.ResponseWriter, r *http.Request, status int, message string) {
	shared.RespondWithMessage(w, r, status, message)
}

// RespondWithError writes a failure envelope with the given status and message.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	shared.RespondWithError(w, r, status, message)
}

func respondWithErrorAndLog(w http.ResponseWriter, r *http.Request, status int, userMessage string, err error) {
	shared.RespondWithErrorAndLog(w, r, status, userMessage, err)
}

// getUserFromContext extracts the authenticated user placed in the request
// context by the authentication middleware.
func getUserFromContext(r *http.Request) (*domain.User, bool) {
	user, ok := r.Context().Value(shared.UserContextKey).(*domain.User)
	return user, ok && user != nil
}

// getPathUUID extracts and parses a UUID from the named URL path parameter.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}

	return id, nil
}
