package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ali-mahmoud24/bookly-api/internal/domain"
	"github.com/ali-mahmoud24/bookly-api/internal/mocks"
)

func TestCreateAuthor(t *testing.T) {
	t.Parallel()

	t.Run("creates an author", func(t *testing.T) {
		t.Parallel()
		authors := mocks.NewMockAuthorStore()
		handler := NewAuthorHandler(authors)

		req := jsonRequest(t, http.MethodPost, "/api/authors", map[string]string{
			"name":        "George Orwell",
			"bio":         "English novelist.",
			"birth_date":  "1903-06-25",
			"nationality": "British",
		})
		rec := httptest.NewRecorder()
		handler.CreateAuthor(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)

		var resp AuthorResponse
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &resp))
		assert.Equal(t, "George Orwell", resp.Name)
		assert.Equal(t, "1903-06-25", resp.BirthDate)
		assert.Len(t, authors.Authors, 1)
	})

	t.Run("birth date is optional", func(t *testing.T) {
		t.Parallel()
		handler := NewAuthorHandler(mocks.NewMockAuthorStore())

		req := jsonRequest(t, http.MethodPost, "/api/authors", map[string]string{
			"name": "Anonymous",
		})
		rec := httptest.NewRecorder()
		handler.CreateAuthor(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)

		var resp AuthorResponse
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &resp))
		assert.Empty(t, resp.BirthDate)
	})

	t.Run("missing name", func(t *testing.T) {
		t.Parallel()
		handler := NewAuthorHandler(mocks.NewMockAuthorStore())

		req := jsonRequest(t, http.MethodPost, "/api/authors", map[string]string{
			"bio": "No name given.",
		})
		rec := httptest.NewRecorder()
		handler.CreateAuthor(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid birth date", func(t *testing.T) {
		t.Parallel()
		handler := NewAuthorHandler(mocks.NewMockAuthorStore())

		req := jsonRequest(t, http.MethodPost, "/api/authors", map[string]string{
			"name":       "George Orwell",
			"birth_date": "25/06/1903",
		})
		rec := httptest.NewRecorder()
		handler.CreateAuthor(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetAuthor(t *testing.T) {
	t.Parallel()

	author, err := domain.NewAuthor("George Orwell", "", "British", nil)
	require.NoError(t, err)
	author.Books = []uuid.UUID{uuid.New()}
	handler := NewAuthorHandler(mocks.NewMockAuthorStore(author))

	t.Run("found", func(t *testing.T) {
		t.Parallel()
		req := withPathParam(
			httptest.NewRequest(http.MethodGet, "/api/authors/"+author.ID.String(), nil),
			"id", author.ID.String())
		rec := httptest.NewRecorder()
		handler.GetAuthor(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp AuthorResponse
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &resp))
		assert.Equal(t, author.ID, resp.ID)
		assert.Len(t, resp.Books, 1)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		id := uuid.New()
		req := withPathParam(
			httptest.NewRequest(http.MethodGet, "/api/authors/"+id.String(), nil),
			"id", id.String())
		rec := httptest.NewRecorder()
		handler.GetAuthor(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Author not found", decodeEnvelope(t, rec).Message)
	})

	t.Run("invalid id", func(t *testing.T) {
		t.Parallel()
		req := withPathParam(
			httptest.NewRequest(http.MethodGet, "/api/authors/nope", nil),
			"id", "nope")
		rec := httptest.NewRecorder()
		handler.GetAuthor(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUpdateAuthor(t *testing.T) {
	t.Parallel()

	author, err := domain.NewAuthor("George Orwell", "", "British", nil)
	require.NoError(t, err)
	handler := NewAuthorHandler(mocks.NewMockAuthorStore(author))

	req := withPathParam(jsonRequest(t, http.MethodPut, "/api/authors/"+author.ID.String(), map[string]string{
		"bio": "English novelist and essayist.",
	}), "id", author.ID.String())
	rec := httptest.NewRecorder()
	handler.UpdateAuthor(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp AuthorResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &resp))
	// Untouched fields survive the partial merge.
	assert.Equal(t, "George Orwell", resp.Name)
	assert.Equal(t, "English novelist and essayist.", resp.Bio)
}

func TestDeleteAuthor(t *testing.T) {
	t.Parallel()

	author, err := domain.NewAuthor("George Orwell", "", "British", nil)
	require.NoError(t, err)
	authors := mocks.NewMockAuthorStore(author)
	handler := NewAuthorHandler(authors)

	req := withPathParam(
		httptest.NewRequest(http.MethodDelete, "/api/authors/"+author.ID.String(), nil),
		"id", author.ID.String())
	rec := httptest.NewRecorder()
	handler.DeleteAuthor(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Author deleted", decodeEnvelope(t, rec).Message)
	assert.Empty(t, authors.Authors)
}
