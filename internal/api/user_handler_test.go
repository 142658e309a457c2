package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ali-mahmoud24/bookly-api/internal/domain"
	"github.com/ali-mahmoud24/bookly-api/internal/mocks"
	"github.com/ali-mahmoud24/bookly-api/internal/service/lending"
)

func newUserTestHandler(userStore *mocks.MockUserStore, lendingService *mocks.MockLendingService) *UserHandler {
	if lendingService == nil {
		lendingService = &mocks.MockLendingService{}
	}
	return NewUserHandler(userStore, stubHasher{}, lendingService)
}

func testBookForAPI(t *testing.T, copies int) *domain.Book {
	t.Helper()
	book, err := domain.NewBook("1984", uuid.New(), "A dystopian story.", "Dystopian", copies)
	require.NoError(t, err)
	return book
}

func TestGetMe(t *testing.T) {
	t.Parallel()

	t.Run("returns the authenticated user", func(t *testing.T) {
		t.Parallel()
		user := newTestUser(t, domain.RoleMember)
		handler := newUserTestHandler(mocks.NewMockUserStore(user), nil)

		req := withUser(httptest.NewRequest(http.MethodGet, "/api/users/me", nil), user)
		rec := httptest.NewRecorder()
		handler.GetMe(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp UserResponse
		env := decodeEnvelope(t, rec)
		require.NoError(t, json.Unmarshal(env.Data, &resp))
		assert.Equal(t, user.ID, resp.ID)
		assert.Equal(t, user.Email, resp.Email)
	})

	t.Run("no user in context", func(t *testing.T) {
		t.Parallel()
		handler := newUserTestHandler(mocks.NewMockUserStore(), nil)

		rec := httptest.NewRecorder()
		handler.GetMe(rec, httptest.NewRequest(http.MethodGet, "/api/users/me", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestUpdateMe(t *testing.T) {
	t.Parallel()

	t.Run("updates name fields", func(t *testing.T) {
		t.Parallel()
		user := newTestUser(t, domain.RoleMember)
		handler := newUserTestHandler(mocks.NewMockUserStore(user), nil)

		req := withUser(jsonRequest(t, http.MethodPut, "/api/users/me", map[string]string{
			"first_name": "Johnny",
		}), user)
		rec := httptest.NewRecorder()
		handler.UpdateMe(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp UserResponse
		env := decodeEnvelope(t, rec)
		require.NoError(t, json.Unmarshal(env.Data, &resp))
		assert.Equal(t, "Johnny", resp.FirstName)
		assert.Equal(t, "Doe", resp.LastName)
	})

	t.Run("rejects role change on own profile", func(t *testing.T) {
		t.Parallel()
		user := newTestUser(t, domain.RoleMember)
		handler := newUserTestHandler(mocks.NewMockUserStore(user), nil)

		req := withUser(jsonRequest(t, http.MethodPut, "/api/users/me", map[string]string{
			"role": "administrator",
		}), user)
		rec := httptest.NewRecorder()
		handler.UpdateMe(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Role cannot be changed on your own profile", decodeEnvelope(t, rec).Message)
	})
}

func TestBorrowEndpoint(t *testing.T) {
	t.Parallel()

	user := newTestUser(t, domain.RoleMember)

	t.Run("borrows and reports remaining copies", func(t *testing.T) {
		t.Parallel()
		book := testBookForAPI(t, 3)

		lendingService := &mocks.MockLendingService{
			BorrowFn: func(ctx context.Context, userID, bookID uuid.UUID) (*domain.Book, error) {
				assert.Equal(t, user.ID, userID)
				assert.Equal(t, book.ID, bookID)
				borrowed := *book
				borrowed.CopiesAvailable--
				borrowed.BorrowedBy = []uuid.UUID{userID}
				return &borrowed, nil
			},
		}
		handler := newUserTestHandler(mocks.NewMockUserStore(user), lendingService)

		req := withUser(httptest.NewRequest(http.MethodPost, "/api/users/me/borrow/"+book.ID.String(), nil), user)
		req = withPathParam(req, "bookId", book.ID.String())
		rec := httptest.NewRecorder()
		handler.Borrow(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		env := decodeEnvelope(t, rec)
		assert.True(t, env.Success)
		assert.Equal(t, `Borrowed "1984"`, env.Message)

		var resp BookResponse
		require.NoError(t, json.Unmarshal(env.Data, &resp))
		assert.Equal(t, 2, resp.CopiesAvailable)
		assert.Contains(t, resp.BorrowedBy, user.ID)
	})

	t.Run("no copies available maps to conflict", func(t *testing.T) {
		t.Parallel()
		lendingService := &mocks.MockLendingService{
			BorrowFn: func(ctx context.Context, userID, bookID uuid.UUID) (*domain.Book, error) {
				return nil, lending.ErrNoCopiesAvailable
			},
		}
		handler := newUserTestHandler(mocks.NewMockUserStore(user), lendingService)

		bookID := uuid.New()
		req := withUser(httptest.NewRequest(http.MethodPost, "/api/users/me/borrow/"+bookID.String(), nil), user)
		req = withPathParam(req, "bookId", bookID.String())
		rec := httptest.NewRecorder()
		handler.Borrow(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.False(t, decodeEnvelope(t, rec).Success)
	})

	t.Run("invalid book id", func(t *testing.T) {
		t.Parallel()
		handler := newUserTestHandler(mocks.NewMockUserStore(user), nil)

		req := withUser(httptest.NewRequest(http.MethodPost, "/api/users/me/borrow/not-a-uuid", nil), user)
		req = withPathParam(req, "bookId", "not-a-uuid")
		rec := httptest.NewRecorder()
		handler.Borrow(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestReturnEndpoint(t *testing.T) {
	t.Parallel()

	user := newTestUser(t, domain.RoleMember)

	t.Run("returns a borrowed book", func(t *testing.T) {
		t.Parallel()
		book := testBookForAPI(t, 3)

		lendingService := &mocks.MockLendingService{
			ReturnFn: func(ctx context.Context, userID, bookID uuid.UUID) (*domain.Book, error) {
				return book, nil
			},
		}
		handler := newUserTestHandler(mocks.NewMockUserStore(user), lendingService)

		req := withUser(httptest.NewRequest(http.MethodPost, "/api/users/me/return/"+book.ID.String(), nil), user)
		req = withPathParam(req, "bookId", book.ID.String())
		rec := httptest.NewRecorder()
		handler.Return(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, `Returned "1984"`, decodeEnvelope(t, rec).Message)
	})

	t.Run("not borrowed maps to conflict", func(t *testing.T) {
		t.Parallel()
		lendingService := &mocks.MockLendingService{
			ReturnFn: func(ctx context.Context, userID, bookID uuid.UUID) (*domain.Book, error) {
				return nil, lending.ErrNotBorrowed
			},
		}
		handler := newUserTestHandler(mocks.NewMockUserStore(user), lendingService)

		bookID := uuid.New()
		req := withUser(httptest.NewRequest(http.MethodPost, "/api/users/me/return/"+bookID.String(), nil), user)
		req = withPathParam(req, "bookId", bookID.String())
		rec := httptest.NewRecorder()
		handler.Return(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestListMyBooks(t *testing.T) {
	t.Parallel()

	user := newTestUser(t, domain.RoleMember)
	book := testBookForAPI(t, 2)
	author, err := domain.NewAuthor("George Orwell", "", "British", nil)
	require.NoError(t, err)
	book.AuthorID = author.ID

	lendingService := &mocks.MockLendingService{
		ListBorrowedFn: func(ctx context.Context, userID uuid.UUID) ([]lending.BorrowedBook, error) {
			return []lending.BorrowedBook{{Book: book, Author: author}}, nil
		},
	}
	handler := newUserTestHandler(mocks.NewMockUserStore(user), lendingService)

	req := withUser(httptest.NewRequest(http.MethodGet, "/api/users/me/books", nil), user)
	rec := httptest.NewRecorder()
	handler.ListMyBooks(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp []BookResponse
	env := decodeEnvelope(t, rec)
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, book.ID, resp[0].ID)
	require.NotNil(t, resp[0].Author)
	assert.Equal(t, "George Orwell", resp[0].Author.Name)
}

func TestAdminUserCRUD(t *testing.T) {
	t.Parallel()

	t.Run("create user with explicit role", func(t *testing.T) {
		t.Parallel()
		userStore := mocks.NewMockUserStore()
		handler := newUserTestHandler(userStore, nil)

		req := jsonRequest(t, http.MethodPost, "/api/users", map[string]string{
			"first_name": "Jane",
			"last_name":  "Doe",
			"email":      "jane@example.com",
			"password":   "123456",
			"role":       "administrator",
		})
		rec := httptest.NewRecorder()
		handler.CreateUser(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)

		created, ok := userStore.Users["jane@example.com"]
		require.True(t, ok)
		assert.Equal(t, domain.RoleAdministrator, created.Role)
		assert.Equal(t, "hashed:123456", created.HashedPassword)
	})

	t.Run("get unknown user", func(t *testing.T) {
		t.Parallel()
		handler := newUserTestHandler(mocks.NewMockUserStore(), nil)

		id := uuid.New()
		req := withPathParam(httptest.NewRequest(http.MethodGet, "/api/users/"+id.String(), nil), "id", id.String())
		rec := httptest.NewRecorder()
		handler.GetUser(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("delete user", func(t *testing.T) {
		t.Parallel()
		user := newTestUser(t, domain.RoleMember)
		userStore := mocks.NewMockUserStore(user)
		handler := newUserTestHandler(userStore, nil)

		req := withPathParam(
			httptest.NewRequest(http.MethodDelete, "/api/users/"+user.ID.String(), nil),
			"id", user.ID.String())
		rec := httptest.NewRecorder()
		handler.DeleteUser(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, userStore.Users)
	})
}
