package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ali-mahmoud24/bookly-api/internal/api/middleware"
	"github.com/ali-mahmoud24/bookly-api/internal/mocks"
	"github.com/ali-mahmoud24/bookly-api/internal/service/auth"
)

// stubHasher avoids real bcrypt work in handler tests.
type stubHasher struct{ err error }

func (s stubHasher) Hash(password string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return "hashed:" + password, nil
}

func (s stubHasher) Compare(hashedPassword, password string) error {
	if hashedPassword == "hashed:"+password {
		return nil
	}
	return errors.New("password mismatch")
}

func newTestJWT(t *testing.T) auth.JWTService {
	t.Helper()
	svc, err := auth.NewJWTService("test-jwt-secret-that-is-32-chars-long", time.Hour)
	require.NoError(t, err)
	return svc
}

func newAuthTestHandler(t *testing.T, userStore *mocks.MockUserStore) *AuthHandler {
	t.Helper()
	hasher := stubHasher{}
	return NewAuthHandler(userStore, newTestJWT(t), hasher, hasher, time.Hour)
}

func authCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.TokenCookieName {
			return c
		}
	}
	return nil
}

func TestRegister(t *testing.T) {
	t.Parallel()

	validPayload := map[string]string{
		"first_name": "John",
		"last_name":  "Doe",
		"email":      "john@example.com",
		"password":   "123456",
	}

	t.Run("creates user and issues token", func(t *testing.T) {
		t.Parallel()
		userStore := mocks.NewMockUserStore()
		handler := newAuthTestHandler(t, userStore)

		rec := httptest.NewRecorder()
		handler.Register(rec, jsonRequest(t, http.MethodPost, "/api/auth/register", validPayload))

		require.Equal(t, http.StatusCreated, rec.Code)

		env := decodeEnvelope(t, rec)
		assert.True(t, env.Success)

		created, ok := userStore.Users["john@example.com"]
		require.True(t, ok)
		assert.Equal(t, "hashed:123456", created.HashedPassword)
		assert.Empty(t, created.Password)

		cookie := authCookie(rec)
		require.NotNil(t, cookie)
		assert.NotEmpty(t, cookie.Value)
		assert.True(t, cookie.HttpOnly)
	})

	t.Run("duplicate email", func(t *testing.T) {
		t.Parallel()
		existing := newTestUser(t, "member")
		userStore := mocks.NewMockUserStore(existing)
		handler := newAuthTestHandler(t, userStore)

		rec := httptest.NewRecorder()
		handler.Register(rec, jsonRequest(t, http.MethodPost, "/api/auth/register", validPayload))

		require.Equal(t, http.StatusConflict, rec.Code)

		env := decodeEnvelope(t, rec)
		assert.False(t, env.Success)
		assert.Equal(t, "User already exists", env.Message)
	})

	t.Run("validation failures", func(t *testing.T) {
		t.Parallel()
		cases := []struct {
			name    string
			mutate  func(map[string]string)
		}{
			{"missing email", func(p map[string]string) { delete(p, "email") }},
			{"malformed email", func(p map[string]string) { p["email"] = "nope" }},
			{"short password", func(p map[string]string) { p["password"] = "12345" }},
			{"short first name", func(p map[string]string) { p["first_name"] = "J" }},
		}

		for _, tc := range cases {
			tc := tc
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()
				payload := make(map[string]string, len(validPayload))
				for k, v := range validPayload {
					payload[k] = v
				}
				tc.mutate(payload)

				handler := newAuthTestHandler(t, mocks.NewMockUserStore())
				rec := httptest.NewRecorder()
				handler.Register(rec, jsonRequest(t, http.MethodPost, "/api/auth/register", payload))

				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.False(t, decodeEnvelope(t, rec).Success)
			})
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()
		handler := newAuthTestHandler(t, mocks.NewMockUserStore())

		req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
			strings.NewReader("{not-json"))
		rec := httptest.NewRecorder()
		handler.Register(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()

	user := newTestUser(t, "member")
	user.HashedPassword = "hashed:123456"

	t.Run("valid credentials", func(t *testing.T) {
		t.Parallel()
		handler := newAuthTestHandler(t, mocks.NewMockUserStore(user))

		rec := httptest.NewRecorder()
		handler.Login(rec, jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
			"email":    "john@example.com",
			"password": "123456",
		}))

		require.Equal(t, http.StatusOK, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.True(t, env.Success)

		cookie := authCookie(rec)
		require.NotNil(t, cookie)
		assert.NotEmpty(t, cookie.Value)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()
		handler := newAuthTestHandler(t, mocks.NewMockUserStore(user))

		rec := httptest.NewRecorder()
		handler.Login(rec, jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
			"email":    "john@example.com",
			"password": "wrong-password",
		}))

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid credentials", decodeEnvelope(t, rec).Message)
	})

	t.Run("unknown email gets the same message", func(t *testing.T) {
		t.Parallel()
		handler := newAuthTestHandler(t, mocks.NewMockUserStore())

		rec := httptest.NewRecorder()
		handler.Login(rec, jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
			"email":    "nobody@example.com",
			"password": "123456",
		}))

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Invalid credentials", decodeEnvelope(t, rec).Message)
	})
}

func TestLogout(t *testing.T) {
	t.Parallel()

	handler := newAuthTestHandler(t, mocks.NewMockUserStore())

	rec := httptest.NewRecorder()
	handler.Logout(rec, httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Logged out successfully", decodeEnvelope(t, rec).Message)

	cookie := authCookie(rec)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}
