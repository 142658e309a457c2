package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ali-mahmoud24/bookly-api/internal/store"
)

func pgError(code, constraint string) *pgconn.PgError {
	return &pgconn.PgError{Code: code, ConstraintName: constraint}
}

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", sql.ErrNoRows, store.ErrNotFound},
		{"deadline", context.DeadlineExceeded, store.ErrUnavailable},
		{"canceled", context.Canceled, store.ErrUnavailable},
		{"unique violation", pgError(uniqueViolationCode, "users_email_key"), store.ErrDuplicate},
		{"fk violation", pgError(foreignKeyViolationCode, "books_author_id_fkey"), store.ErrInvalidEntity},
		{"check violation", pgError(checkViolationCode, "books_copies_available_check"), store.ErrInvalidEntity},
		{"not null violation", pgError(notNullViolationCode, ""), store.ErrInvalidEntity},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := MapError(tc.err)
			if tc.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tc.want)
		})
	}

	t.Run("unknown errors pass through", func(t *testing.T) {
		t.Parallel()
		err := errors.New("boom")
		assert.Equal(t, err, MapError(err))
	})

	t.Run("wrapped pg errors are still mapped", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("inserting user: %w", pgError(uniqueViolationCode, "users_email_key"))
		assert.ErrorIs(t, MapError(err), store.ErrDuplicate)
	})
}

func TestIsViolationHelpers(t *testing.T) {
	t.Parallel()

	assert.True(t, IsUniqueViolation(pgError(uniqueViolationCode, "")))
	assert.False(t, IsUniqueViolation(pgError(foreignKeyViolationCode, "")))
	assert.False(t, IsUniqueViolation(errors.New("boom")))

	assert.True(t, IsForeignKeyViolation(pgError(foreignKeyViolationCode, "")))
	assert.False(t, IsForeignKeyViolation(pgError(uniqueViolationCode, "")))

	assert.True(t, IsNotFound(sql.ErrNoRows))
	assert.True(t, IsNotFound(store.ErrBookNotFound))
	assert.False(t, IsNotFound(errors.New("boom")))
}

// fakeResult implements sql.Result for CheckRowsAffected tests.
type fakeResult struct {
	rows int64
	err  error
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, r.err }

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	t.Run("rows affected", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, CheckRowsAffected(fakeResult{rows: 1}, "user"))
	})

	t.Run("zero rows is not found", func(t *testing.T) {
		t.Parallel()
		err := CheckRowsAffected(fakeResult{rows: 0}, "user")
		require.ErrorIs(t, err, store.ErrNotFound)
		assert.Contains(t, err.Error(), "user")
	})

	t.Run("zero rows without entity name", func(t *testing.T) {
		t.Parallel()
		assert.ErrorIs(t, CheckRowsAffected(fakeResult{rows: 0}, ""), store.ErrNotFound)
	})

	t.Run("rows affected error propagates", func(t *testing.T) {
		t.Parallel()
		assert.Error(t, CheckRowsAffected(fakeResult{err: errors.New("driver")}, "user"))
	})

	t.Run("nil result", func(t *testing.T) {
		t.Parallel()
		assert.Error(t, CheckRowsAffected(nil, "user"))
	})
}
