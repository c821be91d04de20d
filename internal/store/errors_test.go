package store_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Ashmit12092000/ems/internal/store"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestDup(t *testing.T) {
	wrapped := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "idx_users_username"})
	assert.ErrorIs(t, store.Dup(wrapped), store.ErrDuplicate)

	other := errors.New("boom")
	assert.Equal(t, other, store.Dup(other))
	assert.NoError(t, store.Dup(nil))

	assert.False(t, store.IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
}
