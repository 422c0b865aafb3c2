package db

import (
	"errors"
	"testing"

	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapIfDuplicateConstraint(t *testing.T) {
	t.Run("unique violation", func(t *testing.T) {
		// sqlite3.Error.Error() renders only the code text when err is nil,
		// so wrap it in a message carrying the table and column
		sqliteErr := sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}
		raw := errors.Join(sqliteErr, errors.New("UNIQUE constraint failed: users.email"))

		dup, err := WrapIfDuplicateConstraint(raw)
		require.True(t, dup)

		var keyErr *DuplicateKeyError
		require.ErrorAs(t, err, &keyErr)
		assert.Equal(t, "email", keyErr.Field)
		assert.Equal(t, "duplicate key violation: email already exists", keyErr.Error())
	})

	t.Run("other error passes through", func(t *testing.T) {
		raw := errors.New("disk I/O error")

		dup, err := WrapIfDuplicateConstraint(raw)
		assert.False(t, dup)
		assert.Same(t, raw, err)
	})
}

func TestExtractViolatedField(t *testing.T) {
	assert.Equal(t, "number", extractViolatedFieldFromSQLite(errors.New("UNIQUE constraint failed: rooms.number")))
	assert.Equal(t, "unknown", extractViolatedFieldFromSQLite(errors.New("constraint failed")))
}
