package dbcheck

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestCheckMissing(t *testing.T) {
	err := Check(t.Context(), filepath.Join(t.TempDir(), "nope.db"))
	assert.ErrorIs(t, err, ErrDatabaseMissing)
}

func TestCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "challenge.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = db.Exec("CREATE TABLE groups (group_id INTEGER PRIMARY KEY, title TEXT)")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	assert.NoError(t, Check(t.Context(), path))
}
