package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenForTesting(t *testing.T) {
	db, err := OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, db.Close()) })

	var tableName string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='preferences'").Scan(&tableName)
	require.NoError(t, err)
	assert.Equal(t, "preferences", tableName)
}

func TestOpenCreatesFileAndDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "lumo.db")

	db, err := Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, db.Close())
	assert.FileExists(t, dbPath)
}

func TestMigrationsAreIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "lumo.db")

	first, err := Open(dbPath)
	require.NoError(t, err)
	_, err = first.Exec("INSERT INTO preferences (key, value) VALUES ('photos', '[]')")
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, second.Close()) })

	var value string
	err = second.QueryRow("SELECT value FROM preferences WHERE key = 'photos'").Scan(&value)
	require.NoError(t, err)
	assert.Equal(t, "[]", value)

	var version int
	err = second.QueryRow("SELECT version FROM schema_migrations").Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

func TestPrepareReportsPingFailure(t *testing.T) {
	db, err := sql.Open("sqlite", "file::memory:")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = prepare(db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to ping database")
	assert.NotContains(t, err.Error(), "also failed to close db")
}
