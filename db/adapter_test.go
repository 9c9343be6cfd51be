package db

import (
	"path/filepath"
	"testing"

	"github.com/kasuganosora/coffeemon-seed/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_UnknownMode(t *testing.T) {
	_, err := Open(config.DatabaseConfig{Mode: "oracle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}

func TestOpen_SQLiteMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.sqlite")
	_, err := Open(config.DatabaseConfig{Mode: ModeSQLite, SQLitePath: path})
	assert.ErrorIs(t, err, ErrDatabaseMissing)
}

func TestOpen_SQLiteCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.sqlite")
	gdb, err := Open(config.DatabaseConfig{Mode: ModeSQLite, SQLitePath: path, SQLiteCreate: true})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Ping())
	require.NoError(t, sqlDB.Close())

	// The file now exists, so a strict open succeeds.
	gdb, err = Open(config.DatabaseConfig{Mode: ModeSQLite, SQLitePath: path})
	require.NoError(t, err)
	sqlDB, _ = gdb.DB()
	_ = sqlDB.Close()
}
