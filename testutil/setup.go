package testutil

import (
	"path/filepath"
	"testing"

	"github.com/kasuganosora/coffeemon-seed/cache"
	"github.com/kasuganosora/coffeemon-seed/config"
	dbadapter "github.com/kasuganosora/coffeemon-seed/db"
	"github.com/kasuganosora/coffeemon-seed/model"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// SetupTestDB creates a fresh SQLite file under t.TempDir() and runs
// AutoMigrate. It requires no external services and is safe to use in
// parallel tests.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := dbadapter.Open(config.DatabaseConfig{
		Mode:         dbadapter.ModeSQLite,
		SQLitePath:   filepath.Join(t.TempDir(), "database.sqlite"),
		SQLiteCreate: true,
	})
	require.NoError(t, err, "SetupTestDB: Open")
	require.NoError(t, model.AutoMigrate(db), "SetupTestDB: AutoMigrate")
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// SetupTestCache creates a LocalCache (no Redis required).
func SetupTestCache(t *testing.T) cache.Cache {
	t.Helper()
	c, err := cache.NewCache(cache.CacheConfig{}) // empty RedisAddr → LocalCache
	require.NoError(t, err, "SetupTestCache: NewCache")
	t.Cleanup(func() { _ = c.Close() })
	return c
}
