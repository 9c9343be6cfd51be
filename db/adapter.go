package db

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/kasuganosora/coffeemon-seed/config"
	dbmysql "github.com/kasuganosora/coffeemon-seed/db/mysql"
	dbpostgres "github.com/kasuganosora/coffeemon-seed/db/postgres"
	dbsqlite "github.com/kasuganosora/coffeemon-seed/db/sqlite"
	"gorm.io/gorm"
)

const (
	ModeSQLite   = "sqlite"
	ModeMySQL    = "mysql"
	ModePostgres = "postgres"
)

// ErrDatabaseMissing is returned in SQLite mode when the database file does
// not exist and creating it was not allowed.
var ErrDatabaseMissing = errors.New("db: database file not found")

// Open returns a *gorm.DB for the configured database mode.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	switch cfg.Mode {
	case ModeSQLite:
		if !cfg.SQLiteCreate {
			if _, err := os.Stat(cfg.SQLitePath); errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrDatabaseMissing, cfg.SQLitePath)
			}
		}
		return dbsqlite.Open(cfg.SQLitePath)
	case ModeMySQL:
		return dbmysql.Open(cfg.MySQLDSN, cfg.MaxOpen, cfg.MaxIdle, cfg.MaxLife)
	case ModePostgres:
		return dbpostgres.Open(cfg.PostgresDSN, cfg.MaxOpen, cfg.MaxIdle, cfg.MaxLife)
	default:
		return nil, fmt.Errorf("db: unknown mode %q", cfg.Mode)
	}
}
