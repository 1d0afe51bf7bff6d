// Package database owns the storage collaborator: it opens the backing store,
// creates the schema, and hands out an explicitly constructed *gorm.DB rather
// than a package-global handle.
package database

import (
	"fmt"
	"strings"

	"github.com/miniblog/backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Options selects the backing store.
type Options struct {
	// Driver is "postgres" or "sqlite".
	Driver string
	// DSN is the driver connection string.
	DSN string
}

// Open connects to the configured store with error translation enabled, so
// duplicate keys and foreign-key violations surface as gorm.ErrDuplicatedKey
// and gorm.ErrForeignKeyViolated for the repositories to translate further.
func Open(opts Options) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch opts.Driver {
	case "postgres":
		dialector = postgres.Open(opts.DSN)
	case "sqlite":
		dialector = sqlite.Open(sqliteDSN(opts.DSN))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// OpenEphemeral opens a fresh, disposable in-memory SQLite store with foreign
// keys enforced. Each call gets its own database; used by tests and by the
// model verification run. The pool is pinned to one connection because an
// in-memory SQLite database lives and dies with its connection.
func OpenEphemeral() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	return db, nil
}

// sqliteDSN makes foreign-key enforcement part of the DSN. SQLite ships with
// foreign keys off per connection, so a one-shot PRAGMA would only cover the
// pooled connection it happened to run on; the DSN parameter covers them all.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}

// Migrate creates or updates the backing schema for the entity model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Post{},
	)
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
