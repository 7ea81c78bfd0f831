package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/mbolis/user-form/config"
	"github.com/mbolis/user-form/log"
)

//go:embed migrations
var dbMigrations embed.FS

// Migrate brings the users table up to date for the given driver.
func Migrate(db *sql.DB, driver string) error {
	src, err := iofs.New(dbMigrations, "migrations/"+driver)
	if err != nil {
		return fmt.Errorf("migration source %s: %w", driver, err)
	}

	var dst migratedb.Driver
	switch driver {
	case config.MySQLDriver:
		dst, err = migratemysql.WithInstance(db, &migratemysql.Config{DatabaseName: config.DBName})
	case config.SQLiteDriver:
		dst, err = sqlite3.WithInstance(db, &sqlite3.Config{})
	default:
		err = fmt.Errorf("unsupported database driver: %s", driver)
	}
	if err != nil {
		return err
	}

	migrator, err := migrate.NewWithInstance("iofs", src, driver, dst)
	if err != nil {
		return err
	}

	err = migrator.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		log.Debug("database.migrate: already up to date")
	case err != nil:
		return fmt.Errorf("migrate up: %w", err)
	default:
		log.Info("database.migrate: users table up to date")
	}
	return nil
}
