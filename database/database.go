package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
	"github.com/mbolis/user-form/config"
)

// Open creates the process-wide connection pool for the configured driver.
// No connection is dialled unless migrations are requested, so an unreachable
// database surfaces per request rather than at startup.
func Open(cfg config.Config) (db *sql.DB, err error) {
	switch cfg.DBDriver {
	case config.MySQLDriver:
		db, err = sql.Open(config.MySQLDriver, MySQLDSN(cfg))
	case config.SQLiteDriver:
		db, err = sql.Open(config.SQLiteDriver, cfg.DBUrl)
	default:
		err = fmt.Errorf("unsupported database driver: %s", cfg.DBDriver)
	}
	if err != nil {
		return
	}

	// db tuning options
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(2 * time.Hour)

	if cfg.Migrate {
		err = Migrate(db, cfg.DBDriver)
		if err != nil {
			db.Close()
			return nil, err
		}
	}

	return
}

// MySQLDSN renders the connection string for the fixed database name using
// the credentials from cfg.
func MySQLDSN(cfg config.Config) string {
	mc := mysql.NewConfig()
	mc.User = cfg.MySQL.User
	mc.Passwd = cfg.MySQL.Password
	mc.Net = "tcp"
	mc.Addr = cfg.MySQL.Host
	mc.DBName = config.DBName
	mc.Timeout = cfg.ConnectTimeout
	return mc.FormatDSN()
}
