package config

import (
	"flag"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DBName is the schema every submission is written to. It is not configurable.
const DBName = "userform"

const (
	MySQLDriver  = "mysql"
	SQLiteDriver = "sqlite3"
)

// MaxFormBytes caps the size of a submitted form body.
const MaxFormBytes = 64 << 10

type Config struct {
	Addr     string `validate:"required,listen_addr"`
	DBDriver string `validate:"required,oneof=mysql sqlite3"`
	DBUrl    string `validate:"required_if=DBDriver sqlite3"`
	MySQL    MySQLSettings
	Migrate  bool
	Debug    bool

	ConnectTimeout time.Duration
}

// MySQLSettings holds the connection parameters read from the environment.
type MySQLSettings struct {
	Host     string
	User     string
	Password string
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("listen_addr", func(fl validator.FieldLevel) bool {
		_, port, err := net.SplitHostPort(fl.Field().String())
		if err != nil {
			return false
		}
		n, err := strconv.ParseUint(port, 10, 16)
		return err == nil && n > 0
	})
	return v
}

// Load builds a Config from command line arguments (without the program name)
// and environment lookups.
func Load(args []string, getenv func(string) string) (cfg Config, err error) {
	fs := flag.NewFlagSet("user-form", flag.ContinueOnError)

	var host string
	fs.StringVar(&host, "host", "0.0.0.0", "listen host name")
	var port uint
	fs.UintVar(&port, "port", 80, "listen port number")
	fs.StringVar(&cfg.DBDriver, "db-driver", MySQLDriver, "database driver (mysql or sqlite3)")
	fs.StringVar(&cfg.DBUrl, "db-url", "userform.sqlite", "path to SQLite3 DB file, used with -db-driver=sqlite3")
	fs.BoolVar(&cfg.Migrate, "migrate", false, "create or upgrade the users table on startup")
	fs.DurationVar(&cfg.ConnectTimeout, "connect-timeout", 5*time.Second, "database dial timeout")
	fs.BoolVar(&cfg.Debug, "debug", false, "log at DEBUG level")
	if err = fs.Parse(args); err != nil {
		return
	}

	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(int(port)))
	cfg.MySQL = MySQLSettings{
		Host:     getenv("MYSQL_HOST"),
		User:     getenv("MYSQL_USER"),
		Password: getenv("MYSQL_PASSWORD"),
	}

	err = cfg.Validate()
	return
}

// Validate checks the configuration is complete for the selected driver.
func (cfg Config) Validate() error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.DBDriver == MySQLDriver {
		var missing []string
		if cfg.MySQL.Host == "" {
			missing = append(missing, "MYSQL_HOST")
		}
		if cfg.MySQL.User == "" {
			missing = append(missing, "MYSQL_USER")
		}
		if len(missing) > 0 {
			return fmt.Errorf("missing environment variable %s", strings.Join(missing, ", "))
		}
	}
	return nil
}

// Url is where the server can be reached locally; wildcard hosts map to localhost.
func (cfg Config) Url() string {
	host, port, err := net.SplitHostPort(cfg.Addr)
	if err != nil {
		return "http://" + cfg.Addr
	}
	if host == "" || net.ParseIP(host).IsUnspecified() {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}
