package app

import (
	"database/sql"

	"github.com/mbolis/user-form/config"
)

// App is what every handler is built from: the process-owned connection pool
// and the configuration it was opened with.
type App struct {
	*sql.DB
	config.Config
}
