package repos

import (
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	applog "shopfront/internal/log"
)

// Supported driver names, as registered by the imported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPgx      = "pgx"
	DriverPostgres = "postgres"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,
  created_at TEXT NOT NULL,
  last_seen TEXT NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS preferences(
  session_id TEXT NOT NULL,
  pref_key TEXT NOT NULL,
  value TEXT NOT NULL,
  updated_at TEXT NOT NULL,
  PRIMARY KEY (session_id, pref_key)
)`,
	`CREATE INDEX IF NOT EXISTS idx_preferences_updated_at ON preferences(updated_at)`,
}

func OpenDB(driver, dsn string) (*sqlx.DB, error) {
	driver = strings.ToLower(strings.TrimSpace(driver))
	switch driver {
	case "":
		driver = DriverSQLite
	case DriverSQLite, DriverPgx, DriverPostgres:
	default:
		return nil, errors.Errorf("unsupported db driver %q", driver)
	}

	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", driver)
	}
	if driver == DriverSQLite {
		// every new connection to ":memory:" would be a different database
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "ping %s", driver)
	}
	if err := ensureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	applog.Info(nil, "db.open", map[string]any{"driver": driver})
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return errors.Wrap(err, "ensure schema")
		}
	}
	return nil
}
