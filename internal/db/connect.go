package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

type dialect struct {
	sqlName    string // name registered with database/sql
	defaultDSN string
	epochType  string // column type holding unix seconds
}

var dialects = map[Driver]dialect{
	DriverSQLite: {
		sqlName:    "sqlite",
		defaultDSN: "file:imuno.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)",
		epochType:  "INTEGER",
	},
	DriverPostgres: {
		sqlName:    "pgx",
		defaultDSN: "postgres://localhost:5432/imuno?sslmode=disable",
		epochType:  "BIGINT",
	},
}

// documentsTable holds the raw content documents (questoes.json,
// modulo<N>.json, referencias.json) keyed by file name.
const documentsTable = `CREATE TABLE IF NOT EXISTS documents (
  name TEXT PRIMARY KEY,
  body TEXT NOT NULL,
  updated_at %s NOT NULL
)`

// Open connects with the given driver, pings, and creates the documents
// table when missing. An empty dsn selects the driver's local default.
func Open(ctx context.Context, driver Driver, dsn string) (*sql.DB, error) {
	d, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}
	if dsn == "" {
		dsn = d.defaultDSN
	}

	h, err := sql.Open(d.sqlName, dsn)
	if err != nil {
		return nil, err
	}
	if err := h.PingContext(ctx); err != nil {
		h.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	if _, err := h.ExecContext(ctx, fmt.Sprintf(documentsTable, d.epochType)); err != nil {
		h.Close()
		return nil, fmt.Errorf("create documents table: %w", err)
	}
	return h, nil
}
