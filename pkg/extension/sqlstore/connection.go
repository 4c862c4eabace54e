// Package sqlstore implements extension.Store on top of database/sql.
//
// Extensions of every kind share a single table keyed by (kind, name). The JSON
// document is stored as-is; version and created_at are kept in their own columns
// and are authoritative over whatever the document carries.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	_ "github.com/lib/pq"           // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Dialect captures the SQL differences between supported databases
type Dialect struct {
	Name        string
	Driver      string
	placeholder func(n int) string
	createTable string
}

// Postgres is the PostgreSQL dialect (lib/pq)
var Postgres = Dialect{
	Name:        "postgres",
	Driver:      "postgres",
	placeholder: func(n int) string { return "$" + strconv.Itoa(n) },
	createTable: `
		CREATE TABLE IF NOT EXISTS extensions (
			kind       TEXT        NOT NULL,
			name       TEXT        NOT NULL,
			data       JSONB       NOT NULL,
			version    BIGINT      NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (kind, name)
		)`,
}

// SQLite is the SQLite dialect (mattn/go-sqlite3)
var SQLite = Dialect{
	Name:        "sqlite3",
	Driver:      "sqlite3",
	placeholder: func(int) string { return "?" },
	createTable: `
		CREATE TABLE IF NOT EXISTS extensions (
			kind       TEXT     NOT NULL,
			name       TEXT     NOT NULL,
			data       TEXT     NOT NULL,
			version    INTEGER  NOT NULL,
			created_at DATETIME NOT NULL,
			PRIMARY KEY (kind, name)
		)`,
}

// DialectByName resolves "postgres" or "sqlite"/"sqlite3"
func DialectByName(name string) (Dialect, error) {
	switch name {
	case "postgres", "postgresql":
		return Postgres, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported SQL dialect: %s", name)
	}
}

// bind rewrites a query written with $n placeholders into the dialect's form
func (d Dialect) bind(query string) string {
	if d.Name == Postgres.Name {
		return query
	}
	out := make([]byte, 0, len(query))
	for i := 0; i < len(query); i++ {
		if query[i] == '$' {
			j := i + 1
			for j < len(query) && query[j] >= '0' && query[j] <= '9' {
				j++
			}
			if j > i+1 {
				n, _ := strconv.Atoi(query[i+1 : j])
				out = append(out, d.placeholder(n)...)
				i = j - 1
				continue
			}
		}
		out = append(out, query[i])
	}
	return string(out)
}

// PoolConfig holds database connection pool settings
type PoolConfig struct {
	MaxConns    int
	MinConns    int
	Timeout     time.Duration
	MaxLifetime time.Duration
	MaxIdleTime time.Duration
}

// Open connects to the database, configures the pool and verifies the connection
func Open(dialect Dialect, dsn string, cfg PoolConfig) (*sql.DB, error) {
	db, err := sql.Open(dialect.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", dialect.Name, err)
	}

	if cfg.MaxConns > 0 {
		db.SetMaxOpenConns(cfg.MaxConns)
	}
	if cfg.MinConns > 0 {
		db.SetMaxIdleConns(cfg.MinConns)
	}
	if cfg.MaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.MaxLifetime)
	}
	if cfg.MaxIdleTime > 0 {
		db.SetConnMaxIdleTime(cfg.MaxIdleTime)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", dialect.Name, err)
	}

	return db, nil
}

// Migrate creates the extensions table if it does not exist
func Migrate(ctx context.Context, db *sql.DB, dialect Dialect) error {
	if _, err := db.ExecContext(ctx, dialect.createTable); err != nil {
		return fmt.Errorf("failed to create extensions table: %w", err)
	}
	return nil
}
