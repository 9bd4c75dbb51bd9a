package sqldb

import (
	"database/sql"
	"fmt"
	"strings"
)

// DB wraps the database connection with dialect support
type DB struct {
	*sql.DB
	Dialect Dialect
}

// DialectFor resolves a driver name as configured in SNAPSHOT_SQL_DRIVER
func DialectFor(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case "postgres", "postgresql":
		return NewPostgresDialect(), nil
	case "mysql":
		return NewMySQLDialect(), nil
	case "sqlite", "sqlite3", "":
		return NewSQLiteDialect(), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", driver)
	}
}

// Open creates and configures the database connection for the given driver
func Open(driver, dsn string) (*DB, error) {
	dialect, err := DialectFor(driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := dialect.ConfigureConnection(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure connection: %w", err)
	}

	return &DB{DB: db, Dialect: dialect}, nil
}

// Rebind rewrites ? placeholders for the active dialect
func (db *DB) Rebind(query string) string {
	return db.Dialect.RewriteQuery(query)
}
