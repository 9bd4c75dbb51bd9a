package sqldb

import (
	"database/sql"
	"time"

	_ "github.com/lib/pq"
)

// PostgresDialect implements Dialect for PostgreSQL
type PostgresDialect struct{}

func NewPostgresDialect() *PostgresDialect {
	return &PostgresDialect{}
}

func (d *PostgresDialect) DriverName() string {
	return "postgres"
}

func (d *PostgresDialect) RewriteQuery(query string) string {
	return rewritePlaceholdersToNumbered(query)
}

func (d *PostgresDialect) ConfigureConnection(db *sql.DB) error {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	return nil
}

func (d *PostgresDialect) CreateEntriesTableQuery() string {
	return `
		CREATE TABLE IF NOT EXISTS bridge_entries (
			session_id TEXT NOT NULL,
			entry_key TEXT NOT NULL,
			entry_value TEXT NOT NULL,
			updated_at TIMESTAMPTZ DEFAULT NOW(),
			PRIMARY KEY (session_id, entry_key)
		);
	`
}

func (d *PostgresDialect) UpsertEntryQuery() string {
	return `
		INSERT INTO bridge_entries (session_id, entry_key, entry_value, updated_at)
		VALUES (?, ?, ?, NOW())
		ON CONFLICT (session_id, entry_key) DO UPDATE SET
			entry_value = EXCLUDED.entry_value,
			updated_at = NOW()
	`
}
