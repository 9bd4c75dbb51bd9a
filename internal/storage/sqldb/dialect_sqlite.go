package sqldb

import (
	"database/sql"

	_ "modernc.org/sqlite"
)

// SQLiteDialect implements Dialect for SQLite
type SQLiteDialect struct{}

func NewSQLiteDialect() *SQLiteDialect {
	return &SQLiteDialect{}
}

func (d *SQLiteDialect) DriverName() string {
	return "sqlite"
}

func (d *SQLiteDialect) RewriteQuery(query string) string {
	return query
}

func (d *SQLiteDialect) ConfigureConnection(db *sql.DB) error {
	// a single writer keeps :memory: databases on one connection
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return err
	}
	return nil
}

func (d *SQLiteDialect) CreateEntriesTableQuery() string {
	return `
		CREATE TABLE IF NOT EXISTS bridge_entries (
			session_id TEXT NOT NULL,
			entry_key TEXT NOT NULL,
			entry_value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (session_id, entry_key)
		);
	`
}

func (d *SQLiteDialect) UpsertEntryQuery() string {
	return `
		INSERT INTO bridge_entries (session_id, entry_key, entry_value, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (session_id, entry_key) DO UPDATE SET
			entry_value = excluded.entry_value,
			updated_at = CURRENT_TIMESTAMP
	`
}
