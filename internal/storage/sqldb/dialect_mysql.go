package sqldb

import (
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLDialect implements Dialect for MySQL
type MySQLDialect struct{}

func NewMySQLDialect() *MySQLDialect {
	return &MySQLDialect{}
}

func (d *MySQLDialect) DriverName() string {
	return "mysql"
}

func (d *MySQLDialect) RewriteQuery(query string) string {
	return query
}

func (d *MySQLDialect) ConfigureConnection(db *sql.DB) error {
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	return nil
}

func (d *MySQLDialect) CreateEntriesTableQuery() string {
	return `
		CREATE TABLE IF NOT EXISTS bridge_entries (
			session_id VARCHAR(64) NOT NULL,
			entry_key VARCHAR(64) NOT NULL,
			entry_value LONGTEXT NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			PRIMARY KEY (session_id, entry_key)
		);
	`
}

func (d *MySQLDialect) UpsertEntryQuery() string {
	return `
		INSERT INTO bridge_entries (session_id, entry_key, entry_value)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE entry_value = VALUES(entry_value)
	`
}
