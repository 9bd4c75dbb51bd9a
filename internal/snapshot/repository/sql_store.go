package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/GoSim-25-26J-441/charforge-backend/internal/snapshot/domain"
	"github.com/GoSim-25-26J-441/charforge-backend/internal/storage/sqldb"
)

// SQLStore keeps snapshot entries in a bridge_entries table, one row per key.
type SQLStore struct {
	db *sqldb.DB
}

func NewSQLStore(db *sqldb.DB) *SQLStore {
	return &SQLStore{db: db}
}

// EnsureSchema creates the entries table if it does not exist
func (s *SQLStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.db.Dialect.CreateEntriesTableQuery()); err != nil {
		return fmt.Errorf("failed to create bridge_entries: %w", err)
	}
	return nil
}

// Put upserts both keys in one transaction
func (s *SQLStore) Put(ctx context.Context, sessionID string, rec domain.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin snapshot tx: %w", err)
	}
	defer tx.Rollback()

	upsert := s.db.Rebind(s.db.Dialect.UpsertEntryQuery())
	entries := []struct{ key, value string }{
		{domain.KeyGeneratedCharacterImage, rec.GeneratedCharacterImage},
		{domain.KeyCharacterFormData, rec.CharacterFormData},
	}
	for _, e := range entries {
		if _, err := tx.ExecContext(ctx, upsert, sessionID, e.key, e.value); err != nil {
			return fmt.Errorf("failed to put %s: %w", e.key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

func (s *SQLStore) Get(ctx context.Context, sessionID string) (domain.Record, bool, error) {
	query := s.db.Rebind(`
		SELECT entry_key, entry_value
		FROM bridge_entries
		WHERE session_id = ?
	`)

	rows, err := s.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return domain.Record{}, false, fmt.Errorf("failed to get snapshot: %w", err)
	}
	defer rows.Close()

	var rec domain.Record
	for rows.Next() {
		var key string
		var value sql.NullString
		if err := rows.Scan(&key, &value); err != nil {
			return domain.Record{}, false, fmt.Errorf("failed to scan snapshot entry: %w", err)
		}
		switch key {
		case domain.KeyGeneratedCharacterImage:
			rec.GeneratedCharacterImage = value.String
		case domain.KeyCharacterFormData:
			rec.CharacterFormData = value.String
		}
	}
	if err := rows.Err(); err != nil {
		return domain.Record{}, false, fmt.Errorf("failed to read snapshot: %w", err)
	}

	if rec.Empty() {
		return domain.Record{}, false, nil
	}
	return rec, true, nil
}

func (s *SQLStore) Clear(ctx context.Context, sessionID string) error {
	query := s.db.Rebind(`DELETE FROM bridge_entries WHERE session_id = ?`)
	if _, err := s.db.ExecContext(ctx, query, sessionID); err != nil {
		return fmt.Errorf("failed to clear snapshot: %w", err)
	}
	return nil
}
