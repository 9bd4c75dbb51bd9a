package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/GoSim-25-26J-441/charforge-backend/internal/character_sheet/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository stores saved sheets in the character_sheets table
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, sessionID string) (*domain.SavedSheet, error) {
	const q = `
select inputs
from character_sheets
where session_id = $1;
`
	var raw []byte
	err := r.db.QueryRow(ctx, q, sessionID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSheetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sheet: %w", err)
	}

	var saved domain.SavedSheet
	if err := json.Unmarshal(raw, &saved); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sheet: %w", err)
	}
	return &saved, nil
}

func (r *PostgresRepository) Save(ctx context.Context, sessionID string, saved domain.SavedSheet) error {
	raw, err := json.Marshal(saved)
	if err != nil {
		return fmt.Errorf("failed to marshal sheet: %w", err)
	}

	const q = `
insert into character_sheets (session_id, inputs)
values ($1, $2::jsonb)
on conflict (session_id) do update set
    inputs = excluded.inputs,
    updated_at = now();
`
	if _, err := r.db.Exec(ctx, q, sessionID, string(raw)); err != nil {
		return fmt.Errorf("failed to save sheet: %w", err)
	}
	return nil
}
