package prefs

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore persists preferences in Postgres so they survive restarts.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore prepares the backing table and returns the store.
func NewPGStore(ctx context.Context, pool *pgxpool.Pool) (*PGStore, error) {
	const ddl = `
		CREATE TABLE IF NOT EXISTS preferences (
			username   TEXT PRIMARY KEY,
			theme      TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`
	if _, err := pool.Exec(ctx, ddl); err != nil {
		return nil, fmt.Errorf("prepare preferences table: %w", err)
	}
	return &PGStore{pool: pool}, nil
}

func (s *PGStore) Theme(ctx context.Context, user string) (string, error) {
	const query = `SELECT theme FROM preferences WHERE username = $1`

	var theme string
	err := s.pool.QueryRow(ctx, query, user).Scan(&theme)
	if errors.Is(err, pgx.ErrNoRows) {
		return ThemeLight, nil
	}
	if err != nil {
		return "", fmt.Errorf("query theme: %w", err)
	}
	if !ValidTheme(theme) {
		return ThemeLight, nil
	}
	return theme, nil
}

func (s *PGStore) SetTheme(ctx context.Context, user, theme string) error {
	if err := checkTheme(theme); err != nil {
		return err
	}

	const query = `
		INSERT INTO preferences (username, theme, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (username)
		DO UPDATE SET theme = EXCLUDED.theme, updated_at = now()`
	if _, err := s.pool.Exec(ctx, query, user, theme); err != nil {
		return fmt.Errorf("store theme: %w", err)
	}
	return nil
}
