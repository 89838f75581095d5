package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ModeStore persists each visitor session's light/dark mode.
type ModeStore struct {
	db *DB
}

// NewModeStore creates a ModeStore backed by d.
func NewModeStore(d *DB) *ModeStore {
	return &ModeStore{db: d}
}

// GetMode returns the stored mode for sessionID. found is false when the
// session has never toggled.
func (s *ModeStore) GetMode(ctx context.Context, sessionID string) (string, bool, error) {
	var mode string
	err := s.db.QueryRowContext(ctx,
		`SELECT mode FROM mode_preferences WHERE session_id = ?`, sessionID,
	).Scan(&mode)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("querying mode for %s: %w", sessionID, err)
	}
	return mode, true, nil
}

// SetMode stores mode for sessionID, replacing any previous value.
func (s *ModeStore) SetMode(ctx context.Context, sessionID, mode string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO mode_preferences (session_id, mode, updated_at)
		VALUES (?, ?, datetime('now'))
		ON CONFLICT(session_id) DO UPDATE SET mode = excluded.mode, updated_at = excluded.updated_at`,
		sessionID, mode,
	)
	if err != nil {
		return fmt.Errorf("saving mode for %s: %w", sessionID, err)
	}
	return nil
}

// CountSessions returns how many sessions have a stored mode.
func (s *ModeStore) CountSessions(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM mode_preferences`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting sessions: %w", err)
	}
	return n, nil
}
