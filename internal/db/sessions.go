package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"starborg-web/internal/apperr"
	"starborg-web/internal/models"
)

func (db *DB) CreateSession(ctx context.Context, s models.Session) error {
	query := "INSERT INTO sessions (id, user_id, expires_at) VALUES (?, ?, ?)"
	if _, err := db.exec(ctx, query, s.ID, s.UserID, s.ExpiresAt.UTC()); err != nil {
		return fmt.Errorf("create session for user %d: %w", s.UserID, err)
	}
	return nil
}

// GetSession returns the session with the given ID. Expiry is not checked here.
func (db *DB) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	query := "SELECT id, user_id, expires_at FROM sessions WHERE id = ?"
	s := &models.Session{}
	err := db.queryRow(ctx, query, sessionID).Scan(&s.ID, &s.UserID, &s.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.Wrap(apperr.CodeNotFound, "session not found", err)
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return s, nil
}

func (db *DB) DeleteSession(ctx context.Context, sessionID string) error {
	if _, err := db.exec(ctx, "DELETE FROM sessions WHERE id = ?", sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpiredSessions removes all sessions that expired before now and
// returns how many were removed.
func (db *DB) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	res, err := db.exec(ctx, "DELETE FROM sessions WHERE expires_at < ?", now.UTC())
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return res.RowsAffected()
}
