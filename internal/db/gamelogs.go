package db

import (
	"context"
	"fmt"
	"time"

	"starborg-web/internal/models"
)

// CreateGameLog appends an entry to the roll feed. A zero Timestamp is set to now.
func (db *DB) CreateGameLog(ctx context.Context, l *models.GameLog) error {
	if l.Timestamp.IsZero() {
		l.Timestamp = time.Now().UTC()
	}
	query := "INSERT INTO game_logs (timestamp, username, message) VALUES (?, ?, ?) RETURNING id"
	if err := db.queryRow(ctx, query, l.Timestamp.UTC(), l.Username, l.Message).Scan(&l.ID); err != nil {
		return fmt.Errorf("create game log: %w", err)
	}
	return nil
}

// ListRecentGameLogs returns up to limit entries, newest first.
func (db *DB) ListRecentGameLogs(ctx context.Context, limit int) ([]*models.GameLog, error) {
	query := "SELECT id, timestamp, username, message FROM game_logs ORDER BY timestamp DESC, id DESC LIMIT ?"
	rows, err := db.query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list game logs: %w", err)
	}
	defer rows.Close()
	logs := make([]*models.GameLog, 0, limit)
	for rows.Next() {
		l := &models.GameLog{}
		if err := rows.Scan(&l.ID, &l.Timestamp, &l.Username, &l.Message); err != nil {
			return nil, fmt.Errorf("list game logs: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list game logs: %w", err)
	}
	return logs, nil
}
