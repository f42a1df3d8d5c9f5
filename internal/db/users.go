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

// CreateUser stores a new user and returns it.
// It returns a Conflict error when the username is already taken.
func (db *DB) CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error) {
	u := &models.User{
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	query := "INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?) RETURNING id"
	err := db.queryRow(ctx, query, u.Username, u.PasswordHash, u.CreatedAt).Scan(&u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Wrap(apperr.CodeConflict, "username already exists", err)
		}
		return nil, fmt.Errorf("create user %q: %w", username, err)
	}
	return u, nil
}

func (db *DB) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	query := "SELECT id, username, password_hash, created_at FROM users WHERE id = ?"
	return db.scanUser(db.queryRow(ctx, query, id), fmt.Sprintf("user %d", id))
}

func (db *DB) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := "SELECT id, username, password_hash, created_at FROM users WHERE username = ?"
	return db.scanUser(db.queryRow(ctx, query, username), fmt.Sprintf("user %q", username))
}

func (db *DB) scanUser(row *sql.Row, label string) (*models.User, error) {
	u := &models.User{}
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.Wrap(apperr.CodeNotFound, label+" not found", err)
		}
		return nil, fmt.Errorf("get %s: %w", label, err)
	}
	return u, nil
}
