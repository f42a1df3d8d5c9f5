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

const characterColumns = `id, user_id, name, char_class, notes, agility, knowledge, presence, strength,
	hp_current, hp_max, destiny_points, bits, equipment, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCharacter(row rowScanner) (*models.Character, error) {
	c := &models.Character{}
	err := row.Scan(
		&c.ID, &c.UserID, &c.Name, &c.CharClass, &c.Notes,
		&c.Agility, &c.Knowledge, &c.Presence, &c.Strength,
		&c.HPCurrent, &c.HPMax, &c.DestinyPoints, &c.Bits, &c.Equipment, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// CreateCharacter stores c and sets its ID. A zero CreatedAt is set to now.
func (db *DB) CreateCharacter(ctx context.Context, c *models.Character) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	query := `INSERT INTO characters (
	user_id, name, char_class, notes, agility, knowledge, presence, strength,
	hp_current, hp_max, destiny_points, bits, equipment, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`
	err := db.queryRow(ctx, query,
		c.UserID, c.Name, c.CharClass, c.Notes, c.Agility, c.Knowledge, c.Presence, c.Strength,
		c.HPCurrent, c.HPMax, c.DestinyPoints, c.Bits, c.Equipment, c.CreatedAt,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("create character for user %d: %w", c.UserID, err)
	}
	return nil
}

// GetCharacter returns the character with the given ID or a NotFound error.
func (db *DB) GetCharacter(ctx context.Context, id int64) (*models.Character, error) {
	query := "SELECT " + characterColumns + " FROM characters WHERE id = ?"
	c, err := scanCharacter(db.queryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.Wrap(apperr.CodeNotFound, fmt.Sprintf("character %d not found", id), err)
		}
		return nil, fmt.Errorf("get character %d: %w", id, err)
	}
	return c, nil
}

// ListCharactersByUser returns the characters owned by userID ordered by ID.
func (db *DB) ListCharactersByUser(ctx context.Context, userID int64) ([]*models.Character, error) {
	query := "SELECT " + characterColumns + " FROM characters WHERE user_id = ? ORDER BY id"
	rows, err := db.query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list characters of user %d: %w", userID, err)
	}
	defer rows.Close()
	var cc []*models.Character
	for rows.Next() {
		c, err := scanCharacter(rows)
		if err != nil {
			return nil, fmt.Errorf("list characters of user %d: %w", userID, err)
		}
		cc = append(cc, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list characters of user %d: %w", userID, err)
	}
	return cc, nil
}

// UpdateCharacter overwrites every editable field of c.
func (db *DB) UpdateCharacter(ctx context.Context, c *models.Character) error {
	query := `UPDATE characters SET
	name = ?, char_class = ?, notes = ?, agility = ?, knowledge = ?, presence = ?, strength = ?,
	hp_current = ?, hp_max = ?, destiny_points = ?, bits = ?, equipment = ?
WHERE id = ?`
	res, err := db.exec(ctx, query,
		c.Name, c.CharClass, c.Notes, c.Agility, c.Knowledge, c.Presence, c.Strength,
		c.HPCurrent, c.HPMax, c.DestinyPoints, c.Bits, c.Equipment, c.ID,
	)
	if err != nil {
		return fmt.Errorf("update character %d: %w", c.ID, err)
	}
	return expectOneRow(res, fmt.Sprintf("character %d", c.ID))
}

func (db *DB) DeleteCharacter(ctx context.Context, id int64) error {
	res, err := db.exec(ctx, "DELETE FROM characters WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete character %d: %w", id, err)
	}
	return expectOneRow(res, fmt.Sprintf("character %d", id))
}

func expectOneRow(res sql.Result, label string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.New(apperr.CodeNotFound, label+" not found")
	}
	return nil
}
