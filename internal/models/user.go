package models

import "time"

// DefaultCharacterName is used when a character is created without a name.
const DefaultCharacterName = "Nameless Rebel"

// StartingHPMax is the hp_max given to newly created characters.
const StartingHPMax = 4

// MaxLogMessageLength is the longest game log message that is stored.
const MaxLogMessageLength = 500

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Don't expose in JSON
	CreatedAt    time.Time `json:"created_at"`
}

type Session struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Character is a Star Borg character sheet owned by a single user.
type Character struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	Name          string    `json:"name"`
	CharClass     string    `json:"char_class"`
	Notes         string    `json:"notes"`
	Agility       int       `json:"agility"`
	Knowledge     int       `json:"knowledge"`
	Presence      int       `json:"presence"`
	Strength      int       `json:"strength"`
	HPCurrent     int       `json:"hp_current"`
	HPMax         int       `json:"hp_max"`
	DestinyPoints int       `json:"destiny_points"`
	Bits          bool      `json:"bits"`
	Equipment     string    `json:"equipment"`
	CreatedAt     time.Time `json:"created_at"`
}

// GameLog is an entry in the shared roll feed.
type GameLog struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Username  string    `json:"username"`
	Message   string    `json:"message"`
}
