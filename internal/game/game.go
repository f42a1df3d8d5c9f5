// Package game implements character sheet management and the shared roll feed.
package game

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"starborg-web/internal/auth"
	"starborg-web/internal/dice"
	"starborg-web/internal/models"
)

// RecentLogLimit is the number of entries returned by RecentLogs.
const RecentLogLimit = 20

type Repository interface {
	CreateCharacter(ctx context.Context, c *models.Character) error
	GetCharacter(ctx context.Context, id int64) (*models.Character, error)
	ListCharactersByUser(ctx context.Context, userID int64) ([]*models.Character, error)
	UpdateCharacter(ctx context.Context, c *models.Character) error
	DeleteCharacter(ctx context.Context, id int64) error
	CreateGameLog(ctx context.Context, l *models.GameLog) error
	ListRecentGameLogs(ctx context.Context, limit int) ([]*models.GameLog, error)
}

type Service struct {
	repo   Repository
	roller *dice.Roller
}

func NewService(repo Repository, roller *dice.Roller) *Service {
	return &Service{repo: repo, roller: roller}
}

// Roller returns the dice roller used by the service.
func (s *Service) Roller() *dice.Roller {
	return s.roller
}

// NewCharacter describes a character to be created.
type NewCharacter struct {
	Name      string
	CharClass string
	// Abilities, when set, seeds the four ability scores.
	Abilities *dice.Abilities
}

// CreateCharacter creates a character for user with the starting hit points.
// A blank name falls back to models.DefaultCharacterName.
func (s *Service) CreateCharacter(ctx context.Context, user *models.User, arg NewCharacter) (*models.Character, error) {
	c := &models.Character{
		UserID:        user.ID,
		Name:          arg.Name,
		CharClass:     arg.CharClass,
		HPCurrent:     1,
		HPMax:         models.StartingHPMax,
		DestinyPoints: 1,
	}
	if strings.TrimSpace(c.Name) == "" {
		c.Name = models.DefaultCharacterName
	}
	if arg.Abilities != nil {
		a := dice.ApplyClassBonus(arg.CharClass, *arg.Abilities)
		c.Agility, c.Knowledge, c.Presence, c.Strength = a.Agility, a.Knowledge, a.Presence, a.Strength
	}
	if err := s.repo.CreateCharacter(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListCharacters returns the characters owned by user.
func (s *Service) ListCharacters(ctx context.Context, user *models.User) ([]*models.Character, error) {
	return s.repo.ListCharactersByUser(ctx, user.ID)
}

// OwnedCharacter returns the character with the given ID.
// It returns NotFound for unknown IDs and Forbidden when user is not the owner.
func (s *Service) OwnedCharacter(ctx context.Context, user *models.User, id int64) (*models.Character, error) {
	c, err := s.repo.GetCharacter(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.RequireOwnership(c, user); err != nil {
		return nil, err
	}
	return c, nil
}

// Sheet holds the raw values of a submitted character sheet.
// Numeric fields are kept as text and coerced by SaveSheet.
type Sheet struct {
	Name          string
	CharClass     *string // nil keeps the current class
	Agility       string
	Knowledge     string
	Presence      string
	Strength      string
	HPCurrent     string
	HPMax         string
	DestinyPoints string
	Bits          bool
	Equipment     string
	Notes         string
}

// SaveSheet overwrites every editable field of the user's character.
// Blank or non-numeric numbers are stored as 0.
func (s *Service) SaveSheet(ctx context.Context, user *models.User, id int64, sheet Sheet) (*models.Character, error) {
	c, err := s.OwnedCharacter(ctx, user, id)
	if err != nil {
		return nil, err
	}
	c.Name = sheet.Name
	if strings.TrimSpace(c.Name) == "" {
		c.Name = models.DefaultCharacterName
	}
	if sheet.CharClass != nil {
		c.CharClass = *sheet.CharClass
	}
	c.Agility = ParseInt(sheet.Agility)
	c.Knowledge = ParseInt(sheet.Knowledge)
	c.Presence = ParseInt(sheet.Presence)
	c.Strength = ParseInt(sheet.Strength)
	c.HPCurrent = ParseInt(sheet.HPCurrent)
	c.HPMax = ParseInt(sheet.HPMax)
	c.DestinyPoints = ParseInt(sheet.DestinyPoints)
	c.Bits = sheet.Bits
	c.Equipment = sheet.Equipment
	c.Notes = sheet.Notes
	if err := s.repo.UpdateCharacter(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCharacter deletes the user's character and returns what was deleted.
func (s *Service) DeleteCharacter(ctx context.Context, user *models.User, id int64) (*models.Character, error) {
	c, err := s.OwnedCharacter(ctx, user, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.DeleteCharacter(ctx, c.ID); err != nil {
		return nil, err
	}
	return c, nil
}

// ParseInt converts a form value to an int. Blank or malformed input yields 0.
func ParseInt(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return v
}

// RollRequest is a dice roll submitted by a player.
type RollRequest struct {
	Dice     string
	Modifier int
	Reason   string
}

// Roll rolls the requested die for user and appends the result to the feed.
// A malformed dice spec returns an InvalidInput error and logs nothing.
func (s *Service) Roll(ctx context.Context, user *models.User, req RollRequest) (dice.Roll, error) {
	sides, err := dice.ParseSides(req.Dice)
	if err != nil {
		return dice.Roll{}, err
	}
	roll, err := s.roller.RollDice(sides, req.Modifier)
	if err != nil {
		return dice.Roll{}, err
	}
	entry := &models.GameLog{
		Username: user.Username,
		Message:  FormatRollMessage(req.Dice, req.Modifier, roll.Total, req.Reason),
	}
	if err := s.repo.CreateGameLog(ctx, entry); err != nil {
		return dice.Roll{}, err
	}
	return roll, nil
}

// FormatRollMessage renders a roll for the feed, e.g. "Rolled d20+2 = 15 (Strength Test)".
// The modifier is always prefixed with "+", so -1 renders as "+-1".
func FormatRollMessage(diceSpec string, modifier, total int, reason string) string {
	var b strings.Builder
	b.WriteString("Rolled ")
	b.WriteString(diceSpec)
	if modifier != 0 {
		fmt.Fprintf(&b, "+%d", modifier)
	}
	fmt.Fprintf(&b, " = %d (%s)", total, reason)
	return truncate(b.String(), models.MaxLogMessageLength)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// RecentLogs returns the latest feed entries, newest first.
func (s *Service) RecentLogs(ctx context.Context) ([]*models.GameLog, error) {
	return s.repo.ListRecentGameLogs(ctx, RecentLogLimit)
}
