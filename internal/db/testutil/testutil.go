// Package testutil provides an in-memory database and factories for tests.
package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/icrowley/fake"

	"starborg-web/internal/db"
	"starborg-web/internal/models"
)

// New creates and returns a migrated in-memory SQLite database for tests.
func New() (*db.DB, Factory) {
	d, err := db.Init(db.DriverSQLite, ":memory:")
	if err != nil {
		panic(err)
	}
	return d, NewFactory(d)
}

// TruncateTables removes all rows from the application tables.
func TruncateTables(d *db.DB) {
	for _, t := range []string{"sessions", "game_logs", "characters", "users"} {
		if _, err := d.Exec("DELETE FROM " + t); err != nil {
			panic(err)
		}
	}
}

// Factory creates test objects in the database.
type Factory struct {
	db *db.DB
}

func NewFactory(d *db.DB) Factory {
	return Factory{db: d}
}

var userSeq atomic.Int64

// CreateUser creates and returns a new user. Empty fields are filled with fake data.
// The password hash is stored as given, so tests that log in should pass a bcrypt hash.
func (f Factory) CreateUser(args ...models.User) *models.User {
	var arg models.User
	if len(args) > 0 {
		arg = args[0]
	}
	if arg.Username == "" {
		arg.Username = fmt.Sprintf("%s%d", fake.UserName(), userSeq.Add(1))
	}
	if arg.PasswordHash == "" {
		arg.PasswordHash = fake.SimplePassword()
	}
	u, err := f.db.CreateUser(context.Background(), arg.Username, arg.PasswordHash)
	if err != nil {
		panic(err)
	}
	return u
}

// CreateCharacter creates and returns a new character.
// When no owner is given a new user is created for it.
func (f Factory) CreateCharacter(args ...models.Character) *models.Character {
	var arg models.Character
	if len(args) > 0 {
		arg = args[0]
	}
	if arg.UserID == 0 {
		arg.UserID = f.CreateUser().ID
	}
	if arg.Name == "" {
		arg.Name = fake.FullName()
	}
	if arg.CharClass == "" {
		arg.CharClass = fake.JobTitle()
	}
	if arg.HPCurrent == 0 {
		arg.HPCurrent = 1
	}
	if arg.HPMax == 0 {
		arg.HPMax = models.StartingHPMax
	}
	if arg.Equipment == "" {
		arg.Equipment = fake.WordsN(3)
	}
	if arg.Notes == "" {
		arg.Notes = fake.Sentence()
	}
	if err := f.db.CreateCharacter(context.Background(), &arg); err != nil {
		panic(err)
	}
	return &arg
}

// CreateGameLog creates and returns a new game log entry.
func (f Factory) CreateGameLog(args ...models.GameLog) *models.GameLog {
	var arg models.GameLog
	if len(args) > 0 {
		arg = args[0]
	}
	if arg.Username == "" {
		arg.Username = fake.UserName()
	}
	if arg.Message == "" {
		arg.Message = fake.Sentence()
	}
	if arg.Timestamp.IsZero() {
		arg.Timestamp = time.Now().UTC()
	}
	if err := f.db.CreateGameLog(context.Background(), &arg); err != nil {
		panic(err)
	}
	return &arg
}
