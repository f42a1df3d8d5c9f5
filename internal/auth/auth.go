// Package auth registers and authenticates users and checks character ownership.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"starborg-web/internal/apperr"
	"starborg-web/internal/models"
	"starborg-web/internal/security"
)

// MaxUsernameLength is the longest accepted username in characters.
const MaxUsernameLength = 150

// Messages shown to users.
const (
	MsgUserExists         = "User already exists"
	MsgInvalidCredentials = "Invalid username or password"
	MsgCredentialsMissing = "Username and password are required"
	MsgAccessDenied       = "Access Denied"
)

type UserRepository interface {
	CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

type Service struct {
	users UserRepository
}

func NewService(users UserRepository) *Service {
	return &Service{users: users}
}

// Register creates a new user.
// It returns InvalidInput for blank or overlong credentials and Conflict when
// the username is taken.
func (s *Service) Register(ctx context.Context, username, password string) (*models.User, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, apperr.New(apperr.CodeInvalidInput, MsgCredentialsMissing)
	}
	if utf8.RuneCountInString(username) > MaxUsernameLength {
		return nil, apperr.New(apperr.CodeInvalidInput, fmt.Sprintf("Username must be at most %d characters", MaxUsernameLength))
	}
	_, err := s.users.GetUserByUsername(ctx, username)
	if err == nil {
		return nil, apperr.New(apperr.CodeConflict, MsgUserExists)
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}
	hash, err := security.HashPassword(password)
	if errors.Is(err, security.ErrPasswordTooLong) {
		return nil, apperr.Wrap(apperr.CodeInvalidInput, "Password is too long", err)
	} else if err != nil {
		return nil, err
	}
	u, err := s.users.CreateUser(ctx, username, hash)
	if errors.Is(err, apperr.ErrConflict) {
		// lost a race with a concurrent registration
		return nil, apperr.Wrap(apperr.CodeConflict, MsgUserExists, err)
	} else if err != nil {
		return nil, err
	}
	return u, nil
}

// Login returns the user matching username and password or an Unauthorized error.
func (s *Service) Login(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.users.GetUserByUsername(ctx, username)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.New(apperr.CodeUnauthorized, MsgInvalidCredentials)
	} else if err != nil {
		return nil, err
	}
	if !security.ComparePasswords(u.PasswordHash, password) {
		return nil, apperr.New(apperr.CodeUnauthorized, MsgInvalidCredentials)
	}
	return u, nil
}

// User returns the user with the given ID. A missing user is reported as
// Unauthorized because it can only happen for a stale session.
func (s *Service) User(ctx context.Context, id int64) (*models.User, error) {
	u, err := s.users.GetUserByID(ctx, id)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.Wrap(apperr.CodeUnauthorized, "user no longer exists", err)
	}
	return u, err
}

// RequireOwnership returns a Forbidden error unless c belongs to u.
func RequireOwnership(c *models.Character, u *models.User) error {
	if c == nil || u == nil || c.UserID != u.ID {
		return apperr.New(apperr.CodeForbidden, MsgAccessDenied)
	}
	return nil
}
