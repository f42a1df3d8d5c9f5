package auth_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starborg-web/internal/apperr"
	"starborg-web/internal/auth"
	"starborg-web/internal/db/testutil"
	"starborg-web/internal/models"
)

func TestRegister(t *testing.T) {
	d, _ := testutil.New()
	defer d.Close()
	s := auth.NewService(d)
	ctx := context.Background()
	t.Run("creates user with hashed password", func(t *testing.T) {
		// given
		testutil.TruncateTables(d)
		// when
		u, err := s.Register(ctx, "han", "falcon")
		// then
		if assert.NoError(t, err) {
			assert.Equal(t, "han", u.Username)
			assert.NotEqual(t, "falcon", u.PasswordHash)
		}
	})
	t.Run("duplicate username is a conflict and keeps the first user", func(t *testing.T) {
		// given
		testutil.TruncateTables(d)
		u1, err := s.Register(ctx, "leia", "first")
		require.NoError(t, err)
		// when
		_, err = s.Register(ctx, "leia", "second")
		// then
		assert.ErrorIs(t, err, apperr.ErrConflict)
		assert.Equal(t, auth.MsgUserExists, apperr.MessageOf(err))
		u2, err := s.Login(ctx, "leia", "first")
		if assert.NoError(t, err) {
			assert.Equal(t, u1.ID, u2.ID)
		}
		_, err = s.Login(ctx, "leia", "second")
		assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	})
	t.Run("rejects blank credentials", func(t *testing.T) {
		testutil.TruncateTables(d)
		for _, tc := range [][2]string{{"", "pw"}, {"  ", "pw"}, {"name", ""}} {
			_, err := s.Register(ctx, tc[0], tc[1])
			assert.ErrorIs(t, err, apperr.ErrInvalidInput, tc)
		}
	})
	t.Run("rejects overlong input", func(t *testing.T) {
		testutil.TruncateTables(d)
		_, err := s.Register(ctx, strings.Repeat("u", auth.MaxUsernameLength+1), "pw")
		assert.ErrorIs(t, err, apperr.ErrInvalidInput)
		_, err = s.Register(ctx, "u", strings.Repeat("p", 100))
		assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	})
}

func TestLogin(t *testing.T) {
	d, factory := testutil.New()
	defer d.Close()
	s := auth.NewService(d)
	ctx := context.Background()
	t.Run("accepts the right password", func(t *testing.T) {
		testutil.TruncateTables(d)
		u1, err := s.Register(ctx, "chewie", "rrraugh")
		require.NoError(t, err)
		u2, err := s.Login(ctx, "chewie", "rrraugh")
		if assert.NoError(t, err) {
			assert.Equal(t, u1.ID, u2.ID)
		}
	})
	t.Run("rejects a wrong password", func(t *testing.T) {
		testutil.TruncateTables(d)
		_, err := s.Register(ctx, "lando", "cape")
		require.NoError(t, err)
		_, err = s.Login(ctx, "lando", "Cape")
		assert.ErrorIs(t, err, apperr.ErrUnauthorized)
		assert.Equal(t, auth.MsgInvalidCredentials, apperr.MessageOf(err))
	})
	t.Run("rejects unknown users", func(t *testing.T) {
		testutil.TruncateTables(d)
		_, err := s.Login(ctx, "nobody", "pw")
		assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	})
	t.Run("user lookup of a vanished id is unauthorized", func(t *testing.T) {
		testutil.TruncateTables(d)
		u := factory.CreateUser()
		got, err := s.User(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, u.Username, got.Username)
		_, err = s.User(ctx, u.ID+1000)
		assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	})
}

func TestRequireOwnership(t *testing.T) {
	owner := &models.User{ID: 1}
	other := &models.User{ID: 2}
	c := &models.Character{ID: 10, UserID: 1}
	assert.NoError(t, auth.RequireOwnership(c, owner))
	assert.ErrorIs(t, auth.RequireOwnership(c, other), apperr.ErrForbidden)
	assert.ErrorIs(t, auth.RequireOwnership(c, nil), apperr.ErrForbidden)
}
