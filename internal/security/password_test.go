package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	t.Run("hash verifies against the password", func(t *testing.T) {
		hash, err := HashPassword("hunter2")
		require.NoError(t, err)
		assert.NotEqual(t, "hunter2", hash)
		assert.True(t, ComparePasswords(hash, "hunter2"))
		assert.False(t, ComparePasswords(hash, "hunter3"))
	})
	t.Run("hashes are salted", func(t *testing.T) {
		h1, err := HashPassword("same")
		require.NoError(t, err)
		h2, err := HashPassword("same")
		require.NoError(t, err)
		assert.NotEqual(t, h1, h2)
	})
	t.Run("rejects overlong passwords", func(t *testing.T) {
		_, err := HashPassword(strings.Repeat("x", 73))
		assert.ErrorIs(t, err, ErrPasswordTooLong)
	})
	t.Run("garbage hash never matches", func(t *testing.T) {
		assert.False(t, ComparePasswords("plaintext", "plaintext"))
	})
}
