package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "app.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestLoad(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
		assert.True(t, cfg.UsesDefaultSecret())
	})
	t.Run("file overrides defaults", func(t *testing.T) {
		p := writeFile(t, "port: \"9000\"\ndb_dsn: game.db\nsecret: s3cret\nsession_max_age: 2h\n")
		cfg, err := Load(p)
		require.NoError(t, err)
		assert.Equal(t, "9000", cfg.Port)
		assert.Equal(t, "game.db", cfg.DBDSN)
		assert.Equal(t, "sqlite3", cfg.DBDriver)
		assert.Equal(t, 2*time.Hour, cfg.SessionMaxAge)
		assert.False(t, cfg.UsesDefaultSecret())
	})
	t.Run("environment overrides file", func(t *testing.T) {
		p := writeFile(t, "port: \"9000\"\n")
		t.Setenv("PORT", "7000")
		t.Setenv("SECRET_KEY", "from-env")
		t.Setenv("LOGIN_RATE_PER_MINUTE", "3")
		cfg, err := Load(p)
		require.NoError(t, err)
		assert.Equal(t, "7000", cfg.Port)
		assert.Equal(t, "from-env", cfg.Secret)
		assert.Equal(t, 3, cfg.LoginRatePerMinute)
	})
	t.Run("database url selects postgres", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://u:p@localhost/starborg?sslmode=disable")
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "postgres", cfg.DBDriver)
		assert.Equal(t, "postgres://u:p@localhost/starborg?sslmode=disable", cfg.DBDSN)
	})
	t.Run("invalid yaml is an error", func(t *testing.T) {
		_, err := Load(writeFile(t, "port: [\n"))
		assert.Error(t, err)
	})
	t.Run("invalid env value is an error", func(t *testing.T) {
		t.Setenv("LOGIN_RATE_PER_MINUTE", "lots")
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		if assert.Error(t, err) {
			assert.Contains(t, err.Error(), "parse env:")
		}
	})
	t.Run("unsupported driver is an error", func(t *testing.T) {
		_, err := Load(writeFile(t, "db_driver: mysql\n"))
		assert.Error(t, err)
	})
}

func TestParseDatabaseURL(t *testing.T) {
	cases := []struct {
		url, driver, dsn string
	}{
		{"postgres://h/db", "postgres", "postgres://h/db"},
		{"postgresql://h/db", "postgres", "postgresql://h/db"},
		{"sqlite:///database.db", "sqlite3", "database.db"},
	}
	for _, tc := range cases {
		driver, dsn, err := ParseDatabaseURL(tc.url)
		if assert.NoError(t, err, tc.url) {
			assert.Equal(t, tc.driver, driver)
			assert.Equal(t, tc.dsn, dsn)
		}
	}
	for _, url := range []string{"mysql://h/db", "sqlite:///", "database.db"} {
		_, _, err := ParseDatabaseURL(url)
		assert.Error(t, err, url)
	}
}
