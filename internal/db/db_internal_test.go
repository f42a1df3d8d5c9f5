package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRebind(t *testing.T) {
	q := "SELECT a FROM t WHERE b = ? AND c = ?"
	assert.Equal(t, q, (&DB{driver: DriverSQLite}).rebind(q))
	assert.Equal(t, "SELECT a FROM t WHERE b = $1 AND c = $2", (&DB{driver: DriverPostgres}).rebind(q))
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "app.db?_foreign_keys=on", sqliteDSN("app.db"))
	assert.Equal(t, "file:app.db?cache=shared&_foreign_keys=on", sqliteDSN("file:app.db?cache=shared"))
	assert.Equal(t, "app.db?_fk=1", sqliteDSN("app.db?_fk=1"))
}

func TestExtractUpMigration(t *testing.T) {
	content := "-- +migrate Up\nCREATE TABLE a (id INT);\n-- +migrate Down\nDROP TABLE a;\n"
	assert.Equal(t, "\nCREATE TABLE a (id INT);\n", extractUpMigration(content))
	assert.Equal(t, "CREATE TABLE b (id INT);", extractUpMigration("CREATE TABLE b (id INT);"))
}
