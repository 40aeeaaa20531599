package postgres

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPgx5URL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/fbb?sslmode=disable", pgx5URL("postgres://u:p@db:5432/fbb?sslmode=disable"))
	assert.Equal(t, "pgx5://u:p@db/fbb", pgx5URL("postgresql://u:p@db/fbb"))
	assert.Equal(t, "pgx5://x", pgx5URL("pgx5://x"))
}

func TestMigrations_ParesUpDown(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	require.NoError(t, err)

	ups, downs := map[string]bool{}, map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		}
	}
	require.NotEmpty(t, ups)
	assert.Equal(t, ups, downs)
}

func TestMigrations_DefinenProcedimientos(t *testing.T) {
	b, err := fs.ReadFile(migrationsFS, "migrations/000002_procedures.up.sql")
	require.NoError(t, err)
	sql := string(b)
	for _, fn := range []string{
		"get_user_permissions", "get_user_accessible_modules", "get_company_modules",
		"update_stock", "decrement_quantity",
	} {
		assert.Contains(t, sql, "FUNCTION "+fn+"(")
	}
}

func TestPage(t *testing.T) {
	l, o := page(0, -3)
	assert.Equal(t, 50, l)
	assert.Equal(t, 0, o)
	l, o = page(20, 40)
	assert.Equal(t, 20, l)
	assert.Equal(t, 40, o)
	l, _ = page(1000, 0)
	assert.Equal(t, 50, l)
}
