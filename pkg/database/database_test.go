package database

import (
	"io/fs"
	"testing"

	"box-office/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	cfg := utils.DatabaseConfig{Host: "db", Port: "5433", Name: "box", User: "app", Password: "p@ss word"}

	assert.Equal(t, "postgres://app:p%40ss%20word@db:5433/box?sslmode=disable", DSN(cfg, "postgres"))
	assert.Equal(t, "pgx5://app:p%40ss%20word@db:5433/box?sslmode=disable", DSN(cfg, "pgx5"))
}

func TestMigrationsArePaired(t *testing.T) {
	ups, err := fs.Glob(migrations, "migrations/*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(migrations, "migrations/*.down.sql")
	require.NoError(t, err)

	require.NotEmpty(t, ups)
	assert.Len(t, downs, len(ups))
}
