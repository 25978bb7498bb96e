package db

import (
	"context"
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"koon7r-storefront/apperr"
)

func TestInitDBWithoutDSN(t *testing.T) {
	DB = nil
	require.NoError(t, InitDB(context.Background(), ""))

	assert.False(t, Available())
	assert.True(t, errors.Is(Require(), apperr.ErrDatabaseUnavailable))
	assert.NoError(t, Migrate())
	assert.NoError(t, CloseDB())
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, e := range entries {
		names[e.Name()] = true
	}
	assert.True(t, names["0001_init.up.sql"])
	assert.True(t, names["0001_init.down.sql"])
}
