package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneypal/internal/model"
)

func TestMigrateSetsSchemaVersion(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	var version int
	err := store.db.QueryRowContext(context.Background(), "PRAGMA user_version").Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestMigrateIdempotent(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	id := mustInsert(t, store, "survives re-migration", 100, model.CategoryMisc, "2024-03-01")

	// Running migrations on an up-to-date database is a no-op.
	require.NoError(t, store.Migrate(ctx))

	exp, err := store.GetExpense(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, exp)
	assert.Equal(t, "survives re-migration", exp.Note)
}

func TestMigrateSeedsSettingsRow(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	var count int
	err := store.db.QueryRowContext(context.Background(),
		"SELECT COUNT(*) FROM settings WHERE id = 1").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
