package ioschema

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wikipeople/wpdb/internal/iodb"
	"github.com/wikipeople/wpdb/internal/iotesting"
	"github.com/wikipeople/wpdb/pkg/lifecycle"
)

// TestManager_ImplementsInterface verifies manager
// implements lifecycle.SchemaManager interface.
func TestManager_ImplementsInterface(t *testing.T) {
	op := iodb.NewPgxOperator()
	var _ lifecycle.SchemaManager = NewManager(op)
}

// TestNewManager_CreatesManager verifies manager creation.
func TestNewManager_CreatesManager(t *testing.T) {
	op := iodb.NewPgxOperator()
	mgr := NewManager(op)
	require.NotNil(t, mgr)
}

// TestManager_NotConnected verifies schema operations fail
// cleanly without a database connection.
func TestManager_NotConnected(t *testing.T) {
	op := iodb.NewPgxOperator()
	mgr := NewManager(op)

	err := mgr.Create(context.Background(), iotesting.GetTestConfig())
	assert.Error(t, err)

	err = mgr.Migrate(context.Background(), iotesting.GetTestConfig())
	assert.Error(t, err)
}

// TestManager_CreateAndMigrate is an integration test; it needs a
// PostgreSQL server with the postgis packages available (see the
// note in internal/iodb/operator_test.go).
func TestManager_CreateAndMigrate(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	cfg := iotesting.GetTestConfig()
	op := iodb.NewPgxOperator()
	ctx := context.Background()

	err := op.Connect(ctx, &cfg.Database)
	require.NoError(t, err, "Connect should succeed with valid config")
	defer op.Close()

	// Start from a clean slate.
	err = op.DropAllTables(ctx)
	require.NoError(t, err)

	mgr := NewManager(op)
	err = mgr.Create(ctx, cfg)
	require.NoError(t, err, "Create should build schema on empty database")

	exists, err := op.TableExists(ctx, "people")
	require.NoError(t, err)
	assert.True(t, exists, "people table should exist after Create")

	exists, err = op.TableExists(ctx, "import_logs")
	require.NoError(t, err)
	assert.True(t, exists, "import_logs table should exist after Create")

	// The geometry column is managed outside GORM and must be
	// present for spatial search.
	var count int
	err = op.Pool().QueryRow(ctx,
		`SELECT count(*) FROM information_schema.columns
		 WHERE table_name = 'people' AND column_name = 'geom'`,
	).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "geom column should exist after Create")

	// Migrate on an up-to-date schema succeeds and changes nothing.
	err = mgr.Migrate(ctx, cfg)
	assert.NoError(t, err, "Migrate should be idempotent")
}
