// Package ioschema implements SchemaManager interface for
// database schema management. This is an impure I/O package
// that wraps GORM AutoMigrate functionality plus the raw DDL
// GORM cannot express: PostgreSQL extensions and the PostGIS
// geometry column.
package ioschema

import (
	"context"

	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/wikipeople/wpdb/pkg/config"
	"github.com/wikipeople/wpdb/pkg/db"
	"github.com/wikipeople/wpdb/pkg/lifecycle"
	"github.com/wikipeople/wpdb/pkg/schema"
)

// manager implements the lifecycle.SchemaManager interface
// using GORM AutoMigrate.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) lifecycle.SchemaManager {
	return &manager{operator: op}
}

// Create creates the initial database schema: extensions first
// (the geometry column type needs PostGIS), then tables via GORM
// AutoMigrate, then the geometry column itself.
func (m *manager) Create(
	ctx context.Context,
	cfg *config.Config,
) error {
	pool := m.operator.Pool()
	if pool == nil {
		return NotConnectedError()
	}

	if err := m.ensureExtensions(ctx); err != nil {
		return err
	}

	db := stdlib.OpenDBFromPool(pool)

	// Connect with GORM
	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: db}),
		&gorm.Config{},
	)
	if err != nil {
		return GORMConnectionError(err)
	}

	// Run GORM AutoMigrate to create schema
	if err := schema.Migrate(gormDB); err != nil {
		return CreateSchemaError(err)
	}

	if err := m.ensureGeometry(ctx); err != nil {
		return err
	}

	return nil
}

// Migrate updates the database schema to the latest version
// using GORM AutoMigrate. All steps are additive and
// idempotent, so Migrate is safe on a freshly created schema.
func (m *manager) Migrate(
	ctx context.Context,
	cfg *config.Config,
) error {
	pool := m.operator.Pool()
	if pool == nil {
		return NotConnectedError()
	}

	if err := m.ensureExtensions(ctx); err != nil {
		return err
	}

	db := stdlib.OpenDBFromPool(pool)

	// Connect with GORM
	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: db}),
		&gorm.Config{},
	)
	if err != nil {
		return GORMConnectionError(err)
	}

	// Run GORM AutoMigrate
	if err := schema.Migrate(gormDB); err != nil {
		return MigrateSchemaError(err)
	}

	if err := m.ensureGeometry(ctx); err != nil {
		return err
	}

	return nil
}

// ensureExtensions enables the PostgreSQL extensions the schema
// depends on: pg_trgm for trigram name matching and postgis for
// spatial search.
func (m *manager) ensureExtensions(ctx context.Context) error {
	pool := m.operator.Pool()
	if pool == nil {
		return NotConnectedError()
	}

	extensions := []string{"pg_trgm", "postgis"}

	for _, ext := range extensions {
		q := "CREATE EXTENSION IF NOT EXISTS " + ext
		if _, err := pool.Exec(ctx, q); err != nil {
			return ExtensionError(ext, err)
		}
	}

	return nil
}

// ensureGeometry adds the geom column to the people table. GORM
// does not know the PostGIS geometry type, so the column lives
// outside the model and is maintained with raw SQL.
func (m *manager) ensureGeometry(ctx context.Context) error {
	pool := m.operator.Pool()
	if pool == nil {
		return NotConnectedError()
	}

	q := `ALTER TABLE people ` +
		`ADD COLUMN IF NOT EXISTS geom geometry(Point, 4326)`
	if _, err := pool.Exec(ctx, q); err != nil {
		return GeometryError(err)
	}

	return nil
}
