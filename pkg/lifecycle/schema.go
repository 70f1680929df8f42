package lifecycle

import (
	"context"

	"github.com/wikipeople/wpdb/pkg/config"
)

// SchemaManager defines the interface for database schema management.
// It uses GORM AutoMigrate for tables and columns, plus raw DDL for the
// parts GORM cannot express: PostgreSQL extensions and the PostGIS
// geometry column. Schema management is idempotent - safe to run
// multiple times.
type SchemaManager interface {
	// Create creates the initial database schema using GORM AutoMigrate.
	// Also enables the pg_trgm and postgis extensions and adds the
	// geometry column used by spatial search.
	// If tables already exist, behavior depends on user confirmation via DropAllTables.
	Create(ctx context.Context, cfg *config.Config) error

	// Migrate updates the database schema to the latest version using GORM AutoMigrate.
	// GORM handles schema version tracking automatically.
	Migrate(ctx context.Context, cfg *config.Config) error
}
