package lifecycle

import (
	"context"

	"github.com/wikipeople/wpdb/pkg/config"
)

// Optimizer defines the interface for applying performance optimizations
// to the database. Optimization recomputes percentile ratings from view
// counts, backfills geometry from stored coordinates, builds the search
// indexes (trigram, full-text, spatial, metadata) and refreshes planner
// statistics.
//
// Optimization is idempotent and safe to repeat: ratings and geometry
// are recomputed from current data, index builds use IF NOT EXISTS.
// Running it again after new syncs keeps ratings comparable across the
// whole collection.
type Optimizer interface {
	// Optimize recomputes derived data (ratings, geometry) and ensures
	// all search indexes exist, then runs VACUUM ANALYZE.
	Optimize(ctx context.Context, cfg *config.Config) error
}
