// Package iooptimize implements the Optimizer interface: percentile
// ratings from view counts, geometry backfill, search index builds and
// planner statistics. This is an impure I/O package that works
// directly on the database pool.
package iooptimize

import (
	"context"
	"log/slog"

	"github.com/gnames/gn"

	"github.com/wikipeople/wpdb/pkg/config"
	"github.com/wikipeople/wpdb/pkg/db"
	"github.com/wikipeople/wpdb/pkg/lifecycle"
)

// optimizer implements the Optimizer interface.
type optimizer struct {
	operator db.Operator
}

// NewOptimizer creates a new Optimizer.
func NewOptimizer(op db.Operator) lifecycle.Optimizer {
	return &optimizer{
		operator: op,
	}
}

// Optimize applies performance optimizations by executing 4
// sequential steps:
//  1. Recompute every rating as the percentile rank of its view count
//  2. Backfill the geometry column from stored coordinates
//  3. Build the search indexes (trigram, full-text, spatial, metadata)
//  4. Run VACUUM ANALYZE to update planner statistics
//
// Every step is idempotent, so optimize is safe to rerun after each
// sync; rerunning keeps ratings comparable across the whole
// collection.
func (o *optimizer) Optimize(
	ctx context.Context,
	cfg *config.Config,
) error {
	if o.operator.Pool() == nil {
		return NotConnectedError()
	}

	slog.Info("Starting database optimization")
	gn.Info("Optimization in progress, <em>it might take a while</em>...")

	slog.Info("Step 1/4: Recomputing ratings")
	if err := o.recomputeRatings(ctx); err != nil {
		return err
	}
	slog.Info("Step 1/4: Complete - Ratings recomputed")

	slog.Info("Step 2/4: Backfilling geometry")
	if err := o.backfillGeometry(ctx); err != nil {
		return err
	}
	slog.Info("Step 2/4: Complete - Geometry backfilled")

	slog.Info("Step 3/4: Building search indexes")
	if err := o.buildIndexes(ctx, cfg); err != nil {
		return err
	}
	slog.Info("Step 3/4: Complete - Search indexes ready")

	slog.Info("Step 4/4: Updating planner statistics")
	if err := o.vacuumAnalyze(ctx); err != nil {
		return err
	}
	slog.Info("Step 4/4: Complete - Statistics updated")

	slog.Info("Database optimization completed successfully")
	return nil
}
