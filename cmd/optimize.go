/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>
*/
package cmd

import (
	"context"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/wikipeople/wpdb/internal/iodb"
	"github.com/wikipeople/wpdb/internal/iooptimize"
)

// getOptimizeCmd returns the optimize command.
func getOptimizeCmd() *cobra.Command {
	optimizeCmd := &cobra.Command{
		Use:   "optimize",
		Short: "Optimize database for search",
		Long: `Optimize the database for fast search queries.

This command recomputes popularity ratings as percentile ranks of
pageview counts, backfills geometry for records with coordinates,
builds the trigram, full-text, spatial and metadata indexes, and
runs VACUUM ANALYZE.

Prerequisites:
  - Database must be created (run 'wpdb create' first)
  - Database should be populated (run 'wpdb sync' first)

Index builds run concurrently, bounded by jobs_number.

Examples:
  # Optimize with default settings
  wpdb optimize`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOptimize(cmd, args)
		},
	}

	return optimizeCmd
}

func runOptimize(
	_ *cobra.Command,
	_ []string,
) error {
	ctx := context.Background()

	// Create database operator
	op := iodb.NewPgxOperator()
	err := op.Connect(ctx, &cfg.Database)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)

	// Check if database has tables
	hasTables, err := op.HasTables(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if !hasTables {
		gn.Warn(`Warning: Database appears to be empty.
Run 'wpdb create' first to initialize the schema.`)
		return nil
	}

	// Create optimizer
	optimizer := iooptimize.NewOptimizer(op)

	// Run optimize
	if err := optimizer.Optimize(ctx, cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	gn.Info(`Database optimization is complete!

Ratings and indexes are fresh; 'wpdb search' is ready.
You can re-run 'wpdb optimize' anytime, for example after each sync.`)

	return nil
}
