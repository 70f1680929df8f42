/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/wikipeople/wpdb/internal/iodb"
	"github.com/wikipeople/wpdb/internal/iodiscover"
	"github.com/wikipeople/wpdb/internal/iogeo"
	"github.com/wikipeople/wpdb/internal/iograph"
	"github.com/wikipeople/wpdb/internal/iosync"
	"github.com/wikipeople/wpdb/internal/iovocab"
	"github.com/wikipeople/wpdb/internal/iowiki"
	"github.com/wikipeople/wpdb/pkg/config"
	"github.com/wikipeople/wpdb/pkg/errcode"
)

// getSyncCmd returns the sync command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getSyncCmd() *cobra.Command {
	var (
		force bool
		limit int
	)

	syncCmd := &cobra.Command{
		Use:   "sync [category...]",
		Short: "Ingest person records from the encyclopedia",
		Long: `Sync runs the ingestion pipeline: category members in, enriched
person records out.

This command:
  1. Connects to PostgreSQL using configuration settings
  2. Resolves categories (arguments, or discovery when none given)
  3. For each category: lists members, filters non-person pages,
     fetches page details, confirms humans against the knowledge
     graph, collects biography facts, pageview counts and
     birthplace coordinates
  4. Deduplicates against stored records and writes inserts and
     updates in batches
  5. Appends an import log entry per category

Records marked as manually curated are never touched. A repeated
sync skips records that are already stored; --force reprocesses
them instead, refreshing view counts and ratings and filling any
gaps while complete records keep their cached details.

Press Ctrl-C to stop gracefully; the run finishes the current
category, writes its import log entry, and exits.

Override flag --limit only works when syncing a single category.

Examples:
  # Sync everything discovery finds
  wpdb sync

  # Sync two specific categories
  wpdb sync "Ukrainian poets" "Ukrainian composers"

  # Re-enrich one category, capped to 10 records
  wpdb sync "Ukrainian poets" --force --limit 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runSync(cmd, args, force, limit)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	syncCmd.Flags().BoolVarP(&force, "force", "f", false,
		"re-enrich records that are already stored")
	syncCmd.Flags().IntVarP(&limit, "limit", "l", 0,
		"cap records per category (single category only)")

	return syncCmd
}

func runSync(
	cmd *cobra.Command,
	categories []string,
	force bool,
	limit int,
) error {
	ctx := context.Background()

	// Validate override flags (single category constraint)
	if cmd.Flags().Changed("limit") && len(categories) != 1 {
		gn.Warn(`<warn>Cannot cap records without a single category</warn>
   <warn>Name exactly one category to use --limit</warn>`)
		err := fmt.Errorf("invalid flag combination")
		slog.Error("invalid flag combination", "error", err)
		return err
	}

	// Build options from explicitly set flags
	var syncOpts []config.Option

	if len(categories) > 0 {
		syncOpts = append(syncOpts, config.OptSyncCategories(categories))
	}
	if cmd.Flags().Changed("limit") {
		syncOpts = append(syncOpts, config.OptSyncLimit(limit))
	}
	if cmd.Flags().Changed("force") {
		syncOpts = append(syncOpts, config.OptSyncForce(force))
	}

	// Apply sync-specific options to config
	if len(syncOpts) > 0 {
		cfg.Update(syncOpts)
	}

	// Create database operator
	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return err
	}
	defer op.Close()

	gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)

	// Check if database has tables
	hasTables, err := op.HasTables(ctx)
	if err != nil {
		return err
	}

	if !hasTables {
		err = &gn.Error{
			Code: errcode.DBEmptyDatabaseError,
			Msg: `<err>Database appears to be empty.</err>
   Run <em>'wpdb create'</em> first to initialize the schema.`,
			Err: errors.New("cannot sync into empty database"),
		}
		return err
	}

	// Assemble the pipeline
	enc := iowiki.New(cfg)
	kg := iograph.New(cfg)
	geo := iogeo.New(cfg)
	voc := iovocab.New(cfg)
	disc := iodiscover.New(enc, voc)
	syn := iosync.New(op, enc, kg, geo, voc, disc)

	// Stop at the next category boundary on Ctrl-C
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		gn.Info("\nStop requested, finishing the current category...")
		syn.Stop()
	}()

	if err = syn.Start(ctx, cfg); err != nil {
		return err
	}

	gn.Info("Sync started. Press <em>Ctrl-C</em> to stop " +
		"at the next category boundary.")

	if err = syn.Wait(); err != nil {
		return err
	}

	gn.Info(`Next steps:
	 - Run '<em>wpdb sync</em>' again to pick up new articles
	 - Run '<em>wpdb optimize</em>' to refresh ratings and indexes
	 - Database is ready for search
`)

	return nil
}
