/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>
*/
package cmd

import (
	"context"
	"fmt"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/wikipeople/wpdb/internal/iodiscover"
	"github.com/wikipeople/wpdb/internal/iovocab"
	"github.com/wikipeople/wpdb/internal/iowiki"
)

// getDiscoverCmd returns the discover command.
func getDiscoverCmd() *cobra.Command {
	discoverCmd := &cobra.Command{
		Use:   "discover",
		Short: "List people categories worth ingesting",
		Long: `Discover walks the category prefixes from vocab.yaml through the
encyclopedia's listing API and prints the categories a sync run
would process.

A category survives the filter when it contains an occupation
keyword, contains no exclusion keyword, and carries a language
marker (unless the prefix it came from already does). Categories
from supplementary_categories join unconditionally.

The command only talks to the encyclopedia API; it does not need
the database.

Examples:
  wpdb discover
  wpdb discover | wc -l`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiscover(cmd, args)
		},
	}

	return discoverCmd
}

func runDiscover(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	enc := iowiki.New(cfg)
	voc := iovocab.New(cfg)
	disc := iodiscover.New(enc, voc)

	gn.Info("Discovering categories, <em>this talks to the wiki API</em>...")

	categories, err := disc.Discover(ctx, cfg)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	for _, category := range categories {
		fmt.Println(category)
	}

	gn.Info("Found <em>%d</em> categories", len(categories))
	gn.Info("Run 'wpdb sync' to ingest them all, " +
		"or 'wpdb sync \"<category>\"' for a subset")

	return nil
}
