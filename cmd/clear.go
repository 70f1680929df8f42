/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>
*/
package cmd

import (
	"context"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/wikipeople/wpdb/internal/iodb"
)

// getClearCmd returns the clear command.
func getClearCmd() *cobra.Command {
	var forceClear bool

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete synced person records",
		Long: `Clear deletes every person record the sync pipeline created.

Manually curated records (is_manual) and the import log audit
trail are kept. The schema stays in place, so a fresh 'wpdb sync'
can repopulate the table.

Use --force to skip the confirmation prompt.

Examples:
  wpdb clear
  wpdb clear --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClear(cmd, args, forceClear)
		},
	}

	clearCmd.Flags().BoolVarP(&forceClear, "force", "f",
		false, "delete without confirmation")

	return clearCmd
}

func runClear(
	_ *cobra.Command,
	_ []string,
	force bool,
) error {
	ctx := context.Background()

	// Create database operator
	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer op.Close()

	gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)

	if !force {
		gn.Warn("\nWarning: this deletes every synced person record.")
		gn.Warn("Manually curated records and import logs survive.")

		confirmed, err := confirm("\nDo you want to continue?")
		if err != nil {
			gn.Warn("Failed to read user input")
			return err
		}
		if !confirmed {
			gn.Info("Aborted. No changes made.")
			return nil
		}
	}

	deleted, err := op.ClearPeople(ctx)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info("Removed <em>%s</em> person records",
		humanize.Comma(deleted))
	gn.Info("Run 'wpdb sync' to repopulate the database")

	return nil
}
