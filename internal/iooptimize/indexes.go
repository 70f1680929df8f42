package iooptimize

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wikipeople/wpdb/pkg/config"
	"github.com/wikipeople/wpdb/pkg/schema"
)

// buildIndexes creates the secondary search indexes of every model.
// Builds run concurrently bounded by JobsNumber; each statement uses
// IF NOT EXISTS, so reruns are cheap no-ops.
func (o *optimizer) buildIndexes(
	ctx context.Context, cfg *config.Config,
) error {
	jobs := cfg.JobsNumber
	if jobs < 1 {
		jobs = 1
	}

	var ddl []string
	for _, m := range schema.AllModels() {
		gen, ok := m.(schema.DDLGenerator)
		if !ok {
			continue
		}
		ddl = append(ddl, gen.IndexDDL()...)
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for _, stmt := range ddl {
		g.Go(func() error {
			start := time.Now()
			if _, err := o.operator.Pool().Exec(gCtx, stmt); err != nil {
				return IndexError(stmt, err)
			}
			slog.Debug("Index statement done",
				"duration", time.Since(start).String(),
				"statement", stmt)
			return nil
		})
	}
	return g.Wait()
}
