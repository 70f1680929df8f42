package iooptimize

import (
	"context"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
)

// recomputeRatings maps every view count onto its percentile rank on
// the 0 to 10 scale in one SQL pass. percent_rank gives 0 to the least
// viewed record and 1 to the most viewed one; ties share a rank. The
// pass replaces the provisional log-curve ratings assigned during
// sync.
func (o *optimizer) recomputeRatings(ctx context.Context) error {
	start := time.Now()

	tag, err := o.operator.Pool().Exec(ctx, `
		UPDATE people
		SET rating = sub.r
		FROM (
		  SELECT id,
		         percent_rank() OVER (ORDER BY view_count) * 10 AS r
		  FROM people
		) sub
		WHERE people.id = sub.id`)
	if err != nil {
		return RatingError(err)
	}

	slog.Info("Ratings recomputed",
		"records", tag.RowsAffected(),
		"duration", time.Since(start).String())
	gn.Info("<em>Recomputed ratings for %s records</em>",
		humanize.Comma(tag.RowsAffected()))
	return nil
}
