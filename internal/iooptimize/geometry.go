package iooptimize

import (
	"context"
	"log/slog"
)

// backfillGeometry fills the geometry column for records that carry
// coordinates but no point yet, such as rows restored from a dump or
// written while a geometry refresh was failing.
func (o *optimizer) backfillGeometry(ctx context.Context) error {
	tag, err := o.operator.Pool().Exec(ctx, `
		UPDATE people
		SET geom = ST_SetSRID(ST_MakePoint(lng, lat), 4326)
		WHERE geom IS NULL
		  AND lat IS NOT NULL AND lng IS NOT NULL`)
	if err != nil {
		return GeometryError(err)
	}

	if n := tag.RowsAffected(); n > 0 {
		slog.Info("Geometry backfilled", "records", n)
	}
	return nil
}
