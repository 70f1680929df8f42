package iooptimize

import (
	"context"
	"log/slog"
	"time"
)

// vacuumAnalyze reclaims dead tuples and refreshes the statistics the
// query planner relies on. VACUUM cannot run inside a transaction
// block, so it goes straight through the pool.
func (o *optimizer) vacuumAnalyze(ctx context.Context) error {
	start := time.Now()

	if _, err := o.operator.Pool().Exec(ctx, "VACUUM ANALYZE"); err != nil {
		return VacuumError(err)
	}

	slog.Info("VACUUM ANALYZE completed",
		"duration", time.Since(start).String())
	return nil
}
