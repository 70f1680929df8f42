package lifecycle

import (
	"context"

	"github.com/wikipeople/wpdb/pkg/config"
)

// Syncer defines the interface for the ingestion pipeline. A sync run
// walks the configured categories, fetches page details and Wikidata
// facts for their members, normalizes and enriches the records, and
// upserts them into the people table. Each category gets an import log
// entry whether it succeeds or fails.
//
// Runs are incremental: a member that already has a stored record is
// skipped, so interrupted runs can resume by rerunning sync. Force in
// the sync options disables the skip; stored records are reprocessed,
// though complete ones still reuse their cached details.
type Syncer interface {
	// Start launches a sync run in the background and returns as soon
	// as the run is accepted. Only one run can be active at a time;
	// starting while a run is active is an error.
	Start(ctx context.Context, cfg *config.Config) error

	// Stop requests a graceful stop. The active run finishes the
	// category it is working on, writes its import log entry, and
	// exits. Stop is a no-op when no run is active.
	Stop()

	// Active reports whether a sync run is currently in progress.
	Active() bool

	// Wait blocks until the active run finishes and returns its error.
	// It returns immediately when no run is active.
	Wait() error
}
