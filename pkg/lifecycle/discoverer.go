package lifecycle

import (
	"context"

	"github.com/wikipeople/wpdb/pkg/config"
)

// Discoverer defines the interface for finding people categories on the
// wiki. Discovery walks category prefixes from the vocabulary, keeps
// categories that look occupational, drops the ones that match
// exclusion keywords or lack a language marker, and merges in the
// supplementary categories listed by hand.
//
// Discovery is read-only: it talks to the wiki API but never touches
// the database.
type Discoverer interface {
	// Discover returns the deduplicated, alphabetically sorted list of
	// category titles worth syncing. A prefix that fails to list is
	// logged and skipped; Discover fails when no prefix could be
	// fetched at all, or when the merged result is empty.
	Discover(ctx context.Context, cfg *config.Config) ([]string, error)
}
