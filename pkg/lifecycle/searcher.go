package lifecycle

import (
	"context"

	"github.com/wikipeople/wpdb/pkg/config"
	"github.com/wikipeople/wpdb/pkg/search"
)

// Searcher defines the interface for querying the people table. All
// searches return ready-to-print matches ordered by relevance and
// capped by the given limit; limit values below 1 fall back to a
// default of 20.
//
// Text searches normalize the query the same way stored names were
// normalized, so punctuation and case differences do not matter.
type Searcher interface {
	// ByText finds people by name. The mode picks the strategy: fuzzy
	// trigram matching, full-text over names and summaries, or both
	// combined. Fuzzy results get an exact edit-distance rerank of the
	// top candidates.
	ByText(ctx context.Context, cfg *config.Config, query string, mode search.Mode, limit int) ([]search.Match, error)

	// ByRadius finds people born within radiusKM kilometers of a
	// point, closest first.
	ByRadius(ctx context.Context, cfg *config.Config, lat, lng, radiusKM float64, limit int) ([]search.Match, error)

	// ByPolygon finds people born inside a polygon given in WKT,
	// highest rated first.
	ByPolygon(ctx context.Context, cfg *config.Config, polygonWKT string, limit int) ([]search.Match, error)

	// ByOccupation finds people tagged with an occupation, highest
	// rated first.
	ByOccupation(ctx context.Context, cfg *config.Config, occupation string, limit int) ([]search.Match, error)

	// ByMetadata finds people whose metadata contains the given
	// key-value pairs, highest rated first.
	ByMetadata(ctx context.Context, cfg *config.Config, filter map[string]any, limit int) ([]search.Match, error)
}
