// Package client defines the contracts for the external services the
// pipeline consumes: the encyclopedia (wiki) API, the knowledge graph
// SPARQL endpoint, and the geocoding service. Implementations live in
// internal/iowiki, internal/iograph and internal/iogeo; the sync and
// discovery code depends only on these interfaces, so tests can swap
// in fakes without touching the network.
//
// All three services enforce request-rate ceilings, so every method
// takes a context with a deadline and implementations pace or retry
// as their service requires. A service that cannot answer reports an
// unavailability error; "this entity does not exist" is expressed in
// the result, never as an error.
package client

import "context"

// PageMember is one page listed in a category.
type PageMember struct {
	// PageID is the wiki's stable numeric page id.
	PageID int64
	// Title is the page title, unique per wiki.
	Title string
}

// PageDetails is the per-page metadata from a batch details lookup.
type PageDetails struct {
	PageID int64
	Title  string
	// Summary is the intro extract in plain text.
	Summary string
	// ImageURL points at the lead image thumbnail, if any.
	ImageURL string
	// GraphID is the knowledge graph entity id tied to the page
	// (empty when the page has none).
	GraphID string
}

// PersonFacts holds what the knowledge graph knows about one person.
// Dates come back in the endpoint's own formats (ISO timestamps or
// prose); normalization happens later in the pipeline.
type PersonFacts struct {
	// GraphID is the entity id the facts belong to.
	GraphID string

	BirthDate  string
	DeathDate  string
	BirthPlace string
	DeathPlace string

	// Occupations are raw occupation labels, not yet mapped to
	// canonical tags.
	Occupations []string
}

// Coordinates is a geographic point in WGS84.
type Coordinates struct {
	Lat float64
	Lng float64
}

// Encyclopedia reads the wiki: category structure, page metadata and
// page view counts.
type Encyclopedia interface {
	// CategoryMembers lists every page in a category, draining the
	// continuation pagination.
	CategoryMembers(ctx context.Context, category string) ([]PageMember, error)

	// CategoriesByPrefix lists category titles starting with prefix,
	// draining the continuation pagination.
	CategoriesByPrefix(ctx context.Context, prefix string) ([]string, error)

	// PageDetails fetches extract, lead image, and knowledge graph id
	// for the given pages, chunked to the API's batch ceiling. Pages
	// the API does not know are absent from the result.
	PageDetails(ctx context.Context, pageIDs []int64) (map[int64]PageDetails, error)

	// MonthlyViews sums the monthly page views for a title over the
	// configured window. A title with no pageview data has zero views.
	MonthlyViews(ctx context.Context, title string) (int64, error)

	// PageHTML fetches the rendered page for infobox parsing.
	PageHTML(ctx context.Context, title string) (string, error)
}

// KnowledgeGraph answers batched entity queries over SPARQL.
// Inputs are chunked client-side; a failed chunk is logged and
// skipped. Both methods fail only when every chunk failed, which
// callers may treat as the service being down.
type KnowledgeGraph interface {
	// Humans reports which of the given entity ids carry an
	// instance-of-human assertion. Ids from failed chunks are absent.
	Humans(ctx context.Context, ids []string) (map[string]bool, error)

	// PersonFacts fetches birth/death facts and occupation labels for
	// the given entity ids, merged per entity.
	PersonFacts(ctx context.Context, ids []string) (map[string]PersonFacts, error)
}

// Geocoder resolves free-text place names to coordinates. Lookups are
// best-effort: a place the service cannot resolve yields a nil result
// and no error.
type Geocoder interface {
	Geocode(ctx context.Context, place string) (*Coordinates, error)
}
