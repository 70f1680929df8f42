package iosearch

import (
	"context"
	"errors"
	"regexp"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/wikipeople/wpdb/pkg/config"
	"github.com/wikipeople/wpdb/pkg/search"
)

var rePolygonWKT = regexp.MustCompile(`(?i)^\s*POLYGON\s*\(`)

// ByRadius finds people born within radiusKM kilometers of a point,
// closest first.
func (s *iosearch) ByRadius(
	ctx context.Context,
	cfg *config.Config,
	lat, lng, radiusKM float64,
	limit int,
) ([]search.Match, error) {
	if s.operator.Pool() == nil {
		return nil, NotConnectedError()
	}
	limit = clampLimit(limit)

	rows, err := s.operator.Pool().Query(ctx,
		"SELECT "+matchColumns+`,
		   ST_Distance(
		     geom::geography,
		     ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography
		   ) / 1000 AS distance_km
		 FROM people
		 WHERE geom IS NOT NULL
		   AND ST_DWithin(
		     geom::geography,
		     ST_SetSRID(ST_MakePoint($2, $1), 4326)::geography,
		     $3 * 1000)
		 ORDER BY distance_km
		 LIMIT $4`,
		lat, lng, radiusKM, limit)
	if err != nil {
		return nil, QueryError("radius", err)
	}

	matches, err := scanMatches(rows, func(m *search.Match) []any {
		return []any{&m.DistanceKM}
	})
	if err != nil {
		return nil, QueryError("radius", err)
	}
	return matches, nil
}

// ByPolygon finds people born inside a WKT polygon, highest rated
// first.
func (s *iosearch) ByPolygon(
	ctx context.Context,
	cfg *config.Config,
	polygonWKT string,
	limit int,
) ([]search.Match, error) {
	if !rePolygonWKT.MatchString(polygonWKT) {
		return nil, BadPolygonError(polygonWKT, nil)
	}
	if s.operator.Pool() == nil {
		return nil, NotConnectedError()
	}
	limit = clampLimit(limit)

	rows, err := s.operator.Pool().Query(ctx,
		"SELECT "+matchColumns+`
		 FROM people
		 WHERE geom IS NOT NULL
		   AND ST_Contains(
		     ST_SetSRID(ST_GeomFromText($1), 4326), geom)
		 ORDER BY rating DESC, view_count DESC
		 LIMIT $2`,
		polygonWKT, limit)
	if err != nil {
		if isGeometryParseError(err) {
			return nil, BadPolygonError(polygonWKT, err)
		}
		return nil, QueryError("polygon", err)
	}

	matches, err := scanMatches(rows, nil)
	if err != nil {
		if isGeometryParseError(err) {
			return nil, BadPolygonError(polygonWKT, err)
		}
		return nil, QueryError("polygon", err)
	}
	return matches, nil
}

// isGeometryParseError recognizes the errors PostGIS raises for
// malformed WKT input.
func isGeometryParseError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	// XX000 is what lwgeom parse failures surface as; 22023 covers
	// invalid-parameter variants.
	return pgErr.Code == "XX000" || pgErr.Code == "22023"
}
