package iosearch

import (
	"context"
	"fmt"
	"strings"

	"github.com/gnames/gnfmt"

	"github.com/wikipeople/wpdb/pkg/config"
	"github.com/wikipeople/wpdb/pkg/search"
)

// ByOccupation finds people tagged with an occupation, highest rated
// first. Occupation tags are stored lowercased, so the input is
// lowercased too.
func (s *iosearch) ByOccupation(
	ctx context.Context,
	cfg *config.Config,
	occupation string,
	limit int,
) ([]search.Match, error) {
	occupation = strings.ToLower(strings.TrimSpace(occupation))
	if occupation == "" {
		return nil, BadFilterError(fmt.Errorf("empty occupation"))
	}
	filter := map[string]any{"occupations": []string{occupation}}
	return s.byContainment(ctx, "occupation", filter, limit)
}

// ByMetadata finds people whose metadata document contains the given
// key-value pairs.
func (s *iosearch) ByMetadata(
	ctx context.Context,
	cfg *config.Config,
	filter map[string]any,
	limit int,
) ([]search.Match, error) {
	if len(filter) == 0 {
		return nil, BadFilterError(fmt.Errorf("empty filter"))
	}
	return s.byContainment(ctx, "metadata", filter, limit)
}

// byContainment runs a JSONB @> query against the metadata document.
// The jsonb_path_ops index serves exactly this operator.
func (s *iosearch) byContainment(
	ctx context.Context,
	operation string,
	filter map[string]any,
	limit int,
) ([]search.Match, error) {
	if s.operator.Pool() == nil {
		return nil, NotConnectedError()
	}
	limit = clampLimit(limit)

	enc := gnfmt.GNjson{}
	doc, err := enc.Encode(filter)
	if err != nil {
		return nil, BadFilterError(err)
	}

	rows, err := s.operator.Pool().Query(ctx,
		"SELECT "+matchColumns+`
		 FROM people
		 WHERE meta_data @> $1::jsonb
		 ORDER BY rating DESC, view_count DESC
		 LIMIT $2`,
		string(doc), limit)
	if err != nil {
		return nil, QueryError(operation, err)
	}

	matches, err := scanMatches(rows, nil)
	if err != nil {
		return nil, QueryError(operation, err)
	}
	return matches, nil
}
