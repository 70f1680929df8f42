// Package iosearch implements search over the people table: trigram
// fuzzy matching with an edit-distance rerank, full-text relevance
// over names and summaries, PostGIS radius and polygon queries, and
// JSONB metadata containment. All queries lean on indexes the
// optimizer builds; without them they still run, just slower.
package iosearch

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/wikipeople/wpdb/pkg/config"
	"github.com/wikipeople/wpdb/pkg/db"
	"github.com/wikipeople/wpdb/pkg/lifecycle"
	"github.com/wikipeople/wpdb/pkg/normalize"
	"github.com/wikipeople/wpdb/pkg/schema"
	"github.com/wikipeople/wpdb/pkg/search"
)

// defaultLimit caps result sets when the caller passes no limit.
const defaultLimit = 20

const matchColumns = `id, wiki_id, name, name_normal, slug, summary,
	image_url, category, meta_data, birth_date, birth_year, birth_place,
	lat, lng, view_count, rating, is_manual, created_at, updated_at`

// fulltextVector must stay identical to the expression indexed by
// idx_people_fulltext or the planner will not use the index.
const fulltextVector = `to_tsvector('simple', name || ' ' || coalesce(summary, ''))`

type iosearch struct {
	operator db.Operator
}

// New creates a new Searcher.
func New(op db.Operator) lifecycle.Searcher {
	return &iosearch{operator: op}
}

// ByText finds people by name with the requested strategy.
func (s *iosearch) ByText(
	ctx context.Context,
	cfg *config.Config,
	query string,
	mode search.Mode,
	limit int,
) ([]search.Match, error) {
	if s.operator.Pool() == nil {
		return nil, NotConnectedError()
	}
	limit = clampLimit(limit)
	normalQuery := normalize.Name(query)

	switch mode {
	case search.FullText:
		return s.fulltext(ctx, normalQuery, limit)
	case search.Combined:
		fz, err := s.fuzzy(ctx, cfg, normalQuery, limit)
		if err != nil {
			return nil, err
		}
		ft, err := s.fulltext(ctx, normalQuery, limit)
		if err != nil {
			return nil, err
		}
		return search.MergeUnique(fz, ft, limit), nil
	default:
		return s.fuzzy(ctx, cfg, normalQuery, limit)
	}
}

// fuzzy selects trigram candidates above the configured threshold and
// refines the head of the list with exact edit distances.
func (s *iosearch) fuzzy(
	ctx context.Context,
	cfg *config.Config,
	normalQuery string,
	limit int,
) ([]search.Match, error) {
	conn, err := s.operator.Pool().Acquire(ctx)
	if err != nil {
		return nil, QueryError("fuzzy", err)
	}
	defer conn.Release()

	// set_limit pins the threshold the % operator applies on this
	// connection.
	_, err = conn.Exec(ctx,
		"SELECT set_limit($1::real)", cfg.Search.FuzzyThreshold)
	if err != nil {
		return nil, QueryError("fuzzy", err)
	}

	rows, err := conn.Query(ctx,
		"SELECT "+matchColumns+`,
		   similarity(name_normal, $1) AS sim
		 FROM people
		 WHERE name_normal % $1
		 ORDER BY sim DESC, view_count DESC
		 LIMIT $2`,
		normalQuery, limit)
	if err != nil {
		return nil, QueryError("fuzzy", err)
	}

	matches, err := scanMatches(rows, func(m *search.Match) []any {
		return []any{&m.Similarity}
	})
	if err != nil {
		return nil, QueryError("fuzzy", err)
	}

	search.Rerank(matches, normalQuery, cfg.Search.RerankDepth)
	return matches, nil
}

func (s *iosearch) fulltext(
	ctx context.Context, query string, limit int,
) ([]search.Match, error) {
	rows, err := s.operator.Pool().Query(ctx,
		"SELECT "+matchColumns+`,
		   ts_rank(`+fulltextVector+`, q) AS rank
		 FROM people, plainto_tsquery('simple', $1) q
		 WHERE `+fulltextVector+` @@ q
		 ORDER BY rank DESC, view_count DESC
		 LIMIT $2`,
		query, limit)
	if err != nil {
		return nil, QueryError("fulltext", err)
	}

	matches, err := scanMatches(rows, func(m *search.Match) []any {
		return []any{&m.Rank}
	})
	if err != nil {
		return nil, QueryError("fulltext", err)
	}
	return matches, nil
}

// scanMatches drains rows into matches. extra adds scan targets for
// the ranking columns a particular query appends to matchColumns.
func scanMatches(
	rows pgx.Rows, extra func(*search.Match) []any,
) ([]search.Match, error) {
	defer rows.Close()

	var res []search.Match
	for rows.Next() {
		var m search.Match
		m.EditDistance = -1
		dests := personDests(&m.Person)
		if extra != nil {
			dests = append(dests, extra(&m)...)
		}
		if err := rows.Scan(dests...); err != nil {
			return nil, err
		}
		res = append(res, m)
	}
	return res, rows.Err()
}

// personDests lists scan destinations in matchColumns order.
func personDests(p *schema.Person) []any {
	return []any{
		&p.ID, &p.WikiID, &p.Name, &p.NameNormal, &p.Slug, &p.Summary,
		&p.ImageURL, &p.Category, &p.MetaData, &p.BirthDate, &p.BirthYear,
		&p.BirthPlace, &p.Lat, &p.Lng, &p.ViewCount, &p.Rating,
		&p.IsManual, &p.CreatedAt, &p.UpdatedAt,
	}
}

func clampLimit(limit int) int {
	if limit < 1 {
		return defaultLimit
	}
	return limit
}
