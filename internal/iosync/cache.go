package iosync

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/wikipeople/wpdb/pkg/client"
	"github.com/wikipeople/wpdb/pkg/schema"
)

// runContext carries the mutable state of one sync run: the geocode
// cache and the running totals. It is passed explicitly through the
// pipeline; the package keeps no run state.
type runContext struct {
	// geocode maps a normalized place to coordinates. A present nil
	// value is a cached "not found".
	geocode map[string]*client.Coordinates

	totals categoryStats
}

type categoryStats struct {
	created int
	updated int
	skipped int
	dropped int
	failed  int
}

// processed counts the records that made it into the database.
func (st categoryStats) processed() int {
	return st.created + st.updated
}

func (st *categoryStats) add(other categoryStats) {
	st.created += other.created
	st.updated += other.updated
	st.skipped += other.skipped
	st.dropped += other.dropped
	st.failed += other.failed
}

// newRunContext pre-warms the geocode cache from every stored
// coordinate pair, so places already resolved in earlier runs never
// cost a geocoder call again.
func (s *syncer) newRunContext(ctx context.Context) (*runContext, error) {
	run := &runContext{geocode: make(map[string]*client.Coordinates)}

	rows, err := s.operator.Pool().Query(ctx,
		`SELECT birth_place, lat, lng FROM people
		 WHERE birth_place <> '' AND lat IS NOT NULL AND lng IS NOT NULL`)
	if err != nil {
		return nil, PersistError("geocode cache prewarm", err)
	}
	defer rows.Close()

	for rows.Next() {
		var place string
		var lat, lng float64
		if err = rows.Scan(&place, &lat, &lng); err != nil {
			return nil, PersistError("geocode cache prewarm", err)
		}
		run.geocode[place] = &client.Coordinates{Lat: lat, Lng: lng}
	}
	if err = rows.Err(); err != nil {
		return nil, PersistError("geocode cache prewarm", err)
	}

	slog.Info("Geocode cache pre-warmed", "places", len(run.geocode))
	return run, nil
}

const personColumns = `id, wiki_id, name, name_normal, slug, summary,
	image_url, category, meta_data, birth_date, birth_year, birth_place,
	lat, lng, view_count, rating, is_manual, created_at, updated_at`

const personColumnCount = 19

func scanPerson(row pgx.Row) (*schema.Person, error) {
	var p schema.Person
	err := row.Scan(
		&p.ID, &p.WikiID, &p.Name, &p.NameNormal, &p.Slug, &p.Summary,
		&p.ImageURL, &p.Category, &p.MetaData, &p.BirthDate,
		&p.BirthYear, &p.BirthPlace, &p.Lat, &p.Lng, &p.ViewCount,
		&p.Rating, &p.IsManual, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// loadExisting maps wiki page ids to their stored records, queried in
// fixed-size batches. Ids with no stored record are absent.
func (s *syncer) loadExisting(
	ctx context.Context, pageIDs []int64, batchSize int,
) (map[int64]*schema.Person, error) {
	res := make(map[int64]*schema.Person, len(pageIDs))
	if batchSize < 1 {
		batchSize = len(pageIDs)
	}

	for start := 0; start < len(pageIDs); start += batchSize {
		end := min(start+batchSize, len(pageIDs))

		rows, err := s.operator.Pool().Query(ctx,
			"SELECT "+personColumns+" FROM people WHERE wiki_id = ANY($1)",
			pageIDs[start:end])
		if err != nil {
			return nil, err
		}
		for rows.Next() {
			p, err := scanPerson(rows)
			if err != nil {
				rows.Close()
				return nil, err
			}
			if p.WikiID.Valid {
				res[p.WikiID.Int64] = p
			}
		}
		rows.Close()
		if err = rows.Err(); err != nil {
			return nil, err
		}
	}
	return res, nil
}
