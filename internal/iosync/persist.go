package iosync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/wikipeople/wpdb/pkg/config"
	"github.com/wikipeople/wpdb/pkg/schema"
	"github.com/wikipeople/wpdb/pkg/vocab"
)

// persistCandidates resolves every candidate of a category and writes
// the results. Individual record failures are counted, not fatal; the
// category succeeds as long as the writes themselves can proceed.
func (s *syncer) persistCandidates(
	ctx context.Context,
	cfg *config.Config,
	voc *vocab.Vocabulary,
	category string,
	stats *categoryStats,
	cands []*candidate,
) error {
	res := s.resolveCandidates(ctx, cfg, voc, category, stats, cands)

	s.insertPeople(ctx, cfg, stats, res.inserts)
	s.updatePeople(ctx, stats, res.updates)

	if err := s.refreshGeometry(ctx, res.geomIDs); err != nil {
		// The geometry column is derived; the optimizer backfills it.
		slog.Warn("Geometry refresh failed", "error", err)
	}
	return nil
}

// insertPeople writes new records in multi-row batches. A failed batch
// falls back to per-record inserts so one bad record cannot sink its
// whole batch.
func (s *syncer) insertPeople(
	ctx context.Context,
	cfg *config.Config,
	stats *categoryStats,
	people []schema.Person,
) {
	if len(people) == 0 {
		return
	}
	pool := s.operator.Pool()
	batchSize := cfg.Database.BatchSize
	if batchSize < 1 {
		batchSize = len(people)
	}

	for start := 0; start < len(people); start += batchSize {
		end := min(start+batchSize, len(people))
		batch := people[start:end]

		rows := make([]string, len(batch))
		args := make([]any, 0, len(batch)*personColumnCount)
		for i := range batch {
			rows[i] = "(" + placeholders(i*personColumnCount+1) + ")"
			args = append(args, personArgs(&batch[i])...)
		}
		query := fmt.Sprintf(
			"INSERT INTO people (%s) VALUES %s ON CONFLICT (wiki_id) DO NOTHING",
			personColumns, strings.Join(rows, ", "))

		tag, err := pool.Exec(ctx, query, args...)
		if err != nil {
			slog.Warn("Batch insert failed, retrying per record",
				"size", len(batch), "error", err)
			for i := range batch {
				s.insertOne(ctx, stats, &batch[i])
			}
			continue
		}
		stats.created += int(tag.RowsAffected())
	}
}

// insertOne writes a single record, retrying once with a suffixed slug
// when the slug is taken by a different person.
func (s *syncer) insertOne(
	ctx context.Context, stats *categoryStats, p *schema.Person,
) {
	query := fmt.Sprintf(
		"INSERT INTO people (%s) VALUES (%s) ON CONFLICT (wiki_id) DO NOTHING",
		personColumns, placeholders(1))

	tag, err := s.operator.Pool().Exec(ctx, query, personArgs(p)...)
	if isUniqueViolation(err) {
		// wiki_id conflicts are absorbed by the ON CONFLICT clause, so
		// the only unique column left to collide is the slug.
		p.Slug = fmt.Sprintf("%s-%d", p.Slug, p.WikiID.Int64)
		slog.Info("Slug taken, suffixing", "name", p.Name, "slug", p.Slug)
		tag, err = s.operator.Pool().Exec(ctx, query, personArgs(p)...)
	}
	if err != nil {
		stats.failed++
		slog.Warn("Insert failed", "name", p.Name, "error", err)
		return
	}
	stats.created += int(tag.RowsAffected())
}

const updatePersonQuery = `
UPDATE people SET
  wiki_id = $2, name = $3, name_normal = $4, summary = $5,
  image_url = $6, category = $7, meta_data = $8, birth_date = $9,
  birth_year = $10, birth_place = $11, lat = $12, lng = $13,
  view_count = $14, rating = $15, updated_at = $16
WHERE id = $1 AND NOT is_manual`

// updatePeople refreshes matched records one by one. The slug column
// is absent from the query: a slug is fixed at first persistence.
// is_manual is rechecked at write time.
func (s *syncer) updatePeople(
	ctx context.Context, stats *categoryStats, people []schema.Person,
) {
	for i := range people {
		p := &people[i]
		_, err := s.operator.Pool().Exec(ctx, updatePersonQuery,
			p.ID, p.WikiID, p.Name, p.NameNormal, p.Summary, p.ImageURL,
			p.Category, p.MetaData, p.BirthDate, p.BirthYear, p.BirthPlace,
			p.Lat, p.Lng, p.ViewCount, p.Rating, p.UpdatedAt)
		if err != nil {
			stats.failed++
			slog.Warn("Update failed", "name", p.Name, "error", err)
			continue
		}
		stats.updated++
	}
}

// refreshGeometry recomputes the PostGIS point for records whose
// coordinates were written in this batch.
func (s *syncer) refreshGeometry(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := s.operator.Pool().Exec(ctx,
		`UPDATE people
		 SET geom = ST_SetSRID(ST_MakePoint(lng, lat), 4326)
		 WHERE id = ANY($1::uuid[])
		   AND lat IS NOT NULL AND lng IS NOT NULL`, ids)
	if err != nil {
		return PersistError("geometry refresh", err)
	}
	return nil
}

// writeImportLog appends one audit row for a finished category.
func (s *syncer) writeImportLog(
	ctx context.Context,
	category string, success bool, message string, processed int,
) error {
	_, err := s.operator.Pool().Exec(ctx,
		`INSERT INTO import_logs
		   (id, category, success, message, records_processed, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.NewString(), category, success, message, processed, time.Now())
	if err != nil {
		return ImportLogError(category, err)
	}
	return nil
}

// personArgs lists a record's values in personColumns order.
func personArgs(p *schema.Person) []any {
	return []any{
		p.ID, p.WikiID, p.Name, p.NameNormal, p.Slug, p.Summary,
		p.ImageURL, p.Category, p.MetaData, p.BirthDate, p.BirthYear,
		p.BirthPlace, p.Lat, p.Lng, p.ViewCount, p.Rating, p.IsManual,
		p.CreatedAt, p.UpdatedAt,
	}
}

// placeholders renders "$n, $n+1, ..." for one row of personColumns.
func placeholders(start int) string {
	ps := make([]string, personColumnCount)
	for i := range ps {
		ps[i] = fmt.Sprintf("$%d", start+i)
	}
	return strings.Join(ps, ", ")
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
