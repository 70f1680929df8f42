package iosync

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/wikipeople/wpdb/pkg/config"
	"github.com/wikipeople/wpdb/pkg/normalize"
	"github.com/wikipeople/wpdb/pkg/schema"
	"github.com/wikipeople/wpdb/pkg/vocab"
)

// resolution is the write plan for one category: brand-new records,
// matched records with fresh payloads, and the ids whose geometry
// column needs recomputing.
type resolution struct {
	inserts []schema.Person
	updates []schema.Person
	geomIDs []string
}

// resolveCandidates decides new-vs-update for every candidate and
// builds the final payloads. A matched manual record is a hard skip.
func (s *syncer) resolveCandidates(
	ctx context.Context,
	cfg *config.Config,
	voc *vocab.Vocabulary,
	categoryName string,
	stats *categoryStats,
	cands []*candidate,
) resolution {
	var res resolution
	now := time.Now()

	for _, c := range cands {
		match, err := s.matchPerson(ctx, cfg, c)
		if err != nil {
			stats.failed++
			slog.Warn("Resolution failed", "title", c.title, "error", err)
			continue
		}
		if match != nil && match.IsManual {
			stats.skipped++
			slog.Debug("Manual record, skipping", "title", c.title)
			continue
		}

		p := buildPerson(c, match, voc, categoryName, now)
		if match == nil {
			res.inserts = append(res.inserts, p)
		} else {
			res.updates = append(res.updates, p)
		}
		if p.Lat.Valid && p.Lng.Valid {
			res.geomIDs = append(res.geomIDs, p.ID)
		}
	}
	return res
}

// matchPerson finds the stored record a candidate resolves to: exact
// wiki id first, then exact normalized name, then the best trigram
// match above the dedup threshold. First match wins.
func (s *syncer) matchPerson(
	ctx context.Context, cfg *config.Config, c *candidate,
) (*schema.Person, error) {
	if c.existing != nil {
		return c.existing, nil
	}

	nameNormal := normalize.Name(c.title)
	pool := s.operator.Pool()

	row := pool.QueryRow(ctx,
		"SELECT "+personColumns+" FROM people WHERE name_normal = $1 LIMIT 1",
		nameNormal)
	p, err := scanPerson(row)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	// The % operator walks the trigram index; the explicit similarity
	// bound applies the configured threshold on top of it.
	row = pool.QueryRow(ctx,
		"SELECT "+personColumns+` FROM people
		 WHERE name_normal % $1 AND similarity(name_normal, $1) >= $2
		 ORDER BY similarity(name_normal, $1) DESC
		 LIMIT 1`,
		nameNormal, cfg.Sync.DedupThreshold)
	p, err = scanPerson(row)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	return nil, nil
}

// buildPerson assembles the write payload for one candidate. With a
// match it starts from the stored record and fresh non-empty values
// win; the slug never changes after first persistence.
func buildPerson(
	c *candidate,
	match *schema.Person,
	voc *vocab.Vocabulary,
	categoryName string,
	now time.Time,
) schema.Person {
	tags, primary := normalize.Occupations(
		c.facts.Occupations, voc.OccupationMap)
	category := primary
	if category == "" {
		category = normalize.CategoryLabel(categoryName, voc.CategoryMap)
	}

	fresh := schema.Metadata{
		"occupations": tags,
		"death_place": normalize.BirthPlace(
			c.facts.DeathPlace, voc.PolitySuffixes),
	}
	if year, ok := normalize.Year(c.facts.DeathDate); ok {
		fresh["death_year"] = year
	}

	if match == nil {
		p := schema.Person{
			ID:         uuid.NewString(),
			WikiID:     sql.NullInt64{Int64: c.pageID, Valid: true},
			Name:       c.title,
			NameNormal: normalize.Name(c.title),
			Slug:       normalize.Slug(c.title),
			Summary:    c.details.Summary,
			ImageURL:   c.details.ImageURL,
			Category:   category,
			MetaData:   schema.Metadata(nil).Merge(fresh),
			BirthDate:  c.facts.BirthDate,
			BirthPlace: c.birthPlace,
			ViewCount:  c.views,
			Rating:     c.rating,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if year, ok := normalize.Year(c.facts.BirthDate); ok {
			p.BirthYear = sql.NullInt32{Int32: int32(year), Valid: true}
		}
		if c.coords != nil {
			p.Lat = sql.NullFloat64{Float64: c.coords.Lat, Valid: true}
			p.Lng = sql.NullFloat64{Float64: c.coords.Lng, Valid: true}
		}
		return p
	}

	p := *match
	if !p.WikiID.Valid && c.pageID != 0 {
		p.WikiID = sql.NullInt64{Int64: c.pageID, Valid: true}
	}
	p.Name = c.title
	p.NameNormal = normalize.Name(c.title)
	if c.details.Summary != "" {
		p.Summary = c.details.Summary
	}
	if c.details.ImageURL != "" {
		p.ImageURL = c.details.ImageURL
	}
	if category != "" {
		p.Category = category
	}
	p.MetaData = p.MetaData.Merge(fresh)
	if c.facts.BirthDate != "" {
		p.BirthDate = c.facts.BirthDate
		if year, ok := normalize.Year(c.facts.BirthDate); ok {
			p.BirthYear = sql.NullInt32{Int32: int32(year), Valid: true}
		}
	}
	if c.birthPlace != "" {
		p.BirthPlace = c.birthPlace
	}
	if c.coords != nil {
		p.Lat = sql.NullFloat64{Float64: c.coords.Lat, Valid: true}
		p.Lng = sql.NullFloat64{Float64: c.coords.Lng, Valid: true}
	}
	p.ViewCount = c.views
	p.Rating = c.rating
	p.UpdatedAt = now
	return p
}
