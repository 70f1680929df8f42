package iosync

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/gn"

	"github.com/wikipeople/wpdb/internal/iowiki"
	"github.com/wikipeople/wpdb/pkg/client"
	"github.com/wikipeople/wpdb/pkg/config"
	"github.com/wikipeople/wpdb/pkg/normalize"
	"github.com/wikipeople/wpdb/pkg/schema"
	"github.com/wikipeople/wpdb/pkg/vocab"
)

// candidate carries one category member through the pipeline stages.
type candidate struct {
	pageID   int64
	title    string
	views    int64
	existing *schema.Person // stored record with the same wiki id

	details    client.PageDetails
	facts      client.PersonFacts
	birthPlace string // normalized
	coords     *client.Coordinates
	rating     float64
}

// fullyCached reports a stored record complete enough to skip all
// detail enrichment: coordinates, metadata, summary and image present,
// and not manually curated.
func fullyCached(p *schema.Person) bool {
	return p != nil && !p.IsManual &&
		p.Lat.Valid && p.Lng.Valid &&
		len(p.MetaData) > 0 && p.Summary != "" && p.ImageURL != ""
}

// processCategory runs one category through all pipeline stages and
// persists the survivors.
func (s *syncer) processCategory(
	ctx context.Context,
	cfg *config.Config,
	run *runContext,
	voc *vocab.Vocabulary,
	category string,
) (categoryStats, error) {
	var stats categoryStats

	gn.Info("(1/7) Fetching category members...")
	members, err := s.enc.CategoryMembers(ctx, category)
	if err != nil {
		return stats, CategoryError(category, err)
	}

	cands := make([]*candidate, 0, len(members))
	for _, m := range members {
		if !titleOK(m.Title) || voc.IsIgnoredTitle(m.Title) {
			stats.dropped++
			continue
		}
		cands = append(cands, &candidate{pageID: m.PageID, title: m.Title})
	}
	slog.Info("Category members fetched",
		"category", category,
		"members", len(members),
		"candidates", len(cands))

	gn.Info("(2/7) Loading stored records...")
	ids := make([]int64, len(cands))
	for i, c := range cands {
		ids[i] = c.pageID
	}
	existing, err := s.loadExisting(ctx, ids, cfg.Database.BatchSize)
	if err != nil {
		return stats, CategoryError(category, err)
	}
	for _, c := range cands {
		c.existing = existing[c.pageID]
	}

	// Incremental runs skip anything already stored; resumption after
	// an interruption costs nothing.
	if !cfg.Sync.Force {
		kept := cands[:0]
		for _, c := range cands {
			if c.existing != nil {
				stats.skipped++
				continue
			}
			kept = append(kept, c)
		}
		cands = kept
	}
	if len(cands) == 0 {
		gn.Message("<em>Nothing new in this category</em>")
		return stats, nil
	}

	gn.Info("(3/7) Fetching page views...")
	cands = s.enrichViews(ctx, cfg, cands)

	gn.Info("(4/7) Validating humanness...")
	cands, err = s.validateHumans(ctx, &stats, cands)
	if err != nil {
		return stats, CategoryError(category, err)
	}

	gn.Info("(5/7) Enriching details...")
	s.enrichDetails(ctx, voc, cands)

	gn.Info("(6/7) Geocoding birthplaces...")
	s.geocodeCandidates(ctx, run, cands)

	for _, c := range cands {
		c.rating = provisionalRating(c.views)
	}
	if cfg.Sync.Limit > 0 && len(cands) > cfg.Sync.Limit {
		cands = cands[:cfg.Sync.Limit]
	}

	gn.Info("(7/7) Saving records...")
	if err = s.persistCandidates(
		ctx, cfg, voc, category, &stats, cands,
	); err != nil {
		return stats, CategoryError(category, err)
	}
	return stats, nil
}

// enrichViews attaches view counts, sorts candidates by popularity and
// trims to a head multiple of the limit so the later stages stay
// bounded while the humanness filter can still thin the set.
func (s *syncer) enrichViews(
	ctx context.Context, cfg *config.Config, cands []*candidate,
) []*candidate {
	bar := pb.Full.Start(len(cands))
	bar.Set("prefix", "Page views: ")
	bar.Set(pb.CleanOnFinish, true)

	for _, c := range cands {
		if !cfg.Sync.Force && c.existing != nil && c.existing.ViewCount > 0 {
			c.views = c.existing.ViewCount
			bar.Increment()
			continue
		}
		views, err := s.enc.MonthlyViews(ctx, c.title)
		if err != nil {
			// An unknown view count sorts last, not out.
			slog.Warn("Cannot fetch page views",
				"title", c.title, "error", err)
		} else {
			c.views = views
		}
		bar.Increment()
	}
	bar.Finish()

	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].views > cands[j].views
	})
	if cfg.Sync.Limit > 0 {
		head := cfg.Sync.Limit * 3
		if len(cands) > head {
			cands = cands[:head]
		}
	}
	return cands
}

// validateHumans resolves graph ids through the batch details call and
// keeps only candidates the knowledge graph asserts are human. Stored
// candidates are trusted without re-validation; candidates with no
// resolvable graph id are dropped.
func (s *syncer) validateHumans(
	ctx context.Context, stats *categoryStats, cands []*candidate,
) ([]*candidate, error) {
	var detailIDs []int64
	for _, c := range cands {
		if !fullyCached(c.existing) {
			detailIDs = append(detailIDs, c.pageID)
		}
	}
	details := map[int64]client.PageDetails{}
	if len(detailIDs) > 0 {
		var err error
		details, err = s.enc.PageDetails(ctx, detailIDs)
		if err != nil {
			return nil, err
		}
	}
	for _, c := range cands {
		if d, ok := details[c.pageID]; ok {
			c.details = d
		}
	}

	kept := cands[:0]
	var verifyIDs []string
	for _, c := range cands {
		if c.existing == nil && c.details.GraphID == "" {
			stats.dropped++
			slog.Warn("No knowledge graph id, dropping", "title", c.title)
			continue
		}
		if c.existing == nil {
			verifyIDs = append(verifyIDs, c.details.GraphID)
		}
		kept = append(kept, c)
	}
	cands = kept

	if len(verifyIDs) == 0 {
		return cands, nil
	}
	humans, err := s.kg.Humans(ctx, verifyIDs)
	if err != nil {
		// Total validation failure fails open.
		slog.Warn("Humanness validation unavailable, keeping all candidates",
			"error", err)
		return cands, nil
	}

	kept = cands[:0]
	nonHuman := 0
	for _, c := range cands {
		if c.existing == nil && !humans[c.details.GraphID] {
			stats.dropped++
			nonHuman++
			continue
		}
		kept = append(kept, c)
	}
	if nonHuman > 0 {
		slog.Info("Dropped non-human pages", "count", nonHuman)
	}
	return kept, nil
}

// enrichDetails attaches knowledge graph facts, with the rendered
// infobox as a best-effort fallback for missing birth data. Fully
// cached candidates reuse their stored fields with zero network cost.
func (s *syncer) enrichDetails(
	ctx context.Context, voc *vocab.Vocabulary, cands []*candidate,
) {
	var factIDs []string
	for _, c := range cands {
		if fullyCached(c.existing) {
			continue
		}
		if c.details.GraphID != "" {
			factIDs = append(factIDs, c.details.GraphID)
		}
	}
	facts := map[string]client.PersonFacts{}
	if len(factIDs) > 0 {
		var err error
		facts, err = s.kg.PersonFacts(ctx, factIDs)
		if err != nil {
			// Candidates fall through to the infobox fallback.
			slog.Warn("Knowledge graph facts unavailable", "error", err)
			facts = map[string]client.PersonFacts{}
		}
	}

	for _, c := range cands {
		if fullyCached(c.existing) {
			continue
		}
		if f, ok := facts[c.details.GraphID]; ok {
			c.facts = f
		}
		if c.facts.BirthDate == "" || c.facts.BirthPlace == "" {
			s.infoboxFallback(ctx, c)
		}

		c.birthPlace = normalize.BirthPlace(
			c.facts.BirthPlace, voc.PolitySuffixes)
		if normalize.IsNumeric(c.birthPlace) {
			slog.Warn("Numeric birthplace, discarding",
				"title", c.title, "place", c.birthPlace)
			c.birthPlace = ""
		}
	}
}

func (s *syncer) infoboxFallback(ctx context.Context, c *candidate) {
	html, err := s.enc.PageHTML(ctx, c.title)
	if err != nil {
		slog.Debug("Infobox fetch failed", "title", c.title, "error", err)
		return
	}
	box := iowiki.ParseInfobox(html)
	if c.facts.BirthDate == "" {
		c.facts.BirthDate = box.BirthDate
	}
	if c.facts.BirthPlace == "" {
		c.facts.BirthPlace = box.BirthPlace
	}
}

// geocodeCandidates resolves birthplaces to coordinates through the
// run-scoped cache. Stored non-manual coordinates are reused as is.
func (s *syncer) geocodeCandidates(
	ctx context.Context, run *runContext, cands []*candidate,
) {
	for _, c := range cands {
		if c.existing != nil && !c.existing.IsManual &&
			c.existing.Lat.Valid && c.existing.Lng.Valid {
			c.coords = &client.Coordinates{
				Lat: c.existing.Lat.Float64,
				Lng: c.existing.Lng.Float64,
			}
			continue
		}
		if c.birthPlace == "" {
			continue
		}
		if coords, ok := run.geocode[c.birthPlace]; ok {
			c.coords = coords
			continue
		}

		coords, err := s.geo.Geocode(ctx, c.birthPlace)
		if err != nil {
			// Lookup failures are not cached; a later run may succeed.
			slog.Warn("Geocoding failed",
				"place", c.birthPlace, "error", err)
			continue
		}
		// Cached even when nil: a known miss saves the next call.
		run.geocode[c.birthPlace] = coords
		c.coords = coords
	}
}

// provisionalRating maps a view count onto the rating scale with a
// log10 curve capped at 10. The optimizer later replaces it with a
// table-wide percentile rank.
func provisionalRating(views int64) float64 {
	return math.Min(10, 1.25*math.Log10(float64(views)+1))
}
