// sample-category captures a small fixture from a live wiki category.
//
// The tool lists a category's members, then fetches page details and
// pageview counts for a capped sample, and writes everything as one
// JSON file. The fixtures feed offline development of the sync
// pipeline: parsers and resolution logic can run against recorded
// API shapes without hammering the live services.
//
// Rendered page HTML is not captured; it is too large for fixtures
// and the infobox parser keeps its own testdata.
//
// Usage:
//
//	go run . <category> <output.json>
//
// Examples:
//
//	go run . "Ukrainian poets" ../../testdata/ukrainian-poets.json
//	go run . "Composers from Kyiv" /tmp/sample.json
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/gnames/gnfmt"
	"github.com/wikipeople/wpdb/internal/iowiki"
	"github.com/wikipeople/wpdb/pkg/config"
)

// Target number of members to sample from the category. Details and
// pageviews are fetched for this many pages only.
const sampleSize = 25

// fixture is the JSON shape of one captured category.
type fixture struct {
	Category string         `json:"category"`
	Members  []memberRecord `json:"members"`
	Details  []detailRecord `json:"details"`
}

type memberRecord struct {
	PageID int64  `json:"page_id"`
	Title  string `json:"title"`
}

type detailRecord struct {
	PageID   int64  `json:"page_id"`
	Title    string `json:"title"`
	Summary  string `json:"summary,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
	GraphID  string `json:"graph_id,omitempty"`
	Views    int64  `json:"views"`
}

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s <category> <output.json>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Arguments:\n")
		fmt.Fprintf(os.Stderr, "  category  wiki category name, without the namespace prefix\n")
		fmt.Fprintf(os.Stderr, "  output    path for the JSON fixture\n\n")
		fmt.Fprintf(os.Stderr, "Examples:\n")
		fmt.Fprintf(os.Stderr, "  %s \"Ukrainian poets\" testdata/ukrainian-poets.json\n", os.Args[0])
		os.Exit(1)
	}

	category := os.Args[1]
	outputPath := os.Args[2]

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	logger.Info("sampling category",
		"category", category,
		"sample_size", sampleSize,
		"output", outputPath,
	)

	if err := sampleCategory(ctx, logger, category, outputPath); err != nil {
		logger.Error("sampling failed", "error", err)
		os.Exit(1)
	}

	logger.Info("fixture written", "output", outputPath)
}

func sampleCategory(
	ctx context.Context,
	logger *slog.Logger,
	category, outputPath string,
) error {
	cfg := config.New()
	wiki := iowiki.New(cfg)

	members, err := wiki.CategoryMembers(ctx, category)
	if err != nil {
		return fmt.Errorf("listing members: %w", err)
	}
	logger.Info("category listed", "members", len(members))

	sample := members
	if len(sample) > sampleSize {
		sample = sample[:sampleSize]
	}

	pageIDs := make([]int64, len(sample))
	for i, m := range sample {
		pageIDs[i] = m.PageID
	}

	details, err := wiki.PageDetails(ctx, pageIDs)
	if err != nil {
		return fmt.Errorf("fetching details: %w", err)
	}
	logger.Info("details fetched", "pages", len(details))

	fx := fixture{Category: category}
	for _, m := range members {
		fx.Members = append(fx.Members,
			memberRecord{PageID: m.PageID, Title: m.Title})
	}
	for _, m := range sample {
		d, ok := details[m.PageID]
		if !ok {
			logger.Warn("page has no details", "title", m.Title)
			continue
		}
		views, err := wiki.MonthlyViews(ctx, m.Title)
		if err != nil {
			// A fixture without views is still usable.
			logger.Warn("pageviews failed",
				"title", m.Title, "error", err)
		}
		fx.Details = append(fx.Details, detailRecord{
			PageID:   d.PageID,
			Title:    d.Title,
			Summary:  d.Summary,
			ImageURL: d.ImageURL,
			GraphID:  d.GraphID,
			Views:    views,
		})
	}

	enc := gnfmt.GNjson{Pretty: true}
	data, err := enc.Encode(fx)
	if err != nil {
		return fmt.Errorf("encoding fixture: %w", err)
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", outputPath, err)
	}
	return nil
}
