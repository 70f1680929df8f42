/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"
	"github.com/wikipeople/wpdb/internal/iodb"
	"github.com/wikipeople/wpdb/internal/iosearch"
	"github.com/wikipeople/wpdb/pkg/lifecycle"
	"github.com/wikipeople/wpdb/pkg/search"
)

// searchFlags carries the parsed search command flags.
type searchFlags struct {
	mode       string
	radius     string
	polygonWKT string
	occupation string
	metaPairs  []string
	limit      int
	format     string
}

// getSearchCmd returns the search command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getSearchCmd() *cobra.Command {
	var flags searchFlags

	searchCmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Find people in the database",
		Long: `Search the people table by name, place of birth or metadata.

Exactly one search kind per invocation:
  - a query argument searches by name; --mode picks the strategy
    (fuzzy trigram matching, full-text over names and summaries,
    or both combined)
  - --radius lat,lng,km finds people born near a point,
    closest first
  - --polygon WKT finds people born inside an area,
    highest rated first
  - --occupation finds people by occupation tag
  - --meta key=value filters metadata by containment;
    repeat the flag to require several pairs

Output is human-readable by default; --format json emits the
matches as a JSON array for scripting.

Examples:
  wpdb search "Taras Shevchenko"
  wpdb search "shevchenk" --mode fuzzy
  wpdb search "poet painter" --mode text
  wpdb search --radius 50.45,30.52,100
  C='POLYGON((30 50, 31 50, 31 51, 30 51, 30 50))'
  wpdb search --polygon "$C"
  wpdb search --occupation composer --limit 5
  wpdb search --meta death_year=1916 --meta death_place=Lviv
  wpdb search "franko" --format json | jq '.[0].slug'`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runSearch(cmd, args, flags)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	searchCmd.Flags().StringVarP(&flags.mode, "mode", "m", "fuzzy",
		"name search strategy: fuzzy|text|combined")
	searchCmd.Flags().StringVarP(&flags.radius, "radius", "r", "",
		"radius search as lat,lng,km")
	searchCmd.Flags().StringVarP(&flags.polygonWKT, "polygon", "p", "",
		"polygon search as WKT, for example POLYGON((...))")
	searchCmd.Flags().StringVarP(&flags.occupation, "occupation", "o", "",
		"search by occupation tag")
	searchCmd.Flags().StringArrayVar(&flags.metaPairs, "meta", nil,
		"metadata filter key=value, repeatable")
	searchCmd.Flags().IntVarP(&flags.limit, "limit", "l", 20,
		"maximum number of matches")
	searchCmd.Flags().StringVarP(&flags.format, "format", "f", "pretty",
		"output format: pretty|json")

	return searchCmd
}

func runSearch(
	cmd *cobra.Command,
	args []string,
	flags searchFlags,
) error {
	ctx := context.Background()

	if flags.format != "pretty" && flags.format != "json" {
		gn.Warn("<warn>Unknown format '%s', use pretty or json</warn>",
			flags.format)
		err := fmt.Errorf("unknown output format %q", flags.format)
		slog.Error("invalid flag", "error", err)
		return err
	}

	var query string
	if len(args) > 0 {
		query = args[0]
	}

	// Exactly one search kind per invocation
	selectors := 0
	for _, set := range []bool{
		query != "",
		flags.radius != "",
		flags.polygonWKT != "",
		flags.occupation != "",
		len(flags.metaPairs) > 0,
	} {
		if set {
			selectors++
		}
	}
	if selectors != 1 {
		gn.Warn(`<warn>Pick one search: a name query, --radius, --polygon, --occupation or --meta</warn>`)
		err := fmt.Errorf("invalid flag combination")
		slog.Error("invalid flag combination", "error", err)
		return err
	}

	// Create database operator
	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return err
	}
	defer op.Close()

	searcher := iosearch.New(op)

	matches, err := findMatches(ctx, searcher, query, flags)
	if err != nil {
		return err
	}

	if flags.format == "json" {
		return printJSON(matches)
	}
	printPretty(matches)
	return nil
}

func findMatches(
	ctx context.Context,
	searcher lifecycle.Searcher,
	query string,
	flags searchFlags,
) ([]search.Match, error) {
	switch {
	case flags.radius != "":
		lat, lng, km, err := parseRadius(flags.radius)
		if err != nil {
			return nil, err
		}
		return searcher.ByRadius(ctx, cfg, lat, lng, km, flags.limit)

	case flags.polygonWKT != "":
		return searcher.ByPolygon(ctx, cfg, flags.polygonWKT, flags.limit)

	case flags.occupation != "":
		return searcher.ByOccupation(ctx, cfg, flags.occupation, flags.limit)

	case len(flags.metaPairs) > 0:
		filter, err := parseMetaPairs(flags.metaPairs)
		if err != nil {
			return nil, err
		}
		return searcher.ByMetadata(ctx, cfg, filter, flags.limit)
	}

	mode, err := search.NewMode(flags.mode)
	if err != nil {
		return nil, err
	}
	return searcher.ByText(ctx, cfg, query, mode, flags.limit)
}

// matchRow is the flat JSON shape of one match.
type matchRow struct {
	Name         string   `json:"name"`
	Slug         string   `json:"slug"`
	Category     string   `json:"category,omitempty"`
	BirthYear    int32    `json:"birth_year,omitempty"`
	BirthPlace   string   `json:"birth_place,omitempty"`
	Lat          *float64 `json:"lat,omitempty"`
	Lng          *float64 `json:"lng,omitempty"`
	ViewCount    int64    `json:"view_count"`
	Rating       float64  `json:"rating"`
	Similarity   float64  `json:"similarity,omitempty"`
	EditDistance *int     `json:"edit_distance,omitempty"`
	Rank         float64  `json:"rank,omitempty"`
	DistanceKM   float64  `json:"distance_km,omitempty"`
	Summary      string   `json:"summary,omitempty"`
}

func printJSON(matches []search.Match) error {
	rows := make([]matchRow, 0, len(matches))
	for _, m := range matches {
		p := m.Person
		row := matchRow{
			Name:       p.Name,
			Slug:       p.Slug,
			Category:   p.Category,
			BirthPlace: p.BirthPlace,
			ViewCount:  p.ViewCount,
			Rating:     p.Rating,
			Similarity: m.Similarity,
			Rank:       m.Rank,
			DistanceKM: m.DistanceKM,
			Summary:    p.Summary,
		}
		if p.BirthYear.Valid {
			row.BirthYear = p.BirthYear.Int32
		}
		if p.Lat.Valid && p.Lng.Valid {
			row.Lat = &p.Lat.Float64
			row.Lng = &p.Lng.Float64
		}
		if m.EditDistance >= 0 {
			ed := m.EditDistance
			row.EditDistance = &ed
		}
		rows = append(rows, row)
	}

	enc := gnfmt.GNjson{Pretty: true}
	out, err := enc.Encode(rows)
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func printPretty(matches []search.Match) {
	if len(matches) == 0 {
		gn.Info("No matches")
		return
	}

	for i, m := range matches {
		p := m.Person
		fmt.Printf("%d. %s  [%s]\n", i+1, p.Name, p.Slug)

		var facts []string
		if p.Category != "" {
			facts = append(facts, p.Category)
		}
		if p.BirthYear.Valid {
			facts = append(facts, fmt.Sprintf("b. %d", p.BirthYear.Int32))
		}
		if p.BirthPlace != "" {
			facts = append(facts, p.BirthPlace)
		}
		facts = append(facts,
			fmt.Sprintf("rating %.1f", p.Rating),
			fmt.Sprintf("views %s", humanize.Comma(p.ViewCount)),
		)
		fmt.Printf("   %s\n", strings.Join(facts, ", "))

		var signals []string
		if m.Similarity > 0 {
			signals = append(signals,
				fmt.Sprintf("similarity %.2f", m.Similarity))
		}
		if m.EditDistance >= 0 {
			signals = append(signals,
				fmt.Sprintf("edit distance %d", m.EditDistance))
		}
		if m.Rank > 0 {
			signals = append(signals, fmt.Sprintf("rank %.4f", m.Rank))
		}
		if m.DistanceKM > 0 {
			signals = append(signals,
				fmt.Sprintf("%.1f km away", m.DistanceKM))
		}
		if len(signals) > 0 {
			fmt.Printf("   %s\n", strings.Join(signals, ", "))
		}
	}

	gn.Info("Found <em>%d</em> matches", len(matches))
}
