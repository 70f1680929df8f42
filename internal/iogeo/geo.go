// Package iogeo implements the Geocoder contract over a Nominatim-style
// search endpoint. Calls are spaced by the configured minimum interval
// and never retried; the public service bans clients that hammer it.
package iogeo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	"github.com/wikipeople/wpdb/internal/iohttp"
	"github.com/wikipeople/wpdb/pkg/client"
	"github.com/wikipeople/wpdb/pkg/config"
)

type iogeo struct {
	cfg     *config.Config
	client  *http.Client
	policy  iohttp.Policy
	limiter *rate.Limiter
}

// New creates a client.Geocoder backed by a Nominatim-style service.
func New(cfg *config.Config) client.Geocoder {
	return &iogeo{
		cfg:    cfg,
		client: iohttp.NewClient(cfg.Wiki.Timeout),
		// One attempt per place. A place that fails stays ungeocoded
		// until the next sync rather than costing extra requests.
		policy:  iohttp.Policy{MaxTries: 1},
		limiter: rate.NewLimiter(rate.Every(cfg.Geocoder.MinInterval), 1),
	}
}

// place entries come back with lat and lon as strings.
type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

var parentheticalRe = regexp.MustCompile(`\s*\([^)]*\)`)

// cleanPlace strips parenthetical qualifiers like "(now Lviv)" that
// confuse the search service.
func cleanPlace(place string) string {
	return strings.TrimSpace(parentheticalRe.ReplaceAllString(place, ""))
}

// Geocode resolves a place name to coordinates. It returns (nil, nil)
// when the service has no match; errors mean the lookup itself failed.
func (g *iogeo) Geocode(
	ctx context.Context, place string,
) (*client.Coordinates, error) {
	place = cleanPlace(place)
	if place == "" {
		return nil, nil
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("geocode pacing interrupted: %w", err)
	}

	params := url.Values{}
	params.Set("q", place)
	params.Set("format", "json")
	params.Set("limit", "1")
	if g.cfg.Geocoder.Email != "" {
		params.Set("email", g.cfg.Geocoder.Email)
	}

	header := http.Header{}
	header.Set("User-Agent", g.cfg.Wiki.UserAgent)

	searchURL := g.cfg.Geocoder.URL + "/search?" + params.Encode()
	body, err := iohttp.Get(ctx, g.client, g.policy, searchURL, header)
	if err != nil {
		if errors.Is(err, iohttp.ErrNotFound) {
			return nil, nil
		}
		return nil, GeocodeError(place, err)
	}

	var results []searchResult
	if err = json.Unmarshal(body, &results); err != nil {
		return nil, GeocodeError(place,
			fmt.Errorf("cannot decode response: %w", err))
	}
	if len(results) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, GeocodeError(place,
			fmt.Errorf("bad latitude %q: %w", results[0].Lat, err))
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, GeocodeError(place,
			fmt.Errorf("bad longitude %q: %w", results[0].Lon, err))
	}

	return &client.Coordinates{Lat: lat, Lng: lng}, nil
}
