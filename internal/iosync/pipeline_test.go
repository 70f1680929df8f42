package iosync

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wikipeople/wpdb/pkg/client"
	"github.com/wikipeople/wpdb/pkg/schema"
)

type geoFake struct {
	calls   map[string]int
	results map[string]*client.Coordinates
	err     error
}

func newGeoFake() *geoFake {
	return &geoFake{
		calls:   make(map[string]int),
		results: make(map[string]*client.Coordinates),
	}
}

func (g *geoFake) Geocode(
	_ context.Context, place string,
) (*client.Coordinates, error) {
	g.calls[place]++
	if g.err != nil {
		return nil, g.err
	}
	return g.results[place], nil
}

func TestFullyCached(t *testing.T) {
	complete := func() *schema.Person {
		return &schema.Person{
			Lat:      sql.NullFloat64{Float64: 50.45, Valid: true},
			Lng:      sql.NullFloat64{Float64: 30.52, Valid: true},
			MetaData: schema.Metadata{"occupations": []string{"poet"}},
			Summary:  "A poet.",
			ImageURL: "https://img.example/p.jpg",
		}
	}

	assert.False(t, fullyCached(nil), "no record")

	p := complete()
	assert.True(t, fullyCached(p), "complete record")

	p = complete()
	p.IsManual = true
	assert.False(t, fullyCached(p), "manual records always re-enrich")

	p = complete()
	p.Lat = sql.NullFloat64{}
	assert.False(t, fullyCached(p), "missing coordinates")

	p = complete()
	p.MetaData = nil
	assert.False(t, fullyCached(p), "missing metadata")

	p = complete()
	p.Summary = ""
	assert.False(t, fullyCached(p), "missing summary")

	p = complete()
	p.ImageURL = ""
	assert.False(t, fullyCached(p), "missing image")
}

func TestProvisionalRating(t *testing.T) {
	assert.Equal(t, 0.0, provisionalRating(0))
	assert.Less(t, provisionalRating(100), provisionalRating(10000))
	assert.Equal(t, 10.0, provisionalRating(1_000_000_000), "capped at 10")
	assert.InDelta(t, 5.0, provisionalRating(9999), 0.01)
}

func TestGeocodeCandidates_UsesPrewarmedCache(t *testing.T) {
	geo := newGeoFake()
	s := &syncer{geo: geo}
	run := &runContext{geocode: map[string]*client.Coordinates{
		"Kyiv": {Lat: 50.45, Lng: 30.52},
	}}

	c := &candidate{title: "Hryhorii Skovoroda", birthPlace: "Kyiv"}
	s.geocodeCandidates(context.Background(), run, []*candidate{c})

	require.NotNil(t, c.coords)
	assert.InDelta(t, 50.45, c.coords.Lat, 0.0001)
	assert.Zero(t, geo.calls["Kyiv"], "cached place must not hit the service")
}

func TestGeocodeCandidates_CachesLookupsWithinRun(t *testing.T) {
	geo := newGeoFake()
	geo.results["Lviv"] = &client.Coordinates{Lat: 49.84, Lng: 24.03}
	s := &syncer{geo: geo}
	run := newTestRunContext()

	c1 := &candidate{title: "A", birthPlace: "Lviv"}
	c2 := &candidate{title: "B", birthPlace: "Lviv"}
	s.geocodeCandidates(context.Background(), run, []*candidate{c1, c2})

	assert.Equal(t, 1, geo.calls["Lviv"])
	require.NotNil(t, c1.coords)
	require.NotNil(t, c2.coords)
	assert.InDelta(t, 49.84, c2.coords.Lat, 0.0001)
}

func TestGeocodeCandidates_CachesMisses(t *testing.T) {
	geo := newGeoFake()
	s := &syncer{geo: geo}
	run := newTestRunContext()

	c1 := &candidate{title: "A", birthPlace: "Atlantis"}
	c2 := &candidate{title: "B", birthPlace: "Atlantis"}
	s.geocodeCandidates(context.Background(), run, []*candidate{c1, c2})

	assert.Equal(t, 1, geo.calls["Atlantis"], "a known miss is cached too")
	assert.Nil(t, c1.coords)
	assert.Nil(t, c2.coords)
}

func TestGeocodeCandidates_ErrorsNotCached(t *testing.T) {
	geo := newGeoFake()
	geo.err = fmt.Errorf("service unavailable")
	s := &syncer{geo: geo}
	run := newTestRunContext()

	c1 := &candidate{title: "A", birthPlace: "Kharkiv"}
	c2 := &candidate{title: "B", birthPlace: "Kharkiv"}
	s.geocodeCandidates(context.Background(), run, []*candidate{c1, c2})

	assert.Equal(t, 2, geo.calls["Kharkiv"], "failures are retried next time")
	assert.Nil(t, c1.coords)
}

func TestGeocodeCandidates_ReusesStoredCoordinates(t *testing.T) {
	geo := newGeoFake()
	s := &syncer{geo: geo}
	run := newTestRunContext()

	c := &candidate{
		title:      "Lesia Ukrainka",
		birthPlace: "Novohrad-Volynskyi",
		existing: &schema.Person{
			Lat: sql.NullFloat64{Float64: 50.59, Valid: true},
			Lng: sql.NullFloat64{Float64: 27.62, Valid: true},
		},
	}
	s.geocodeCandidates(context.Background(), run, []*candidate{c})

	require.NotNil(t, c.coords)
	assert.InDelta(t, 50.59, c.coords.Lat, 0.0001)
	assert.Empty(t, geo.calls)
}

func TestGeocodeCandidates_SkipsEmptyBirthplace(t *testing.T) {
	geo := newGeoFake()
	s := &syncer{geo: geo}

	c := &candidate{title: "Unknown"}
	s.geocodeCandidates(context.Background(), newTestRunContext(), []*candidate{c})

	assert.Nil(t, c.coords)
	assert.Empty(t, geo.calls)
}

func newTestRunContext() *runContext {
	return &runContext{geocode: make(map[string]*client.Coordinates)}
}
