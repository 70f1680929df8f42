package iogeo_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wikipeople/wpdb/internal/iogeo"
	"github.com/wikipeople/wpdb/pkg/config"
	"github.com/wikipeople/wpdb/pkg/errcode"
)

func testConfig(ts *httptest.Server) *config.Config {
	cfg := config.New()
	cfg.Geocoder.URL = ts.URL
	cfg.Geocoder.MinInterval = 0
	cfg.Wiki.Timeout = 5 * time.Second
	return cfg
}

func TestGeocode_Found(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/search", r.URL.Path)
			q := r.URL.Query()
			assert.Equal(t, "Kyiv", q.Get("q"))
			assert.Equal(t, "json", q.Get("format"))
			assert.Equal(t, "1", q.Get("limit"))
			assert.NotEmpty(t, r.Header.Get("User-Agent"))

			w.Write([]byte(`[{"lat": "50.4500336", "lon": "30.5241361"}]`))
		}))
	defer ts.Close()

	geo := iogeo.New(testConfig(ts))
	coords, err := geo.Geocode(context.Background(), "Kyiv")
	require.NoError(t, err)
	require.NotNil(t, coords)

	assert.InDelta(t, 50.45, coords.Lat, 0.001)
	assert.InDelta(t, 30.524, coords.Lng, 0.001)
}

func TestGeocode_NotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		}))
	defer ts.Close()

	geo := iogeo.New(testConfig(ts))
	coords, err := geo.Geocode(context.Background(), "Nowhere Specific")
	require.NoError(t, err)
	assert.Nil(t, coords)
}

func TestGeocode_StripsParentheticals(t *testing.T) {
	var query string
	ts := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			query = r.URL.Query().Get("q")
			w.Write([]byte(`[{"lat": "49.84", "lon": "24.03"}]`))
		}))
	defer ts.Close()

	geo := iogeo.New(testConfig(ts))
	coords, err := geo.Geocode(context.Background(),
		"Lemberg (now Lviv, Ukraine)")
	require.NoError(t, err)
	require.NotNil(t, coords)

	assert.Equal(t, "Lemberg", query)
}

func TestGeocode_EmptyAfterCleaning(t *testing.T) {
	var calls int
	ts := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			calls++
		}))
	defer ts.Close()

	geo := iogeo.New(testConfig(ts))
	coords, err := geo.Geocode(context.Background(), "(uncertain)")
	require.NoError(t, err)

	assert.Nil(t, coords)
	assert.Zero(t, calls)
}

func TestGeocode_SendsEmailWhenConfigured(t *testing.T) {
	var email string
	ts := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			email = r.URL.Query().Get("email")
			w.Write([]byte(`[]`))
		}))
	defer ts.Close()

	cfg := testConfig(ts)
	cfg.Geocoder.Email = "ops@example.org"
	geo := iogeo.New(cfg)
	_, err := geo.Geocode(context.Background(), "Poltava")
	require.NoError(t, err)

	assert.Equal(t, "ops@example.org", email)
}

func TestGeocode_SingleAttempt(t *testing.T) {
	var calls int
	ts := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			calls++
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
		}))
	defer ts.Close()

	geo := iogeo.New(testConfig(ts))
	_, err := geo.Geocode(context.Background(), "Kharkiv")
	require.Error(t, err)

	assert.Equal(t, 1, calls)

	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.GeocodeError, gnErr.Code)
	assert.Contains(t, gnErr.Err.Error(), "Kharkiv")
}

func TestGeocode_BadCoordinateValues(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"lat": "north-ish", "lon": "30.52"}]`))
		}))
	defer ts.Close()

	geo := iogeo.New(testConfig(ts))
	_, err := geo.Geocode(context.Background(), "Kyiv")
	require.Error(t, err)

	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Contains(t, gnErr.Err.Error(), "bad latitude")
}
