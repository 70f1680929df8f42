package iooptimize_test

import (
	"context"
	"testing"
	"time"

	"github.com/gnames/gn"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wikipeople/wpdb/internal/iodb"
	"github.com/wikipeople/wpdb/internal/iooptimize"
	"github.com/wikipeople/wpdb/internal/ioschema"
	"github.com/wikipeople/wpdb/internal/iotesting"
	"github.com/wikipeople/wpdb/pkg/config"
	"github.com/wikipeople/wpdb/pkg/db"
	"github.com/wikipeople/wpdb/pkg/errcode"
)

// Integration tests need PostgreSQL with pg_trgm and PostGIS; see
// internal/iodb/operator_test.go for the connection options.

func setupOptimize(t *testing.T) (db.Operator, *config.Config) {
	t.Helper()
	cfg := iotesting.GetTestConfig()
	op := iodb.NewPgxOperator()
	ctx := context.Background()

	require.NoError(t, op.Connect(ctx, &cfg.Database))
	t.Cleanup(func() { op.Close() })

	require.NoError(t, ioschema.NewManager(op).Migrate(ctx, cfg))
	_, err := op.Pool().Exec(ctx, "TRUNCATE people")
	require.NoError(t, err)
	return op, cfg
}

func seedViews(t *testing.T, op db.Operator, name string, views int64, withCoords bool) {
	t.Helper()
	var lat, lng any
	if withCoords {
		lat, lng = 50.45, 30.52
	}
	_, err := op.Pool().Exec(context.Background(),
		`INSERT INTO people
		   (id, name, name_normal, slug, view_count, rating, lat, lng,
		    created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, 0, $6, $7, $8, $8)`,
		uuid.NewString(), name, name, name, views, lat, lng, time.Now())
	require.NoError(t, err)
}

func TestOptimize(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	op, cfg := setupOptimize(t)
	ctx := context.Background()

	seedViews(t, op, "lowest", 0, false)
	seedViews(t, op, "low", 10, true)
	seedViews(t, op, "high", 1000, true)
	seedViews(t, op, "highest", 100000, false)

	opt := iooptimize.NewOptimizer(op)
	require.NoError(t, opt.Optimize(ctx, cfg))

	// percent_rank over 4 records: 0, 1/3, 2/3, 1, scaled by 10.
	wantRatings := map[string]float64{
		"lowest":  0,
		"low":     10.0 / 3,
		"high":    20.0 / 3,
		"highest": 10,
	}
	for name, want := range wantRatings {
		var rating float64
		err := op.Pool().QueryRow(ctx,
			"SELECT rating FROM people WHERE name = $1", name).
			Scan(&rating)
		require.NoError(t, err)
		assert.InDelta(t, want, rating, 0.001, name)
	}

	var withGeom int
	require.NoError(t, op.Pool().QueryRow(ctx,
		"SELECT count(*) FROM people WHERE geom IS NOT NULL").
		Scan(&withGeom))
	assert.Equal(t, 2, withGeom, "geometry backfilled from coordinates")

	var indexes int
	require.NoError(t, op.Pool().QueryRow(ctx,
		`SELECT count(*) FROM pg_indexes
		 WHERE tablename = 'people' AND indexname IN
		   ('idx_people_name_normal_trgm', 'idx_people_fulltext',
		    'idx_people_geom', 'idx_people_meta_data',
		    'idx_people_view_count')`).
		Scan(&indexes))
	assert.Equal(t, 5, indexes)

	// Idempotent: a second pass must succeed and change nothing.
	require.NoError(t, opt.Optimize(ctx, cfg))
}

func TestOptimize_EmptyTable(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	op, cfg := setupOptimize(t)

	opt := iooptimize.NewOptimizer(op)
	assert.NoError(t, opt.Optimize(context.Background(), cfg))
}

func TestOptimize_NotConnected(t *testing.T) {
	opt := iooptimize.NewOptimizer(iodb.NewPgxOperator())

	err := opt.Optimize(context.Background(), config.New())
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.DBNotConnectedError, gnErr.Code)
}
