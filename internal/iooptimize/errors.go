package iooptimize

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/wikipeople/wpdb/pkg/errcode"
)

// NotConnectedError creates an error for optimization attempted
// without a database connection.
func NotConnectedError() error {
	msg := "Optimization attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// RatingError creates an error for a failed percentile pass.
func RatingError(err error) error {
	msg := `Cannot recompute ratings

<em>How to fix:</em>
  1. Check that the schema exists: run <em>wpdb create</em>
  2. Rerun <em>wpdb optimize</em>`

	return &gn.Error{
		Code: errcode.OptimizerRatingError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("rating recomputation failed: %w", err),
	}
}

// GeometryError creates an error for a failed geometry backfill.
func GeometryError(err error) error {
	msg := "Cannot backfill the geometry column"

	return &gn.Error{
		Code: errcode.OptimizerGeometryError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("geometry backfill failed: %w", err),
	}
}

// IndexError creates an error for a failed index build.
func IndexError(stmt string, err error) error {
	msg := `Cannot build a search index

<em>How to fix:</em>
  1. Check that the <em>pg_trgm</em> and <em>postgis</em> extensions
     are available on the server
  2. Run <em>wpdb migrate</em> to install them, then retry`

	return &gn.Error{
		Code: errcode.OptimizerIndexError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("index build failed for %q: %w", stmt, err),
	}
}

// VacuumError creates an error for a failed VACUUM ANALYZE.
func VacuumError(err error) error {
	msg := "VACUUM ANALYZE failed"

	return &gn.Error{
		Code: errcode.OptimizerVacuumError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("vacuum analyze: %w", err),
	}
}
