package iosearch

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/wikipeople/wpdb/pkg/errcode"
)

// NotConnectedError creates an error for a search attempted without a
// database connection.
func NotConnectedError() error {
	msg := "Search attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// QueryError creates an error for a search query that the database
// rejected or could not finish.
func QueryError(operation string, err error) error {
	msg := `Failed to run <em>%s</em> search`
	vars := []any{operation}

	return &gn.Error{
		Code: errcode.SearchQueryError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%s search failed: %w", operation, err),
	}
}

// BadPolygonError creates an error for polygon input the database
// cannot parse as WKT.
func BadPolygonError(wkt string, err error) error {
	msg := `Cannot read the polygon

<em>How to fix:</em>
  1. Pass the polygon as WKT, for example
     <em>POLYGON((30.2 50.2, 30.9 50.2, 30.9 50.6, 30.2 50.2))</em>
  2. List vertices as <em>lng lat</em> pairs separated by commas
  3. Close the ring: first and last vertex must be identical`

	if err == nil {
		err = fmt.Errorf("not a polygon")
	}

	return &gn.Error{
		Code: errcode.SearchBadPolygonError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("bad polygon %q: %w", wkt, err),
	}
}

// BadFilterError creates an error for a metadata filter that cannot be
// turned into a JSON containment query.
func BadFilterError(err error) error {
	msg := `Cannot read the metadata filter

<em>How to fix:</em>
  1. Pass filters as <em>key=value</em> pairs
  2. Use one <em>--meta</em> flag per pair`

	return &gn.Error{
		Code: errcode.SearchBadFilterError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("bad metadata filter: %w", err),
	}
}
