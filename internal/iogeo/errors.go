package iogeo

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/wikipeople/wpdb/pkg/errcode"
)

// GeocodeError creates an error for a failed coordinate lookup. A place
// the service does not know is not an error; this covers transport and
// malformed-response failures.
func GeocodeError(place string, err error) error {
	msg := `Geocoding failed for <em>%s</em>

<em>Possible causes:</em>
  - No network connection
  - The geocoding service is down or throttling
  - The request rate exceeds the service's usage policy

<em>How to fix:</em>
  1. Check your network connection
  2. Verify <em>url</em> under <em>geocoder</em> in
     <em>~/.config/wpdb/config.yaml</em>
  3. Raise <em>min_interval</em> if the service is throttling`

	vars := []any{place}

	return &gn.Error{
		Code: errcode.GeocodeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("geocode %q failed: %w", place, err),
	}
}
