package iowiki

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/wikipeople/wpdb/pkg/errcode"
)

// RequestError creates an error for failed encyclopedia requests.
func RequestError(operation string, err error) error {
	msg := `Encyclopedia API is not available for <em>%s</em>

<em>Possible causes:</em>
  - No network connection
  - The wiki API endpoint is down or throttling
  - A proxy or firewall blocks the request

<em>How to fix:</em>
  1. Check your network connection
  2. Verify the endpoint in <em>~/.config/wpdb/config.yaml</em>
  3. Wait a few minutes and retry; throttling is temporary`

	vars := []any{operation}

	return &gn.Error{
		Code: errcode.ClientRequestError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("wiki %s request failed: %w", operation, err),
	}
}

// DecodeError creates an error for malformed encyclopedia responses.
func DecodeError(operation string, err error) error {
	msg := `Cannot decode the encyclopedia response for <em>%s</em>

<em>Possible causes:</em>
  - The API returned an error page instead of data
  - A captive portal or proxy rewrote the response

<em>How to fix:</em>
  1. Verify the endpoint in <em>~/.config/wpdb/config.yaml</em>
     points at a MediaWiki Action API
  2. Try the request in a browser to inspect the response`

	vars := []any{operation}

	return &gn.Error{
		Code: errcode.ClientDecodeError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"cannot decode wiki %s response: %w", operation, err),
	}
}
