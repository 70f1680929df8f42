package iograph

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/wikipeople/wpdb/pkg/errcode"
)

// QueryError creates an error for a structured query where every chunk
// failed. Partial chunk failures are logged, not returned.
func QueryError(operation string, err error) error {
	msg := `Knowledge graph query failed for <em>%s</em>

<em>Possible causes:</em>
  - No network connection
  - The SPARQL endpoint is down or rejecting queries
  - The query exceeds the service's time limit

<em>How to fix:</em>
  1. Check your network connection
  2. Verify <em>sparql_url</em> in <em>~/.config/wpdb/config.yaml</em>
  3. Lower <em>chunk_size</em> so each query does less work`

	vars := []any{operation}

	return &gn.Error{
		Code: errcode.GraphQueryError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("all %s chunks failed: %w", operation, err),
	}
}
