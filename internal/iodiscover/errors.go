package iodiscover

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/wikipeople/wpdb/pkg/errcode"
)

// PrefixError creates an error for a discovery run where every prefix
// listing failed. Single-prefix failures are logged, not returned.
func PrefixError(err error) error {
	msg := `Could not list categories for any configured prefix

<em>Possible causes:</em>
  - No network connection
  - The wiki API endpoint is down or misconfigured

<em>How to fix:</em>
  1. Check your network connection
  2. Verify <em>api_url</em> under <em>wiki</em> in
     <em>~/.config/wpdb/config.yaml</em>`

	return &gn.Error{
		Code: errcode.DiscoverPrefixError,
		Msg:  msg,
		Err:  fmt.Errorf("all category prefixes failed: %w", err),
	}
}

// EmptyError creates an error for a discovery run that produced no
// categories at all.
func EmptyError() error {
	msg := `Discovery finished but found no categories

<em>Possible causes:</em>
  - The category prefixes match nothing on this wiki
  - The keyword filters reject every candidate

<em>How to fix:</em>
  1. Review <em>category_prefixes</em> and <em>occupation_keywords</em>
     in <em>~/.config/wpdb/vocab.yaml</em>
  2. Add known-good categories to <em>supplementary_categories</em>`

	return &gn.Error{
		Code: errcode.DiscoverEmptyError,
		Msg:  msg,
		Err:  fmt.Errorf("discovery produced no categories"),
	}
}
