package iovocab

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/wikipeople/wpdb/pkg/errcode"
)

// VocabConfigError creates an error for when vocab.yaml
// cannot be loaded.
func VocabConfigError(path string, err error) error {
	msg := `Cannot load vocabulary configuration

<em>Vocabulary file:</em> %s

<em>Possible causes:</em>
  - File does not exist
  - Invalid YAML format
  - No category prefixes or supplementary categories defined
  - No occupation keywords defined

<em>How to fix:</em>
  1. Check if file exists: <em>ls -l %s</em>
  2. Validate YAML syntax
  3. Restore the default vocabulary by deleting the file and
     running any <em>wpdb</em> command`

	vars := []any{path, path}

	return &gn.Error{
		Code: errcode.VocabConfigError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to load vocab config: %w", err),
	}
}
