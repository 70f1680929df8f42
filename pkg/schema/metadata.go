package schema

import (
	"database/sql/driver"
	"fmt"

	"github.com/gnames/gnfmt"
)

// Metadata is the free-form JSONB document attached to a person
// record. Well-known keys are "occupations" (ordered list of strings),
// "death_place" and "death_year"; other keys pass through untouched.
type Metadata map[string]any

// Value implements driver.Valuer for JSONB storage.
func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	enc := gnfmt.GNjson{}
	return enc.Encode(m)
}

// Scan implements sql.Scanner.
func (m *Metadata) Scan(value any) error {
	if value == nil {
		*m = nil
		return nil
	}

	var bs []byte
	switch v := value.(type) {
	case []byte:
		bs = v
	case string:
		bs = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Metadata", value)
	}

	enc := gnfmt.GNjson{}
	return enc.Decode(bs, m)
}

// Merge combines fresh values into m and returns the result. Existing
// keys survive unless fresh carries a non-empty value for them; nested
// maps are merged recursively. Neither m nor fresh is modified.
func (m Metadata) Merge(fresh Metadata) Metadata {
	if m == nil && fresh == nil {
		return nil
	}

	res := make(Metadata, len(m)+len(fresh))
	for k, v := range m {
		res[k] = v
	}

	for k, v := range fresh {
		if isEmptyValue(v) {
			continue
		}
		if sub, ok := v.(map[string]any); ok {
			if prev, ok := res[k].(map[string]any); ok {
				res[k] = map[string]any(Metadata(prev).Merge(sub))
				continue
			}
		}
		res[k] = v
	}

	return res
}

// isEmptyValue reports values that must not displace stored data.
func isEmptyValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case []string:
		return len(val) == 0
	case []any:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	}
	return false
}
