package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wikipeople/wpdb/pkg/schema"
)

func TestMetadataMerge(t *testing.T) {
	t.Run("fresh values win over stored ones", func(t *testing.T) {
		stored := schema.Metadata{
			"occupations": []string{"writer"},
			"death_year":  1861,
		}
		fresh := schema.Metadata{
			"occupations": []string{"writer", "painter"},
		}

		res := stored.Merge(fresh)

		assert.Equal(t, []string{"writer", "painter"}, res["occupations"])
		assert.Equal(t, 1861, res["death_year"], "untouched keys survive")
	})

	t.Run("empty fresh values preserve stored ones", func(t *testing.T) {
		stored := schema.Metadata{
			"occupations": []string{"writer"},
			"death_place": "Saint Petersburg",
		}
		fresh := schema.Metadata{
			"occupations": []string{},
			"death_place": "",
			"death_year":  nil,
		}

		res := stored.Merge(fresh)

		assert.Equal(t, []string{"writer"}, res["occupations"])
		assert.Equal(t, "Saint Petersburg", res["death_place"])
		_, ok := res["death_year"]
		assert.False(t, ok, "nil fresh value adds nothing")
	})

	t.Run("nested maps merge recursively", func(t *testing.T) {
		stored := schema.Metadata{
			"links": map[string]any{"wiki": "a", "viaf": "b"},
		}
		fresh := schema.Metadata{
			"links": map[string]any{"wiki": "c"},
		}

		res := stored.Merge(fresh)

		links, ok := res["links"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "c", links["wiki"])
		assert.Equal(t, "b", links["viaf"])
	})

	t.Run("does not modify inputs", func(t *testing.T) {
		stored := schema.Metadata{"death_place": "Kaniv"}
		fresh := schema.Metadata{"death_year": 1861}

		_ = stored.Merge(fresh)

		assert.Len(t, stored, 1)
		assert.Len(t, fresh, 1)
	})

	t.Run("nil receiver and argument", func(t *testing.T) {
		var stored schema.Metadata
		assert.Nil(t, stored.Merge(nil))

		res := stored.Merge(schema.Metadata{"death_year": 1861})
		assert.Equal(t, 1861, res["death_year"])
	})
}

func TestMetadataValueScan(t *testing.T) {
	t.Run("round trip through JSONB bytes", func(t *testing.T) {
		m := schema.Metadata{
			"occupations": []any{"writer", "painter"},
			"death_place": "Kaniv",
		}

		val, err := m.Value()
		require.NoError(t, err)
		bs, ok := val.([]byte)
		require.True(t, ok)

		var got schema.Metadata
		require.NoError(t, got.Scan(bs))
		assert.Equal(t, "Kaniv", got["death_place"])
		assert.Len(t, got["occupations"], 2)
	})

	t.Run("nil maps to SQL NULL", func(t *testing.T) {
		var m schema.Metadata
		val, err := m.Value()
		require.NoError(t, err)
		assert.Nil(t, val)

		var got schema.Metadata
		require.NoError(t, got.Scan(nil))
		assert.Nil(t, got)
	})

	t.Run("rejects foreign types", func(t *testing.T) {
		var got schema.Metadata
		assert.Error(t, got.Scan(42))
	})
}
