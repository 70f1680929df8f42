package vocab_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wikipeople/wpdb/pkg/vocab"
)

func testVocabulary() *vocab.Vocabulary {
	return &vocab.Vocabulary{
		CategoryPrefixes:   []string{"Ukrainian"},
		OccupationKeywords: []string{"writers", "painters", "scientists"},
		ExclusionKeywords:  []string{"organizations", "buildings", "films"},
		LanguageMarkers:    []string{"Ukrainian"},
		SupplementaryCategories: []string{
			"Hetmans of Zaporizhian Host",
		},
		IgnoreTitles: []string{"List of Ukrainian writers"},
		CategoryMap: map[string]string{
			"Ukrainian writers": "writer",
		},
		OccupationMap: map[string]string{
			"poet": "writer",
		},
		PolitySuffixes: []string{"Russian Empire"},
	}
}

func TestValidate(t *testing.T) {
	t.Run("accepts complete vocabulary", func(t *testing.T) {
		v := testVocabulary()
		require.NoError(t, v.Validate())
		assert.Empty(t, v.Warnings)
	})

	t.Run("rejects vocabulary with nothing to discover", func(t *testing.T) {
		v := testVocabulary()
		v.CategoryPrefixes = nil
		v.SupplementaryCategories = nil
		assert.Error(t, v.Validate())
	})

	t.Run("rejects vocabulary without occupation keywords", func(t *testing.T) {
		v := testVocabulary()
		v.OccupationKeywords = nil
		assert.Error(t, v.Validate())
	})

	t.Run("supplementary categories alone are enough", func(t *testing.T) {
		v := testVocabulary()
		v.CategoryPrefixes = nil
		assert.NoError(t, v.Validate())
	})

	t.Run("collects warnings for soft gaps", func(t *testing.T) {
		v := testVocabulary()
		v.ExclusionKeywords = nil
		v.PolitySuffixes = nil
		require.NoError(t, v.Validate())
		assert.Len(t, v.Warnings, 2)
	})
}

func TestClassification(t *testing.T) {
	v := testVocabulary()

	t.Run("occupation keyword match", func(t *testing.T) {
		assert.True(t, v.IsOccupational("Ukrainian writers"))
		assert.True(t, v.IsOccupational("UKRAINIAN PAINTERS"),
			"matching is case-insensitive")
		assert.False(t, v.IsOccupational("Ukrainian cuisine"))
	})

	t.Run("exclusion keyword match", func(t *testing.T) {
		assert.True(t, v.IsExcluded("Ukrainian writers' organizations"))
		assert.True(t, v.IsExcluded("Ukrainian films"))
		assert.False(t, v.IsExcluded("Ukrainian writers"))
	})

	t.Run("language marker match", func(t *testing.T) {
		assert.True(t, v.HasLanguageMarker("Ukrainian writers"))
		assert.False(t, v.HasLanguageMarker("Writers from Lviv"))
	})

	t.Run("no configured markers pass everything", func(t *testing.T) {
		v := testVocabulary()
		v.LanguageMarkers = nil
		assert.True(t, v.HasLanguageMarker("Writers from Lviv"))
	})

	t.Run("ignored titles match exactly", func(t *testing.T) {
		assert.True(t, v.IsIgnoredTitle("List of Ukrainian writers"))
		assert.False(t, v.IsIgnoredTitle("list of ukrainian writers"),
			"title matching is case-sensitive")
		assert.False(t, v.IsIgnoredTitle("Taras Shevchenko"))
	})
}
