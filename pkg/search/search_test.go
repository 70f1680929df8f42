package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wikipeople/wpdb/pkg/schema"
	"github.com/wikipeople/wpdb/pkg/search"
)

func TestNewMode(t *testing.T) {
	tests := []struct {
		msg, input string
		mode       search.Mode
		hasErr     bool
	}{
		{"fuzzy", "fuzzy", search.Fuzzy, false},
		{"fulltext", "fulltext", search.FullText, false},
		{"text alias", "text", search.FullText, false},
		{"full-text alias", "full-text", search.FullText, false},
		{"combined", "combined", search.Combined, false},
		{"case does not matter", "FUZZY", search.Fuzzy, false},
		{"spaces trimmed", "  combined ", search.Combined, false},
		{"unknown mode", "semantic", search.Fuzzy, true},
		{"empty string", "", search.Fuzzy, true},
	}

	for _, v := range tests {
		mode, err := search.NewMode(v.input)
		if v.hasErr {
			assert.Error(t, err, v.msg)
			continue
		}
		assert.NoError(t, err, v.msg)
		assert.Equal(t, v.mode, mode, v.msg)
	}
}

func TestModeString(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("fuzzy", search.Fuzzy.String())
	assert.Equal("fulltext", search.FullText.String())
	assert.Equal("combined", search.Combined.String())
	assert.Equal("unknown", search.Mode(99).String())
}

func matchFor(id, nameNormal string, similarity float64) search.Match {
	return search.Match{
		Person:     schema.Person{ID: id, NameNormal: nameNormal},
		Similarity: similarity,
	}
}

func TestRerank(t *testing.T) {
	assert := assert.New(t)

	// Similarity order puts the longer shared-trigram name first even
	// though "mariya" is only one edit away from the query.
	matches := []search.Match{
		matchFor("1", "mariana", 0.80),
		matchFor("2", "mariya", 0.75),
		matchFor("3", "martha", 0.60),
		matchFor("4", "margaryta", 0.40),
	}

	search.Rerank(matches, "maria", 3)

	assert.Equal("mariya", matches[0].Person.NameNormal,
		"closest edit distance wins the top slot")
	assert.Equal(1, matches[0].EditDistance)
	assert.Equal("mariana", matches[1].Person.NameNormal,
		"equal distances keep similarity order")
	assert.Equal(2, matches[1].EditDistance)
	assert.Equal("martha", matches[2].Person.NameNormal)
	assert.Equal(2, matches[2].EditDistance)
	assert.Equal("margaryta", matches[3].Person.NameNormal,
		"matches outside the rerank window do not move")
	assert.Equal(-1, matches[3].EditDistance,
		"distance is not computed outside the window")
}

func TestRerankDepthBeyondLength(t *testing.T) {
	assert := assert.New(t)

	matches := []search.Match{
		matchFor("1", "petro", 0.9),
		matchFor("2", "pavlo", 0.8),
	}
	search.Rerank(matches, "pavlo", 50)

	assert.Equal("pavlo", matches[0].Person.NameNormal)
	assert.Equal(0, matches[0].EditDistance, "exact match has distance zero")
	assert.Equal("petro", matches[1].Person.NameNormal)
}

func TestRerankEdgeCases(t *testing.T) {
	assert := assert.New(t)

	search.Rerank(nil, "anything", 10)

	empty := []search.Match{}
	search.Rerank(empty, "anything", 10)
	assert.Empty(empty)

	one := []search.Match{matchFor("1", "ivan", 0.5)}
	search.Rerank(one, "ivan franko", 10)
	assert.Equal(7, one[0].EditDistance,
		"a single match still gets its distance computed")

	frozen := []search.Match{
		matchFor("1", "oksana", 0.9),
		matchFor("2", "olena", 0.8),
	}
	search.Rerank(frozen, "olena", 0)
	assert.Equal("oksana", frozen[0].Person.NameNormal,
		"zero depth reranks nothing")
	assert.Equal(-1, frozen[0].EditDistance)
}

func TestMergeUnique(t *testing.T) {
	assert := assert.New(t)

	primary := []search.Match{
		matchFor("a", "taras shevchenko", 0.9),
		matchFor("b", "ivan franko", 0.7),
	}
	extra := []search.Match{
		matchFor("b", "ivan franko", 0),
		matchFor("c", "lesya ukrainka", 0),
		matchFor("d", "hryhorii skovoroda", 0),
	}

	res := search.MergeUnique(primary, extra, 3)

	assert.Len(res, 3)
	assert.Equal("a", res[0].Person.ID)
	assert.Equal("b", res[1].Person.ID, "duplicate keeps its primary slot")
	assert.Equal("c", res[2].Person.ID, "extra tops up to the limit")
}

func TestMergeUniqueLimits(t *testing.T) {
	assert := assert.New(t)

	primary := []search.Match{
		matchFor("a", "one", 0.9),
		matchFor("b", "two", 0.8),
		matchFor("c", "three", 0.7),
	}

	res := search.MergeUnique(primary, nil, 2)
	assert.Len(res, 2, "limit truncates primary matches too")

	res = search.MergeUnique(nil, primary, 10)
	assert.Len(res, 3, "extra alone fills an empty primary")

	res = search.MergeUnique(nil, nil, 10)
	assert.Empty(res)
}
